package offer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ignatzorin/upcycle-backend/internal/domain/entity"
	"github.com/ignatzorin/upcycle-backend/internal/domain/repository"
	"github.com/ignatzorin/upcycle-backend/internal/logger"
	"github.com/ignatzorin/upcycle-backend/internal/metrics"
	"github.com/ignatzorin/upcycle-backend/internal/pkg/apperror"
	"github.com/ignatzorin/upcycle-backend/internal/telemetry"
)

// SeedMessage - первое сообщение в беседе после принятия предложения.
func SeedMessage(productType string) string {
	return fmt.Sprintf("Your offer for '%s' has been accepted! Let's discuss details.", productType)
}

type AcceptOfferResult struct {
	Offer               *entity.Offer
	Request             *entity.UpcyclingRequest
	Conversation        *entity.Conversation
	ConversationCreated bool
	Message             *entity.Message
	RejectedOffers      int64
}

// AcceptOfferUseCase принимает предложение: заявка закрепляется за мастером,
// конкурирующие предложения отклоняются, а участникам открывается беседа.
// Всё выполняется в одной транзакции.
type AcceptOfferUseCase struct {
	uow     repository.UnitOfWork
	metrics *metrics.Metrics
}

func NewAcceptOfferUseCase(uow repository.UnitOfWork, m *metrics.Metrics) *AcceptOfferUseCase {
	return &AcceptOfferUseCase{uow: uow, metrics: m}
}

func (uc *AcceptOfferUseCase) Execute(ctx context.Context, actingUserID, offerID uuid.UUID) (result *AcceptOfferResult, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "offer.accept", trace.WithAttributes(
		attribute.String("offer.id", offerID.String()),
		attribute.String("user.id", actingUserID.String()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(apperror.CodeOf(err)))
		}
		span.End()
		uc.metrics.OfferOperation("accept", err)
	}()

	err = uc.uow.WithinTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		res, err := acceptInTx(ctx, tx, actingUserID, offerID)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		if apperror.IsGuard(err) {
			return nil, err
		}
		logger.WithContext(ctx).WithFields(logrus.Fields{
			"offer_id": offerID,
			"user_id":  actingUserID,
			"error":    err.Error(),
		}).Error("accept offer: транзакция откатена")
		if apperror.Is(err, apperror.ErrCodeInternal) {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось принять предложение")
	}

	uc.metrics.ConversationProvisioned(result.ConversationCreated)
	uc.metrics.MessageSent()
	span.SetAttributes(attribute.String("conversation.id", result.Conversation.ID.String()))
	return result, nil
}

func acceptInTx(ctx context.Context, tx repository.Store, actingUserID, offerID uuid.UUID) (*AcceptOfferResult, error) {
	offer, err := tx.Offers().FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	// Порядок блокировок: заявка, затем предложение. Проверки идут после
	// блокировок, поэтому параллельное принятие увидит уже изменённый статус.
	req, err := tx.Requests().LockByID(ctx, offer.RequestID)
	if err != nil {
		return nil, err
	}
	offer, err = tx.Offers().LockByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if !req.IsOwnedBy(actingUserID) {
		return nil, apperror.ErrNotRequestOwner
	}
	if !req.AcceptsOffers() {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "заявка больше не принимает предложения")
	}
	if !offer.IsPending() {
		return nil, apperror.New(apperror.ErrCodeInvalidState, "предложение уже не ожидает решения")
	}

	if err := offer.Accept(); err != nil {
		return nil, failed(err, "смена статуса предложения")
	}
	if err := tx.Offers().UpdateStatus(ctx, offer); err != nil {
		return nil, failed(err, "сохранение предложения")
	}

	if err := req.AssignArtisan(offer.ArtisanID); err != nil {
		return nil, failed(err, "закрепление мастера")
	}
	if err := tx.Requests().Update(ctx, req); err != nil {
		return nil, failed(err, "сохранение заявки")
	}

	rejected, err := tx.Offers().RejectPendingExcept(ctx, req.ID, offer.ID)
	if err != nil {
		return nil, failed(err, "отклонение остальных предложений")
	}

	candidate, err := entity.NewConversation(&req.ID, req.OwnerID, offer.ArtisanID)
	if err != nil {
		return nil, failed(err, "подготовка беседы")
	}
	conv, created, err := tx.Conversations().GetOrCreate(ctx, candidate)
	if err != nil {
		return nil, failed(err, "создание беседы")
	}

	msg, err := entity.NewMessage(conv.ID, req.OwnerID, SeedMessage(req.ProductType))
	if err != nil {
		return nil, failed(err, "подготовка сообщения")
	}
	if err := tx.Messages().Create(ctx, msg); err != nil {
		return nil, failed(err, "отправка сообщения")
	}
	if err := tx.Conversations().Touch(ctx, conv.ID, msg.CreatedAt); err != nil {
		return nil, failed(err, "обновление беседы")
	}
	conv.Touch(msg.CreatedAt)

	return &AcceptOfferResult{
		Offer:               offer,
		Request:             req,
		Conversation:        conv,
		ConversationCreated: created,
		Message:             msg,
		RejectedOffers:      rejected,
	}, nil
}

// failed превращает любую ошибку после проверок в сбой всей операции.
func failed(err error, step string) error {
	return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось принять предложение: "+step)
}
