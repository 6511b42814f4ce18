package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/upcycle-backend/internal/interface/http/dto"
	"github.com/ignatzorin/upcycle-backend/internal/interface/http/response"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/offer"
)

type OfferHandler struct {
	submitUC *offer.SubmitOfferUseCase
	acceptUC *offer.AcceptOfferUseCase
	rejectUC *offer.RejectOfferUseCase
}

func NewOfferHandler(submitUC *offer.SubmitOfferUseCase, acceptUC *offer.AcceptOfferUseCase, rejectUC *offer.RejectOfferUseCase) *OfferHandler {
	return &OfferHandler{
		submitUC: submitUC,
		acceptUC: acceptUC,
		rejectUC: rejectUC,
	}
}

func (h *OfferHandler) SubmitOffer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	requestID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, "некорректный ID заявки")
		return
	}

	var req dto.SubmitOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	created, err := h.submitUC.Execute(c.Request.Context(), userID, requestID, offer.SubmitOfferInput{
		Price:         req.Price,
		EstimatedDays: req.EstimatedDays,
		Message:       req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToOfferResponse(created))
}

// AcceptOffer закрепляет заявку за мастером и открывает беседу.
func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	offerID, err := uuidParam(c, "offerId")
	if err != nil {
		response.BadRequest(c, "некорректный ID предложения")
		return
	}

	res, err := h.acceptUC.Execute(c.Request.Context(), userID, offerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAcceptOfferResponse(res))
}

func (h *OfferHandler) RejectOffer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	offerID, err := uuidParam(c, "offerId")
	if err != nil {
		response.BadRequest(c, "некорректный ID предложения")
		return
	}

	rejected, err := h.rejectUC.Execute(c.Request.Context(), userID, offerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOfferResponse(rejected))
}
