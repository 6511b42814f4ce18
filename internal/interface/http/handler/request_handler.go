package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/upcycle-backend/internal/interface/http/dto"
	"github.com/ignatzorin/upcycle-backend/internal/interface/http/response"
	"github.com/ignatzorin/upcycle-backend/internal/logger"
	"github.com/ignatzorin/upcycle-backend/internal/storage"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/request"
)

type RequestHandler struct {
	createUC    *request.CreateRequestUseCase
	getUC       *request.GetRequestUseCase
	listMyUC    *request.ListMyRequestsUseCase
	availableUC *request.ListAvailableRequestsUseCase
	offersUC    *request.ListRequestOffersUseCase
	images      storage.ImageStore
}

func NewRequestHandler(
	createUC *request.CreateRequestUseCase,
	getUC *request.GetRequestUseCase,
	listMyUC *request.ListMyRequestsUseCase,
	availableUC *request.ListAvailableRequestsUseCase,
	offersUC *request.ListRequestOffersUseCase,
	images storage.ImageStore,
) *RequestHandler {
	return &RequestHandler{
		createUC:    createUC,
		getUC:       getUC,
		listMyUC:    listMyUC,
		availableUC: availableUC,
		offersUC:    offersUC,
		images:      images,
	}
}

// CreateRequest принимает multipart форму, изображение необязательно.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var form dto.CreateRequestForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	input := request.CreateRequestInput{
		ProductType:     form.ProductType,
		MaterialDetails: form.MaterialDetails,
		StylePreference: form.StylePreference,
		PickupLocation:  form.PickupLocation,
		Budget:          form.Budget,
	}

	fileHeader, err := c.FormFile("image")
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			response.BadRequest(c, "не удалось прочитать изображение")
			return
		}
		defer file.Close()
		input.Image = file
	case errors.Is(err, http.ErrMissingFile):
	default:
		response.BadRequest(c, "не удалось прочитать изображение")
		return
	}

	req, err := h.createUC.Execute(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToRequestResponse(req, h.imageURL(c.Request.Context())))
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
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

	detail, err := h.getUC.Execute(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestDetailResponse(detail, h.imageURL(c.Request.Context())))
}

func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	reqs, err := h.listMyUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponses(reqs, h.imageURL(c.Request.Context())))
}

// ListAvailableRequests доступен только активным мастерам.
func (h *RequestHandler) ListAvailableRequests(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	reqs, err := h.availableUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToRequestResponses(reqs, h.imageURL(c.Request.Context())))
}

func (h *RequestHandler) ListRequestOffers(c *gin.Context) {
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

	offers, err := h.offersUC.Execute(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToOfferResponses(offers))
}

func (h *RequestHandler) imageURL(ctx context.Context) dto.ImageURLFunc {
	if h.images == nil {
		return nil
	}
	return func(key string) *string {
		url, err := h.images.URL(ctx, key)
		if err != nil {
			logger.WithContext(ctx).WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("не удалось получить адрес изображения")
			return nil
		}
		return &url
	}
}
