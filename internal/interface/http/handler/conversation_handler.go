package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/upcycle-backend/internal/interface/http/dto"
	"github.com/ignatzorin/upcycle-backend/internal/interface/http/response"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/conversation"
)

type ConversationHandler struct {
	listUC *conversation.ListConversationsUseCase
	viewUC *conversation.ViewConversationUseCase
	sendUC *conversation.SendMessageUseCase
}

func NewConversationHandler(
	listUC *conversation.ListConversationsUseCase,
	viewUC *conversation.ViewConversationUseCase,
	sendUC *conversation.SendMessageUseCase,
) *ConversationHandler {
	return &ConversationHandler{
		listUC: listUC,
		viewUC: viewUC,
		sendUC: sendUC,
	}
}

func (h *ConversationHandler) ListMyConversations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	items, err := h.listUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToConversationList(items))
}

// GetConversation отдаёт переписку и помечает входящие сообщения прочитанными.
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	conversationID, err := uuidParam(c, "conversationId")
	if err != nil {
		response.BadRequest(c, "некорректный ID беседы")
		return
	}

	view, err := h.viewUC.Execute(c.Request.Context(), userID, conversationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToConversationView(view))
}

func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	conversationID, err := uuidParam(c, "conversationId")
	if err != nil {
		response.BadRequest(c, "некорректный ID беседы")
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	msg, err := h.sendUC.Execute(c.Request.Context(), userID, conversationID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToMessageResponse(msg))
}
