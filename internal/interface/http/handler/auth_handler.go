package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/upcycle-backend/internal/interface/http/dto"
	"github.com/ignatzorin/upcycle-backend/internal/interface/http/response"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/identity"
)

type AuthHandler struct {
	registerUC *identity.RegisterUseCase
	loginUC    *identity.LoginUseCase
}

func NewAuthHandler(registerUC *identity.RegisterUseCase, loginUC *identity.LoginUseCase) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
	}
}

// Register создаёт пользователя и сразу выдаёт токен.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	if _, err := h.registerUC.Execute(c.Request.Context(), identity.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.loginUC.Execute(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToAuthResponse(res))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	res, err := h.loginUC.Execute(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToAuthResponse(res))
}
