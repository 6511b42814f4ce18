package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/upcycle-backend/internal/interface/http/dto"
	"github.com/ignatzorin/upcycle-backend/internal/interface/http/response"
	"github.com/ignatzorin/upcycle-backend/internal/usecase/identity"
)

type ProfileHandler struct {
	getProfileUC    *identity.GetProfileUseCase
	updateProfileUC *identity.UpdateProfileUseCase
}

func NewProfileHandler(getProfileUC *identity.GetProfileUseCase, updateProfileUC *identity.UpdateProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		getProfileUC:    getProfileUC,
		updateProfileUC: updateProfileUC,
	}
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	user, err := h.getProfileUC.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToProfileResponse(user))
}

// UpdateArtisanProfile меняет описание мастера. Флаг активности здесь не меняется.
func (h *ProfileHandler) UpdateArtisanProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	profile, err := h.updateProfileUC.Execute(c.Request.Context(), userID, identity.UpdateProfileInput{
		Bio:           req.Bio,
		Skills:        req.Skills,
		PortfolioLink: req.PortfolioLink,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToArtisanProfileResponse(profile))
}
