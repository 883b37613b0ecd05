package handler

import (
	"net/http"

	"career_advisor/internal/api/middleware"
	"career_advisor/internal/app/service"
	"career_advisor/internal/common"

	"github.com/go-chi/chi/v5"
)

type CareerHandler struct {
	careerService *service.CareerService
}

func NewCareerHandler(careerService *service.CareerService) *CareerHandler {
	return &CareerHandler{careerService: careerService}
}

func (h *CareerHandler) RegisterRoutes(r chi.Router) {
	r.Post("/user/career-recommendations/me", h.recommend)
}

func (h *CareerHandler) recommend(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	careers, err := h.careerService.Recommend(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"careers": careers})
}
