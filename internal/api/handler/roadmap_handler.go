package handler

import (
	"net/http"

	"career_advisor/internal/api/middleware"
	"career_advisor/internal/app/service"
	"career_advisor/internal/common"

	"github.com/go-chi/chi/v5"
)

type RoadmapHandler struct {
	roadmapService *service.RoadmapService
}

func NewRoadmapHandler(roadmapService *service.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{roadmapService: roadmapService}
}

func (h *RoadmapHandler) RegisterRoutes(r chi.Router) {
	r.Post("/user/roadmap", h.generate)
	r.Get("/user/roadmap", h.getOrGenerate)
}

// generate always regenerates, replacing the user's current plan.
func (h *RoadmapHandler) generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	roadmap, err := h.roadmapService.GenerateAndSave(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"roadmap": roadmap.Plan})
}

// getOrGenerate returns the cached plan, generating one only on first
// access.
func (h *RoadmapHandler) getOrGenerate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	roadmap, err := h.roadmapService.GetOrGenerate(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"roadmap": roadmap.Plan})
}
