package handler

import (
	"encoding/json"
	"net/http"

	"career_advisor/internal/api/middleware"
	"career_advisor/internal/app/service"
	"career_advisor/internal/common"

	"github.com/go-chi/chi/v5"
)

type ChatbotHandler struct {
	chatbotService *service.ChatbotService
}

func NewChatbotHandler(chatbotService *service.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbotService: chatbotService}
}

func (h *ChatbotHandler) RegisterRoutes(r chi.Router) {
	// Identity comes from the verified token, not a path parameter, so a
	// caller cannot chat as an arbitrary user id.
	r.Post("/user/chatbot", h.chat)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *ChatbotHandler) chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	reply, err := h.chatbotService.Reply(r.Context(), userID, req.Message)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
