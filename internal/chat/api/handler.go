package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"obsidian-club/internal/chat"
	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
	"obsidian-club/internal/utils"
)

type Handler struct {
	Service *chat.Service
	Logger  *logger.Logger
}

// Chat handles one user turn. A terminal pipeline failure still answers with
// the fixed apology text, just with a 500 — nothing from this endpoint ever
// crashes the guest's session.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Chat: failed to decode body: %v", err))
		utils.WriteJSON(w, http.StatusBadRequest, models.ChatResponse{Response: chat.Apology})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.WriteError(w, http.StatusBadRequest, "El mensaje no puede estar vacío")
		return
	}

	response, err := h.Service.Respond(r.Context(), req)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, response)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response)
}
