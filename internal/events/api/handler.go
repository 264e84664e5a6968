package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"obsidian-club/internal/events"
	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
	"obsidian-club/internal/utils"
)

type Handler struct {
	Service *events.Service
	Logger  *logger.Logger
}

// ListEvents serves the public events feed. ?featured=true and
// ?upcoming=true narrow the result.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	featured := r.URL.Query().Get("featured") == "true"
	upcoming := r.URL.Query().Get("upcoming") == "true"

	list, err := h.Service.List(r.Context(), featured, upcoming)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListEvents: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al obtener eventos")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"events": list})
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, events.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateEvent: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al crear el evento")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "event": created})
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
		models.EventRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	updated, err := h.Service.Update(r.Context(), body.ID, body.EventRequest)
	if err != nil {
		if errors.Is(err, events.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("UpdateEvent: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al actualizar el evento")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "event": updated})
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	if err := h.Service.Delete(r.Context(), body.ID); err != nil {
		if errors.Is(err, events.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("DeleteEvent: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al eliminar el evento")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
