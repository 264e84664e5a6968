package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
	"obsidian-club/internal/reservations"
	"obsidian-club/internal/utils"
)

type Handler struct {
	Service *reservations.Service
	Logger  *logger.Logger
}

// CreateReservation handles the public booking form.
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req models.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateReservation: failed to decode body: %v", err))
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, reservations.ErrValidation) {
			h.Logger.Warn("API", fmt.Sprintf("CreateReservation: rejected: %v", err))
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateReservation: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al guardar la reservación")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"message":     "Reservación creada exitosamente",
		"reservation": created,
	})
}

// ListReservations serves the admin panel, filtered by ?date= and ?status=.
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")

	list, err := h.Service.List(r.Context(), date, status)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListReservations: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al obtener reservaciones")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"reservations": list})
}

// UpdateStatus moves a reservation between statuses.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	updated, err := h.Service.UpdateStatus(r.Context(), req.ID, req.Status)
	if err != nil {
		if errors.Is(err, reservations.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("UpdateStatus: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al actualizar la reservación")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Reservación actualizada",
		"reservation": updated,
	})
}

// Stats serves the admin dashboard aggregates. The window defaults to the
// last 30 days.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" {
		startDate = time.Now().AddDate(0, 0, -30).Format(utils.DateLayout)
	}
	if endDate == "" {
		endDate = time.Now().Format(utils.DateLayout)
	}

	stats, err := h.Service.Stats(r.Context(), startDate, endDate)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Stats: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al obtener estadísticas")
		return
	}

	utils.WriteJSON(w, http.StatusOK, stats)
}
