package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	herodb "obsidian-club/internal/hero/db"
	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
	"obsidian-club/internal/utils"
)

// Handler manages the landing-page carousel. The collection is small enough
// (four rows) that it talks to the store directly.
type Handler struct {
	DB     *herodb.DB
	Logger *logger.Logger
}

func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.DB.ListImages(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListImages: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al obtener imágenes")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"images": images})
}

func (h *Handler) CreateImage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ImageURL   string `json:"image_url"`
		OrderIndex *int   `json:"order_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ImageURL == "" {
		utils.WriteError(w, http.StatusBadRequest, "image_url es requerido")
		return
	}

	count, err := h.DB.CountImages(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateImage: count failed: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al agregar imagen")
		return
	}
	if count >= models.MaxHeroImages {
		utils.WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("Máximo %d imágenes. Elimina una primero.", models.MaxHeroImages))
		return
	}

	orderIndex := count
	if body.OrderIndex != nil {
		orderIndex = *body.OrderIndex
	}

	img := models.HeroImage{
		ID:         uuid.New().String(),
		ImageURL:   body.ImageURL,
		OrderIndex: orderIndex,
		CreatedAt:  time.Now(),
	}
	if err := h.DB.CreateImage(r.Context(), img); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateImage: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al agregar imagen")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{"image": img})
}

func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID         string `json:"id"`
		ImageURL   string `json:"image_url"`
		OrderIndex int    `json:"order_index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		utils.WriteError(w, http.StatusBadRequest, "ID es requerido")
		return
	}

	img := models.HeroImage{ID: body.ID, ImageURL: body.ImageURL, OrderIndex: body.OrderIndex}
	if err := h.DB.UpdateImage(r.Context(), img); err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateImage: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al actualizar imagen")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"image": img})
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "ID es requerido")
		return
	}

	if err := h.DB.DeleteImage(r.Context(), id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteImage: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al eliminar imagen")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
