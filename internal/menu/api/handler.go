package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"obsidian-club/internal/logger"
	"obsidian-club/internal/menu"
	"obsidian-club/internal/utils"
)

type Handler struct {
	Service    *menu.Service
	MenuPDFURL string
	Logger     *logger.Logger
}

// ---------------- ITEMS ----------------

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	availableOnly := r.URL.Query().Get("available") == "true"

	items, err := h.Service.ListItems(r.Context(), category, availableOnly)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListItems: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al obtener el menú")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req menu.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	item, err := h.Service.CreateItem(r.Context(), req)
	if err != nil {
		if errors.Is(err, menu.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateItem: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al crear el item")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "item": item})
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
		menu.ItemRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), body.ID, body.ItemRequest)
	if err != nil {
		if errors.Is(err, menu.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("UpdateItem: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al actualizar el item")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "item": item})
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	if err := h.Service.DeleteItem(r.Context(), body.ID); err != nil {
		if errors.Is(err, menu.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("DeleteItem: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al eliminar el item")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// MenuQR renders the menu PDF URL as a QR PNG, the printable counterpart of
// the chat's menu-download button.
func (h *Handler) MenuQR(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(h.MenuPDFURL, qrcode.Medium, 256)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("MenuQR: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al generar el código QR")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.Logger.Error("API", fmt.Sprintf("MenuQR: failed to write image: %v", err))
	}
}

// ---------------- CATEGORIES ----------------

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.Service.ListCategories(r.Context())
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req menu.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	category, err := h.Service.CreateCategory(r.Context(), req)
	if err != nil {
		if errors.Is(err, menu.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateCategory: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al crear la categoría")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{"category": category})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
		menu.CategoryRequest
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	category, err := h.Service.UpdateCategory(r.Context(), body.ID, body.CategoryRequest)
	if err != nil {
		if errors.Is(err, menu.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("UpdateCategory: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al actualizar la categoría")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"category": category})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	if err := h.Service.DeleteCategory(r.Context(), body.ID); err != nil {
		if errors.Is(err, menu.ErrCategoryInUse) {
			utils.WriteError(w, http.StatusBadRequest, "No se puede eliminar una categoría con items. Mueve o elimina los items primero.")
			return
		}
		if errors.Is(err, menu.ErrValidation) {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("API", fmt.Sprintf("DeleteCategory: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al eliminar la categoría")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
