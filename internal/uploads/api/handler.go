package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"obsidian-club/internal/logger"
	"obsidian-club/internal/utils"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Storage abstracts the hosted object store for tests.
type Storage interface {
	Put(path, contentType string, data []byte) (string, error)
}

type Handler struct {
	Storage Storage
	Logger  *logger.Logger
}

func NewHandler(storage Storage, log *logger.Logger) *Handler {
	return &Handler{Storage: storage, Logger: log}
}

// Upload accepts one multipart image and stores it under a
// timestamp-random filename so uploads never collide.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+4096)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "El archivo es muy grande. Máximo 5MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "No se proporcionó archivo")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		utils.WriteError(w, http.StatusBadRequest, "Tipo de archivo no válido. Use JPG, PNG, WebP o GIF")
		return
	}

	if header.Size > maxUploadSize {
		utils.WriteError(w, http.StatusBadRequest, "El archivo es muy grande. Máximo 5MB")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "imgs"
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	randomStr := strings.Split(uuid.New().String(), "-")[0]
	path := fmt.Sprintf("%s/%d-%s%s", folder, time.Now().UnixMilli(), randomStr, ext)

	url, err := h.Storage.Put(path, contentType, data)
	if err != nil {
		h.Logger.Error("UPLOAD", fmt.Sprintf("Failed to store image: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Error al subir imagen")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
		"path":    path,
	})
}
