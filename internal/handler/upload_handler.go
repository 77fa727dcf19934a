package handler

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"labelia/internal/config"
	"labelia/internal/model"

	"github.com/rs/zerolog"
)

// allowed image extensions for product uploads.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadHandler stores product images on disk and returns the public
// path the storefront can reference.
type UploadHandler struct {
	cfg    config.UploadsConfig
	logger zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(cfg config.UploadsConfig, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		cfg:    cfg,
		logger: logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/upload requests. The multipart field is named
// "image". Filenames are randomised so uploads can never collide or
// traverse outside the uploads directory.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.cfg.MaxSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, model.ErrCodeInvalidJSON,
			fmt.Sprintf("upload exceeds %d MB limit", h.cfg.MaxSizeMB), h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "image file is required", h.logger)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField,
			"image must be a jpg, jpeg, png or webp file", h.logger)
		return
	}

	name, err := randomFilename(ext)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := os.MkdirAll(h.cfg.Dir, 0o755); err != nil {
		writeDomainError(w, fmt.Errorf("failed to create uploads directory: %w", err), h.logger)
		return
	}

	dst, err := os.Create(filepath.Join(h.cfg.Dir, name))
	if err != nil {
		writeDomainError(w, fmt.Errorf("failed to create upload file: %w", err), h.logger)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		writeDomainError(w, fmt.Errorf("failed to write upload file: %w", err), h.logger)
		return
	}

	h.logger.Info().
		Str("filename", name).
		Str("original", header.Filename).
		Int64("size", header.Size).
		Msg("image uploaded")

	writeJSON(w, http.StatusCreated, struct {
		Path string `json:"path"`
	}{
		Path: "/uploads/" + name,
	})
}

func randomFilename(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate upload filename: %w", err)
	}
	return hex.EncodeToString(buf) + ext, nil
}
