// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/folio-site/folio-go/internal/middleware"
	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/storage"
)

// Upload size limits, applied to the decoded payload.
const (
	MaxImageSize = 10 << 20 // 10 MB
	MaxPDFSize   = 50 << 20 // 50 MB
)

// UploadRequest represents a base64-encoded file upload. Data may carry a
// data URL prefix (data:image/jpeg;base64,...), which also supplies the
// content type when the field is empty.
type UploadRequest struct {
	Data        string `json:"data"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Category    string `json:"category"`
}

// UploadResponse describes the stored object.
type UploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// UploadImage handles POST /upload/image (admin). The payload must be an
// image and is validated before anything touches object storage.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, func(contentType string, size int) map[string]string {
		if !strings.HasPrefix(contentType, "image/") {
			return map[string]string{"content_type": "Only image uploads are accepted"}
		}
		if size > MaxImageSize {
			return map[string]string{"data": "Image exceeds the 10 MB limit"}
		}
		return nil
	}, "photos")
}

// UploadPDF handles POST /upload/pdf (admin).
func (h *Handler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, func(contentType string, size int) map[string]string {
		if contentType != "application/pdf" {
			return map[string]string{"content_type": "Only PDF uploads are accepted"}
		}
		if size > MaxPDFSize {
			return map[string]string{"data": "PDF exceeds the 50 MB limit"}
		}
		return nil
	}, "papers")
}

// handleUpload decodes, validates and bridges an upload to object storage.
// validate runs on the decoded bytes before the bridge; a misconfigured
// store fails loudly rather than pretending the file landed somewhere.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request, validate func(contentType string, size int) map[string]string, defaultCategory string) {
	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Data == "" {
		WriteValidationError(w, map[string]string{"data": "File data is required"})
		return
	}
	if req.Filename == "" {
		WriteValidationError(w, map[string]string{"filename": "Filename is required"})
		return
	}

	payload, contentType := splitDataURL(req.Data)
	if req.ContentType != "" {
		contentType = req.ContentType
	}
	if contentType == "" {
		WriteValidationError(w, map[string]string{"content_type": "Content type is required"})
		return
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		WriteValidationError(w, map[string]string{"data": "Invalid base64 payload"})
		return
	}

	if fieldErrors := validate(contentType, len(data)); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	category := req.Category
	if category == "" {
		category = defaultCategory
	}
	key := category + "/" + uuid.NewString() + "-" + sanitizeFilename(req.Filename)

	result, err := h.storage.Put(r.Context(), key, data, contentType)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			WriteError(w, http.StatusServiceUnavailable, "storage_unavailable",
				"Object storage is not configured", nil)
			return
		}
		slog.Error("uploading object", "error", err, "key", key)
		WriteInternalError(w, "Failed to store upload")
		return
	}

	var uid *int64
	if userID := middleware.GetUserID(r); userID != 0 {
		uid = &userID
	}
	_ = h.events.LogInfo(r.Context(), model.EventCategoryUpload, "file uploaded", uid,
		map[string]any{"key": result.Key, "size": len(data), "content_type": contentType})

	WriteCreated(w, UploadResponse{URL: result.URL, Key: result.Key})
}

// splitDataURL strips a data URL prefix, returning the base64 payload and
// the embedded content type if present.
func splitDataURL(data string) (payload, contentType string) {
	if !strings.HasPrefix(data, "data:") {
		return data, ""
	}
	meta, rest, found := strings.Cut(data, ",")
	if !found {
		return data, ""
	}
	meta = strings.TrimPrefix(meta, "data:")
	meta = strings.TrimSuffix(meta, ";base64")
	return rest, meta
}

// sanitizeFilename reduces a client-supplied filename to a safe object key
// segment.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "file"
	}
	return sb.String()
}
