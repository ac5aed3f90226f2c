// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/folio-site/folio-go/internal/storage"
)

func TestUploadImage(t *testing.T) {
	st := &fakeStore{}
	router, cleanup := newTestRouter(t, st)
	defer cleanup()

	payload := base64.StdEncoding.EncodeToString([]byte("not-really-a-jpeg"))

	w := do(t, router, adminRequest(http.MethodPost, "/upload/image", UploadRequest{
		Data:        payload,
		Filename:    "shot 01.JPG",
		ContentType: "image/jpeg",
	}), http.StatusCreated)

	var resp UploadResponse
	decodeData(t, w, &resp)
	if !strings.HasPrefix(resp.Key, "photos/") {
		t.Errorf("Key = %q, want photos/ prefix", resp.Key)
	}
	if !strings.HasSuffix(resp.Key, "-shot_01.JPG") {
		t.Errorf("Key = %q, want sanitized filename suffix", resp.Key)
	}
	if resp.URL != "https://cdn.example.com/"+resp.Key {
		t.Errorf("URL = %q", resp.URL)
	}

	if len(st.puts) != 1 {
		t.Fatalf("puts = %d, want 1", len(st.puts))
	}
	if st.puts[0].contentType != "image/jpeg" || st.puts[0].size != len("not-really-a-jpeg") {
		t.Errorf("put = %+v", st.puts[0])
	}
}

func TestUploadImageDataURL(t *testing.T) {
	st := &fakeStore{}
	router, cleanup := newTestRouter(t, st)
	defer cleanup()

	payload := base64.StdEncoding.EncodeToString([]byte("png bytes"))

	// The content type rides in the data URL prefix.
	do(t, router, adminRequest(http.MethodPost, "/upload/image", UploadRequest{
		Data:     "data:image/png;base64," + payload,
		Filename: "cover.png",
		Category: "backgrounds",
	}), http.StatusCreated)

	if len(st.puts) != 1 {
		t.Fatalf("puts = %d, want 1", len(st.puts))
	}
	if st.puts[0].contentType != "image/png" {
		t.Errorf("contentType = %q", st.puts[0].contentType)
	}
	if !strings.HasPrefix(st.puts[0].key, "backgrounds/") {
		t.Errorf("key = %q, want backgrounds/ prefix", st.puts[0].key)
	}
}

func TestUploadValidationRunsBeforeBridge(t *testing.T) {
	st := &fakeStore{}
	router, cleanup := newTestRouter(t, st)
	defer cleanup()

	pdf := base64.StdEncoding.EncodeToString([]byte("%PDF-1.7"))

	tests := []struct {
		name string
		path string
		req  UploadRequest
	}{
		{"missing data", "/upload/image", UploadRequest{Filename: "a.jpg", ContentType: "image/jpeg"}},
		{"missing filename", "/upload/image", UploadRequest{Data: pdf, ContentType: "image/jpeg"}},
		{"missing content type", "/upload/image", UploadRequest{Data: pdf, Filename: "a.jpg"}},
		{"bad base64", "/upload/image", UploadRequest{Data: "!!!", Filename: "a.jpg", ContentType: "image/jpeg"}},
		{"wrong type for image", "/upload/image", UploadRequest{Data: pdf, Filename: "a.pdf", ContentType: "application/pdf"}},
		{"wrong type for pdf", "/upload/pdf", UploadRequest{Data: pdf, Filename: "a.jpg", ContentType: "image/jpeg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			do(t, router, adminRequest(http.MethodPost, tt.path, tt.req), http.StatusUnprocessableEntity)
		})
	}

	// Nothing may have reached object storage.
	if len(st.puts) != 0 {
		t.Errorf("puts = %d, want 0", len(st.puts))
	}
}

func TestUploadImageSizeLimit(t *testing.T) {
	st := &fakeStore{}
	router, cleanup := newTestRouter(t, st)
	defer cleanup()

	oversized := base64.StdEncoding.EncodeToString(make([]byte, MaxImageSize+1))
	w := do(t, router, adminRequest(http.MethodPost, "/upload/image", UploadRequest{
		Data:        oversized,
		Filename:    "huge.jpg",
		ContentType: "image/jpeg",
	}), http.StatusUnprocessableEntity)

	detail := decodeError(t, w)
	if detail.Details["data"] == "" {
		t.Errorf("error = %+v, want size message under data", detail)
	}
	if len(st.puts) != 0 {
		t.Errorf("oversized payload reached storage")
	}
}

func TestUploadWithoutStorageConfigured(t *testing.T) {
	router, cleanup := newTestRouter(t, storage.Disabled{})
	defer cleanup()

	payload := base64.StdEncoding.EncodeToString([]byte("bytes"))
	w := do(t, router, adminRequest(http.MethodPost, "/upload/image", UploadRequest{
		Data:        payload,
		Filename:    "a.jpg",
		ContentType: "image/jpeg",
	}), http.StatusServiceUnavailable)

	detail := decodeError(t, w)
	if detail.Code != "storage_unavailable" {
		t.Errorf("code = %q", detail.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"résumé.pdf", "r_sum_.pdf"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitDataURL(t *testing.T) {
	payload, contentType := splitDataURL("data:image/png;base64,AAAA")
	if payload != "AAAA" || contentType != "image/png" {
		t.Errorf("got %q, %q", payload, contentType)
	}

	payload, contentType = splitDataURL("AAAA")
	if payload != "AAAA" || contentType != "" {
		t.Errorf("plain payload got %q, %q", payload, contentType)
	}
}

func TestUploadRejectsInvalidJSON(t *testing.T) {
	router, cleanup := newTestRouter(t, &fakeStore{})
	defer cleanup()

	r := httptest.NewRequest(http.MethodPost, "/upload/image", strings.NewReader("{"))
	do(t, router, r, http.StatusBadRequest)
}
