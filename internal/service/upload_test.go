// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// multipartImage builds a multipart request carrying one PNG under the
// given field name, and returns the parsed file and header.
func multipartImage(t *testing.T, field, filename string, payload []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("writing payload: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	file, header, err := req.FormFile(field)
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewUploadService(dir)
	if err != nil {
		t.Fatalf("NewUploadService: %v", err)
	}

	file, header := multipartImage(t, "image", "My Photo.PNG", pngBytes(t))
	url, err := svc.SaveImage(file, header)
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/") {
		t.Errorf("url = %q, want /uploads/ prefix", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want .png suffix from sniffed type", url)
	}
	if !strings.Contains(url, "my-photo") {
		t.Errorf("url = %q, want slugified base name", url)
	}

	name := strings.TrimPrefix(url, "/uploads/")
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "thumbs", name)); err != nil {
		t.Errorf("thumbnail missing: %v", err)
	}
}

func TestSaveImageRejectsUnsupportedType(t *testing.T) {
	svc, err := NewUploadService(t.TempDir())
	if err != nil {
		t.Fatalf("NewUploadService: %v", err)
	}

	file, header := multipartImage(t, "image", "notes.txt", []byte("plain text, not an image"))
	if _, err := svc.SaveImage(file, header); err == nil {
		t.Error("non-image payload accepted")
	}
}

func TestSaveImageRejectsOversized(t *testing.T) {
	svc, err := NewUploadService(t.TempDir())
	if err != nil {
		t.Fatalf("NewUploadService: %v", err)
	}

	file, header := multipartImage(t, "image", "big.png", pngBytes(t))
	header.Size = MaxUploadSize + 1
	if _, err := svc.SaveImage(file, header); err == nil {
		t.Error("oversized upload accepted")
	}
}

func TestSaveImageUniqueNames(t *testing.T) {
	svc, err := NewUploadService(t.TempDir())
	if err != nil {
		t.Fatalf("NewUploadService: %v", err)
	}

	payload := pngBytes(t)
	fileA, headerA := multipartImage(t, "image", "same.png", payload)
	urlA, err := svc.SaveImage(fileA, headerA)
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	fileB, headerB := multipartImage(t, "image", "same.png", payload)
	urlB, err := svc.SaveImage(fileB, headerB)
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	if urlA == urlB {
		t.Errorf("two uploads of the same name collided: %q", urlA)
	}
}
