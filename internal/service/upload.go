// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the upload sink: store bytes on disk, return
// a relative URL.
package service

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"guidekit/internal/util"
)

// Upload limits
const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB
	thumbDir      = "thumbs"
	thumbSize     = 480
)

// allowedImageExts maps accepted MIME types to the extension files are
// stored under, regardless of the client-supplied name.
var allowedImageExts = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService stores uploaded images under a local directory and serves
// them back by relative URL.
type UploadService struct {
	uploadsDir string
}

// NewUploadService creates an upload service rooted at dir, creating the
// directory tree if needed.
func NewUploadService(dir string) (*UploadService, error) {
	if err := os.MkdirAll(filepath.Join(dir, thumbDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &UploadService{uploadsDir: dir}, nil
}

// SaveImage validates and stores one uploaded image, returning its
// relative URL. A thumbnail variant is generated best-effort for formats
// the resizer can re-encode.
func (s *UploadService) SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxUploadSize {
		return "", fmt.Errorf("file size exceeds maximum allowed (%d bytes)", MaxUploadSize)
	}

	mimeType, err := sniffMimeType(file, header)
	if err != nil {
		return "", err
	}
	ext, ok := allowedImageExts[mimeType]
	if !ok {
		return "", fmt.Errorf("unsupported file type %q", mimeType)
	}

	base := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	slug := util.Slugify(base)
	if slug == "" {
		slug = "image"
	}
	name := uuid.New().String()[:8] + "-" + slug + ext

	path := filepath.Join(s.uploadsDir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	// Thumbnail failures never fail the upload; the original is stored.
	if mimeType == "image/jpeg" || mimeType == "image/png" {
		if err := s.writeThumbnail(path, name); err != nil {
			slog.Warn("thumbnail generation failed", "file", name, "error", err)
		}
	}

	return "/uploads/" + name, nil
}

// writeThumbnail creates a bounded-size variant under uploads/thumbs.
func (s *UploadService) writeThumbnail(path, name string) error {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}
	thumb := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(s.uploadsDir, thumbDir, name)); err != nil {
		return fmt.Errorf("saving thumbnail: %w", err)
	}
	return nil
}

// sniffMimeType determines the content type from the file bytes, falling
// back to the client-declared header, and rewinds the file afterwards.
func sniffMimeType(file multipart.File, header *multipart.FileHeader) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewinding upload: %w", err)
	}

	mimeType := http.DetectContentType(buf[:n])
	if mimeType == "application/octet-stream" {
		if declared := header.Header.Get("Content-Type"); declared != "" {
			mimeType = declared
		}
	}
	// Strip any parameters such as charset.
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType, nil
}
