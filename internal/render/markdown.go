// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render converts stored markdown into sanitized HTML. Content is
// kept as markdown at rest and rendered on demand.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var htmlPolicy = bluemonday.UGCPolicy()

// Markdown renders markdown source into sanitized HTML.
func Markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlPolicy.Sanitize(buf.String()), nil
}

// SanitizeHTML strips unsafe markup from user-supplied HTML fragments,
// such as training step descriptions, before they are stored.
func SanitizeHTML(source string) string {
	return htmlPolicy.Sanitize(source)
}
