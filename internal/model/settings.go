// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
)

// Well-known settings keys. The settings table is a free-form key/value
// store; these are the keys the application itself reads.
const (
	SettingSiteName      = "siteName"
	SettingSiteTagline   = "siteTagline"
	SettingLogoURL       = "logoUrl"
	SettingContactLinks  = "contactLinks"
	SettingAdminPassword = "adminPassword"
)

// ContactLink is one entry of the ordered contact-link list stored as
// serialized JSON under the contactLinks settings key.
type ContactLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
}

// EncodeContactLinks serializes an ordered contact-link list for storage as
// a settings value.
func EncodeContactLinks(links []ContactLink) (string, error) {
	data, err := json.Marshal(links)
	if err != nil {
		return "", fmt.Errorf("encoding contact links: %w", err)
	}
	return string(data), nil
}

// DecodeContactLinks parses a stored contactLinks settings value. An empty
// value decodes to an empty list.
func DecodeContactLinks(value string) ([]ContactLink, error) {
	if value == "" {
		return []ContactLink{}, nil
	}
	var links []ContactLink
	if err := json.Unmarshal([]byte(value), &links); err != nil {
		return nil, fmt.Errorf("decoding contact links: %w", err)
	}
	return links, nil
}
