// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

package models

import "time"

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Status   string      `json:"status"` // "success" or "error"
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata such as timestamps and pagination.
type Metadata struct {
	Timestamp  time.Time   `json:"timestamp"`
	Count      int         `json:"count,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the window of a paginated response.
type Pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// APIError is the structured error payload in an error response.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status            string     `json:"status"` // "healthy" or "degraded"
	Version           string     `json:"version"`
	DatabaseConnected bool       `json:"database_connected"`
	PipelineRunning   bool       `json:"pipeline_running"`
	LastRunTime       *time.Time `json:"last_run_time,omitempty"`
	Uptime            float64    `json:"uptime_seconds"`
}
