// Package mcp provides an MCP (Model Context Protocol) server adapter for noteflow.
// It lets AI assistants process content, run workflows and search indexed records.
package mcp

import "errors"

var (
	// ErrMissingProcessor is returned when the content processor is not provided.
	ErrMissingProcessor = errors.New("mcp: content processor is required")

	// ErrMissingWorkflows is returned when the workflow engine is not provided.
	ErrMissingWorkflows = errors.New("mcp: workflow engine is required")

	// ErrUnavailable is returned by tools whose optional port is not set.
	ErrUnavailable = errors.New("mcp: tool unavailable")
)
