// Package server implements the MCP (Model Context Protocol) server for the
// image editor.
//
// The server owns one editor session and exposes it as tools, so an MCP
// client can load an image, adjust the view, drag out a crop region, apply
// filters and export the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Loading and State:
//   - image_load: Load an image from a path or base64 data
//   - editor_state: Zoom, pan, crop region and active filters
//
// Viewport:
//   - viewport_resize: Set the canvas size and refit
//   - viewport_zoom: Zoom one step around an anchor
//   - viewport_pan: Move the view, clamped to the image
//   - viewport_fit: Fit and center the image
//   - pointer_event: Raw pointer, wheel and key input
//
// Filters:
//   - filter_toggle: Grayscale, sepia or invert on/off
//   - filter_adjust: Brightness or contrast, 0-200%
//   - filter_reset: Clear all filters
//
// Crop:
//   - crop_select_default: Centered half-size region
//   - crop_cancel: Clear the region
//   - crop_commit: Replace the image with the region
//
// Output:
//   - render_view: The viewport as base64 PNG
//   - image_export: Full-resolution PNG, BMP or TIFF
//   - image_sample_color: Color at an image pixel
//
// # Image Caching
//
// File bytes read by image_load are kept in an in-memory cache keyed by path.
// A load of the same path re-reads the file, so edits on disk are picked up.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A failed tool call leaves the session unchanged.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
