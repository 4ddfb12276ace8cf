package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"log"

	"github.com/ironsheep/image-edit-mcp/internal/editor"
	"github.com/ironsheep/image-edit-mcp/internal/export"
	"github.com/ironsheep/image-edit-mcp/internal/filters"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/selection"
	"github.com/ironsheep/image-edit-mcp/internal/viewport"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "crop_commit").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(context.Background(), params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Every handler except image_load and editor_state works on the image already
// loaded into the session and fails with imaging.ErrNoImageLoaded before one
// is loaded.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Loading and State
	case "image_load":
		return s.handleImageLoad(ctx, args)
	case "editor_state":
		return s.session.State(), nil

	// Viewport
	case "viewport_resize":
		return s.handleViewportResize(args)
	case "viewport_zoom":
		return s.handleViewportZoom(args)
	case "viewport_pan":
		return s.handleViewportPan(args)
	case "viewport_fit":
		return s.stateAfter(s.session.Fit())
	case "pointer_event":
		return s.handlePointerEvent(args)

	// Filters
	case "filter_toggle":
		return s.handleFilterToggle(args)
	case "filter_adjust":
		return s.handleFilterAdjust(args)
	case "filter_reset":
		return s.stateAfter(s.session.ResetFilters())

	// Crop
	case "crop_select_default":
		return s.handleCropSelectDefault()
	case "crop_cancel":
		return s.stateAfter(s.session.CancelCrop())
	case "crop_commit":
		return s.handleCropCommit()

	// Output
	case "render_view":
		return s.handleRenderView()
	case "image_export":
		return s.handleImageExport(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Missing arguments leave v untouched.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(bytes.TrimSpace(args)) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// stateAfter returns the session state when err is nil.
func (s *Server) stateAfter(err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return s.session.State(), nil
}

// === Loading Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	Data string `json:"data"`
}

type imageLoadResult struct {
	Path string `json:"path,omitempty"`
	*imaging.ImageInfo
	Zoom float64 `json:"zoom"`
}

func (s *Server) handleImageLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var data []byte
	switch {
	case a.Path != "":
		b, err := s.cache.Read(a.Path)
		if err != nil {
			return nil, err
		}
		data = b
		if s.cfg.Debug() {
			log.Printf("image_load %s (%d bytes, %d cached files)", a.Path, len(b), s.cache.Len())
		}
	case a.Data != "":
		b, err := base64.StdEncoding.DecodeString(a.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data: %w", err)
		}
		data = b
	default:
		return nil, fmt.Errorf("either path or data is required")
	}

	info, err := s.session.Load(ctx, data)
	if err != nil {
		return nil, err
	}
	return &imageLoadResult{
		Path:      a.Path,
		ImageInfo: info,
		Zoom:      s.session.State().Zoom,
	}, nil
}

// === Viewport Handlers ===

type viewportResizeArgs struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleViewportResize(args json.RawMessage) (interface{}, error) {
	var a viewportResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.stateAfter(s.session.Resize(viewport.Size{W: a.Width, H: a.Height}))
}

type viewportZoomArgs struct {
	Direction string   `json:"direction"`
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
}

func (s *Server) handleViewportZoom(args json.RawMessage) (interface{}, error) {
	var a viewportZoomArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var dir viewport.Direction
	switch a.Direction {
	case "in":
		dir = viewport.ZoomIn
	case "out":
		dir = viewport.ZoomOut
	default:
		return nil, fmt.Errorf("invalid direction %q: must be in or out", a.Direction)
	}

	vp := s.session.State().Viewport
	anchor := viewport.Point{X: vp.W / 2, Y: vp.H / 2}
	if a.X != nil {
		anchor.X = *a.X
	}
	if a.Y != nil {
		anchor.Y = *a.Y
	}
	return s.stateAfter(s.session.ZoomAt(anchor, dir))
}

type viewportPanArgs struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (s *Server) handleViewportPan(args json.RawMessage) (interface{}, error) {
	var a viewportPanArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.stateAfter(s.session.PanBy(viewport.Point{X: a.DX, Y: a.DY}))
}

type pointerEventArgs struct {
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Delta float64 `json:"delta"`
	Key   string  `json:"key"`
}

func (s *Server) handlePointerEvent(args json.RawMessage) (interface{}, error) {
	var a pointerEventArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	typ, err := editor.ParseEventType(a.Type)
	if err != nil {
		return nil, err
	}
	return s.stateAfter(s.session.HandleEvent(editor.Event{
		Type:       typ,
		Point:      viewport.Point{X: a.X, Y: a.Y},
		WheelDelta: a.Delta,
		Key:        a.Key,
	}))
}

// === Filter Handlers ===

type filterToggleArgs struct {
	Filter *filters.Kind `json:"filter"`
}

type filterToggleResult struct {
	Filter  filters.Kind    `json:"filter"`
	Enabled bool            `json:"enabled"`
	Filters []filters.Entry `json:"filters"`
}

func (s *Server) handleFilterToggle(args json.RawMessage) (interface{}, error) {
	var a filterToggleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Filter == nil {
		return nil, fmt.Errorf("filter is required")
	}
	on, err := s.session.ToggleFilter(*a.Filter)
	if err != nil {
		return nil, err
	}
	return &filterToggleResult{
		Filter:  *a.Filter,
		Enabled: on,
		Filters: s.session.State().Filters,
	}, nil
}

type filterAdjustArgs struct {
	Filter  *filters.Kind `json:"filter"`
	Percent *float64      `json:"percent"`
}

func (s *Server) handleFilterAdjust(args json.RawMessage) (interface{}, error) {
	var a filterAdjustArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Filter == nil || a.Percent == nil {
		return nil, fmt.Errorf("filter and percent are required")
	}
	return s.stateAfter(s.session.SetAdjustment(*a.Filter, *a.Percent/100))
}

// === Crop Handlers ===

type cropSelectResult struct {
	Region selection.Rect `json:"region"`
}

func (s *Server) handleCropSelectDefault() (interface{}, error) {
	r, err := s.session.SelectDefault()
	if err != nil {
		return nil, err
	}
	return &cropSelectResult{Region: r}, nil
}

func (s *Server) handleCropCommit() (interface{}, error) {
	info, err := s.session.CommitCrop()
	if err != nil {
		return nil, err
	}
	return info, nil
}

// === Output Handlers ===

// RenderResult is the rendered viewport.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handleRenderView() (interface{}, error) {
	img, err := s.session.Render()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode view: %w", err)
	}

	b := img.Bounds()
	return &RenderResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

type imageExportArgs struct {
	Filename string `json:"filename"`
	Inline   bool   `json:"inline"`
}

// ExportResult reports where an export went.
type ExportResult struct {
	Filename    string `json:"filename"`
	Path        string `json:"path,omitempty"`
	SizeBytes   int    `json:"size_bytes,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

func (s *Server) handleImageExport(args json.RawMessage) (interface{}, error) {
	var a imageExportArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Filename == "" {
		a.Filename = export.DefaultFilename
	}

	if !a.Inline {
		path, err := s.session.Save(s.sink, a.Filename)
		if err != nil {
			return nil, err
		}
		return &ExportResult{Filename: a.Filename, Path: path}, nil
	}

	format, err := export.FormatFromFilename(a.Filename)
	if err != nil {
		return nil, err
	}
	data, err := s.session.Export(format)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    a.Filename,
		SizeBytes:   len(data),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
	}, nil
}

type imageSampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.session.SampleColor(a.X, a.Y)
}
