package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Loading and State
		{
			Name:        "image_load",
			Description: "Load an image into the editor from a file path or base64 data. Replaces the current image, clears filters and crop selection, and fits the view.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"data": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image bytes, used when path is empty",
					},
				},
			},
		},
		{
			Name:        "editor_state",
			Description: "Report the editor state: image size, zoom, pan origin, crop region, interaction state and active filters.",
			InputSchema: emptySchema(),
		},

		// Viewport
		{
			Name:        "viewport_resize",
			Description: "Set the viewport size in canvas pixels and refit the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "number",
						"description": "Viewport width",
					},
					"height": map[string]interface{}{
						"type":        "number",
						"description": "Viewport height",
					},
				},
				"required": []string{"width", "height"},
			},
		},
		{
			Name:        "viewport_zoom",
			Description: "Zoom one step (x1.1) in or out, keeping the image point under the anchor fixed. Zoom stays within 20%-500%.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"direction": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"in", "out"},
						"description": "Zoom direction",
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Anchor X in canvas pixels. Defaults to the viewport center",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Anchor Y in canvas pixels. Defaults to the viewport center",
					},
				},
				"required": []string{"direction"},
			},
		},
		{
			Name:        "viewport_pan",
			Description: "Move the view by a canvas delta. The pan is clamped so the image cannot leave the viewport.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dx": map[string]interface{}{
						"type":        "number",
						"description": "Horizontal delta in canvas pixels",
					},
					"dy": map[string]interface{}{
						"type":        "number",
						"description": "Vertical delta in canvas pixels",
					},
				},
			},
		},
		{
			Name:        "viewport_fit",
			Description: "Reset the view so the whole image is visible and centered.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "pointer_event",
			Description: "Send one input event. Drags draw or move the crop region; drags with Space held pan; wheel zooms at the pointer; Escape clears the region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"type": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"down", "move", "up", "wheel", "keydown", "keyup"},
						"description": "Event type",
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Pointer X in canvas pixels",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Pointer Y in canvas pixels",
					},
					"delta": map[string]interface{}{
						"type":        "number",
						"description": "Wheel delta; negative zooms in",
					},
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Key name for key events (Space, Escape)",
					},
				},
				"required": []string{"type"},
			},
		},

		// Filters
		{
			Name:        "filter_toggle",
			Description: "Toggle a filter on or off. Filters are applied in the order they were enabled.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filter": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"grayscale", "sepia", "invert"},
						"description": "Filter to toggle",
					},
				},
				"required": []string{"filter"},
			},
		},
		{
			Name:        "filter_adjust",
			Description: "Set brightness or contrast as a percentage, where 100 leaves the image unchanged.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filter": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"brightness", "contrast"},
						"description": "Adjustment to set",
					},
					"percent": map[string]interface{}{
						"type":        "number",
						"minimum":     0,
						"maximum":     200,
						"description": "Adjustment level, 0-200",
					},
				},
				"required": []string{"filter", "percent"},
			},
		},
		{
			Name:        "filter_reset",
			Description: "Clear every filter and adjustment.",
			InputSchema: emptySchema(),
		},

		// Crop
		{
			Name:        "crop_select_default",
			Description: "Select a centered crop region of half the image size.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "crop_cancel",
			Description: "Clear the crop region.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "crop_commit",
			Description: "Replace the image with the selected region, baking in the active filters. Filters and selection are reset and the view refits.",
			InputSchema: emptySchema(),
		},

		// Output
		{
			Name:        "render_view",
			Description: "Render the viewport as it would appear on screen, with the crop overlay, and return it as base64-encoded PNG.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "image_export",
			Description: "Export the filtered image at full resolution. Zoom and pan are ignored. Saves to the configured directory unless inline is set.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Output file name; the extension picks PNG, BMP or TIFF. Default edited-image.png",
					},
					"inline": map[string]interface{}{
						"type":        "boolean",
						"description": "Return base64 data instead of writing a file",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color of a pixel in the filtered image, in image coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate",
					},
				},
				"required": []string{"x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
