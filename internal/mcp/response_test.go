package mcp

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TestCreateJSONResponse tests JSON content wrapping.
func TestCreateJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		data interface{}
	}{
		{
			name: "simple map",
			data: map[string]interface{}{"status": "success", "count": 42},
		},
		{
			name: "struct data",
			data: struct {
				Name string `json:"name"`
			}{Name: "test"},
		},
		{
			name: "nil data",
			data: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := createJSONResponse(tt.data)
			if err != nil {
				t.Fatalf("createJSONResponse() error = %v", err)
			}
			if len(result.Content) != 1 {
				t.Fatalf("got %d content items, want 1", len(result.Content))
			}
			textContent, ok := result.Content[0].(*mcp.TextContent)
			if !ok {
				t.Fatalf("content is %T, want *mcp.TextContent", result.Content[0])
			}
			if !json.Valid([]byte(textContent.Text)) {
				t.Errorf("response text is not valid JSON: %q", textContent.Text)
			}
			if result.IsError {
				t.Error("IsError set on success response")
			}
		})
	}
}

// TestCreateErrorResponse tests that failures carry IsError.
func TestCreateErrorResponse(t *testing.T) {
	result, err := createErrorResponse("analyze_code", errors.New("something broke"))
	if err != nil {
		t.Fatalf("createErrorResponse() error = %v", err)
	}
	if !result.IsError {
		t.Error("IsError not set on error response")
	}

	textContent := result.Content[0].(*mcp.TextContent)
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(textContent.Text), &payload); err != nil {
		t.Fatalf("error payload is not JSON: %v", err)
	}
	if payload["success"] != false {
		t.Errorf("success = %v, want false", payload["success"])
	}
	if payload["operation"] != "analyze_code" {
		t.Errorf("operation = %v, want analyze_code", payload["operation"])
	}
	if payload["error"] != "something broke" {
		t.Errorf("error = %v, want original message", payload["error"])
	}
}

// TestCreateTextResponse tests passthrough of pre-rendered text.
func TestCreateTextResponse(t *testing.T) {
	result, err := createTextResponse("## Code Review\n\nall good")
	if err != nil {
		t.Fatalf("createTextResponse() error = %v", err)
	}
	textContent := result.Content[0].(*mcp.TextContent)
	if textContent.Text != "## Code Review\n\nall good" {
		t.Errorf("text altered: %q", textContent.Text)
	}
}
