package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/diag"
)

type toolHandler func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error)

func callTool(t *testing.T, handler toolHandler, args interface{}) *mcp.CallToolResult {
	t.Helper()

	data, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}

	result, err := handler(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: data},
	})
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if result == nil {
		t.Fatal("handler returned nil result")
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	if len(result.Content) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(result.Content))
	}
	textContent, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want *mcp.TextContent", result.Content[0])
	}
	return textContent.Text
}

type analyzeResponse struct {
	Language    string            `json:"language"`
	Clean       bool              `json:"clean"`
	Count       int               `json:"count"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

// TestAnalyzeCodeStructured tests the default JSON response shape.
func TestAnalyzeCodeStructured(t *testing.T) {
	s := NewServer(nil)

	result := callTool(t, s.handleAnalyzeCode, map[string]string{
		"code": "result = eval(payload)\n",
	})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var resp analyzeResponse
	if err := json.Unmarshal([]byte(resultText(t, result)), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Clean {
		t.Error("expected clean=false for code calling eval")
	}
	if resp.Count != len(resp.Diagnostics) {
		t.Errorf("count %d does not match %d diagnostics", resp.Count, len(resp.Diagnostics))
	}

	found := false
	for _, d := range resp.Diagnostics {
		if strings.Contains(d.Message, "call to eval()") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an eval diagnostic, got %v", resp.Diagnostics)
	}
}

// TestAnalyzeCodeCleanInput tests that clean code returns the sentinel.
func TestAnalyzeCodeCleanInput(t *testing.T) {
	s := NewServer(nil)

	result := callTool(t, s.handleAnalyzeCode, map[string]string{
		"code":     "import os\n\n# entry point\nprint(os.getcwd())\n",
		"language": "Python",
	})

	var resp analyzeResponse
	if err := json.Unmarshal([]byte(resultText(t, result)), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if !resp.Clean {
		t.Errorf("expected clean result, got %v", resp.Diagnostics)
	}
	if resp.Count != 1 || resp.Diagnostics[0].Message != diag.NoIssuesMessage {
		t.Errorf("expected only the sentinel, got %v", resp.Diagnostics)
	}
}

// TestAnalyzeCodeMarkdownFormat tests the prose review shape.
func TestAnalyzeCodeMarkdownFormat(t *testing.T) {
	s := NewServer(nil)

	result := callTool(t, s.handleAnalyzeCode, map[string]string{
		"code":   "result = eval(payload)\n",
		"format": "markdown",
	})

	text := resultText(t, result)
	if !strings.Contains(text, "## Code Review") {
		t.Errorf("expected a markdown review, got %q", text)
	}
	if !strings.Contains(text, "### Security") {
		t.Errorf("expected a security section, got %q", text)
	}
}

// TestAnalyzeCodeEmptyCode tests the empty-argument error.
func TestAnalyzeCodeEmptyCode(t *testing.T) {
	s := NewServer(nil)

	result := callTool(t, s.handleAnalyzeCode, map[string]string{"code": ""})
	if !result.IsError {
		t.Fatal("expected IsError for empty code")
	}
	if text := resultText(t, result); !strings.Contains(text, "code must not be empty") {
		t.Errorf("unexpected error text: %q", text)
	}
}

// TestAnalyzeCodeOversizedInput tests the input size ceiling.
func TestAnalyzeCodeOversizedInput(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.MaxInputChars = 10
	s := NewServer(cfg)

	result := callTool(t, s.handleAnalyzeCode, map[string]string{
		"code": "print('this is longer than ten characters')\n",
	})
	if !result.IsError {
		t.Fatal("expected IsError for oversized input")
	}
	if text := resultText(t, result); !strings.Contains(text, "exceeds") {
		t.Errorf("unexpected error text: %q", text)
	}
}

// TestAnalyzeCodeInvalidParams tests malformed argument handling.
func TestAnalyzeCodeInvalidParams(t *testing.T) {
	s := NewServer(nil)

	result, err := s.handleAnalyzeCode(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: []byte(`{"code": 42}`)},
	})
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError for malformed arguments")
	}
	if text := resultText(t, result); !strings.Contains(text, "invalid parameters") {
		t.Errorf("unexpected error text: %q", text)
	}
}

// TestClassifyLanguage tests the classification tool.
func TestClassifyLanguage(t *testing.T) {
	s := NewServer(nil)

	result := callTool(t, s.handleClassifyLanguage, map[string]string{
		"code": "#include <iostream>\nint main() { std::cout << 1; return 0; }\n",
	})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var resp struct {
		Language string         `json:"language"`
		Scores   map[string]int `json:"scores"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if resp.Language != "C++" {
		t.Errorf("expected C++, got %q", resp.Language)
	}
	if resp.Scores["C++"] <= 0 {
		t.Errorf("expected a positive C++ score, got %v", resp.Scores)
	}
}

// TestClassifyLanguageEmptyCode tests the empty-argument error.
func TestClassifyLanguageEmptyCode(t *testing.T) {
	s := NewServer(nil)

	result := callTool(t, s.handleClassifyLanguage, map[string]string{"code": ""})
	if !result.IsError {
		t.Fatal("expected IsError for empty code")
	}
}

// TestRecoverFromPanic tests that a panicking handler becomes an error
// result instead of crashing the session.
func TestRecoverFromPanic(t *testing.T) {
	s := NewServer(nil)

	result, err := s.recoverFromPanic("explode", func() (*mcp.CallToolResult, error) {
		panic("kaput")
	})
	if err != nil {
		t.Fatalf("expected recovered result, got error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError after panic recovery")
	}
	if text := resultText(t, result); !strings.Contains(text, "internal error") {
		t.Errorf("unexpected error text: %q", text)
	}
}
