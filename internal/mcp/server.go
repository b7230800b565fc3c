// Package mcp exposes the analysis engine over the Model Context
// Protocol so coding agents can call it as a tool. The server speaks
// stdio; all diagnostics logging goes through the debug package, which
// is switched into MCP mode so nothing pollutes the protocol stream.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	rdebug "runtime/debug"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/snaplint/snaplint/internal/advisor"
	"github.com/snaplint/snaplint/internal/analyzer"
	"github.com/snaplint/snaplint/internal/config"
	"github.com/snaplint/snaplint/internal/debug"
	snaperrors "github.com/snaplint/snaplint/internal/errors"
	"github.com/snaplint/snaplint/internal/version"
)

// Server wraps the analyzer behind MCP tools.
type Server struct {
	cfg    *config.Config
	engine *analyzer.Analyzer
	server *mcp.Server
}

// analyzeParams are the arguments of the analyze_code tool.
type analyzeParams struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Format   string `json:"format"`
}

// classifyParams are the arguments of the classify_language tool.
type classifyParams struct {
	Code string `json:"code"`
}

// NewServer creates the MCP server and registers its tools.
func NewServer(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:    cfg,
		engine: analyzer.New(cfg.Analysis),
	}
	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "snaplint-mcp-server",
		Version: version.Version,
	}, nil)
	s.registerTools()
	return s
}

// registerTools declares the tool surface.
func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "analyze_code",
		Description: "Run heuristic analysis on a code snippet. Returns ordered diagnostics covering syntax, security, performance, quality, and logic findings.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"code": {
					Type:        "string",
					Description: "Source text to analyze",
				},
				"language": {
					Type:        "string",
					Description: "Declared language: Python, JavaScript, Java, C++, or Other. Empty runs language-agnostic checks only.",
				},
				"format": {
					Type:        "string",
					Description: "Response shape: 'structured' (default) returns JSON diagnostics, 'markdown' returns a prose review",
				},
			},
			Required: []string{"code"},
		},
	}, s.handleAnalyzeCode)

	s.server.AddTool(&mcp.Tool{
		Name:        "classify_language",
		Description: "Classify which language a code snippet is written in, with per-language signal scores.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"code": {
					Type:        "string",
					Description: "Source text to classify",
				},
			},
			Required: []string{"code"},
		},
	}, s.handleClassifyLanguage)
}

// handleAnalyzeCode runs the full analysis pipeline over the snippet.
func (s *Server) handleAnalyzeCode(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic("analyze_code", func() (*mcp.CallToolResult, error) {
		var params analyzeParams
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return createErrorResponse("analyze_code", fmt.Errorf("invalid parameters: %w", err))
		}
		if params.Code == "" {
			return createErrorResponse("analyze_code", errors.New("code must not be empty"))
		}
		if len(params.Code) > s.cfg.Analysis.MaxInputChars {
			return createErrorResponse("analyze_code",
				snaperrors.NewInputError(fmt.Sprintf("input of %d characters exceeds the %d character limit",
					len(params.Code), s.cfg.Analysis.MaxInputChars)))
		}

		set := s.engine.Analyze(params.Code, params.Language)
		debug.LogMCP("analyze_code: language=%q diagnostics=%d\n", params.Language, set.Len())

		if params.Format == "markdown" {
			return createTextResponse(advisor.Compose(params.Language, set))
		}

		return createJSONResponse(map[string]interface{}{
			"language":    params.Language,
			"clean":       set.IsClean(),
			"count":       set.Len(),
			"diagnostics": set.Items(),
		})
	})
}

// handleClassifyLanguage scores the snippet against every language profile.
func (s *Server) handleClassifyLanguage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic("classify_language", func() (*mcp.CallToolResult, error) {
		var params classifyParams
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return createErrorResponse("classify_language", fmt.Errorf("invalid parameters: %w", err))
		}
		if params.Code == "" {
			return createErrorResponse("classify_language", errors.New("code must not be empty"))
		}

		language := s.engine.ClassifyLanguage(params.Code)
		scores := s.engine.Scores(params.Code)
		debug.LogMCP("classify_language: detected=%q\n", language)

		return createJSONResponse(map[string]interface{}{
			"language": language,
			"scores":   scores,
		})
	})
}

// recoverFromPanic keeps a crashing handler from taking down the whole
// stdio session. Panics and handler errors both become IsError results
// so the client can see them and retry.
func (s *Server) recoverFromPanic(operation string, handler func() (*mcp.CallToolResult, error)) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			debug.LogMCP("PANIC in %s: %v\n%s\n", operation, r, rdebug.Stack())
			result, err = createErrorResponse(operation, fmt.Errorf("internal error: %v", r))
		}
	}()

	result, err = handler()
	if err != nil {
		debug.LogMCP("error in %s: %v\n", operation, err)
		return createErrorResponse(operation, err)
	}
	return result, nil
}

// Run serves MCP over stdio until ctx is cancelled or the client hangs
// up. Debug output is redirected away from stdout before the transport
// starts.
func (s *Server) Run(ctx context.Context) error {
	debug.SetMCPMode(true)
	debug.LogMCP("starting MCP server %s\n", version.Version)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
