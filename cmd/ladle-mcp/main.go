// Command ladle-mcp is a stdio MCP server that exposes the Ladle HTTP API
// as a clip_recipe tool, so assistants can clip recipes on the user's behalf.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// clipRequest mirrors the Ladle API request model.
type clipRequest struct {
	URL        string `json:"url"`
	NoteFormat string `json:"note_format,omitempty"`
}

// clipResponse mirrors the Ladle API response model.
type clipResponse struct {
	Success     bool     `json:"success"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Note        string   `json:"note"`
	ShortcutURL string   `json:"shortcut_url"`
	Source      string   `json:"source"`
	Error       *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("LADLE_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("LADLE_API_KEY")

	s := server.NewMCPServer(
		"ladle",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	clipRecipeTool := mcp.NewTool("clip_recipe",
		mcp.WithDescription("Extract the title and ingredient list from a recipe web page and return them together with a Shortcuts deep link that saves the list into the user's notes."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the recipe page"),
		),
		mcp.WithString("note_format",
			mcp.Description("Note body: 'ingredients' (default, bulleted list) or 'page' (list plus the full recipe as Markdown)"),
			mcp.Enum("ingredients", "page"),
		),
	)

	s.AddTool(clipRecipeTool, handleClipRecipe(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleClipRecipe(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		reqBody := clipRequest{
			URL:        url,
			NoteFormat: request.GetString("note_format", ""),
		}

		body, err := json.Marshal(reqBody)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/clip", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var clipResp clipResponse
		if err := json.Unmarshal(respBody, &clipResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !clipResp.Success {
			errMsg := "clip failed"
			if clipResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", clipResp.Error.Code, clipResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		result := fmt.Sprintf("Title: %s\nSource: %s (%s extraction)\n\n%s\n\nSave to Notes: %s",
			clipResp.Title, url, clipResp.Source, clipResp.Note, clipResp.ShortcutURL)

		return mcp.NewToolResultText(result), nil
	}
}
