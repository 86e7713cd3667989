// resources.go implements MCP resource handlers for chunk type lookup.
//
// MCP resources provide read-only access via URI schemes, letting an LLM
// client pull a chunk type's properties into context without a tool call.
//
// Design: URIs follow pngchunk://types/{type}, returning the same JSON as
// pngchunk_inspect. pngchunk://types lists the registered chunk types.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/pngchunk/chunktype"
	"github.com/jpl-au/pngchunk/internal/inspect"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const typesURI = "pngchunk://types"

// ErrInvalidURI indicates a malformed resource URI, helping clients
// debug URI construction issues.
var ErrInvalidURI = errors.New("invalid URI")

// knownType is one entry of the pngchunk://types listing.
type knownType struct {
	Type        chunktype.ChunkType `json:"type"`
	Description string              `json:"description"`
	Flags       chunktype.Flags     `json:"flags"`
}

// registerResources adds URI-based chunk type lookup.
func registerResources(s *server.MCPServer) {
	s.AddResource(
		mcp.NewResource(
			typesURI,
			"Registered chunk types",
			mcp.WithResourceDescription("Chunk types registered in the PNG standard, with their properties"),
			mcp.WithMIMEType("application/json"),
		),
		readTypes,
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			typesURI+"/{type}",
			"Chunk type",
			mcp.WithTemplateDescription("Decode a 4-letter chunk type and report its properties"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		readType,
	)
}

// readTypes lists every registered chunk type.
func readTypes(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	types := chunktype.Known()
	list := make([]knownType, len(types))
	for i, c := range types {
		list[i] = knownType{Type: c, Description: chunktype.Describe(c), Flags: c.Flags()}
	}
	return jsonContents(req.Params.URI, list)
}

// readType inspects the chunk type named in the URI.
func readType(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s, err := parseTypeURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	res, err := inspect.Text(io.Discard, s)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, res)
}

// parseTypeURI extracts the chunk type text from pngchunk://types/{type}.
func parseTypeURI(uri string) (string, error) {
	const prefix = typesURI + "/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	rest := strings.TrimPrefix(uri, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	return rest, nil
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
