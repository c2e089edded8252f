package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hopwise/hopwise/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for Hopwise resources.
	uriScheme = "hopwise://"
)

// domainInfo describes one domain to an assistant.
type domainInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Enabled     bool     `json:"enabled"`
}

// statsInfo is the body of the stats resource.
type statsInfo struct {
	Cache       *domain.CacheStats  `json:"cache,omitempty"`
	RateWindows []domain.RateWindow `json:"rate_windows"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "domains",
		Name:        "domains",
		Description: "Travel domains Hopwise can answer and whether each is enabled",
		MIMEType:    "application/json",
	}, s.handleDomainsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "domains/{domain}",
		Name:        "domain",
		Description: "Description and routing keywords of one domain",
		MIMEType:    "application/json",
	}, s.handleDomainResource)

	if s.ports.Stats != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "stats",
			Name:        "stats",
			Description: "Cache counters and current rate-limit windows",
			MIMEType:    "application/json",
		}, s.handleStatsResource)
	}
}

// handleDomainsResource lists every known domain.
func (s *Server) handleDomainsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	all := domain.AllDomains()
	infos := make([]domainInfo, len(all))
	for i, d := range all {
		infos[i] = s.describe(d)
	}
	return jsonResult(req.Params.URI, infos)
}

// handleDomainResource describes the domain named in the URI.
func (s *Server) handleDomainResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	d, err := domain.ParseDomain(extractDomain(req.Params.URI))
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, s.describe(d))
}

// handleStatsResource reports shared infrastructure state.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	info := statsInfo{RateWindows: []domain.RateWindow{}}

	if cs, err := s.ports.Stats.CacheStats(ctx); err == nil {
		info.Cache = &cs
	}
	windows, err := s.ports.Stats.RateWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading rate windows: %w", err)
	}
	if windows != nil {
		info.RateWindows = windows
	}
	return jsonResult(req.Params.URI, info)
}

func (s *Server) describe(d domain.Domain) domainInfo {
	_, err := s.ports.Orchestrator.Handler(d)
	return domainInfo{
		Name:        d.String(),
		Description: d.Description(),
		Keywords:    d.Keywords(),
		Enabled:     err == nil,
	}
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDomain extracts the domain name from a URI like hopwise://domains/{domain}.
func extractDomain(uri string) string {
	const prefix = uriScheme + "domains/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
