package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/services"
)

// RouteInput is the input schema for the route_query tool.
type RouteInput struct {
	Query        string `json:"query" jsonschema:"the free-text travel request"`
	UserLocation string `json:"user_location,omitempty" jsonschema:"where the user is now"`
}

// PlanInput is the input schema for the plan and compare_rides tools.
type PlanInput struct {
	Query        string `json:"query" jsonschema:"the free-text travel request"`
	Priority     string `json:"priority,omitempty" jsonschema:"balanced, price, time, rating or distance (default balanced)"`
	UserLocation string `json:"user_location,omitempty" jsonschema:"where the user is now, used when the query names no origin or area"`
}

// RestaurantInput is the input schema for the find_restaurants tool.
type RestaurantInput struct {
	Query        string `json:"query" jsonschema:"what and where to eat"`
	Priority     string `json:"priority,omitempty" jsonschema:"balanced, price, rating or distance (default balanced)"`
	UserLocation string `json:"user_location,omitempty" jsonschema:"where the user is now"`
	Category     string `json:"category,omitempty" jsonschema:"Food, Drinks, Ice Cream or Cafe"`
	PriceRange   string `json:"price_range,omitempty" jsonschema:"the most expensive level to include, from $ to $$$$"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "route_query",
		Description: "Decide which travel domains (rideshare, restaurants) a query belongs to",
	}, s.handleRoute)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "plan",
		Description: "Answer a travel query across every matching domain with ranked options and a recommendation",
	}, s.handlePlan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compare_rides",
		Description: "Compare Uber and Lyft estimates between two places",
	}, s.handleCompareRides)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_restaurants",
		Description: "Find and rank restaurants by cuisine, location, price and rating",
	}, s.handleFindRestaurants)
}

// handleRoute handles the route_query tool invocation.
func (s *Server) handleRoute(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RouteInput,
) (*mcp.CallToolResult, RouteOutput, error) {
	if err := requireQuery(input.Query); err != nil {
		return nil, RouteOutput{}, err
	}
	qctx := domain.QueryContext{UserLocation: input.UserLocation}
	return nil, routeOutput(s.ports.Router.Route(ctx, input.Query, qctx)), nil
}

// handlePlan handles the plan tool invocation.
func (s *Server) handlePlan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanInput,
) (*mcp.CallToolResult, PlanOutput, error) {
	if err := requireQuery(input.Query); err != nil {
		return nil, PlanOutput{}, err
	}
	qctx := domain.QueryContext{UserLocation: input.UserLocation}

	res, err := s.ports.Orchestrator.Ask(ctx, input.Query, qctx, domain.ParsePriority(input.Priority))
	// Clarifications are an answer, not a tool failure.
	if err != nil && !domain.IsValidationError(err) {
		return nil, PlanOutput{}, err
	}
	return nil, planOutput(res), nil
}

// handleCompareRides handles the compare_rides tool invocation.
func (s *Server) handleCompareRides(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanInput,
) (*mcp.CallToolResult, DomainOutput, error) {
	if err := requireQuery(input.Query); err != nil {
		return nil, DomainOutput{}, err
	}
	qctx := domain.QueryContext{UserLocation: input.UserLocation}
	return s.process(ctx, domain.DomainRideshare, input.Query, qctx, input.Priority)
}

// handleFindRestaurants handles the find_restaurants tool invocation.
func (s *Server) handleFindRestaurants(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RestaurantInput,
) (*mcp.CallToolResult, DomainOutput, error) {
	if err := requireQuery(input.Query); err != nil {
		return nil, DomainOutput{}, err
	}
	qctx := domain.QueryContext{
		UserLocation: input.UserLocation,
		Preferences:  map[string]string{},
	}
	if input.Category != "" {
		qctx.Preferences[services.PrefFilterCategory] = input.Category
	}
	if input.PriceRange != "" {
		qctx.Preferences[services.PrefPriceRange] = input.PriceRange
	}
	return s.process(ctx, domain.DomainRestaurants, input.Query, qctx, input.Priority)
}

func (s *Server) process(
	ctx context.Context, d domain.Domain, query string, qctx domain.QueryContext, priority string,
) (*mcp.CallToolResult, DomainOutput, error) {
	h, err := s.ports.Orchestrator.Handler(d)
	if err != nil {
		return nil, DomainOutput{}, fmt.Errorf("%s is not enabled: %w", d, err)
	}
	hr, err := h.Process(ctx, query, qctx, domain.ParsePriority(priority))
	if err != nil {
		return nil, DomainOutput{}, err
	}
	return nil, domainOutput(hr), nil
}

func requireQuery(q string) error {
	if strings.TrimSpace(q) == "" {
		return fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	return nil
}
