package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kitboardapp/kitboard-server/internal/category"
)

func (s *Server) registerCuratedListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCuratedLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/curated-lists",
		Summary:     "Get curated lists",
		Description: "Returns the four curated asset-name lists used for category resolution",
		Tags:        []string{"Curated Lists"},
	}, s.handleGetCuratedLists)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCuratedLists",
		Method:      http.MethodPut,
		Path:        "/api/v1/curated-lists",
		Summary:     "Replace curated lists",
		Description: "Replaces all four curated lists at once. Requires the technician secret.",
		Tags:        []string{"Curated Lists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCuratedLists)
}

// CuratedListsOutput wraps the curated lists for Huma.
type CuratedListsOutput struct {
	Body category.CuratedLists
}

func (s *Server) handleGetCuratedLists(ctx context.Context, _ *struct{}) (*CuratedListsOutput, error) {
	lists, err := s.services.Override.CuratedLists(ctx)
	if err != nil {
		s.logger.Error("Failed to load curated lists", "error", err)
		return nil, err
	}
	return &CuratedListsOutput{Body: *lists}, nil
}

// UpdateCuratedListsInput carries the replacement lists.
type UpdateCuratedListsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer technician secret"`
	Body          category.CuratedLists
}

func (s *Server) handleUpdateCuratedLists(ctx context.Context, input *UpdateCuratedListsInput) (*CuratedListsOutput, error) {
	if err := s.requireTechnician(input.Authorization); err != nil {
		return nil, err
	}

	saved, err := s.services.Override.UpdateCuratedLists(ctx, &input.Body)
	if err != nil {
		s.logger.Error("Failed to update curated lists", "error", err)
		return nil, err
	}
	return &CuratedListsOutput{Body: *saved}, nil
}
