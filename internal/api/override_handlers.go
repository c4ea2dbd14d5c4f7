package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kitboardapp/kitboard-server/internal/category"
	"github.com/kitboardapp/kitboard-server/internal/service"
)

func (s *Server) registerOverrideRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategoryOverrides",
		Method:      http.MethodGet,
		Path:        "/api/v1/overrides/categories",
		Summary:     "List category overrides",
		Description: "Returns the full map of canonical asset name to pinned category",
		Tags:        []string{"Overrides"},
	}, s.handleListCategoryOverrides)

	huma.Register(s.api, huma.Operation{
		OperationID: "setCategoryOverride",
		Method:      http.MethodPost,
		Path:        "/api/v1/overrides/categories",
		Summary:     "Set a category override",
		Description: "Pins one asset name to a category, outranking every other evidence source. Requires the technician secret.",
		Tags:        []string{"Overrides"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetCategoryOverride)

	huma.Register(s.api, huma.Operation{
		OperationID: "listStatusOverrides",
		Method:      http.MethodGet,
		Path:        "/api/v1/overrides/statuses",
		Summary:     "List status overrides",
		Description: "Returns the full map of group key to forced status, for diagnostics",
		Tags:        []string{"Overrides"},
	}, s.handleListStatusOverrides)

	huma.Register(s.api, huma.Operation{
		OperationID: "setStatusOverride",
		Method:      http.MethodPost,
		Path:        "/api/v1/overrides/statuses",
		Summary:     "Set or clear a status override",
		Description: "Forces the pickup status for one group, or clears the forced value with \"clear\". Requires the technician secret.",
		Tags:        []string{"Overrides"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetStatusOverride)
}

// CategoryOverridesOutput wraps the category-override map for Huma.
type CategoryOverridesOutput struct {
	Body map[string]category.Category
}

func (s *Server) handleListCategoryOverrides(ctx context.Context, _ *struct{}) (*CategoryOverridesOutput, error) {
	overrides, err := s.services.Override.CategoryOverrides(ctx)
	if err != nil {
		s.logger.Error("Failed to load category overrides", "error", err)
		return nil, err
	}
	return &CategoryOverridesOutput{Body: overrides}, nil
}

// SetCategoryOverrideInput carries one category-override write.
type SetCategoryOverrideInput struct {
	Authorization string `header:"Authorization" doc:"Bearer technician secret"`
	Body          service.SetCategoryOverrideRequest
}

// SetCategoryOverrideOutput reports the canonical key the override was
// stored under.
type SetCategoryOverrideOutput struct {
	Body struct {
		AssetName string `json:"assetName" doc:"Canonical asset name the override is keyed by"`
		Category  string `json:"category"`
	}
}

func (s *Server) handleSetCategoryOverride(ctx context.Context, input *SetCategoryOverrideInput) (*SetCategoryOverrideOutput, error) {
	if err := s.requireTechnician(input.Authorization); err != nil {
		return nil, err
	}

	key, err := s.services.Override.SetCategoryOverride(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	out := &SetCategoryOverrideOutput{}
	out.Body.AssetName = key
	out.Body.Category = input.Body.Category
	return out, nil
}

// StatusOverridesOutput wraps the status-override map for Huma.
type StatusOverridesOutput struct {
	Body map[string]string
}

func (s *Server) handleListStatusOverrides(ctx context.Context, _ *struct{}) (*StatusOverridesOutput, error) {
	overrides, err := s.services.Override.StatusOverrides(ctx)
	if err != nil {
		s.logger.Error("Failed to load status overrides", "error", err)
		return nil, err
	}
	return &StatusOverridesOutput{Body: overrides}, nil
}

// SetStatusOverrideInput carries one status-override write.
type SetStatusOverrideInput struct {
	Authorization string `header:"Authorization" doc:"Bearer technician secret"`
	Body          service.SetStatusOverrideRequest
}

// SetStatusOverrideOutput echoes the applied override.
type SetStatusOverrideOutput struct {
	Body struct {
		GroupKey string `json:"groupKey"`
		Value    string `json:"value"`
	}
}

func (s *Server) handleSetStatusOverride(ctx context.Context, input *SetStatusOverrideInput) (*SetStatusOverrideOutput, error) {
	if err := s.requireTechnician(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Override.SetStatusOverride(ctx, input.Body); err != nil {
		return nil, err
	}

	out := &SetStatusOverrideOutput{}
	out.Body.GroupKey = input.Body.GroupKey
	out.Body.Value = input.Body.Value
	return out, nil
}
