package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kitboardapp/kitboard-server/internal/audit"
)

func (s *Server) registerAuditRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listOverrideAudit",
		Method:      http.MethodGet,
		Path:        "/api/v1/overrides/audit",
		Summary:     "List recent override changes",
		Description: "Returns the most recent override and curated-list changes, newest first. Requires the technician secret.",
		Tags:        []string{"Overrides"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListOverrideAudit)
}

// ListOverrideAuditInput selects how many entries to return.
type ListOverrideAuditInput struct {
	Authorization string `header:"Authorization" doc:"Bearer technician secret"`
	Limit         int    `query:"limit" default:"50" minimum:"1" maximum:"500" doc:"Maximum entries to return"`
}

// OverrideAuditOutput wraps the audit entries for Huma.
type OverrideAuditOutput struct {
	Body []audit.Entry
}

func (s *Server) handleListOverrideAudit(ctx context.Context, input *ListOverrideAuditInput) (*OverrideAuditOutput, error) {
	if err := s.requireTechnician(input.Authorization); err != nil {
		return nil, err
	}

	entries, err := s.services.Override.RecentAudit(ctx, input.Limit)
	if err != nil {
		s.logger.Error("Failed to load override audit", "error", err)
		return nil, err
	}
	return &OverrideAuditOutput{Body: entries}, nil
}
