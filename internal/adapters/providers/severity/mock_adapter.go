package severity

import (
	"context"
	"strings"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/internal/domain/providers"
)

// MockAdapter provides a deterministic severity assessment for local
// development. A handful of keywords bump the score so the urgency
// recommendation paths can be exercised without the analysis service.
type MockAdapter struct{}

// NewMockAdapter creates a mock severity provider.
func NewMockAdapter() providers.SeverityProvider {
	return &MockAdapter{}
}

var urgentKeywords = []string{"chest pain", "difficulty breathing", "severe bleeding", "unconscious", "seizure"}

// Analyze scores symptoms by keyword match.
func (m *MockAdapter) Analyze(ctx context.Context, symptoms string) (*entities.SeverityContext, error) {
	lowered := strings.ToLower(symptoms)

	score := 3.0
	risk := "LOW"
	for _, kw := range urgentKeywords {
		if strings.Contains(lowered, kw) {
			score = 9.0
			risk = "HIGH"
			break
		}
	}

	return &entities.SeverityContext{
		Score:     score,
		RiskLevel: risk,
		Summary:   "Automated assessment of: " + symptoms,
	}, nil
}
