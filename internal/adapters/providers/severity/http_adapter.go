package severity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/internal/domain/providers"
	"github.com/medisense-health/scheduler/internal/infrastructure/observability"
	apperrors "github.com/medisense-health/scheduler/pkg/errors"
	"github.com/medisense-health/scheduler/pkg/retry"
)

// HTTPAdapter implements the SeverityProvider interface against the external
// symptom analysis service.
type HTTPAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPAdapter creates a severity adapter for the given base URL
func NewHTTPAdapter(baseURL string) providers.SeverityProvider {
	return &HTTPAdapter{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Analyze returns a severity assessment for free-text symptoms
func (a *HTTPAdapter) Analyze(ctx context.Context, symptoms string) (*entities.SeverityContext, error) {
	body, err := json.Marshal(map[string]string{"symptoms": symptoms})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode severity request", err)
	}

	var payload entities.SeverityResponse
	logger := observability.LoggerFromContext(ctx)

	err = retry.DoWithLog(ctx, retry.CollaboratorConfig(), "symptom-analysis", logger, func() error {
		return a.fetch(ctx, body, &payload)
	})
	if err != nil {
		return nil, apperrors.NewExternalError("symptom analysis service unavailable", err)
	}

	riskLevel := payload.RiskLevel
	if riskLevel == "" {
		riskLevel = "UNKNOWN"
	}

	return &entities.SeverityContext{
		Score:     payload.SeverityScore,
		RiskLevel: riskLevel,
		Summary:   payload.AISummary,
	}, nil
}

func (a *HTTPAdapter) fetch(ctx context.Context, body []byte, out *entities.SeverityResponse) error {
	url := a.baseURL + "/api/analyze-symptoms"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build severity request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("severity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("severity service returned %d: %s", resp.StatusCode, payload)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode severity response: %w", err)
	}
	return nil
}
