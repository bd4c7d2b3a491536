package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/medisense-health/scheduler/internal/domain/entities"
	"github.com/medisense-health/scheduler/internal/domain/providers"
	"github.com/medisense-health/scheduler/internal/infrastructure/observability"
	apperrors "github.com/medisense-health/scheduler/pkg/errors"
	"github.com/medisense-health/scheduler/pkg/retry"
)

// HTTPAdapter implements the HospitalDiscoveryProvider interface against the
// external discovery service. Failures surface as EXTERNAL errors so the
// workflow can report a retryable notice instead of crashing.
type HTTPAdapter struct {
	baseURL       string
	defaultRadius float64
	httpClient    *http.Client
	breaker       *gobreaker.CircuitBreaker
}

// NewHTTPAdapter creates a discovery adapter for the given base URL.
// defaultRadius fills requests that do not carry a search radius.
func NewHTTPAdapter(baseURL string, defaultRadius float64) providers.HospitalDiscoveryProvider {
	return &HTTPAdapter{
		baseURL:       baseURL,
		defaultRadius: defaultRadius,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "hospital-discovery",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// FindNearby returns normalized candidate hospitals for the request
func (a *HTTPAdapter) FindNearby(ctx context.Context, req entities.DiscoveryRequest) ([]entities.Hospital, error) {
	if req.Symptoms == "" {
		req.Symptoms = "general"
	}
	if req.RadiusKm == 0 {
		req.RadiusKm = a.defaultRadius
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode discovery request", err)
	}

	var payload entities.DiscoveryResponse
	logger := observability.LoggerFromContext(ctx)

	err = retry.DoWithLog(ctx, retry.CollaboratorConfig(), "hospital-discovery", logger, func() error {
		_, err := a.breaker.Execute(func() (interface{}, error) {
			return nil, a.fetch(ctx, body, &payload)
		})
		return err
	})
	if err != nil {
		return nil, apperrors.NewExternalError("hospital discovery service unavailable", err)
	}

	hospitals := Normalize(payload, time.Now())
	logger.Debug().
		Int("candidates", len(hospitals)).
		Msg("discovery search completed")

	return hospitals, nil
}

func (a *HTTPAdapter) fetch(ctx context.Context, body []byte, out *entities.DiscoveryResponse) error {
	url := a.baseURL + "/api/emergency-alert"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build discovery request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("discovery request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discovery service returned %d: %s", resp.StatusCode, payload)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode discovery response: %w", err)
	}
	return nil
}
