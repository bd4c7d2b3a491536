package providers

import (
	"context"

	"github.com/medisense-health/scheduler/internal/domain/entities"
)

// HospitalDiscoveryProvider defines the interface for the external hospital
// discovery service. Implementations normalize the service's loosely typed
// response into well-formed Hospital values before returning them.
type HospitalDiscoveryProvider interface {
	// FindNearby returns candidate hospitals for the given symptoms and
	// coordinates, ordered as the service returned them.
	FindNearby(ctx context.Context, req entities.DiscoveryRequest) ([]entities.Hospital, error)
}

// SeverityProvider defines the interface for the external symptom analysis
// service.
type SeverityProvider interface {
	// Analyze returns a severity assessment for free-text symptoms.
	Analyze(ctx context.Context, symptoms string) (*entities.SeverityContext, error)
}
