package profile

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for profile persistence
// Implementation is in internal/repository/firestore/profile.go
//
// Create writes the full record; the partial updates are store-level merges
// that leave every field not named here untouched. All calls are fresh round
// trips: no caching, no retries, store errors surface to the caller as-is.
type Repository interface {
	Create(ctx context.Context, p *UserProfile) error
	UpdateAssessment(ctx context.Context, id uuid.UUID, a RiskAssessment, level RiskToleranceLevel) error
	UpdatePreferences(ctx context.Context, id uuid.UUID, goal InvestmentGoal, experience TradingExperience) error
	GetByID(ctx context.Context, id uuid.UUID) (*UserProfile, error)
}
