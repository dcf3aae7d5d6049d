package firestore

import (
	"context"
	"time"

	"github.com/google/uuid"

	fsadapter "midas/internal/adapters/firestore"
	"midas/internal/domain/profile"
)

// Collection holding one document per user profile
const usersCollection = "users"

// DocStore is the document-store capability the repository needs. The
// Firestore adapter satisfies it; tests use a memory fake. Implementations
// report absent documents as errors.ErrNotFound and return a sentinel from
// ServerTimestamp that the store resolves at write time.
type DocStore interface {
	Set(ctx context.Context, collection, id string, fields map[string]interface{}, merge bool) error
	Get(ctx context.Context, collection, id string) (map[string]interface{}, error)
	ServerTimestamp() interface{}
}

// Compile-time checks
var (
	_ profile.Repository = (*ProfileRepository)(nil)
	_ DocStore           = (*fsadapter.Client)(nil)
)

// ProfileRepository persists UserProfile aggregates as documents.
// No caching: every call is a fresh round trip, and store errors propagate
// to the caller without retries.
type ProfileRepository struct {
	store DocStore
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(store DocStore) *ProfileRepository {
	return &ProfileRepository{store: store}
}

// Create writes the full profile record. Both timestamps are assigned by the
// store at write time.
func (r *ProfileRepository) Create(ctx context.Context, p *profile.UserProfile) error {
	fields := map[string]interface{}{
		"user_id":            p.ID.String(),
		"email":              p.Email,
		"risk_tolerance":     assessmentFields(p.RiskTolerance),
		"risk_level":         int(p.RiskLevel),
		"investment_goal":    string(p.InvestmentGoal),
		"trading_experience": string(p.TradingExperience),
		"created_at":         r.store.ServerTimestamp(),
		"updated_at":         r.store.ServerTimestamp(),
	}
	return r.store.Set(ctx, usersCollection, p.ID.String(), fields, true)
}

// UpdateAssessment merges the new assessment and derived level into the
// stored record. created_at and every unrelated field stay untouched.
func (r *ProfileRepository) UpdateAssessment(ctx context.Context, id uuid.UUID, a profile.RiskAssessment, level profile.RiskToleranceLevel) error {
	fields := map[string]interface{}{
		"risk_tolerance": assessmentFields(a),
		"risk_level":     int(level),
		"updated_at":     r.store.ServerTimestamp(),
	}
	return r.store.Set(ctx, usersCollection, id.String(), fields, true)
}

// UpdatePreferences merges the goal and experience categories into the
// stored record.
func (r *ProfileRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, goal profile.InvestmentGoal, experience profile.TradingExperience) error {
	fields := map[string]interface{}{
		"investment_goal":    string(goal),
		"trading_experience": string(experience),
		"updated_at":         r.store.ServerTimestamp(),
	}
	return r.store.Set(ctx, usersCollection, id.String(), fields, true)
}

// GetByID reads and reconstructs the aggregate. Absent documents surface as
// ErrNotFound from the store.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*profile.UserProfile, error) {
	doc, err := r.store.Get(ctx, usersCollection, id.String())
	if err != nil {
		return nil, err
	}

	p := &profile.UserProfile{
		ID:                id,
		Email:             asString(doc["email"]),
		RiskLevel:         profile.RiskToleranceLevel(asInt(doc["risk_level"])),
		InvestmentGoal:    profile.InvestmentGoal(asString(doc["investment_goal"])),
		TradingExperience: profile.TradingExperience(asString(doc["trading_experience"])),
		CreatedAt:         asTime(doc["created_at"]),
		UpdatedAt:         asTime(doc["updated_at"]),
	}

	if rt, ok := doc["risk_tolerance"].(map[string]interface{}); ok {
		p.RiskTolerance = profile.RiskAssessment{
			MaxDrawdownTolerance: asFloat(rt["max_drawdown_tolerance"]),
			VolatilityTolerance:  asFloat(rt["volatility_tolerance"]),
			LossAversionScore:    asFloat(rt["loss_aversion_score"]),
			TimeHorizonYears:     asInt(rt["time_horizon_years"]),
			LiquidityNeeds:       asFloat(rt["liquidity_needs"]),
		}
	}

	return p, nil
}

// assessmentFields flattens the value object into the persisted layout
func assessmentFields(a profile.RiskAssessment) map[string]interface{} {
	return map[string]interface{}{
		"max_drawdown_tolerance": a.MaxDrawdownTolerance,
		"volatility_tolerance":   a.VolatilityTolerance,
		"loss_aversion_score":    a.LossAversionScore,
		"time_horizon_years":     a.TimeHorizonYears,
		"liquidity_needs":        a.LiquidityNeeds,
	}
}

// The store hands numbers back as int64 or float64 depending on how they
// were written, so decoding tolerates both.

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asTime(v interface{}) time.Time {
	t, _ := v.(time.Time)
	return t
}
