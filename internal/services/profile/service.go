package profile

import (
	"context"

	"github.com/google/uuid"

	"midas/internal/domain/profile"
	"midas/internal/metrics"
	"midas/pkg/errors"
	"midas/pkg/logger"
)

// Service orchestrates assessment scoring and profile persistence. This is
// the only component with observable side effects; scoring stays pure and
// independently testable in the domain package.
type Service struct {
	repo   profile.Repository
	scorer *profile.Scorer
	log    *logger.Logger
}

// NewService constructs a profile service instance
func NewService(repo profile.Repository, scorer *profile.Scorer) *Service {
	return &Service{
		repo:   repo,
		scorer: scorer,
		log:    logger.Get().With("component", "profile_service"),
	}
}

// CreateParams carries the inputs for a new profile
type CreateParams struct {
	Email      string
	Assessment profile.RiskAssessment
	Goal       profile.InvestmentGoal
	Experience profile.TradingExperience
	Liquidity  *profile.LiquidityContext
}

// CreateProfile validates and scores the assessment, mints the user id, and
// persists the new aggregate. Validation happens before any store call: an
// invalid assessment leaves the store untouched. The returned aggregate is
// the stored record, with the server-resolved timestamps.
func (s *Service) CreateProfile(ctx context.Context, params CreateParams) (*profile.UserProfile, error) {
	if params.Email == "" {
		return nil, errors.NewValidationError("email", "must not be empty", params.Email)
	}
	if !params.Goal.Valid() {
		return nil, errors.NewValidationError("investment_goal", "unknown category", params.Goal)
	}
	if !params.Experience.Valid() {
		return nil, errors.NewValidationError("trading_experience", "unknown category", params.Experience)
	}

	composite, level, err := s.scorer.ScoreWithContext(params.Assessment, params.Liquidity)
	if err != nil {
		s.recordValidationFailure(err)
		return nil, err
	}

	p := &profile.UserProfile{
		ID:                uuid.New(),
		Email:             params.Email,
		RiskTolerance:     params.Assessment,
		RiskLevel:         level,
		InvestmentGoal:    params.Goal,
		TradingExperience: params.Experience,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create profile")
	}

	stored, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, errors.Wrap(err, "read back created profile")
	}

	metrics.ProfilesCreated.Inc()
	metrics.AssessmentsScored.WithLabelValues(level.String()).Inc()
	s.log.Infow("Profile created",
		"user_id", p.ID,
		"risk_level", level.String(),
		"composite_score", composite,
	)
	return stored, nil
}

// UpdateAssessment rescores and merges a new assessment into an existing
// profile. Scoring fails fast before any I/O; an unknown user id fails with
// ErrNotFound before any write. Email, goal, experience and created_at are
// left untouched.
func (s *Service) UpdateAssessment(ctx context.Context, id uuid.UUID, a profile.RiskAssessment) (*profile.UserProfile, error) {
	composite, level, err := s.scorer.Score(a)
	if err != nil {
		s.recordValidationFailure(err)
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, errors.Wrap(err, "update assessment")
	}

	if err := s.repo.UpdateAssessment(ctx, id, a, level); err != nil {
		return nil, errors.Wrap(err, "update assessment")
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "read back updated profile")
	}

	metrics.ProfilesUpdated.Inc()
	metrics.AssessmentsScored.WithLabelValues(level.String()).Inc()
	s.log.Infow("Assessment updated",
		"user_id", id,
		"risk_level", level.String(),
		"composite_score", composite,
	)
	return updated, nil
}

// UpdatePreferences merges new goal and experience categories into an
// existing profile. Risk fields and created_at stay untouched.
func (s *Service) UpdatePreferences(ctx context.Context, id uuid.UUID, goal profile.InvestmentGoal, experience profile.TradingExperience) (*profile.UserProfile, error) {
	if !goal.Valid() {
		return nil, errors.NewValidationError("investment_goal", "unknown category", goal)
	}
	if !experience.Valid() {
		return nil, errors.NewValidationError("trading_experience", "unknown category", experience)
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, errors.Wrap(err, "update preferences")
	}

	if err := s.repo.UpdatePreferences(ctx, id, goal, experience); err != nil {
		return nil, errors.Wrap(err, "update preferences")
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "read back updated profile")
	}

	metrics.ProfilesUpdated.Inc()
	s.log.Infow("Preferences updated", "user_id", id)
	return updated, nil
}

// GetProfile fetches a profile by user id
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*profile.UserProfile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get profile")
	}
	return p, nil
}

func (s *Service) recordValidationFailure(err error) {
	var verr *errors.ValidationError
	if errors.As(err, &verr) {
		metrics.ValidationFailures.WithLabelValues(verr.Field).Inc()
	}
}
