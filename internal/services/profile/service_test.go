package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"midas/internal/domain/profile"
	profileservice "midas/internal/services/profile"
	"midas/pkg/errors"
)

// mockRepository is an in-memory implementation of profile.Repository that
// counts writes, so tests can assert that failed validation never touches
// the store.
type mockRepository struct {
	profiles map[uuid.UUID]*profile.UserProfile
	writes   int
	clock    time.Time
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		profiles: make(map[uuid.UUID]*profile.UserProfile),
		clock:    time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}
}

// tick simulates the store's server-assigned timestamps
func (m *mockRepository) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *mockRepository) Create(ctx context.Context, p *profile.UserProfile) error {
	m.writes++
	stored := *p
	stored.CreatedAt = m.tick()
	stored.UpdatedAt = stored.CreatedAt
	m.profiles[p.ID] = &stored
	return nil
}

func (m *mockRepository) UpdateAssessment(ctx context.Context, id uuid.UUID, a profile.RiskAssessment, level profile.RiskToleranceLevel) error {
	m.writes++
	p, ok := m.profiles[id]
	if !ok {
		return errors.Wrap(errors.ErrNotFound, "profile not found")
	}
	p.RiskTolerance = a
	p.RiskLevel = level
	p.UpdatedAt = m.tick()
	return nil
}

func (m *mockRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, goal profile.InvestmentGoal, experience profile.TradingExperience) error {
	m.writes++
	p, ok := m.profiles[id]
	if !ok {
		return errors.Wrap(errors.ErrNotFound, "profile not found")
	}
	p.InvestmentGoal = goal
	p.TradingExperience = experience
	p.UpdatedAt = m.tick()
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*profile.UserProfile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, errors.Wrap(errors.ErrNotFound, "profile not found")
	}
	copied := *p
	return &copied, nil
}

func validParams() profileservice.CreateParams {
	return profileservice.CreateParams{
		Email: "trader@example.com",
		Assessment: profile.RiskAssessment{
			MaxDrawdownTolerance: 10,
			VolatilityTolerance:  5,
			LossAversionScore:    0.9,
			TimeHorizonYears:     2,
			LiquidityNeeds:       500,
		},
		Goal:       profile.GoalCapitalPreservation,
		Experience: profile.ExperienceBeginner,
	}
}

func TestCreateProfile_PersistsScoredAggregate(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := profileservice.NewService(repo, profile.NewScorer())

	created, err := service.CreateProfile(ctx, validParams())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "trader@example.com", created.Email)
	assert.Equal(t, profile.RiskConservative, created.RiskLevel)
	assert.Equal(t, profile.GoalCapitalPreservation, created.InvestmentGoal)
	assert.Equal(t, profile.ExperienceBeginner, created.TradingExperience)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, 1, repo.writes)
}

func TestCreateProfile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := profileservice.NewService(repo, profile.NewScorer())

	created, err := service.CreateProfile(ctx, validParams())
	require.NoError(t, err)

	fetched, err := service.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
	assert.False(t, fetched.UpdatedAt.Before(fetched.CreatedAt))
}

func TestCreateProfile_InvalidAssessment_NoStoreWrite(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := profileservice.NewService(repo, profile.NewScorer())

	params := validParams()
	params.Assessment.LossAversionScore = 2.5

	created, err := service.CreateProfile(ctx, params)
	require.Error(t, err)
	assert.Nil(t, created)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Equal(t, 0, repo.writes)
}

func TestCreateProfile_RejectsBadCategories(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := profileservice.NewService(repo, profile.NewScorer())

	params := validParams()
	params.Goal = profile.InvestmentGoal("moonshots")
	_, err := service.CreateProfile(ctx, params)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	params = validParams()
	params.Experience = profile.TradingExperience("guru")
	_, err = service.CreateProfile(ctx, params)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	params = validParams()
	params.Email = ""
	_, err = service.CreateProfile(ctx, params)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))

	assert.Equal(t, 0, repo.writes)
}

func TestUpdateAssessment_ChangesOnlyRiskFields(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := profileservice.NewService(repo, profile.NewScorer())

	created, err := service.CreateProfile(ctx, validParams())
	require.NoError(t, err)

	updated, err := service.UpdateAssessment(ctx, created.ID, profile.RiskAssessment{
		MaxDrawdownTolerance: 80,
		VolatilityTolerance:  90,
		LossAversionScore:    0.1,
		TimeHorizonYears:     25,
		LiquidityNeeds:       0,
	})
	require.NoError(t, err)

	// Risk fields change
	assert.Equal(t, profile.RiskSpeculative, updated.RiskLevel)
	assert.Equal(t, 80.0, updated.RiskTolerance.MaxDrawdownTolerance)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// Everything else is preserved
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.InvestmentGoal, updated.InvestmentGoal)
	assert.Equal(t, created.TradingExperience, updated.TradingExperience)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateAssessment_UnknownUser_NoWrite(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := profileservice.NewService(repo, profile.NewScorer())

	_, err := service.UpdateAssessment(ctx, uuid.New(), validParams().Assessment)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Equal(t, 0, repo.writes)
}

func TestUpdateAssessment_InvalidInput_NoLoadNoWrite(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := profileservice.NewService(repo, profile.NewScorer())

	created, err := service.CreateProfile(ctx, validParams())
	require.NoError(t, err)
	writesAfterCreate := repo.writes

	_, err = service.UpdateAssessment(ctx, created.ID, profile.RiskAssessment{
		MaxDrawdownTolerance: -10,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	assert.Equal(t, writesAfterCreate, repo.writes)
}

func TestUpdatePreferences(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := profileservice.NewService(repo, profile.NewScorer())

	created, err := service.CreateProfile(ctx, validParams())
	require.NoError(t, err)

	updated, err := service.UpdatePreferences(ctx, created.ID, profile.GoalCapitalGrowth, profile.ExperienceAdvanced)
	require.NoError(t, err)
	assert.Equal(t, profile.GoalCapitalGrowth, updated.InvestmentGoal)
	assert.Equal(t, profile.ExperienceAdvanced, updated.TradingExperience)
	assert.Equal(t, created.RiskLevel, updated.RiskLevel)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = service.UpdatePreferences(ctx, created.ID, profile.InvestmentGoal("bad"), profile.ExperienceAdvanced)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestGetProfile_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := profileservice.NewService(repo, profile.NewScorer())

	_, err := service.GetProfile(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
