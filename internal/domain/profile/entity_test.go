package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"midas/internal/domain/profile"
)

func TestRiskToleranceLevel_Ordering(t *testing.T) {
	assert.Less(t, int(profile.RiskConservative), int(profile.RiskModerate))
	assert.Less(t, int(profile.RiskModerate), int(profile.RiskAggressive))
	assert.Less(t, int(profile.RiskAggressive), int(profile.RiskSpeculative))

	// Persisted representation is the 1-4 ordinal
	assert.Equal(t, 1, int(profile.RiskConservative))
	assert.Equal(t, 4, int(profile.RiskSpeculative))
}

func TestRiskToleranceLevel_String(t *testing.T) {
	assert.Equal(t, "conservative", profile.RiskConservative.String())
	assert.Equal(t, "moderate", profile.RiskModerate.String())
	assert.Equal(t, "aggressive", profile.RiskAggressive.String())
	assert.Equal(t, "speculative", profile.RiskSpeculative.String())
	assert.Equal(t, "unknown", profile.RiskToleranceLevel(0).String())
}

func TestRiskToleranceLevel_Valid(t *testing.T) {
	assert.True(t, profile.RiskConservative.Valid())
	assert.True(t, profile.RiskSpeculative.Valid())
	assert.False(t, profile.RiskToleranceLevel(0).Valid())
	assert.False(t, profile.RiskToleranceLevel(5).Valid())
}

func TestInvestmentGoal_Valid(t *testing.T) {
	for _, goal := range []profile.InvestmentGoal{
		profile.GoalCapitalPreservation,
		profile.GoalIncomeGeneration,
		profile.GoalCapitalGrowth,
		profile.GoalSpeculativeGains,
	} {
		assert.True(t, goal.Valid(), "goal %q", goal)
	}
	assert.False(t, profile.InvestmentGoal("get_rich_quick").Valid())
	assert.False(t, profile.InvestmentGoal("").Valid())
}

func TestTradingExperience_Valid(t *testing.T) {
	for _, exp := range []profile.TradingExperience{
		profile.ExperienceBeginner,
		profile.ExperienceIntermediate,
		profile.ExperienceAdvanced,
		profile.ExperienceProfessional,
	} {
		assert.True(t, exp.Valid(), "experience %q", exp)
	}
	assert.False(t, profile.TradingExperience("expert").Valid())
	assert.False(t, profile.TradingExperience("").Valid())
}

func TestRiskAssessment_ValidateAcceptsBoundaryValues(t *testing.T) {
	testCases := []profile.RiskAssessment{
		{MaxDrawdownTolerance: 0, VolatilityTolerance: 0, LossAversionScore: 0, TimeHorizonYears: 0, LiquidityNeeds: 0},
		{MaxDrawdownTolerance: 100, VolatilityTolerance: 500, LossAversionScore: 1, TimeHorizonYears: 80, LiquidityNeeds: 1e6},
	}
	for _, a := range testCases {
		require.NoError(t, a.Validate())
	}
}

func TestRiskAssessment_ValidateRejectsOutOfRange(t *testing.T) {
	a := profile.RiskAssessment{MaxDrawdownTolerance: 101}
	assert.Error(t, a.Validate())

	a = profile.RiskAssessment{LossAversionScore: -0.1}
	assert.Error(t, a.Validate())
}
