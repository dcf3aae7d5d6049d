package profile

import (
	"time"

	"github.com/google/uuid"

	"midas/pkg/errors"
)

// RiskToleranceLevel is the ordinal risk classification derived from scoring.
// Ordering is meaningful: higher values are more risk-seeking.
type RiskToleranceLevel int

const (
	RiskConservative RiskToleranceLevel = iota + 1
	RiskModerate
	RiskAggressive
	RiskSpeculative
)

// Valid reports whether the level is one of the four defined bands
func (l RiskToleranceLevel) Valid() bool {
	return l >= RiskConservative && l <= RiskSpeculative
}

func (l RiskToleranceLevel) String() string {
	switch l {
	case RiskConservative:
		return "conservative"
	case RiskModerate:
		return "moderate"
	case RiskAggressive:
		return "aggressive"
	case RiskSpeculative:
		return "speculative"
	default:
		return "unknown"
	}
}

// InvestmentGoal represents what the user wants from their portfolio.
// Unordered, persisted by string value.
type InvestmentGoal string

const (
	GoalCapitalPreservation InvestmentGoal = "capital_preservation"
	GoalIncomeGeneration    InvestmentGoal = "income_generation"
	GoalCapitalGrowth       InvestmentGoal = "capital_growth"
	GoalSpeculativeGains    InvestmentGoal = "speculative_gains"
)

// Valid checks that the goal is a known category
func (g InvestmentGoal) Valid() bool {
	return g == GoalCapitalPreservation || g == GoalIncomeGeneration ||
		g == GoalCapitalGrowth || g == GoalSpeculativeGains
}

// TradingExperience represents the user's trading experience level
type TradingExperience string

const (
	ExperienceBeginner     TradingExperience = "beginner"
	ExperienceIntermediate TradingExperience = "intermediate"
	ExperienceAdvanced     TradingExperience = "advanced"
	ExperienceProfessional TradingExperience = "professional"
)

// Valid checks that the experience level is a known category
func (e TradingExperience) Valid() bool {
	return e == ExperienceBeginner || e == ExperienceIntermediate ||
		e == ExperienceAdvanced || e == ExperienceProfessional
}

// RiskAssessment holds the raw self-reported and behavioral risk inputs.
// Immutable value object: replaced whole, never mutated in place.
type RiskAssessment struct {
	MaxDrawdownTolerance float64 // percentage (0-100)
	VolatilityTolerance  float64 // annualized volatility percentage
	LossAversionScore    float64 // 0-1 scale (0 = risk-neutral, 1 = maximally loss-averse)
	TimeHorizonYears     int
	LiquidityNeeds       float64 // monthly liquidity requirement in currency units
}

// Validate checks every field against its declared range. Out-of-range input
// is rejected, never clamped.
func (a RiskAssessment) Validate() error {
	if a.MaxDrawdownTolerance < 0 || a.MaxDrawdownTolerance > 100 {
		return errors.NewValidationError("max_drawdown_tolerance", "must be between 0 and 100", a.MaxDrawdownTolerance)
	}
	if a.VolatilityTolerance < 0 {
		return errors.NewValidationError("volatility_tolerance", "must be non-negative", a.VolatilityTolerance)
	}
	if a.LossAversionScore < 0 || a.LossAversionScore > 1 {
		return errors.NewValidationError("loss_aversion_score", "must be between 0 and 1", a.LossAversionScore)
	}
	if a.TimeHorizonYears < 0 {
		return errors.NewValidationError("time_horizon_years", "must be non-negative", a.TimeHorizonYears)
	}
	if a.LiquidityNeeds < 0 {
		return errors.NewValidationError("liquidity_needs", "must be non-negative", a.LiquidityNeeds)
	}
	return nil
}

// UserProfile is the durable per-user record consumed by the
// trading-personalization engine.
type UserProfile struct {
	ID                uuid.UUID
	Email             string
	RiskTolerance     RiskAssessment
	RiskLevel         RiskToleranceLevel // derived from RiskTolerance, never hand-set
	InvestmentGoal    InvestmentGoal
	TradingExperience TradingExperience
	CreatedAt         time.Time // server-assigned
	UpdatedAt         time.Time // server-assigned
}
