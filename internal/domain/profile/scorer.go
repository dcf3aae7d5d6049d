package profile

import (
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)

	maxHorizonYears = decimal.NewFromInt(30) // 30-year horizon treated as maximal
	monthsPerYear   = decimal.NewFromInt(12)
	bandModerate    = decimal.NewFromFloat(0.25)
	bandAggressive  = decimal.NewFromFloat(0.5)
	bandSpeculative = decimal.NewFromFloat(0.75)
)

// LiquidityContext supplies the external wealth data needed to turn monthly
// liquidity needs into a scoring component. Without it liquidity contributes
// nothing to the composite.
type LiquidityContext struct {
	NetWorth decimal.Decimal // total net worth in currency units
}

// Scorer maps a risk assessment to a composite score in [0,1] and a
// tolerance level. Pure and deterministic: no I/O, no side effects.
type Scorer struct{}

// NewScorer creates a scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the composite without liquidity context: four equally
// weighted components (drawdown, volatility, loss aversion, horizon).
func (s *Scorer) Score(a RiskAssessment) (float64, RiskToleranceLevel, error) {
	return s.ScoreWithContext(a, nil)
}

// ScoreWithContext computes the composite score and classification.
// Each component is normalized to [0,1] before averaging:
//   - drawdown tolerance / 100
//   - volatility tolerance / 100, clamped above 100% to 1
//   - 1 - loss aversion (low aversion means high risk appetite)
//   - horizon years / 30, clamped to 1
//   - with context: 1 - min(12 * monthly needs / net worth, 1)
//
// Invalid input fails before any component is computed.
func (s *Scorer) ScoreWithContext(a RiskAssessment, liquidity *LiquidityContext) (float64, RiskToleranceLevel, error) {
	if err := a.Validate(); err != nil {
		return 0, 0, err
	}

	components := []decimal.Decimal{
		decimal.NewFromFloat(a.MaxDrawdownTolerance).Div(hundred),
		clamp01(decimal.NewFromFloat(a.VolatilityTolerance).Div(hundred)),
		one.Sub(decimal.NewFromFloat(a.LossAversionScore)),
		clamp01(decimal.NewFromInt(int64(a.TimeHorizonYears)).Div(maxHorizonYears)),
	}

	if liquidity != nil && liquidity.NetWorth.IsPositive() {
		annualNeeds := decimal.NewFromFloat(a.LiquidityNeeds).Mul(monthsPerYear)
		penalty := clamp01(annualNeeds.Div(liquidity.NetWorth))
		components = append(components, one.Sub(penalty))
	}

	sum := decimal.Zero
	for _, c := range components {
		sum = sum.Add(c)
	}
	composite := sum.Div(decimal.NewFromInt(int64(len(components))))

	return composite.InexactFloat64(), classify(composite), nil
}

// classify maps the composite onto the four bands. A boundary value belongs
// to the higher band.
func classify(composite decimal.Decimal) RiskToleranceLevel {
	switch {
	case composite.LessThan(bandModerate):
		return RiskConservative
	case composite.LessThan(bandAggressive):
		return RiskModerate
	case composite.LessThan(bandSpeculative):
		return RiskAggressive
	default:
		return RiskSpeculative
	}
}

func clamp01(d decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(one) {
		return one
	}
	return d
}
