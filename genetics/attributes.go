// Package genetics holds the evolvable attribute schema (base,
// behavioural, lifecycle, derived) and the asexual inheritance pipeline:
// copy from the sole parent, apply clamped normal mutation per category,
// then recompute derived stats as a pure function of the mutated base.
//
// The schema itself is modelled on the teacher's own per-trait bound
// tables (config.go's EvolutionConfig.TraitBounds, dna.go's per-gene
// MutationRates) collapsed from the teacher's open-ended named-trait map
// into the fixed, typed attribute set this ecosystem actually needs.
package genetics

import "math"

// Base attributes bound an animal's raw physical capability. They are the
// only inputs to Derive; everything in Derived follows from them.
type Base struct {
	Strength   float64
	Agility    float64
	Endurance  float64
	Perception float64
	Size       float64
}

// Bounds for Base fields.
var (
	BoundStrength   = Bound{1, 20}
	BoundAgility    = Bound{1, 20}
	BoundEndurance  = Bound{1, 20}
	BoundPerception = Bound{1, 20}
	BoundSize       = Bound{0.3, 3.0}
)

// Behavioural attributes govern decision-rule probabilities.
type Behavioural struct {
	Aggression            float64
	FlightInstinct        float64
	CarrionPreference     float64
	FoodPriorityThreshold float64
	ReproductiveUrge      float64
}

// Bounds for Behavioural fields.
var (
	BoundAggression            = Bound{0, 1}
	BoundFlightInstinct        = Bound{0, 1}
	BoundCarrionPreference     = Bound{0, 1}
	BoundFoodPriorityThreshold = Bound{0.1, 0.9}
	BoundReproductiveUrge      = Bound{0.1, 0.9}
)

// Lifecycle attributes govern aging and litter size. MaxAge and
// MaturityAge are tick counts; MaturityAge must stay strictly below
// MaxAge, enforced by clamping to MaxAge-1 whenever violated.
type Lifecycle struct {
	MaxAge      float64
	MaturityAge float64
	LitterSize  float64 // integer-valued; rounded after every mutation
}

// Bounds for Lifecycle fields.
var (
	BoundMaxAge      = Bound{50, 2000}
	BoundMaturityAge = Bound{10, 500}
	BoundLitterSize  = Bound{1, 4}
)

// Derived attributes are a pure function of Base + config; they are never
// stored as independent truth and must be recomputed whenever Base
// changes.
type Derived struct {
	Speed           float64
	AlertRange      float64
	AttackPower     float64
	Defense         float64
	HungerDecayRate float64
}

// Bound is an inclusive [Min,Max] range.
type Bound struct {
	Min, Max float64
}

// Clamp restricts v to b.
func (b Bound) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// DerivedStatsConfig carries the four coefficients Derive needs. It
// mirrors config.DerivedStatsConfig's fields exactly so callers copy that
// group across field by field without this package importing config (keeping the
// leaves-first dependency direction: config has no inward dependencies,
// genetics does not depend on config either).
type DerivedStatsConfig struct {
	SpeedMultiplier      float64
	PerceptionMultiplier float64
	BaseDecay            float64
	MaxHunger            float64
}

// Derive recomputes Derived from base per the fixed formulas:
//
//	speed           = agility * size^(-1/2) * SpeedMultiplier
//	alertRange      = perception * PerceptionMultiplier
//	attackPower     = strength * sqrt(size)
//	defense         = size * (1 + 0.3*agility)
//	hungerDecayRate = BaseDecay * (size + 0.3*speed) / endurance
func Derive(base Base, cfg DerivedStatsConfig) Derived {
	speed := base.Agility * math.Pow(base.Size, -0.5) * cfg.SpeedMultiplier
	alertRange := base.Perception * cfg.PerceptionMultiplier
	attackPower := base.Strength * math.Sqrt(base.Size)
	defense := base.Size * (1 + 0.3*base.Agility)
	decay := cfg.BaseDecay * (base.Size + 0.3*speed) / base.Endurance

	return Derived{
		Speed:           speed,
		AlertRange:      alertRange,
		AttackPower:     attackPower,
		Defense:         defense,
		HungerDecayRate: decay,
	}
}
