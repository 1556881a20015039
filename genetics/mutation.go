package genetics

import "github.com/ViktorDolezel/evolution-sandbox/prng"

// MutationRates carries the three per-category rates (Base, Behavioural,
// Lifecycle categories use distinct rates read straight from config's
// EvolutionConfig — this package mirrors only the fields it needs, for
// the same leaves-first reason DerivedStatsConfig mirrors config's
// derived-stats group).
type MutationRates struct {
	Base        float64
	Behavioural float64
	Lifecycle   float64
}

// mutateValue draws m ~ N(0,rate) and returns clamp(v*(1+m), b). A zero
// rate makes Normal always return exactly 0, so mutation is the identity.
func mutateValue(v, rate float64, b Bound, rng *prng.PRNG) float64 {
	m := rng.Normal(0, rate)
	return b.Clamp(v * (1 + m))
}

// MutateBase applies clamped multiplicative mutation to each Base field
// in fixed declaration order (Strength, Agility, Endurance, Perception,
// Size) so the PRNG draw sequence is reproducible for a given rate.
func MutateBase(b Base, rate float64, rng *prng.PRNG) Base {
	return Base{
		Strength:   mutateValue(b.Strength, rate, BoundStrength, rng),
		Agility:    mutateValue(b.Agility, rate, BoundAgility, rng),
		Endurance:  mutateValue(b.Endurance, rate, BoundEndurance, rng),
		Perception: mutateValue(b.Perception, rate, BoundPerception, rng),
		Size:       mutateValue(b.Size, rate, BoundSize, rng),
	}
}

// MutateBehavioural applies clamped multiplicative mutation to each
// Behavioural field in fixed declaration order (Aggression,
// FlightInstinct, CarrionPreference, FoodPriorityThreshold,
// ReproductiveUrge).
func MutateBehavioural(v Behavioural, rate float64, rng *prng.PRNG) Behavioural {
	return Behavioural{
		Aggression:            mutateValue(v.Aggression, rate, BoundAggression, rng),
		FlightInstinct:        mutateValue(v.FlightInstinct, rate, BoundFlightInstinct, rng),
		CarrionPreference:     mutateValue(v.CarrionPreference, rate, BoundCarrionPreference, rng),
		FoodPriorityThreshold: mutateValue(v.FoodPriorityThreshold, rate, BoundFoodPriorityThreshold, rng),
		ReproductiveUrge:      mutateValue(v.ReproductiveUrge, rate, BoundReproductiveUrge, rng),
	}
}

// MutateLifecycle applies clamped multiplicative mutation to each
// Lifecycle field in fixed declaration order (MaxAge, MaturityAge,
// LitterSize), rounds the three integer-valued fields, and then
// re-enforces MaturityAge < MaxAge by clamping MaturityAge to MaxAge-1.
func MutateLifecycle(v Lifecycle, rate float64, rng *prng.PRNG) Lifecycle {
	out := Lifecycle{
		MaxAge:      roundTo(mutateValue(v.MaxAge, rate, BoundMaxAge, rng)),
		MaturityAge: roundTo(mutateValue(v.MaturityAge, rate, BoundMaturityAge, rng)),
		LitterSize:  roundTo(mutateValue(v.LitterSize, rate, BoundLitterSize, rng)),
	}
	if out.MaturityAge >= out.MaxAge {
		out.MaturityAge = out.MaxAge - 1
	}
	return out
}

func roundTo(v float64) float64 {
	if v < 0 {
		return float64(int(v - 0.5))
	}
	return float64(int(v + 0.5))
}

// Genome bundles the three evolvable attribute vectors an animal carries.
type Genome struct {
	Base        Base
	Behavioural Behavioural
	Lifecycle   Lifecycle
}

// Inherit produces an offspring genome from a single parent (asexual
// reproduction): the parent's attribute vectors are copied verbatim, then
// mutated per category with the given rates. A zero-valued MutationRates
// makes the offspring genome byte-for-byte identical to the parent's.
func Inherit(parent Genome, rates MutationRates, rng *prng.PRNG) Genome {
	return Genome{
		Base:        MutateBase(parent.Base, rates.Base, rng),
		Behavioural: MutateBehavioural(parent.Behavioural, rates.Behavioural, rng),
		Lifecycle:   MutateLifecycle(parent.Lifecycle, rates.Lifecycle, rng),
	}
}
