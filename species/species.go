// Package species captures the one place per-species differences live:
// a tagged identifier, fixed diet flags, and a baseline genome used to
// seed new animals at world initialisation. Behaviour itself has no
// species-specific code path — one decision rule and one tick executor
// serve every species, per the teacher's own preference for data-driven
// variation (see world.go's species baseline tables) over per-species
// subclassing.
package species

import "github.com/ViktorDolezel/evolution-sandbox/genetics"

// Tag identifies a species. Only two exist in this ecosystem; the type is
// still named generically so a shell extending the roster does not need
// to touch the decision rule or tick executor.
type Tag int

const (
	Deer Tag = iota
	Wolf
)

// String renders the species tag for logs, ids and events.
func (t Tag) String() string {
	switch t {
	case Deer:
		return "deer"
	case Wolf:
		return "wolf"
	default:
		return "unknown"
	}
}

// DietFlags declare what an animal is physiologically capable of eating.
// They are species-level and never evolve.
type DietFlags struct {
	CanEatVegetation bool
	CanEatAnimals    bool
	CanEatCorpses    bool
}

// Diet returns t's fixed diet flags.
func Diet(t Tag) DietFlags {
	switch t {
	case Wolf:
		return DietFlags{CanEatVegetation: false, CanEatAnimals: true, CanEatCorpses: true}
	default: // Deer
		return DietFlags{CanEatVegetation: true, CanEatAnimals: false, CanEatCorpses: false}
	}
}

// Baseline is the starting genome used to seed a newly spawned animal of
// species t before any mutation is applied.
func Baseline(t Tag) genetics.Genome {
	switch t {
	case Wolf:
		return genetics.Genome{
			Base: genetics.Base{Strength: 14, Agility: 12, Endurance: 11, Perception: 13, Size: 1.4},
			Behavioural: genetics.Behavioural{
				Aggression: 0.7, FlightInstinct: 0.2, CarrionPreference: 0.3,
				FoodPriorityThreshold: 0.5, ReproductiveUrge: 0.4,
			},
			Lifecycle: genetics.Lifecycle{MaxAge: 500, MaturityAge: 80, LitterSize: 3},
		}
	default: // Deer
		return genetics.Genome{
			Base: genetics.Base{Strength: 6, Agility: 14, Endurance: 13, Perception: 11, Size: 1.0},
			Behavioural: genetics.Behavioural{
				Aggression: 0.1, FlightInstinct: 0.7, CarrionPreference: 0.0,
				FoodPriorityThreshold: 0.6, ReproductiveUrge: 0.5,
			},
			Lifecycle: genetics.Lifecycle{MaxAge: 350, MaturityAge: 50, LitterSize: 2},
		}
	}
}
