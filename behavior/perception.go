// Package behavior turns an animal's current state and its nearby
// entities into exactly one Action per tick. Perception (this file) finds
// threats, food and mates; decision.go applies the
// fixed priority ladder. Neither file mutates anything it is handed —
// perception is read-only by construction, matching the teacher's own
// separation of "sense" helpers from "act" dispatch in
// caste_system.go's performXActions family, generalised to a single
// species-agnostic rule instead of one function per caste.
package behavior

import (
	"math"
	"sort"

	"github.com/ViktorDolezel/evolution-sandbox/entities"
	"github.com/ViktorDolezel/evolution-sandbox/prng"
	"github.com/ViktorDolezel/evolution-sandbox/spatial"
	"github.com/ViktorDolezel/evolution-sandbox/species"
	"github.com/ViktorDolezel/evolution-sandbox/vecmath"
)

// View bundles everything Decide needs about the world around a single
// animal, built fresh each decision by the tick executor. Its fields are
// live pointers into the store, spatial index and vegetation grid; Decide
// and the perception helpers only read through them.
type View struct {
	Self     *entities.Animal
	Index    *spatial.Index
	Veg      *spatial.VegetationGrid
	Corpses  []*entities.Corpse
	AllByID  map[entities.AnimalID]*entities.Animal
}

// Threats returns every other living animal within self's alert range
// whose perceivedThreat exceeds self's tolerance, sorted by distance
// ascending then id ascending.
func Threats(self *entities.Animal, nearby []*entities.Animal) []*entities.Animal {
	threshold := 1 - self.Genome.Behavioural.FlightInstinct
	var out []*entities.Animal
	for _, other := range nearby {
		if other.ID == self.ID || other.IsDead {
			continue
		}
		if vecmath.Distance(self.Position, other.Position) > self.Derived.AlertRange {
			continue
		}
		perceivedThreat := math.Inf(1)
		if self.Derived.Defense != 0 {
			perceivedThreat = (other.Derived.AttackPower * other.Genome.Behavioural.Aggression) / self.Derived.Defense
		}
		if perceivedThreat > threshold {
			out = append(out, other)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		di := vecmath.Distance(self.Position, out[i].Position)
		dj := vecmath.Distance(self.Position, out[j].Position)
		if di != dj {
			return di < dj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// FleeVector computes the weighted-repulsion direction away from threats:
// sum of (self.pos - other.pos) * 1/max(1,distance), then normalised.
// Returns the zero vector if the total weight is zero (no threats, or
// every threat sits exactly on self's position).
func FleeVector(self *entities.Animal, threats []*entities.Animal) vecmath.Vec2 {
	var sum vecmath.Vec2
	for _, other := range threats {
		d := vecmath.Distance(self.Position, other.Position)
		weight := 1 / math.Max(1, d)
		away := self.Position.Sub(other.Position)
		sum = sum.Add(away.Scale(weight))
	}
	if sum.X == 0 && sum.Y == 0 {
		return vecmath.Vec2{}
	}
	return sum.Normalize()
}

// NearestVegetation returns the world-space center of the nearest
// occupied vegetation cell to self, if any.
func NearestVegetation(self *entities.Animal, veg *spatial.VegetationGrid) (vecmath.Vec2, bool) {
	positions := veg.Positions()
	if len(positions) == 0 {
		return vecmath.Vec2{}, false
	}
	best := positions[0]
	bestDist := vecmath.Distance(self.Position, best)
	for _, p := range positions[1:] {
		d := vecmath.Distance(self.Position, p)
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}

// NearestCorpse returns the nearest corpse with non-zero food value,
// ties broken by id ascending.
func NearestCorpse(self *entities.Animal, corpses []*entities.Corpse) (*entities.Corpse, bool) {
	var best *entities.Corpse
	var bestDist float64
	for _, c := range corpses {
		if c.FoodValue <= 0 {
			continue
		}
		d := vecmath.Distance(self.Position, c.Position)
		if best == nil || d < bestDist || (d == bestDist && c.ID < best.ID) {
			best, bestDist = c, d
		}
	}
	return best, best != nil
}

// NearestPrey returns the nearest living animal within self's alert
// range that is of a different species and itself does not hunt animals
// (excluding other predators from being treated as prey), ties broken by
// distance then id.
func NearestPrey(self *entities.Animal, nearby []*entities.Animal) (*entities.Animal, bool) {
	var best *entities.Animal
	var bestDist float64
	for _, other := range nearby {
		if other.ID == self.ID || other.IsDead || other.Species == self.Species {
			continue
		}
		if species.Diet(other.Species).CanEatAnimals {
			continue
		}
		d := vecmath.Distance(self.Position, other.Position)
		if d > self.Derived.AlertRange {
			continue
		}
		if best == nil || d < bestDist || (d == bestDist && other.ID < best.ID) {
			best, bestDist = other, d
		}
	}
	return best, best != nil
}

// FoodKind distinguishes what a FoodTarget points at.
type FoodKind int

const (
	FoodNone FoodKind = iota
	FoodVegetation
	FoodCorpse
	FoodPrey
)

// FoodTarget is the outcome of ChooseFood: a kind plus the position to
// move toward and, for corpse/prey targets, the id to act on.
type FoodTarget struct {
	Kind     FoodKind
	Position vecmath.Vec2
	CorpseID entities.CorpseID
	Prey     *entities.Animal
}

// ChooseFood picks self's top-level food target per diet:
//   - pure herbivore: vegetation only.
//   - carnivore/omnivore with both prey and corpse available: one PRNG
//     draw, corpse if u < carrionPreference else prey; if only one
//     option exists, pick it without consuming a draw.
func ChooseFood(self *entities.Animal, view View, nearby []*entities.Animal, rng *prng.PRNG) FoodTarget {
	diet := species.Diet(self.Species)

	if !diet.CanEatAnimals && !diet.CanEatCorpses {
		if pos, ok := NearestVegetation(self, view.Veg); ok {
			return FoodTarget{Kind: FoodVegetation, Position: pos}
		}
		return FoodTarget{Kind: FoodNone}
	}

	prey, hasPrey := NearestPrey(self, nearby)
	corpse, hasCorpse := NearestCorpse(self, view.Corpses)
	hasCorpse = hasCorpse && diet.CanEatCorpses
	hasPrey = hasPrey && diet.CanEatAnimals

	switch {
	case hasPrey && hasCorpse:
		if rng.Float64() < self.Genome.Behavioural.CarrionPreference {
			return FoodTarget{Kind: FoodCorpse, Position: corpse.Position, CorpseID: corpse.ID}
		}
		return FoodTarget{Kind: FoodPrey, Position: prey.Position, Prey: prey}
	case hasCorpse:
		return FoodTarget{Kind: FoodCorpse, Position: corpse.Position, CorpseID: corpse.ID}
	case hasPrey:
		return FoodTarget{Kind: FoodPrey, Position: prey.Position, Prey: prey}
	default:
		if diet.CanEatVegetation {
			if pos, ok := NearestVegetation(self, view.Veg); ok {
				return FoodTarget{Kind: FoodVegetation, Position: pos}
			}
		}
		return FoodTarget{Kind: FoodNone}
	}
}

// NearestMate returns the best same-species, living, non-self neighbour
// within alert range that is mature and has at least cooldownTicks since
// its last reproduction: sorted by fitness (strength+agility+endurance)
// descending then distance ascending, head of the sort wins. A
// candidate's hunger is not checked.
func NearestMate(self *entities.Animal, nearby []*entities.Animal, cooldownTicks int) (*entities.Animal, bool) {
	var candidates []*entities.Animal
	for _, other := range nearby {
		if other.ID == self.ID || other.IsDead || other.Species != self.Species {
			continue
		}
		if !other.IsMature() || other.TicksSinceLastReproduction < cooldownTicks {
			continue
		}
		if vecmath.Distance(self.Position, other.Position) > self.Derived.AlertRange {
			continue
		}
		candidates = append(candidates, other)
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		fi := candidates[i].Genome.Base.Strength + candidates[i].Genome.Base.Agility + candidates[i].Genome.Base.Endurance
		fj := candidates[j].Genome.Base.Strength + candidates[j].Genome.Base.Agility + candidates[j].Genome.Base.Endurance
		if fi != fj {
			return fi > fj
		}
		return vecmath.Distance(self.Position, candidates[i].Position) < vecmath.Distance(self.Position, candidates[j].Position)
	})
	return candidates[0], true
}
