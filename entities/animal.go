// Package entities owns the two mutable record tables every other
// component addresses by id: living/dead animals and corpses. No other
// package holds its own copy of this state; the spatial index and
// perception layer look entities up here. The map-of-records-plus-
// monotonic-counter shape follows the teacher's own World.AllEntities /
// World.NextID bookkeeping (world.go), generalised to per-species-prefix
// counters so ids never collide across species or after removal.
package entities

import (
	"github.com/ViktorDolezel/evolution-sandbox/genetics"
	"github.com/ViktorDolezel/evolution-sandbox/species"
	"github.com/ViktorDolezel/evolution-sandbox/vecmath"
)

// AnimalID is a stable, ASCII "<prefix>_<n>" identifier, monotonically
// increasing per prefix and never reused.
type AnimalID string

// CorpseID is a stable, ASCII "corpse_<n>" identifier.
type CorpseID string

// Animal is a living mobile agent. ParentID is empty for founders.
type Animal struct {
	ID      AnimalID
	Species species.Tag
	Genome  genetics.Genome
	Derived genetics.Derived

	Position                   vecmath.Vec2
	Hunger                     float64
	Age                        int
	TicksSinceLastReproduction int
	IsDead                     bool

	ParentID   AnimalID
	Generation uint32
}

// IsMature reports whether a has reached its genome's MaturityAge.
func (a *Animal) IsMature() bool {
	return float64(a.Age) >= a.Genome.Lifecycle.MaturityAge
}

// Corpse is an immobile food record left behind by a dead animal.
type Corpse struct {
	ID            CorpseID
	SourceSpecies species.Tag
	SourceID      AnimalID
	Position      vecmath.Vec2
	SourceSize    float64
	FoodValue     float64
	DecayTimer    int
}

// Exhausted reports whether c has run out of food value or decay time and
// should be removed from the store.
func (c *Corpse) Exhausted() bool {
	return c.FoodValue <= 0 || c.DecayTimer <= 0
}
