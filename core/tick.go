package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/ViktorDolezel/evolution-sandbox/behavior"
	"github.com/ViktorDolezel/evolution-sandbox/config"
	"github.com/ViktorDolezel/evolution-sandbox/entities"
	"github.com/ViktorDolezel/evolution-sandbox/genetics"
	"github.com/ViktorDolezel/evolution-sandbox/prng"
	"github.com/ViktorDolezel/evolution-sandbox/spatial"
	"github.com/ViktorDolezel/evolution-sandbox/species"
	"github.com/ViktorDolezel/evolution-sandbox/vecmath"
)

// ActionHistorySink receives one record per animal decided this tick, if
// the façade has one installed.
type ActionHistorySink func(id entities.AnimalID, tick int, action behavior.ActionKind, detail string)

// DeathRecord pairs a now-removed animal with why it died.
type DeathRecord struct {
	Animal *entities.Animal
	Cause  behavior.DeathCause
}

// TickReport carries every event-worthy fact a single Tick call produced,
// so the façade can replay them as events without re-deriving anything
// from post-tick state.
type TickReport struct {
	Tick           int
	Deaths         []DeathRecord
	Born           []*entities.Animal
	CorpsesCreated []*entities.Corpse
	CorpsesRemoved []entities.CorpseID
	DeerCount      int
	WolfCount      int
	VegCount       int
}

func decisionConfigFrom(cfg config.SimulationConfig) behavior.DecisionConfig {
	return behavior.DecisionConfig{
		MaxHunger:                 cfg.DerivedStats.MaxHunger,
		ReproductionCost:          cfg.Reproduction.Cost,
		ReproductionSafetyBuffer:  cfg.Reproduction.SafetyBuffer,
		ReproductionCooldownTicks: cfg.Reproduction.CooldownTicks,
	}
}

func derivedStatsConfigFrom(cfg config.SimulationConfig) genetics.DerivedStatsConfig {
	return genetics.DerivedStatsConfig{
		SpeedMultiplier:      cfg.DerivedStats.SpeedMultiplier,
		PerceptionMultiplier: cfg.DerivedStats.PerceptionMultiplier,
		BaseDecay:            cfg.DerivedStats.BaseDecay,
		MaxHunger:            cfg.DerivedStats.MaxHunger,
	}
}

// decisionOrder sorts living by alertRange descending, tiebreak id
// ascending — the fixed schedule both phases of a tick walk in.
func decisionOrder(living []*entities.Animal) []*entities.Animal {
	out := append([]*entities.Animal(nil), living...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Derived.AlertRange != out[j].Derived.AlertRange {
			return out[i].Derived.AlertRange > out[j].Derived.AlertRange
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func clampHunger(a *entities.Animal, cfg config.SimulationConfig) {
	a.Hunger = vecmath.Clamp(a.Hunger, 0, cfg.DerivedStats.MaxHunger)
}

func applyDecay(a *entities.Animal, cfg config.SimulationConfig) {
	a.Hunger -= a.Derived.HungerDecayRate
	clampHunger(a, cfg)
}

func stepToward(pos, target vecmath.Vec2, maxStep float64) vecmath.Vec2 {
	dir := target.Sub(pos)
	dist := dir.Length()
	if dist <= maxStep || dist == 0 {
		return target
	}
	return pos.Add(dir.Normalize().Scale(maxStep))
}

// moveAnimal advances a toward target by up to its own speed, clamps the
// result to world bounds, debits the per-unit movement cost (plus any
// extra per-unit cost such as the flee tax) for the distance actually
// covered after clamping, applies hunger decay, and keeps the spatial
// index authoritative for a's new position.
func moveAnimal(a *entities.Animal, idx *spatial.Index, target vecmath.Vec2, cfg config.SimulationConfig, extraCostPerUnit float64) {
	stepped := stepToward(a.Position, target, a.Derived.Speed)
	clamped := vecmath.ClampVec(stepped, cfg.World.Width, cfg.World.Height)
	d := vecmath.Distance(a.Position, clamped)
	a.Position = clamped
	a.Hunger -= cfg.Movement.MoveCost*d + extraCostPerUnit*d
	clampHunger(a, cfg)
	applyDecay(a, cfg)
	idx.Update(spatial.Entry{ID: string(a.ID), Position: a.Position, Size: a.Genome.Base.Size})
}

func buildCorpse(a *entities.Animal, veg *spatial.VegetationGrid, cfg config.SimulationConfig) entities.Corpse {
	gx, gy := veg.WorldToGrid(a.Position)
	return entities.Corpse{
		SourceSpecies: a.Species,
		SourceID:      a.ID,
		Position:      veg.GridToWorld(gx, gy),
		SourceSize:    a.Genome.Base.Size,
		FoodValue:     a.Genome.Base.Size * (a.Hunger / cfg.DerivedStats.MaxHunger) * cfg.Corpse.FoodMultiplier,
		DecayTimer:    cfg.Corpse.DecayTicks,
	}
}

func kill(a *entities.Animal, store *entities.Store, idx *spatial.Index, veg *spatial.VegetationGrid, cfg config.SimulationConfig, cause behavior.DeathCause, report *TickReport, deaths map[entities.AnimalID]bool) {
	deaths[a.ID] = true
	a.IsDead = true
	idx.Remove(string(a.ID))
	corpse := store.NewCorpse(buildCorpse(a, veg, cfg))
	store.RemoveAnimal(a.ID)
	report.Deaths = append(report.Deaths, DeathRecord{Animal: a, Cause: cause})
	report.CorpsesCreated = append(report.CorpsesCreated, corpse)
}

func reproduce(parent *entities.Animal, store *entities.Store, idx *spatial.Index, cfg config.SimulationConfig, rng *prng.PRNG, report *TickReport) {
	rates := genetics.MutationRates{
		Base:        cfg.Evolution.BaseMutationRate,
		Behavioural: cfg.Evolution.BehavioralMutationRate,
		Lifecycle:   cfg.Evolution.LifecycleMutationRate,
	}
	dsc := derivedStatsConfigFrom(cfg)
	litterSize := int(parent.Genome.Lifecycle.LitterSize)
	for i := 0; i < litterSize; i++ {
		living, _ := store.Count()
		if living >= cfg.Entities.MaxEntities {
			break // CapacityExceeded: silent skip, no event
		}
		genome := genetics.Inherit(parent.Genome, rates, rng)
		offsetX := rng.FloatRange(-cfg.Reproduction.OffspringSpawnMax, cfg.Reproduction.OffspringSpawnMax)
		offsetY := rng.FloatRange(-cfg.Reproduction.OffspringSpawnMax, cfg.Reproduction.OffspringSpawnMax)
		pos := vecmath.ClampVec(parent.Position.Add(vecmath.Vec2{X: offsetX, Y: offsetY}), cfg.World.Width, cfg.World.Height)

		child := store.NewAnimal(entities.Animal{
			Species:                    parent.Species,
			Genome:                     genome,
			Derived:                    genetics.Derive(genome.Base, dsc),
			Position:                   pos,
			Hunger:                     cfg.Entities.InitialHungerOffspring,
			ParentID:                   parent.ID,
			Generation:                 parent.Generation + 1,
		})
		idx.Insert(spatial.Entry{ID: string(child.ID), Position: child.Position, Size: child.Genome.Base.Size})
		report.Born = append(report.Born, child)
	}
}

func actionDetail(act behavior.Action) string {
	switch act.Kind {
	case behavior.Die:
		return fmt.Sprintf("cause=%s", act.Cause)
	case behavior.Attack:
		return fmt.Sprintf("target=%s", act.PreyID)
	case behavior.Eat:
		return fmt.Sprintf("kind=%d corpse=%s", act.FoodKind, act.CorpseID)
	default:
		return ""
	}
}

// Tick runs one full decision+execution cycle. It is the only place
// state mutates while the simulation steps; outside it, only world
// construction (Sim.New, Sim.Reset, Sim.SpawnAnimal) writes to the store.
func Tick(store *entities.Store, idx *spatial.Index, veg *spatial.VegetationGrid, cfg config.SimulationConfig, rng *prng.PRNG, tickNum int, sink ActionHistorySink) TickReport {
	report := TickReport{Tick: tickNum}
	decisionCfg := decisionConfigFrom(cfg)

	// Decision phase: read-only snapshot, fixed order, no mutation.
	living := store.GetLivingAnimals()
	byID := make(map[entities.AnimalID]*entities.Animal, len(living))
	for _, a := range living {
		byID[a.ID] = a
	}
	order := decisionOrder(living)
	corpseSnapshot := store.GetCorpses()

	actions := make(map[entities.AnimalID]behavior.Action, len(order))
	for _, a := range order {
		entries := idx.QueryRadius(a.Position, a.Derived.AlertRange)
		nearby := make([]*entities.Animal, 0, len(entries))
		for _, e := range entries {
			if entities.AnimalID(e.ID) == a.ID {
				continue
			}
			if other, ok := byID[entities.AnimalID(e.ID)]; ok {
				nearby = append(nearby, other)
			}
		}
		view := behavior.View{Self: a, Index: idx, Veg: veg, Corpses: corpseSnapshot, AllByID: byID}
		actions[a.ID] = behavior.Decide(a, view, nearby, decisionCfg, rng)
		if sink != nil {
			act := actions[a.ID]
			sink(a.ID, tickNum, act.Kind, actionDetail(act))
		}
	}

	// Execution phase: same order, deaths-skip.
	deaths := make(map[entities.AnimalID]bool, len(order))
	for _, a := range order {
		if deaths[a.ID] {
			continue
		}
		act := actions[a.ID]
		switch act.Kind {
		case behavior.Die:
			kill(a, store, idx, veg, cfg, act.Cause, &report, deaths)

		case behavior.Flee:
			moveAnimal(a, idx, act.TargetPosition, cfg, cfg.Movement.FleeCostBonus)

		case behavior.Eat:
			switch act.FoodKind {
			case behavior.FoodVegetation:
				gx, gy := veg.WorldToGrid(a.Position)
				if veg.Has(gx, gy) {
					veg.Remove(gx, gy)
					a.Hunger += cfg.Vegetation.FoodValue
					clampHunger(a, cfg)
				}
			case behavior.FoodCorpse:
				if c, ok := store.GetCorpse(act.CorpseID); ok && c.FoodValue > 0 {
					take := math.Min(c.FoodValue, cfg.Corpse.PerTickCap)
					a.Hunger += take
					clampHunger(a, cfg)
					c.FoodValue -= take
					if c.Exhausted() {
						store.RemoveCorpse(c.ID)
						report.CorpsesRemoved = append(report.CorpsesRemoved, c.ID)
					}
				}
			}
			applyDecay(a, cfg)

		case behavior.MoveToFood:
			moveAnimal(a, idx, act.TargetPosition, cfg, 0)

		case behavior.Attack:
			if target, ok := store.GetAnimal(act.PreyID); ok && !target.IsDead && a.Derived.AttackPower > target.Derived.Defense {
				kill(target, store, idx, veg, cfg, behavior.Killed, &report, deaths)
				a.Hunger += a.Genome.Base.Size * 10
				clampHunger(a, cfg)
			}
			applyDecay(a, cfg)

		case behavior.Reproduce:
			reproduce(a, store, idx, cfg, rng, &report)
			a.Hunger -= cfg.Reproduction.Cost * cfg.DerivedStats.MaxHunger
			clampHunger(a, cfg)
			a.TicksSinceLastReproduction = 0
			applyDecay(a, cfg)

		case behavior.Drift:
			moveAnimal(a, idx, act.TargetPosition, cfg, 0)

		case behavior.Stay:
			applyDecay(a, cfg)
		}
	}

	// Every still-living animal from the pre-tick snapshot ages.
	for _, a := range living {
		if deaths[a.ID] {
			continue
		}
		a.Age++
		a.TicksSinceLastReproduction++
	}

	// Corpse aging/removal.
	for _, c := range store.GetCorpses() {
		c.DecayTimer--
		if c.Exhausted() {
			store.RemoveCorpse(c.ID)
			report.CorpsesRemoved = append(report.CorpsesRemoved, c.ID)
		}
	}

	veg.Spread(rng, cfg.Vegetation.SpreadRate)

	report.DeerCount = len(store.GetAnimalsBySpecies(species.Deer))
	report.WolfCount = len(store.GetAnimalsBySpecies(species.Wolf))
	report.VegCount = veg.Count()
	return report
}
