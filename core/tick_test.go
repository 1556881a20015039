package core

import (
	"testing"

	"github.com/ViktorDolezel/evolution-sandbox/behavior"
	"github.com/ViktorDolezel/evolution-sandbox/config"
	"github.com/ViktorDolezel/evolution-sandbox/entities"
	"github.com/ViktorDolezel/evolution-sandbox/genetics"
	"github.com/ViktorDolezel/evolution-sandbox/prng"
	"github.com/ViktorDolezel/evolution-sandbox/spatial"
	"github.com/ViktorDolezel/evolution-sandbox/species"
	"github.com/ViktorDolezel/evolution-sandbox/vecmath"
)

func newTestWorld(cfg config.SimulationConfig) (*entities.Store, *spatial.Index, *spatial.VegetationGrid) {
	store := entities.NewStore()
	idx := spatial.NewIndex(cfg.Performance.SpatialIndexBucketSize)
	veg := spatial.NewVegetationGrid(cfg.World.Width, cfg.World.Height, cfg.World.Tile)
	return store, idx, veg
}

func spawn(store *entities.Store, idx *spatial.Index, cfg config.SimulationConfig, tag species.Tag, pos vecmath.Vec2, hunger float64) *entities.Animal {
	genome := species.Baseline(tag)
	a := store.NewAnimal(entities.Animal{
		Species:  tag,
		Genome:   genome,
		Derived:  genetics.Derive(genome.Base, derivedStatsConfigFrom(cfg)),
		Position: pos,
		Hunger:   hunger,
	})
	idx.Insert(spatial.Entry{ID: string(a.ID), Position: a.Position, Size: a.Genome.Base.Size})
	return a
}

func TestTickStarvingAnimalDiesAndLeavesCorpse(t *testing.T) {
	cfg := config.Default()
	store, idx, veg := newTestWorld(cfg)
	deer := spawn(store, idx, cfg, species.Deer, vecmath.Vec2{X: 10, Y: 10}, 0)

	report := Tick(store, idx, veg, cfg, prng.New(1), 1, nil)

	if len(report.Deaths) != 1 || report.Deaths[0].Animal.ID != deer.ID || report.Deaths[0].Cause.String() != "starvation" {
		t.Fatalf("report.Deaths = %+v, want one starvation death for %s", report.Deaths, deer.ID)
	}
	if len(report.CorpsesCreated) != 1 {
		t.Fatalf("report.CorpsesCreated = %+v, want exactly one corpse", report.CorpsesCreated)
	}
	if _, ok := store.GetAnimal(deer.ID); ok {
		t.Error("expected dead animal removed from store")
	}
	if _, ok := idx.Get(string(deer.ID)); ok {
		t.Error("expected dead animal removed from spatial index")
	}
}

func TestTickOldAgeDeath(t *testing.T) {
	cfg := config.Default()
	store, idx, veg := newTestWorld(cfg)
	deer := spawn(store, idx, cfg, species.Deer, vecmath.Vec2{X: 10, Y: 10}, 80)
	deer.Age = int(deer.Genome.Lifecycle.MaxAge)

	report := Tick(store, idx, veg, cfg, prng.New(1), 1, nil)

	if len(report.Deaths) != 1 || report.Deaths[0].Cause.String() != "old_age" {
		t.Fatalf("report.Deaths = %+v, want one old_age death", report.Deaths)
	}
}

func TestTickAgesEverySurvivingAnimal(t *testing.T) {
	cfg := config.Default()
	store, idx, veg := newTestWorld(cfg)
	deer := spawn(store, idx, cfg, species.Deer, vecmath.Vec2{X: 250, Y: 250}, 80)

	Tick(store, idx, veg, cfg, prng.New(1), 1, nil)

	got, ok := store.GetAnimal(deer.ID)
	if !ok {
		t.Fatal("expected animal to survive the tick")
	}
	if got.Age != 1 {
		t.Errorf("Age = %d, want 1", got.Age)
	}
	if got.TicksSinceLastReproduction != 1 {
		t.Errorf("TicksSinceLastReproduction = %d, want 1", got.TicksSinceLastReproduction)
	}
}

func TestTickReproduceResetsCooldownToOneAfterAging(t *testing.T) {
	cfg := config.Default()
	store, idx, veg := newTestWorld(cfg)
	deer := spawn(store, idx, cfg, species.Deer, vecmath.Vec2{X: 250, Y: 250}, 99)
	deer.Age = int(deer.Genome.Lifecycle.MaturityAge) + 1
	deer.TicksSinceLastReproduction = 1000
	deer.Genome.Behavioural.ReproductiveUrge = 1.0

	report := Tick(store, idx, veg, cfg, prng.New(1), 1, nil)

	got, ok := store.GetAnimal(deer.ID)
	if !ok {
		t.Fatal("expected parent to survive reproduction")
	}
	if got.TicksSinceLastReproduction != 1 {
		t.Errorf("TicksSinceLastReproduction = %d, want 1 (reset to 0 then aged by 1)", got.TicksSinceLastReproduction)
	}
	if len(report.Born) == 0 {
		t.Error("expected at least one offspring in report.Born")
	}
}

func TestTickEatingVegetationRemovesTileAndRaisesHunger(t *testing.T) {
	cfg := config.Default()
	store, idx, veg := newTestWorld(cfg)
	gx, gy := veg.WorldToGrid(vecmath.Vec2{X: 5, Y: 5})
	veg.Set(gx, gy)
	deer := spawn(store, idx, cfg, species.Deer, vecmath.Vec2{X: 5, Y: 5}, 40)

	Tick(store, idx, veg, cfg, prng.New(1), 1, nil)

	if veg.Has(gx, gy) {
		t.Error("expected vegetation tile consumed")
	}
	got, _ := store.GetAnimal(deer.ID)
	if got.Hunger <= 40 {
		t.Errorf("Hunger = %v, want increase from eating", got.Hunger)
	}
}

func TestTickVegetationSpreadsEvenWithNoAnimals(t *testing.T) {
	cfg := config.Default()
	cfg.Vegetation.SpreadRate = 1.0
	store, idx, veg := newTestWorld(cfg)
	gx, gy := veg.WorldToGrid(vecmath.Vec2{X: 5, Y: 5})
	veg.Set(gx, gy)
	before := veg.Count()

	report := Tick(store, idx, veg, cfg, prng.New(1), 1, nil)

	if report.VegCount <= before {
		t.Errorf("VegCount = %d, want growth from spread_rate=1", report.VegCount)
	}
}

func TestTickActionHistorySinkReceivesOneRecordPerLivingAnimal(t *testing.T) {
	cfg := config.Default()
	store, idx, veg := newTestWorld(cfg)
	spawn(store, idx, cfg, species.Deer, vecmath.Vec2{X: 250, Y: 250}, 80)
	spawn(store, idx, cfg, species.Wolf, vecmath.Vec2{X: 10, Y: 10}, 80)

	seen := make(map[entities.AnimalID]bool)
	sink := func(id entities.AnimalID, tick int, action behavior.ActionKind, detail string) {
		if tick != 1 {
			t.Errorf("sink tick = %d, want 1", tick)
		}
		seen[id] = true
	}

	Tick(store, idx, veg, cfg, prng.New(1), 1, sink)

	if len(seen) != 2 {
		t.Errorf("sink fired for %d animals, want 2", len(seen))
	}
}
