package core

import (
	"testing"

	"github.com/ViktorDolezel/evolution-sandbox/config"
	"github.com/ViktorDolezel/evolution-sandbox/vecmath"
)

func TestNewSeedsConfiguredInitialPopulation(t *testing.T) {
	cfg := config.Default()
	cfg.Entities.InitialDeerCount = 5
	cfg.Entities.InitialWolfCount = 2
	sim := New(cfg, 42)

	if got := sim.DeerCount(); got != 5 {
		t.Errorf("DeerCount = %d, want 5", got)
	}
	if got := sim.WolfCount(); got != 2 {
		t.Errorf("WolfCount = %d, want 2", got)
	}
	if got := sim.CurrentTick(); got != 0 {
		t.Errorf("CurrentTick = %d, want 0", got)
	}
}

func TestNewHonorsInitialSpawnMinDistance(t *testing.T) {
	// World stays at its default size and the population small relative
	// to it, so the rejection-sampling loop in drawSpawnPosition has
	// ample room to satisfy the minimum distance within its bounded
	// attempt count for any seed.
	cfg := config.Default()
	cfg.Entities.InitialDeerCount = 10
	cfg.Entities.InitialWolfCount = 5
	cfg.Entities.InitialSpawnMinDist = 5

	sim := New(cfg, 42)
	living := sim.LivingAnimals()

	violations := 0
	for i := range living {
		for j := i + 1; j < len(living); j++ {
			if vecmath.Distance(living[i].Position, living[j].Position) < cfg.Entities.InitialSpawnMinDist {
				violations++
			}
		}
	}
	if violations > 0 {
		t.Errorf("%d of %d pairs placed closer than InitialSpawnMinDist=%v", violations, len(living)*(len(living)-1)/2, cfg.Entities.InitialSpawnMinDist)
	}
}

func TestStepAdvancesTickAndEmitsTickEvent(t *testing.T) {
	sim := New(config.Default(), 7)

	var got Event
	fired := false
	sim.On(EventTick, func(ev Event) {
		fired = true
		got = ev
	})

	sim.Step()

	if !fired {
		t.Fatal("expected EventTick to fire")
	}
	if got.Tick != 1 {
		t.Errorf("Event.Tick = %d, want 1", got.Tick)
	}
	if sim.CurrentTick() != 1 {
		t.Errorf("CurrentTick = %d, want 1", sim.CurrentTick())
	}
}

func TestResetRebuildsWorldAndEmitsResetEvent(t *testing.T) {
	sim := New(config.Default(), 7)
	sim.Step()
	sim.Step()

	fired := false
	sim.On(EventReset, func(ev Event) { fired = true })

	sim.Reset()

	if !fired {
		t.Error("expected EventReset to fire")
	}
	if sim.CurrentTick() != 0 {
		t.Errorf("CurrentTick = %d after Reset, want 0", sim.CurrentTick())
	}
}

func TestResetWithNewSeedChangesSeed(t *testing.T) {
	sim := New(config.Default(), 7)
	sim.Reset(99)

	if sim.Seed() != 99 {
		t.Errorf("Seed = %d, want 99", sim.Seed())
	}
}

func TestSetSpeedClampsToConfiguredBounds(t *testing.T) {
	cfg := config.Default()
	cfg.UI.MinSpeed = 0.5
	cfg.UI.MaxSpeed = 4
	sim := New(cfg, 1)

	sim.SetSpeed(100)
	if sim.speed != 4 {
		t.Errorf("speed = %v, want clamped to 4", sim.speed)
	}

	sim.SetSpeed(0)
	if sim.speed != 0.5 {
		t.Errorf("speed = %v, want clamped to 0.5", sim.speed)
	}
}

func TestOffRemovesListener(t *testing.T) {
	sim := New(config.Default(), 1)
	calls := 0
	token := sim.On(EventTick, func(ev Event) { calls++ })
	sim.Off(EventTick, token)

	sim.Step()

	if calls != 0 {
		t.Errorf("listener fired %d times after Off, want 0", calls)
	}
}

func TestPauseBeforeStartIsNoop(t *testing.T) {
	sim := New(config.Default(), 1)
	sim.Pause() // must not panic or block
}
