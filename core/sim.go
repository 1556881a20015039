package core

import (
	"sync"
	"time"

	"github.com/ViktorDolezel/evolution-sandbox/config"
	"github.com/ViktorDolezel/evolution-sandbox/entities"
	"github.com/ViktorDolezel/evolution-sandbox/genetics"
	"github.com/ViktorDolezel/evolution-sandbox/prng"
	"github.com/ViktorDolezel/evolution-sandbox/spatial"
	"github.com/ViktorDolezel/evolution-sandbox/species"
	"github.com/ViktorDolezel/evolution-sandbox/vecmath"
)

// Sim is the simulation façade: the only contract a shell imports.
// Everything else in this module is reachable only through it or through
// read-only snapshot queries. Its wall-clock loop mirrors the teacher's
// own ticker-driven update loop (web_interface.go's run loop) minus the
// web transport: a time.Ticker paced by TickRate*speed drives Step in a
// background goroutine started by Start and stopped by Pause.
type Sim struct {
	mu sync.Mutex

	cfg        config.SimulationConfig
	seed       uint32
	rng        *prng.PRNG
	store      *entities.Store
	index      *spatial.Index
	veg        *spatial.VegetationGrid
	tick       int
	bus        *EventBus
	sink       ActionHistorySink
	speed      float64
	cancelLoop chan struct{}
	running    bool
}

// New validates cfg, seeds a fresh world and returns a ready Sim. Seed
// accepts any uint32; the same seed and cfg always build the same world.
func New(cfg config.SimulationConfig, seed uint32) *Sim {
	cfg, _ = config.Validate(cfg)
	s := &Sim{
		cfg:   cfg,
		seed:  seed,
		bus:   NewEventBus(),
		speed: 1,
	}
	s.rebuild()
	return s
}

func (s *Sim) rebuild() {
	s.rng = prng.New(s.seed)
	s.store = entities.NewStore()
	s.index = spatial.NewIndex(s.cfg.Performance.SpatialIndexBucketSize)
	s.veg = spatial.NewVegetationGrid(s.cfg.World.Width, s.cfg.World.Height, s.cfg.World.Tile)
	s.tick = 0

	s.veg.Seed(s.rng, s.cfg.Vegetation.InitialDensity)
	var placed []vecmath.Vec2
	placed = s.spawnInitial(species.Deer, s.cfg.Entities.InitialDeerCount, placed)
	placed = s.spawnInitial(species.Wolf, s.cfg.Entities.InitialWolfCount, placed)
}

// initialSpawnAttempts bounds the rejection-sampling loop drawSpawnPosition
// runs to honor InitialSpawnMinDist: initialisation never blocks, so a
// position that still violates spacing after this many draws is accepted
// anyway, consistent with spec.md §7's never-retry-indefinitely philosophy.
const initialSpawnAttempts = 20

// spawnInitial places count animals of tag, rejection-sampling each
// position against every position already placed this rebuild (across
// both species) so InitialSpawnMinDist is honored world-wide, not just
// within a species. It returns the updated placed-positions list so the
// next species' spawn can keep drawing against the whole population.
func (s *Sim) spawnInitial(tag species.Tag, count int, placed []vecmath.Vec2) []vecmath.Vec2 {
	dsc := derivedStatsConfigFrom(s.cfg)
	for i := 0; i < count; i++ {
		genome := species.Baseline(tag)
		pos := s.drawSpawnPosition(placed)
		a := s.store.NewAnimal(entities.Animal{
			Species:  tag,
			Genome:   genome,
			Derived:  genetics.Derive(genome.Base, dsc),
			Position: pos,
			Hunger:   s.cfg.Entities.InitialHungerSpawn,
		})
		s.index.Insert(spatial.Entry{ID: string(a.ID), Position: a.Position, Size: a.Genome.Base.Size})
		placed = append(placed, pos)
	}
	return placed
}

// drawSpawnPosition draws a uniform random world position, redrawing up
// to initialSpawnAttempts times if the candidate is closer than
// InitialSpawnMinDist to any already-placed position. A min distance of
// zero (or below) skips the check entirely. If every attempt is rejected
// the last draw is kept rather than blocking world initialisation.
func (s *Sim) drawSpawnPosition(placed []vecmath.Vec2) vecmath.Vec2 {
	minDist := s.cfg.Entities.InitialSpawnMinDist
	var candidate vecmath.Vec2
	for attempt := 0; attempt < initialSpawnAttempts; attempt++ {
		candidate = vecmath.Vec2{
			X: s.rng.FloatRange(0, s.cfg.World.Width),
			Y: s.rng.FloatRange(0, s.cfg.World.Height),
		}
		if minDist <= 0 || farEnoughFromAll(candidate, placed, minDist) {
			break
		}
	}
	return candidate
}

func farEnoughFromAll(candidate vecmath.Vec2, placed []vecmath.Vec2, minDist float64) bool {
	for _, p := range placed {
		if vecmath.Distance(candidate, p) < minDist {
			return false
		}
	}
	return true
}

// SpawnAnimal inserts a caller-built animal directly into the world
// (scenario setup, tests) bypassing the baseline/mutation pipeline. Its
// Derived stats are always recomputed from its Base so invariant 6 holds.
func (s *Sim) SpawnAnimal(tag species.Tag, genome genetics.Genome, pos vecmath.Vec2, hunger float64) *entities.Animal {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.store.NewAnimal(entities.Animal{
		Species:  tag,
		Genome:   genome,
		Derived:  genetics.Derive(genome.Base, derivedStatsConfigFrom(s.cfg)),
		Position: pos,
		Hunger:   hunger,
	})
	s.index.Insert(spatial.Entry{ID: string(a.ID), Position: a.Position, Size: a.Genome.Base.Size})
	return a
}

// Step runs exactly one tick and emits the events it produced.
func (s *Sim) Step() {
	s.mu.Lock()
	s.tick++
	report := Tick(s.store, s.index, s.veg, s.cfg, s.rng, s.tick, s.sink)
	s.mu.Unlock()
	s.emitReport(report)
}

func (s *Sim) emitReport(report TickReport) {
	for _, d := range report.Deaths {
		s.bus.Emit(Event{Kind: EventAnimalDied, Animal: d.Animal, Cause: d.Cause})
	}
	for _, a := range report.Born {
		s.bus.Emit(Event{Kind: EventAnimalBorn, Animal: a})
	}
	for _, c := range report.CorpsesCreated {
		s.bus.Emit(Event{Kind: EventCorpseCreated, Corpse: c})
	}
	for _, id := range report.CorpsesRemoved {
		s.bus.Emit(Event{Kind: EventCorpseRemoved, CorpseID: id})
	}
	s.bus.Emit(Event{Kind: EventTick, Tick: report.Tick, DeerCount: report.DeerCount, WolfCount: report.WolfCount, VegCount: report.VegCount})
}

// Start begins a wall-clock loop that calls Step at TickRate*speed Hz
// until Pause is called. Starting an already-running Sim is a no-op.
func (s *Sim) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	cancel := make(chan struct{})
	s.cancelLoop = cancel
	interval := s.tickInterval()
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-cancel:
				return
			case <-ticker.C:
				s.Step()
			}
		}
	}()
	s.bus.Emit(Event{Kind: EventResumed})
}

func (s *Sim) tickInterval() time.Duration {
	hz := s.cfg.UI.TickRate * s.speed
	if hz <= 0 {
		hz = 1
	}
	return time.Duration(float64(time.Second) / hz)
}

// Pause stops the wall-clock loop started by Start. Idempotent.
func (s *Sim) Pause() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.cancelLoop)
	s.mu.Unlock()
	s.bus.Emit(Event{Kind: EventPaused})
}

// Resume is an alias for Start kept for symmetry with Pause; both are
// idempotent and a pause/resume pair is a no-op on simulation state.
func (s *Sim) Resume() {
	s.Start()
}

// SetSpeed clamps x to the configured [MinSpeed,MaxSpeed] range and, if
// the loop is running, restarts its ticker at the new rate.
func (s *Sim) SetSpeed(x float64) {
	s.mu.Lock()
	x = vecmath.Clamp(x, s.cfg.UI.MinSpeed, s.cfg.UI.MaxSpeed)
	s.speed = x
	running := s.running
	s.mu.Unlock()
	if running {
		s.Pause()
		s.Start()
	}
}

// Reset rebuilds the world. With no argument the original seed is
// reused; a single seed argument replaces it.
func (s *Sim) Reset(seed ...uint32) {
	s.mu.Lock()
	if len(seed) > 0 {
		s.seed = seed[0]
	}
	s.rebuild()
	s.mu.Unlock()
	s.bus.Emit(Event{Kind: EventReset})
}

// SetActionHistorySink installs (or clears, with nil) the optional
// per-animal action recorder the tick executor calls during decision.
func (s *Sim) SetActionHistorySink(sink ActionHistorySink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}

// On subscribes fn to events of kind k and returns an unsubscribe token.
func (s *Sim) On(k EventKind, fn Listener) int {
	return s.bus.Subscribe(k, fn)
}

// Off removes a listener previously registered with On.
func (s *Sim) Off(k EventKind, token int) {
	s.bus.Unsubscribe(k, token)
}

// LivingAnimals returns every living animal, sorted by id ascending.
func (s *Sim) LivingAnimals() []*entities.Animal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetLivingAnimals()
}

// AnimalsBySpecies filters LivingAnimals to a single species.
func (s *Sim) AnimalsBySpecies(tag species.Tag) []*entities.Animal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetAnimalsBySpecies(tag)
}

// Corpses returns every corpse record, sorted by id ascending.
func (s *Sim) Corpses() []*entities.Corpse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.GetCorpses()
}

// VegetationPositions returns the world-space center of every occupied
// vegetation cell.
func (s *Sim) VegetationPositions() []vecmath.Vec2 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.veg.Positions()
}

// DeerCount returns the current number of living deer.
func (s *Sim) DeerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.store.GetAnimalsBySpecies(species.Deer))
}

// WolfCount returns the current number of living wolves.
func (s *Sim) WolfCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.store.GetAnimalsBySpecies(species.Wolf))
}

// CurrentTick returns the number of ticks executed since the last Reset.
func (s *Sim) CurrentTick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Seed returns the seed the current world was built from.
func (s *Sim) Seed() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}
