// Package config defines the simulation's typed parameter bundle: nested
// groups of bounded numeric fields, a validator that clamps and applies
// cross-field rules, and a small set of named presets. The shape and
// JSON struct-tag style follow the teacher's own SimulationConfig
// (config.go) even though every field's meaning is specific to this
// ecosystem's predator/prey rules rather than the teacher's broader
// biome/physics system.
package config

import "fmt"

// WorldConfig controls world size and the vegetation tile grid.
type WorldConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Tile   float64 `json:"tile"`
}

// VegetationConfig controls vegetation density, spread and nutrition.
type VegetationConfig struct {
	InitialDensity float64 `json:"initial_density"`
	SpreadRate     float64 `json:"spread_rate"`
	FoodValue      float64 `json:"food_value"`
}

// EntitiesConfig controls initial population and hard caps.
type EntitiesConfig struct {
	InitialDeerCount       int     `json:"initial_deer_count"`
	InitialWolfCount       int     `json:"initial_wolf_count"`
	MaxEntities            int     `json:"max_entities"`
	InitialHungerSpawn     float64 `json:"initial_hunger_spawn"`
	InitialHungerOffspring float64 `json:"initial_hunger_offspring"`
	InitialSpawnMinDist    float64 `json:"initial_spawn_min_distance"`
}

// DerivedStatsConfig holds the coefficients used by genetics.Derive.
type DerivedStatsConfig struct {
	SpeedMultiplier      float64 `json:"speed_multiplier"`
	PerceptionMultiplier float64 `json:"perception_multiplier"`
	BaseDecay            float64 `json:"base_decay"`
	MaxHunger            float64 `json:"max_hunger"`
}

// MovementConfig holds per-distance-unit energy costs.
type MovementConfig struct {
	MoveCost      float64 `json:"move_cost"`
	FleeCostBonus float64 `json:"flee_cost_bonus"`
}

// ReproductionConfig holds reproduction gating and cost parameters.
type ReproductionConfig struct {
	Cost               float64 `json:"cost"`
	SafetyBuffer       float64 `json:"safety_buffer"`
	CooldownTicks      int     `json:"cooldown_ticks"`
	OffspringSpawnMax  float64 `json:"offspring_spawn_offset_max"`
}

// EvolutionConfig holds mutation rates per attribute category.
type EvolutionConfig struct {
	BaseMutationRate       float64 `json:"base_mutation_rate"`
	BehavioralMutationRate float64 `json:"behavioral_mutation_rate"`
	LifecycleMutationRate  float64 `json:"lifecycle_mutation_rate"`
}

// CorpseConfig holds corpse decay/nutrition parameters.
type CorpseConfig struct {
	FoodMultiplier float64 `json:"food_multiplier"`
	DecayTicks     int     `json:"decay_ticks"`
	PerTickCap     float64 `json:"per_tick_cap"`
}

// PerformanceConfig holds spatial-indexing tuning.
type PerformanceConfig struct {
	SpatialIndexBucketSize float64 `json:"spatial_index_bucket_size"`
}

// UIConfig holds shell-facing pacing parameters the core still threads
// through (tick rate, speed bounds) without otherwise caring how a shell
// renders anything.
type UIConfig struct {
	TickRate    float64 `json:"tick_rate"`
	MinSpeed    float64 `json:"min_speed"`
	MaxSpeed    float64 `json:"max_speed"`
}

// SimulationConfig is the full, nested parameter bundle.
type SimulationConfig struct {
	World        WorldConfig        `json:"world"`
	Vegetation   VegetationConfig   `json:"vegetation"`
	Entities     EntitiesConfig     `json:"entities"`
	DerivedStats DerivedStatsConfig `json:"derived_stats"`
	Movement     MovementConfig     `json:"movement"`
	Reproduction ReproductionConfig `json:"reproduction"`
	Evolution    EvolutionConfig    `json:"evolution"`
	Corpse       CorpseConfig       `json:"corpse"`
	Performance  PerformanceConfig  `json:"performance"`
	UI           UIConfig           `json:"ui"`
}

// Warning describes a single clamp or cross-field correction applied by
// Validate. It is informational only; configuration is never rejected.
type Warning struct {
	Field  string
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Detail)
}

// bound declares a [min,max] pair for a single field, used uniformly by
// Validate so every numeric field's legal range is stated in one place.
type bound struct {
	min, max float64
}

// Default returns the out-of-the-box configuration. All values are inside
// their own declared bounds, so Validate(Default()) never emits warnings.
func Default() SimulationConfig {
	return SimulationConfig{
		World: WorldConfig{
			Width:  500,
			Height: 500,
			Tile:   10,
		},
		Vegetation: VegetationConfig{
			InitialDensity: 0.3,
			SpreadRate:     0.02,
			FoodValue:      8,
		},
		Entities: EntitiesConfig{
			InitialDeerCount:       30,
			InitialWolfCount:       8,
			MaxEntities:            600,
			InitialHungerSpawn:     70,
			InitialHungerOffspring: 50,
			InitialSpawnMinDist:    2,
		},
		DerivedStats: DerivedStatsConfig{
			SpeedMultiplier:      1.0,
			PerceptionMultiplier: 1.0,
			BaseDecay:            0.05,
			MaxHunger:            100,
		},
		Movement: MovementConfig{
			MoveCost:      0.05,
			FleeCostBonus: 0.1,
		},
		Reproduction: ReproductionConfig{
			Cost:              0.2,
			SafetyBuffer:      0.1,
			CooldownTicks:     40,
			OffspringSpawnMax: 3,
		},
		Evolution: EvolutionConfig{
			BaseMutationRate:       0.05,
			BehavioralMutationRate: 0.05,
			LifecycleMutationRate:  0.03,
		},
		Corpse: CorpseConfig{
			FoodMultiplier: 1.5,
			DecayTicks:     80,
			PerTickCap:     20,
		},
		Performance: PerformanceConfig{
			SpatialIndexBucketSize: 40,
		},
		UI: UIConfig{
			TickRate: 10,
			MinSpeed: 0.1,
			MaxSpeed: 10,
		},
	}
}

// Validate clamps every field to its declared bounds, applies the
// documented cross-field rules, and returns the corrected configuration
// plus a list of warnings describing what changed. Configuration is never
// rejected; this is the only validation entry point.
func Validate(c SimulationConfig) (SimulationConfig, []Warning) {
	var warnings []Warning
	clampField := func(name string, v *float64, b bound) {
		if *v < b.min {
			warnings = append(warnings, Warning{name, fmt.Sprintf("%v below minimum %v, clamped", *v, b.min)})
			*v = b.min
		} else if *v > b.max {
			warnings = append(warnings, Warning{name, fmt.Sprintf("%v above maximum %v, clamped", *v, b.max)})
			*v = b.max
		}
	}
	clampInt := func(name string, v *int, lo, hi int) {
		if *v < lo {
			warnings = append(warnings, Warning{name, fmt.Sprintf("%d below minimum %d, clamped", *v, lo)})
			*v = lo
		} else if *v > hi {
			warnings = append(warnings, Warning{name, fmt.Sprintf("%d above maximum %d, clamped", *v, hi)})
			*v = hi
		}
	}

	clampField("world.width", &c.World.Width, bound{10, 10000})
	clampField("world.height", &c.World.Height, bound{10, 10000})
	clampField("world.tile", &c.World.Tile, bound{1, 100})

	clampField("vegetation.initial_density", &c.Vegetation.InitialDensity, bound{0, 1})
	clampField("vegetation.spread_rate", &c.Vegetation.SpreadRate, bound{0, 1})
	clampField("vegetation.food_value", &c.Vegetation.FoodValue, bound{0, 1000})

	clampInt("entities.initial_deer_count", &c.Entities.InitialDeerCount, 0, 100000)
	clampInt("entities.initial_wolf_count", &c.Entities.InitialWolfCount, 0, 100000)
	clampInt("entities.max_entities", &c.Entities.MaxEntities, 1, 1000000)
	clampField("entities.initial_hunger_spawn", &c.Entities.InitialHungerSpawn, bound{0, c.DerivedStats.MaxHunger})
	clampField("entities.initial_hunger_offspring", &c.Entities.InitialHungerOffspring, bound{0, c.DerivedStats.MaxHunger})
	clampField("entities.initial_spawn_min_distance", &c.Entities.InitialSpawnMinDist, bound{0, 1000})

	clampField("derived_stats.speed_multiplier", &c.DerivedStats.SpeedMultiplier, bound{0.01, 100})
	clampField("derived_stats.perception_multiplier", &c.DerivedStats.PerceptionMultiplier, bound{0.01, 100})
	clampField("derived_stats.base_decay", &c.DerivedStats.BaseDecay, bound{0, 10})
	clampField("derived_stats.max_hunger", &c.DerivedStats.MaxHunger, bound{1, 100000})

	clampField("movement.move_cost", &c.Movement.MoveCost, bound{0, 100})
	clampField("movement.flee_cost_bonus", &c.Movement.FleeCostBonus, bound{0, 100})

	clampField("reproduction.cost", &c.Reproduction.Cost, bound{0.01, 0.9})
	clampField("reproduction.safety_buffer", &c.Reproduction.SafetyBuffer, bound{0, 0.9})
	clampInt("reproduction.cooldown_ticks", &c.Reproduction.CooldownTicks, 0, 100000)
	clampField("reproduction.offspring_spawn_offset_max", &c.Reproduction.OffspringSpawnMax, bound{0, 1000})

	// REPRODUCTION_COST + REPRODUCTION_SAFETY_BUFFER <= 0.95; rescale
	// proportionally (preserving their ratio) if the sum exceeds it.
	if sum := c.Reproduction.Cost + c.Reproduction.SafetyBuffer; sum > 0.95 {
		scale := 0.95 / sum
		c.Reproduction.Cost *= scale
		c.Reproduction.SafetyBuffer *= scale
		warnings = append(warnings, Warning{"reproduction.cost+safety_buffer", fmt.Sprintf("sum %v exceeded 0.95, rescaled proportionally", sum)})
	}

	clampField("evolution.base_mutation_rate", &c.Evolution.BaseMutationRate, bound{0, 5})
	clampField("evolution.behavioral_mutation_rate", &c.Evolution.BehavioralMutationRate, bound{0, 5})
	clampField("evolution.lifecycle_mutation_rate", &c.Evolution.LifecycleMutationRate, bound{0, 5})

	clampField("corpse.food_multiplier", &c.Corpse.FoodMultiplier, bound{0, 100})
	clampInt("corpse.decay_ticks", &c.Corpse.DecayTicks, 1, 100000)
	clampField("corpse.per_tick_cap", &c.Corpse.PerTickCap, bound{0.01, c.DerivedStats.MaxHunger})

	// SPATIAL_INDEX_BUCKET_SIZE should cover the largest possible alert
	// range (perception=20 * perception_multiplier). This is a warning,
	// not a clamp: the spatial index widens its own query footprint to
	// stay correct even if this rule is violated.
	clampField("performance.spatial_index_bucket_size", &c.Performance.SpatialIndexBucketSize, bound{1, 10000})
	maxAlertRange := 20 * c.DerivedStats.PerceptionMultiplier
	if c.Performance.SpatialIndexBucketSize < maxAlertRange {
		warnings = append(warnings, Warning{"performance.spatial_index_bucket_size", fmt.Sprintf("%v is smaller than the largest possible alert range %v; queries remain correct but less efficient", c.Performance.SpatialIndexBucketSize, maxAlertRange)})
	}

	clampField("ui.tick_rate", &c.UI.TickRate, bound{1, 1000})
	clampField("ui.min_speed", &c.UI.MinSpeed, bound{0.01, 10})
	clampField("ui.max_speed", &c.UI.MaxSpeed, bound{c.UI.MinSpeed, 100})

	// INITIAL_DEER_COUNT + INITIAL_WOLF_COUNT <= MAX_ENTITIES
	if total := c.Entities.InitialDeerCount + c.Entities.InitialWolfCount; total > c.Entities.MaxEntities {
		warnings = append(warnings, Warning{"entities.initial_deer_count+initial_wolf_count", fmt.Sprintf("initial population %d exceeds max_entities %d, initial counts scaled down", total, c.Entities.MaxEntities)})
		ratio := float64(c.Entities.MaxEntities) / float64(total)
		c.Entities.InitialDeerCount = int(float64(c.Entities.InitialDeerCount) * ratio)
		c.Entities.InitialWolfCount = int(float64(c.Entities.InitialWolfCount) * ratio)
	}

	return c, warnings
}
