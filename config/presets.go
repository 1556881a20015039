package config

// Preset names understood by Presets.
const (
	PresetBalanced     = "balanced"
	PresetPredatorHeavy = "predator_heavy"
	PresetLushWorld    = "lush_world"
	PresetScarcity     = "scarcity"
)

// preset is a sparse override applied on top of Default().
type preset func(*SimulationConfig)

var presets = map[string]preset{
	PresetBalanced: func(c *SimulationConfig) {
		// Balanced is the default tuning; no overrides.
	},
	PresetPredatorHeavy: func(c *SimulationConfig) {
		c.Entities.InitialWolfCount = 20
		c.Entities.InitialDeerCount = 25
	},
	PresetLushWorld: func(c *SimulationConfig) {
		c.Vegetation.InitialDensity = 0.7
		c.Vegetation.SpreadRate = 0.05
	},
	PresetScarcity: func(c *SimulationConfig) {
		c.Vegetation.InitialDensity = 0.05
		c.Vegetation.SpreadRate = 0.005
	},
}

// Presets returns the default configuration with the named preset's sparse
// overrides merged on top, then validated. Unknown names return the
// unmodified default and a warning.
func Presets(name string) (SimulationConfig, []Warning) {
	c := Default()
	apply, ok := presets[name]
	if !ok {
		_, warnings := Validate(c)
		return c, append(warnings, Warning{"preset", "unknown preset name " + name + ", using default"})
	}
	apply(&c)
	return Validate(c)
}
