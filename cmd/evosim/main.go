// Command evosim runs a headless Evolution Sandbox simulation: build a
// config, seed a world, step it for a fixed number of ticks and print a
// periodic population summary. There is no rendering, no camera and no
// interactive input; a shell embedding core.Sim for a richer UI is
// expected to import the package directly instead of shelling out to
// this binary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ViktorDolezel/evolution-sandbox/config"
	"github.com/ViktorDolezel/evolution-sandbox/core"
)

func main() {
	var (
		help     = flag.Bool("help", false, "Show help message")
		preset   = flag.String("preset", "", "Named config preset (balanced, predator_heavy, lush_world, scarcity)")
		seed     = flag.Int64("seed", 0, "Random seed (0 derives a seed from the process id)")
		width    = flag.Float64("width", 0, "World width override (0 keeps preset/default)")
		height   = flag.Float64("height", 0, "World height override (0 keeps preset/default)")
		ticks    = flag.Int("ticks", 500, "Number of ticks to run")
		deer     = flag.Int("deer", -1, "Initial deer count override (-1 keeps preset/default)")
		wolf     = flag.Int("wolf", -1, "Initial wolf count override (-1 keeps preset/default)")
		logEvery = flag.Int("log-every", 10, "Print a summary line every N ticks")
	)
	flag.Parse()

	if *help {
		fmt.Println("Evolution Sandbox")
		fmt.Println("=================")
		fmt.Println()
		fmt.Println("Headless driver for the deterministic predator/prey tick simulation.")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  %s [options]\n", os.Args[0])
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	cfg, warnings := resolveConfig(*preset, *width, *height, *deer, *wolf)
	for _, w := range warnings {
		log.Printf("config: %s", w)
	}

	resolvedSeed := uint32(*seed)
	if *seed == 0 {
		resolvedSeed = uint32(os.Getpid())
	}

	sim := core.New(cfg, resolvedSeed)
	sim.On(core.EventAnimalDied, func(ev core.Event) {
		log.Printf("tick %d: %s died (%s)", ev.Tick, ev.Animal.ID, ev.Cause)
	})

	log.Printf("seed=%d deer=%d wolf=%d ticks=%d", resolvedSeed, sim.DeerCount(), sim.WolfCount(), *ticks)

	for i := 1; i <= *ticks; i++ {
		sim.Step()
		if *logEvery > 0 && i%*logEvery == 0 {
			fmt.Printf("tick=%d deer=%d wolf=%d veg=%d\n",
				sim.CurrentTick(), sim.DeerCount(), sim.WolfCount(), len(sim.VegetationPositions()))
		}
	}

	fmt.Printf("final: tick=%d deer=%d wolf=%d veg=%d corpses=%d\n",
		sim.CurrentTick(), sim.DeerCount(), sim.WolfCount(), len(sim.VegetationPositions()), len(sim.Corpses()))
}

func resolveConfig(preset string, width, height float64, deer, wolf int) (config.SimulationConfig, []config.Warning) {
	var cfg config.SimulationConfig
	var warnings []config.Warning
	if preset != "" {
		cfg, warnings = config.Presets(preset)
	} else {
		cfg = config.Default()
	}

	if width > 0 {
		cfg.World.Width = width
	}
	if height > 0 {
		cfg.World.Height = height
	}
	if deer >= 0 {
		cfg.Entities.InitialDeerCount = deer
	}
	if wolf >= 0 {
		cfg.Entities.InitialWolfCount = wolf
	}

	cfg, more := config.Validate(cfg)
	return cfg, append(warnings, more...)
}
