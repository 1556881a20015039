package core

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ViktorDolezel/evolution-sandbox/entities"
	"github.com/ViktorDolezel/evolution-sandbox/species"
)

// AttributeStats summarises one Base attribute's distribution across a
// population: mean and sample standard deviation (gonum's
// stat.MeanStdDev applies Bessel's correction; n=1 populations get a
// StdDev of 0 rather than NaN).
type AttributeStats struct {
	Mean   float64
	StdDev float64
}

// SpeciesStats is the population snapshot for a single species tag.
type SpeciesStats struct {
	Species    species.Tag
	Count      int
	Strength   AttributeStats
	Agility    AttributeStats
	Endurance  AttributeStats
	Perception AttributeStats
	Size       AttributeStats
}

// Stats computes per-species population statistics over every currently
// living animal. Replaces hand-rolled mean/stddev accumulation with
// gonum/stat, the statistics library this ecosystem's example pack
// reaches for wherever it needs descriptive stats over a sample slice.
func (s *Sim) Stats() []SpeciesStats {
	s.mu.Lock()
	living := s.store.GetLivingAnimals()
	s.mu.Unlock()

	bySpecies := make(map[species.Tag][]*entities.Animal)
	for _, a := range living {
		bySpecies[a.Species] = append(bySpecies[a.Species], a)
	}

	tags := make([]species.Tag, 0, len(bySpecies))
	for tag := range bySpecies {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	out := make([]SpeciesStats, 0, len(tags))
	for _, tag := range tags {
		group := bySpecies[tag]
		out = append(out, SpeciesStats{
			Species:    tag,
			Count:      len(group),
			Strength:   attributeStats(group, func(a *entities.Animal) float64 { return a.Genome.Base.Strength }),
			Agility:    attributeStats(group, func(a *entities.Animal) float64 { return a.Genome.Base.Agility }),
			Endurance:  attributeStats(group, func(a *entities.Animal) float64 { return a.Genome.Base.Endurance }),
			Perception: attributeStats(group, func(a *entities.Animal) float64 { return a.Genome.Base.Perception }),
			Size:       attributeStats(group, func(a *entities.Animal) float64 { return a.Genome.Base.Size }),
		})
	}
	return out
}

func attributeStats(group []*entities.Animal, field func(*entities.Animal) float64) AttributeStats {
	if len(group) == 0 {
		return AttributeStats{}
	}
	samples := make([]float64, len(group))
	for i, a := range group {
		samples[i] = field(a)
	}
	if len(samples) == 1 {
		return AttributeStats{Mean: samples[0], StdDev: 0}
	}
	mean, stddev := stat.MeanStdDev(samples, nil)
	return AttributeStats{Mean: mean, StdDev: stddev}
}
