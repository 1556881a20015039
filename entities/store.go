package entities

import (
	"fmt"
	"sort"

	"github.com/ViktorDolezel/evolution-sandbox/species"
)

// Store owns every Animal and Corpse record in the simulation. Ids are
// allocated here and never reused, even across a full animal's death and
// removal.
type Store struct {
	animals map[AnimalID]*Animal
	corpses map[CorpseID]*Corpse

	nextAnimalSeq map[species.Tag]int
	nextCorpseSeq int
}

// NewStore returns an empty store with id counters starting at 1.
func NewStore() *Store {
	return &Store{
		animals:       make(map[AnimalID]*Animal),
		corpses:       make(map[CorpseID]*Corpse),
		nextAnimalSeq: make(map[species.Tag]int),
	}
}

func (s *Store) nextAnimalID(tag species.Tag) AnimalID {
	s.nextAnimalSeq[tag]++
	return AnimalID(fmt.Sprintf("%s_%d", tag.String(), s.nextAnimalSeq[tag]))
}

func (s *Store) nextCorpseID() CorpseID {
	s.nextCorpseSeq++
	return CorpseID(fmt.Sprintf("corpse_%d", s.nextCorpseSeq))
}

// NewAnimal allocates an id for tag, builds the Animal record and inserts
// it into the store. It does not touch the spatial index; callers insert
// the returned animal there themselves.
func (s *Store) NewAnimal(a Animal) *Animal {
	a.ID = s.nextAnimalID(a.Species)
	rec := a
	s.animals[rec.ID] = &rec
	return &rec
}

// NewCorpse allocates an id for a corpse, builds the record and inserts
// it into the store.
func (s *Store) NewCorpse(c Corpse) *Corpse {
	c.ID = s.nextCorpseID()
	rec := c
	s.corpses[rec.ID] = &rec
	return &rec
}

// GetAnimal looks up an animal by id.
func (s *Store) GetAnimal(id AnimalID) (*Animal, bool) {
	a, ok := s.animals[id]
	return a, ok
}

// GetCorpse looks up a corpse by id.
func (s *Store) GetCorpse(id CorpseID) (*Corpse, bool) {
	c, ok := s.corpses[id]
	return c, ok
}

// RemoveCorpse deletes a corpse record entirely (once exhausted).
func (s *Store) RemoveCorpse(id CorpseID) {
	delete(s.corpses, id)
}

// RemoveAnimal deletes an animal record entirely. Called by the tick
// executor once a death has been observed and its corpse emitted; the id
// is never reissued since allocation counters only ever increase.
func (s *Store) RemoveAnimal(id AnimalID) {
	delete(s.animals, id)
}

// GetLivingAnimals returns every animal with IsDead == false, sorted by
// id ascending for deterministic iteration by callers that do not apply
// their own ordering.
func (s *Store) GetLivingAnimals() []*Animal {
	out := make([]*Animal, 0, len(s.animals))
	for _, a := range s.animals {
		if !a.IsDead {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetAnimalsBySpecies filters GetLivingAnimals to a single species tag.
func (s *Store) GetAnimalsBySpecies(tag species.Tag) []*Animal {
	living := s.GetLivingAnimals()
	out := make([]*Animal, 0, len(living))
	for _, a := range living {
		if a.Species == tag {
			out = append(out, a)
		}
	}
	return out
}

// GetCorpses returns every corpse record, sorted by id ascending.
func (s *Store) GetCorpses() []*Corpse {
	out := make([]*Corpse, 0, len(s.corpses))
	for _, c := range s.corpses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of living animals and the number of corpses.
func (s *Store) Count() (living, corpses int) {
	for _, a := range s.animals {
		if !a.IsDead {
			living++
		}
	}
	return living, len(s.corpses)
}
