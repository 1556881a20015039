package entities

import (
	"testing"

	"github.com/ViktorDolezel/evolution-sandbox/species"
	"github.com/ViktorDolezel/evolution-sandbox/vecmath"
)

func TestNewAnimalAllocatesPerSpeciesIDs(t *testing.T) {
	s := NewStore()
	d1 := s.NewAnimal(Animal{Species: species.Deer, Position: vecmath.Vec2{}})
	w1 := s.NewAnimal(Animal{Species: species.Wolf, Position: vecmath.Vec2{}})
	d2 := s.NewAnimal(Animal{Species: species.Deer, Position: vecmath.Vec2{}})

	if d1.ID != "deer_1" {
		t.Errorf("d1.ID = %q, want deer_1", d1.ID)
	}
	if w1.ID != "wolf_1" {
		t.Errorf("w1.ID = %q, want wolf_1", w1.ID)
	}
	if d2.ID != "deer_2" {
		t.Errorf("d2.ID = %q, want deer_2", d2.ID)
	}
}

func TestIDsNeverReusedAfterRemoval(t *testing.T) {
	s := NewStore()
	a := s.NewAnimal(Animal{Species: species.Deer})
	s.RemoveAnimal(a.ID)
	b := s.NewAnimal(Animal{Species: species.Deer})

	if a.ID == b.ID {
		t.Errorf("id %q was reused after removal", a.ID)
	}
	if b.ID != "deer_2" {
		t.Errorf("b.ID = %q, want deer_2", b.ID)
	}
}

func TestGetLivingAnimalsExcludesDead(t *testing.T) {
	s := NewStore()
	alive := s.NewAnimal(Animal{Species: species.Deer})
	dead := s.NewAnimal(Animal{Species: species.Deer})
	dead.IsDead = true

	living := s.GetLivingAnimals()
	if len(living) != 1 || living[0].ID != alive.ID {
		t.Errorf("GetLivingAnimals = %v, want only %v", living, alive.ID)
	}
}

func TestGetAnimalsBySpeciesFilters(t *testing.T) {
	s := NewStore()
	s.NewAnimal(Animal{Species: species.Deer})
	s.NewAnimal(Animal{Species: species.Wolf})
	s.NewAnimal(Animal{Species: species.Deer})

	deer := s.GetAnimalsBySpecies(species.Deer)
	if len(deer) != 2 {
		t.Errorf("len(deer) = %d, want 2", len(deer))
	}
	for _, a := range deer {
		if a.Species != species.Deer {
			t.Errorf("GetAnimalsBySpecies(Deer) returned a %v", a.Species)
		}
	}
}

func TestCorpseLifecycle(t *testing.T) {
	s := NewStore()
	c := s.NewCorpse(Corpse{FoodValue: 10, DecayTimer: 5})
	if c.ID != "corpse_1" {
		t.Errorf("c.ID = %q, want corpse_1", c.ID)
	}
	if _, ok := s.GetCorpse(c.ID); !ok {
		t.Error("expected corpse to be retrievable")
	}
	s.RemoveCorpse(c.ID)
	if _, ok := s.GetCorpse(c.ID); ok {
		t.Error("expected corpse to be gone after removal")
	}
}

func TestCorpseExhausted(t *testing.T) {
	cases := []struct {
		name string
		c    Corpse
		want bool
	}{
		{"healthy", Corpse{FoodValue: 5, DecayTimer: 5}, false},
		{"no food", Corpse{FoodValue: 0, DecayTimer: 5}, true},
		{"no time", Corpse{FoodValue: 5, DecayTimer: 0}, true},
	}
	for _, c := range cases {
		if got := c.c.Exhausted(); got != c.want {
			t.Errorf("%s: Exhausted() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestCountTracksLivingAndCorpses(t *testing.T) {
	s := NewStore()
	s.NewAnimal(Animal{Species: species.Deer})
	dead := s.NewAnimal(Animal{Species: species.Deer})
	dead.IsDead = true
	s.NewCorpse(Corpse{})

	living, corpses := s.Count()
	if living != 1 {
		t.Errorf("living = %d, want 1", living)
	}
	if corpses != 1 {
		t.Errorf("corpses = %d, want 1", corpses)
	}
}
