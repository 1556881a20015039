package species

import "testing"

func TestDietFlagsMatchSpecies(t *testing.T) {
	deer := Diet(Deer)
	if !deer.CanEatVegetation || deer.CanEatAnimals || deer.CanEatCorpses {
		t.Errorf("deer diet flags wrong: %+v", deer)
	}

	wolf := Diet(Wolf)
	if wolf.CanEatVegetation || !wolf.CanEatAnimals || !wolf.CanEatCorpses {
		t.Errorf("wolf diet flags wrong: %+v", wolf)
	}
}

func TestBaselineGenomesWithinDeclaredBounds(t *testing.T) {
	for _, tag := range []Tag{Deer, Wolf} {
		g := Baseline(tag)
		if g.Base.Strength < 1 || g.Base.Strength > 20 {
			t.Errorf("%s baseline strength out of bounds: %v", tag, g.Base.Strength)
		}
		if g.Lifecycle.MaturityAge >= g.Lifecycle.MaxAge {
			t.Errorf("%s baseline violates maturityAge < maxAge", tag)
		}
	}
}

func TestTagString(t *testing.T) {
	if Deer.String() != "deer" {
		t.Errorf("Deer.String() = %q, want deer", Deer.String())
	}
	if Wolf.String() != "wolf" {
		t.Errorf("Wolf.String() = %q, want wolf", Wolf.String())
	}
}
