package behavior

import (
	"math"

	"github.com/ViktorDolezel/evolution-sandbox/entities"
	"github.com/ViktorDolezel/evolution-sandbox/prng"
	"github.com/ViktorDolezel/evolution-sandbox/species"
	"github.com/ViktorDolezel/evolution-sandbox/vecmath"
)

// ActionKind enumerates the decision rule's eight possible outcomes.
type ActionKind int

const (
	Stay ActionKind = iota
	Die
	Flee
	Eat
	MoveToFood
	Attack
	Reproduce
	Drift
)

// String renders the action kind for logs and the action-history sink.
func (k ActionKind) String() string {
	switch k {
	case Die:
		return "die"
	case Flee:
		return "flee"
	case Eat:
		return "eat"
	case MoveToFood:
		return "move_to_food"
	case Attack:
		return "attack"
	case Reproduce:
		return "reproduce"
	case Drift:
		return "drift"
	default:
		return "stay"
	}
}

// DeathCause enumerates why an animal died, carried by a Die action and
// surfaced on the AnimalDied event.
type DeathCause int

const (
	NoCause DeathCause = iota
	Starvation
	OldAge
	Killed
)

func (c DeathCause) String() string {
	switch c {
	case Starvation:
		return "starvation"
	case OldAge:
		return "old_age"
	case Killed:
		return "killed"
	default:
		return "none"
	}
}

// Action is the self-contained result of one Decide call: every id,
// position and kind the execution phase needs is captured here at
// decision time, so execution never re-queries perception.
type Action struct {
	Kind           ActionKind
	TargetPosition vecmath.Vec2
	FoodKind       FoodKind
	CorpseID       entities.CorpseID
	PreyID         entities.AnimalID
	Cause          DeathCause
}

// DecisionConfig carries the handful of config fields the decision rule
// itself needs, mirrored locally for the same leaves-first reason
// genetics.DerivedStatsConfig mirrors config's group.
type DecisionConfig struct {
	MaxHunger               float64
	ReproductionCost        float64
	ReproductionSafetyBuffer float64
	ReproductionCooldownTicks int
}

// Decide runs the fixed six-step priority ladder (spec: death, flee,
// feeding, opportunistic attack, reproduce, idle) and returns exactly one
// Action. Every probabilistic branch draws a known, fixed number of PRNG
// values in a fixed order so the stream stays reproducible regardless of
// which branch a given animal takes.
func Decide(self *entities.Animal, view View, nearby []*entities.Animal, cfg DecisionConfig, rng *prng.PRNG) Action {
	// 1. Death.
	if self.Hunger <= 0 {
		return Action{Kind: Die, Cause: Starvation}
	}
	if float64(self.Age) >= self.Genome.Lifecycle.MaxAge {
		return Action{Kind: Die, Cause: OldAge}
	}

	hungerRatio := self.Hunger / cfg.MaxHunger

	// 2. Flee.
	threats := Threats(self, nearby)
	if len(threats) > 0 {
		flee := hungerRatio > self.Genome.Behavioural.FoodPriorityThreshold
		if !flee {
			flee = rng.Float64() < hungerRatio/self.Genome.Behavioural.FoodPriorityThreshold
		}
		if flee {
			dir := FleeVector(self, threats)
			target := self.Position.Add(dir.Scale(self.Derived.Speed))
			return Action{Kind: Flee, TargetPosition: target}
		}
	}

	// 3. Feeding.
	if hungerRatio < 0.9 {
		food := ChooseFood(self, view, nearby, rng)
		switch food.Kind {
		case FoodPrey:
			contact := self.Genome.Base.Size + food.Prey.Genome.Base.Size + 2
			d := vecmath.Distance(self.Position, food.Prey.Position)
			if d <= contact {
				if rng.Float64() < self.Genome.Behavioural.Aggression*(1-hungerRatio) {
					return Action{Kind: Attack, PreyID: food.Prey.ID}
				}
				// attack roll failed: fall through to later steps
			} else {
				return Action{Kind: MoveToFood, TargetPosition: food.Position, FoodKind: FoodPrey}
			}
		case FoodVegetation:
			sgx, sgy := view.Veg.WorldToGrid(self.Position)
			tgx, tgy := view.Veg.WorldToGrid(food.Position)
			if sgx == tgx && sgy == tgy {
				return Action{Kind: Eat, FoodKind: FoodVegetation}
			}
			return Action{Kind: MoveToFood, TargetPosition: food.Position, FoodKind: FoodVegetation}
		case FoodCorpse:
			if vecmath.Distance(self.Position, food.Position) <= self.Genome.Base.Size+2 {
				return Action{Kind: Eat, FoodKind: FoodCorpse, CorpseID: food.CorpseID}
			}
			return Action{Kind: MoveToFood, TargetPosition: food.Position, FoodKind: FoodCorpse, CorpseID: food.CorpseID}
		}
	}

	// 4. Opportunistic attack: not hungry, but still willing to strike a
	// prey already in contact range.
	if species.Diet(self.Species).CanEatAnimals && hungerRatio >= 0.9 {
		if prey, ok := NearestPrey(self, nearby); ok {
			contact := self.Genome.Base.Size + prey.Genome.Base.Size + 2
			if vecmath.Distance(self.Position, prey.Position) <= contact {
				if rng.Float64() < self.Genome.Behavioural.Aggression*(1-hungerRatio) {
					return Action{Kind: Attack, PreyID: prey.ID}
				}
			}
		}
	}

	// 5. Reproduce.
	threshold := (cfg.ReproductionCost*self.Genome.Lifecycle.LitterSize + cfg.ReproductionSafetyBuffer) * cfg.MaxHunger
	if self.IsMature() && self.Hunger > threshold && self.TicksSinceLastReproduction >= cfg.ReproductionCooldownTicks {
		if rng.Float64() < self.Genome.Behavioural.ReproductiveUrge {
			return Action{Kind: Reproduce}
		}
	}

	// 6. Idle.
	if self.Hunger < cfg.MaxHunger {
		angle := rng.FloatRange(0, 2*math.Pi)
		randomUnit := vecmath.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
		target := self.Position.Add(randomUnit.Scale(self.Derived.Speed / 2))
		return Action{Kind: Drift, TargetPosition: target}
	}
	return Action{Kind: Stay}
}
