package game

import (
	"math/rand/v2"

	"github.com/deadloct/rps-championship-bot/lib"
)

// Picker supplies the computer's choice for each round.
type Picker interface {
	Pick() (Choice, error)
}

// RandomPicker draws from crypto/rand.
type RandomPicker struct{}

func (RandomPicker) Pick() (Choice, error) {
	i, err := lib.GetRandomInt(0, len(Choices))
	if err != nil {
		return 0, err
	}

	return Choices[i], nil
}

// SeededPicker produces the same sequence of choices for the same seed.
// It is not safe for concurrent use.
type SeededPicker struct {
	rng *rand.Rand
}

func NewSeededPicker(seed uint64) *SeededPicker {
	return &SeededPicker{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (p *SeededPicker) Pick() (Choice, error) {
	return Choices[p.rng.IntN(len(Choices))], nil
}
