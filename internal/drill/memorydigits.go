package drill

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/abhisek/spiread/internal/games"
)

type memoryDigits struct {
	r *rand.Rand
}

func (g *memoryDigits) Game() games.ID { return games.MemoryDigits }

func (g *memoryDigits) Next(p games.Params) (Item, error) {
	mp, err := paramsAs[games.MemoryDigitsParams](p)
	if err != nil {
		return Item{}, err
	}
	seq := number(g.r, mp.Digits)
	mask := strings.Repeat("#", mp.Digits)
	if mp.DecoyDigits {
		mask = number(g.r, mp.Digits)
	}
	return Item{
		Show:   seq,
		Expose: time.Duration(mp.ExposureMs()) * time.Millisecond,
		Mask:   mask,
		Prompt: "Type the number you saw",
		Answer: seq,
	}, nil
}

// Score awards one point per digit plus a speed bonus of up to the same
// amount again.
func (g *memoryDigits) Score(p games.Params, correct bool, rt time.Duration) int {
	mp, err := paramsAs[games.MemoryDigitsParams](p)
	if err != nil || !correct {
		return 0
	}
	return mp.Digits + speedBonus(mp.GoalRtMs, rt, mp.Digits)
}
