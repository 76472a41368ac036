package drill

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/spiread/internal/games"
)

// parImpar asks whether a number matches the current rule. The rule
// alternates between even and odd every Count items.
type parImpar struct {
	r    *rand.Rand
	seen int
}

func (g *parImpar) Game() games.ID { return games.ParImpar }

func (g *parImpar) Next(p games.Params) (Item, error) {
	pp, err := paramsAs[games.ParImparParams](p)
	if err != nil {
		return Item{}, err
	}
	wantEven := (g.seen/max(1, pp.Count))%2 == 0
	g.seen++

	n := number(g.r, pp.Digits)
	even := (n[len(n)-1]-'0')%2 == 0

	rule := "EVEN"
	if !wantEven {
		rule = "ODD"
	}
	answer := "n"
	if even == wantEven {
		answer = "y"
	}
	return Item{
		Show:   n,
		Expose: time.Duration(pp.ExposureMs) * time.Millisecond,
		Mask:   "?",
		Prompt: "Is it " + rule + "? (y/n)",
		Answer: answer,
		Keys:   []string{"y", "n"},
		Styled: pp.Distractors,
	}, nil
}

// Score gives a point per correct answer, doubled under the goal time.
func (g *parImpar) Score(p games.Params, correct bool, rt time.Duration) int {
	pp, err := paramsAs[games.ParImparParams](p)
	if err != nil || !correct {
		return 0
	}
	if rt.Milliseconds() <= int64(pp.GoalRtMs) {
		return 2
	}
	return 1
}
