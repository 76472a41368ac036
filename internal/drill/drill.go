// Package drill generates terminal-playable rounds for the games whose
// stimuli fit in a line of text.
package drill

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/abhisek/spiread/internal/games"
)

// ErrNotPlayable is returned for games without a terminal drill.
var ErrNotPlayable = errors.New("game has no terminal drill")

// Item is one question posed to the player.
type Item struct {
	// Show is the stimulus. It is hidden after Expose when Expose > 0.
	Show   string
	Expose time.Duration

	// Mask replaces Show once it is hidden.
	Mask string

	Prompt string
	Answer string

	// Keys lists single-key answers. Empty means free text entry.
	Keys []string

	// Styled asks the front end to render Show with random emphasis.
	Styled bool
}

// Check reports whether input answers the item.
func (it Item) Check(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), it.Answer)
}

// Generator produces items for one game and scores answers.
type Generator interface {
	Game() games.ID
	Next(p games.Params) (Item, error)
	Score(p games.Params, correct bool, rt time.Duration) int
}

// New returns the generator for id. r may be nil for a randomly seeded source.
func New(id games.ID, r *rand.Rand) (Generator, error) {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	switch id {
	case games.MemoryDigits:
		return &memoryDigits{r: r}, nil
	case games.ParImpar:
		return &parImpar{r: r}, nil
	case games.TwinWords:
		return &twinWords{r: r, words: wordList()}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotPlayable, id)
	}
}

func paramsAs[T games.Params](p games.Params) (T, error) {
	v, ok := p.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected params %T for %s", p, zero.Game())
	}
	return v, nil
}

// number returns a random n-digit decimal string without a leading zero.
func number(r *rand.Rand, n int) string {
	var b strings.Builder
	b.WriteByte(byte('1' + r.IntN(9)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + r.IntN(10)))
	}
	return b.String()
}

// speedBonus scales limit by how far under goal the response came in.
func speedBonus(goalMs int, rt time.Duration, limit int) int {
	if goalMs <= 0 {
		return 0
	}
	left := float64(goalMs) - float64(rt.Milliseconds())
	if left <= 0 {
		return 0
	}
	bonus := left / float64(goalMs) * float64(limit)
	if bonus > float64(int(bonus)) {
		return int(bonus) + 1
	}
	return int(bonus)
}
