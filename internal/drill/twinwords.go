package drill

import (
	_ "embed"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/abhisek/spiread/internal/games"
)

//go:embed words.txt
var wordsFile string

func wordList() []string {
	return strings.Fields(wordsFile)
}

// Letters that are easy to confuse at a glance.
var lookalikes = map[rune]rune{
	'b': 'd', 'd': 'b', 'm': 'n', 'n': 'm', 'p': 'q', 'q': 'p',
	'c': 'e', 'e': 'c', 'i': 'l', 'l': 'i', 'u': 'v', 'v': 'u',
	'a': 'o', 'o': 'a', 'r': 'n', 't': 'f', 'f': 't',
}

var accents = map[rune]rune{
	'a': 'á', 'e': 'é', 'i': 'í', 'o': 'ó', 'u': 'ú',
	'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u',
}

// twinWords shows two words and asks whether they are identical. Words do
// not repeat within a block of Pairs items.
type twinWords struct {
	r     *rand.Rand
	words []string
	used  map[string]bool
}

func (g *twinWords) Game() games.ID { return games.TwinWords }

func (g *twinWords) Next(p games.Params) (Item, error) {
	tp, err := paramsAs[games.TwinWordsParams](p)
	if err != nil {
		return Item{}, err
	}
	if g.used == nil || len(g.used) >= min(tp.Pairs, len(g.words)) {
		g.used = make(map[string]bool)
	}
	word := g.words[g.r.IntN(len(g.words))]
	for g.used[word] {
		word = g.words[g.r.IntN(len(g.words))]
	}
	g.used[word] = true

	other, answer := word, "s"
	if g.r.Float64() < tp.DifferentRatio {
		other, answer = mutate(g.r, word, tp.Subtlety), "d"
	}
	left, right := word, other
	if g.r.IntN(2) == 1 {
		left, right = right, left
	}
	return Item{
		Show:   left + "    " + right,
		Prompt: "Same or different? (s/d)",
		Answer: answer,
		Keys:   []string{"s", "d"},
	}, nil
}

// Score gives a point per correct answer, doubled under the goal time.
func (g *twinWords) Score(p games.Params, correct bool, rt time.Duration) int {
	tp, err := paramsAs[games.TwinWordsParams](p)
	if err != nil || !correct {
		return 0
	}
	if rt.Milliseconds() <= int64(tp.GoalSolveMs) {
		return 2
	}
	return 1
}

// mutate returns a word that differs from w. Higher subtlety picks edits
// that are harder to spot, falling back to coarser ones when the word
// offers nothing to work with.
func mutate(r *rand.Rand, w string, subtlety int) string {
	rs := []rune(w)
	for s := min(max(subtlety, 1), 5); s > 1; s-- {
		var out []rune
		switch s {
		case 5, 4:
			out = toggleAccent(r, rs)
		case 3:
			out = swapAdjacent(r, rs)
		case 2:
			out = replaceLookalike(r, rs)
		}
		if out != nil && string(out) != w {
			return string(out)
		}
	}
	return string(replaceAny(r, rs))
}

func positions(rs []rune, ok func(rune) bool) []int {
	var idx []int
	for i, c := range rs {
		if ok(c) {
			idx = append(idx, i)
		}
	}
	return idx
}

func toggleAccent(r *rand.Rand, rs []rune) []rune {
	idx := positions(rs, func(c rune) bool { _, ok := accents[c]; return ok })
	if len(idx) == 0 {
		return nil
	}
	out := append([]rune(nil), rs...)
	i := idx[r.IntN(len(idx))]
	out[i] = accents[out[i]]
	return out
}

func swapAdjacent(r *rand.Rand, rs []rune) []rune {
	// Keep the first letter so the word shape stays familiar.
	var idx []int
	for i := 1; i+1 < len(rs); i++ {
		if rs[i] != rs[i+1] {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil
	}
	out := append([]rune(nil), rs...)
	i := idx[r.IntN(len(idx))]
	out[i], out[i+1] = out[i+1], out[i]
	return out
}

func replaceLookalike(r *rand.Rand, rs []rune) []rune {
	idx := positions(rs, func(c rune) bool { _, ok := lookalikes[c]; return ok })
	if len(idx) == 0 {
		return nil
	}
	out := append([]rune(nil), rs...)
	i := idx[r.IntN(len(idx))]
	out[i] = lookalikes[out[i]]
	return out
}

func replaceAny(r *rand.Rand, rs []rune) []rune {
	out := append([]rune(nil), rs...)
	i := r.IntN(len(out))
	c := out[i]
	for c == out[i] {
		c = rune('a' + r.IntN(26))
	}
	out[i] = c
	return out
}
