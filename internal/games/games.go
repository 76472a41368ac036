package games

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ID identifies a minigame.
type ID string

const (
	Schulte      ID = "schulte"
	Shuttle      ID = "shuttle"
	TwinWords    ID = "twinwords"
	ParImpar     ID = "parimpar"
	MemoryDigits ID = "memorydigits"
	RunningWords ID = "runningwords"
	LettersGrid  ID = "lettersgrid"
	WordSearch   ID = "wordsearch"
	Anagrams     ID = "anagrams"
)

// DefaultMaxLevel is the level ceiling used by every built-in game.
const DefaultMaxLevel = 20

var (
	// ErrUnknownGame is returned for IDs or keys not in the registry.
	ErrUnknownGame = errors.New("unknown game")

	// ErrInvalidLevel is returned for levels below 1.
	ErrInvalidLevel = errors.New("invalid level")
)

// PolicyKind selects the level adjustment policy for a game.
type PolicyKind string

const (
	KindStreak PolicyKind = "streak"
	KindWindow PolicyKind = "window"
)

// AdjustmentSpec configures a game's level adjustment policy. Fields that
// do not apply to Kind are ignored.
type AdjustmentSpec struct {
	Kind PolicyKind

	// Streak staircase.
	UpCount    int     // qualifying successes in a row needed to level up
	FailFactor float64 // slow successes beyond goal*FailFactor count as failures

	// Windowed threshold.
	Window       time.Duration
	MinTrials    int
	EvalInterval time.Duration
	UpAccuracy   float64
	UpSuccesses  int
	DownAccuracy float64
	DownFailures int
}

// StreakSpec returns the classic 3-down/1-up staircase with the given
// slow-response fail factor.
func StreakSpec(failFactor float64) AdjustmentSpec {
	return AdjustmentSpec{Kind: KindStreak, UpCount: 3, FailFactor: failFactor}
}

// WindowSpec returns the windowed threshold policy over a 10s trailing
// window with the given evaluation throttle.
func WindowSpec(evalInterval time.Duration) AdjustmentSpec {
	return AdjustmentSpec{
		Kind:         KindWindow,
		Window:       10 * time.Second,
		MinTrials:    3,
		EvalInterval: evalInterval,
		UpAccuracy:   0.85,
		UpSuccesses:  3,
		DownAccuracy: 0.60,
		DownFailures: 3,
	}
}

// Profile is the static description of one game.
type Profile struct {
	ID          ID
	Name        string
	Description string
	MaxLevel    int

	// DefaultDuration is the standard session length.
	DefaultDuration time.Duration

	// MinValidDuration is the shortest session that counts as a valid run.
	MinValidDuration time.Duration

	// Playable reports whether the terminal front-end ships a drill for it.
	Playable bool

	Adjustment AdjustmentSpec

	resolve func(level int) Params
}

// Params is the level-derived configuration consumed by a game's round
// generator. Implementations are plain value types.
type Params interface {
	Game() ID
	Level() int

	// GoalResponseMs is the per-trial response time goal, or 0 if the
	// game has none.
	GoalResponseMs() int

	// Difficulty is a composite score that never decreases with level.
	Difficulty() float64
}

// registry is populated once by init() in tables.go.
var registry map[ID]*Profile

// order preserves registration order for All.
var order []ID

func register(p Profile) {
	if registry == nil {
		registry = make(map[ID]*Profile)
	}
	if _, dup := registry[p.ID]; dup {
		panic(fmt.Sprintf("games: duplicate profile %q", p.ID))
	}
	registry[p.ID] = &p
	order = append(order, p.ID)
}

// Lookup returns the profile for id.
func Lookup(id ID) (Profile, error) {
	p, ok := registry[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownGame, id)
	}
	return *p, nil
}

// All returns every registered profile in display order.
func All() []Profile {
	out := make([]Profile, 0, len(order))
	for _, id := range order {
		out = append(out, *registry[id])
	}
	return out
}

// Resolve returns the parameters for id at level. Levels beyond the last
// defined table row reuse that row.
func Resolve(id ID, level int) (Params, error) {
	p, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, id)
	}
	if level < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	return p.resolve(level), nil
}

// MustResolve is like Resolve but panics on error. Used where id and level
// were already validated.
func MustResolve(id ID, level int) Params {
	params, err := Resolve(id, level)
	if err != nil {
		panic(err)
	}
	return params
}

var aliases = map[string]ID{
	"schulte":       Schulte,
	"schulte_table": Schulte,
	"schultetable":  Schulte,
	"shuttle":       Shuttle,
	"shuttle_table": Shuttle,
	"twin_words":    TwinWords,
	"twinwords":     TwinWords,
	"par_impar":     ParImpar,
	"parimpar":      ParImpar,
	"memory_digits": MemoryDigits,
	"memorydigits":  MemoryDigits,
	"running_words": RunningWords,
	"runningwords":  RunningWords,
	"letters_grid":  LettersGrid,
	"lettersgrid":   LettersGrid,
	"word_search":   WordSearch,
	"wordsearch":    WordSearch,
	"anagrams":      Anagrams,
}

// Canonical maps a user-facing or legacy game key to its ID. Keys are
// case-insensitive and may use dashes or underscores.
func Canonical(key string) (ID, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, "-", "_")
	if id, ok := aliases[k]; ok {
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGame, key)
}

// row picks the table row for level, reusing the last row past the end.
func row[T any](rows []T, level int) T {
	if level > len(rows) {
		level = len(rows)
	}
	return rows[level-1]
}
