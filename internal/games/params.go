package games

// Layout is the arrangement of items on a board.
type Layout string

const (
	LayoutGrid      Layout = "grid"
	LayoutDispersed Layout = "dispersed"
)

// SchulteMode is the target ordering rule of a Schulte table, in
// increasing difficulty.
type SchulteMode int

const (
	ModeNumbers SchulteMode = iota
	ModeLetters
	ModeDescending
	ModeMultiples
	ModePrimes
	ModeFibonacci
)

func (m SchulteMode) String() string {
	switch m {
	case ModeNumbers:
		return "numbers"
	case ModeLetters:
		return "letters"
	case ModeDescending:
		return "descending"
	case ModeMultiples:
		return "multiples"
	case ModePrimes:
		return "primes"
	case ModeFibonacci:
		return "fibonacci"
	default:
		return "unknown"
	}
}

func flag(b bool, w float64) float64 {
	if b {
		return w
	}
	return 0
}

// SchulteParams configures a Schulte table. A trial is one cell selection.
type SchulteParams struct {
	Lvl           int         `json:"level"`
	Cells         int         `json:"cells"`
	Layout        Layout      `json:"layout"`
	Guide         bool        `json:"guide"`
	Mode          SchulteMode `json:"mode"`
	Distractors   bool        `json:"distractors"`
	GoalMsPerCell int         `json:"goal_ms_per_cell"`
	TargetTimeMs  int         `json:"target_time_ms"`
}

func (p SchulteParams) Game() ID            { return Schulte }
func (p SchulteParams) Level() int          { return p.Lvl }
func (p SchulteParams) GoalResponseMs() int { return p.GoalMsPerCell }

func (p SchulteParams) Difficulty() float64 {
	return float64(p.Cells) +
		10*float64(p.Mode) +
		flag(p.Layout == LayoutDispersed, 3) +
		flag(!p.Guide, 5) +
		flag(p.Distractors, 5) +
		10000/float64(p.GoalMsPerCell)
}

// ShuttleParams configures a shuttle table. A trial is one full table.
type ShuttleParams struct {
	Lvl              int    `json:"level"`
	Numbers          int    `json:"numbers"`
	Layout           Layout `json:"layout"`
	TargetTimeMs     int    `json:"target_time_ms"`
	ColorDistractors bool   `json:"color_distractors"`
	Descending       bool   `json:"descending"`
}

func (p ShuttleParams) Game() ID            { return Shuttle }
func (p ShuttleParams) Level() int          { return p.Lvl }
func (p ShuttleParams) GoalResponseMs() int { return p.TargetTimeMs }

func (p ShuttleParams) Difficulty() float64 {
	return float64(p.Numbers) +
		flag(p.Layout == LayoutDispersed, 1) +
		flag(p.ColorDistractors, 5) +
		flag(p.Descending, 10) +
		100000/float64(p.TargetTimeMs)
}

// TwinWordsParams configures a twin words grid. A trial is one pair
// judged same or different.
type TwinWordsParams struct {
	Lvl            int     `json:"level"`
	Pairs          int     `json:"pairs"`
	DifferentRatio float64 `json:"different_ratio"`
	Subtlety       int     `json:"subtlety"`
	GoalSolveMs    int     `json:"goal_solve_ms"`
}

func (p TwinWordsParams) Game() ID            { return TwinWords }
func (p TwinWordsParams) Level() int          { return p.Lvl }
func (p TwinWordsParams) GoalResponseMs() int { return p.GoalSolveMs }

func (p TwinWordsParams) Difficulty() float64 {
	return float64(p.Pairs) +
		5*p.DifferentRatio +
		float64(p.Subtlety) +
		10000/float64(p.GoalSolveMs)
}

// ParImparParams configures an odd/even round. A trial is one number
// classified.
type ParImparParams struct {
	Lvl         int  `json:"level"`
	Count       int  `json:"count"`
	Digits      int  `json:"digits"`
	ExposureMs  int  `json:"exposure_ms"`
	GoalRtMs    int  `json:"goal_rt_ms"`
	Distractors bool `json:"distractors"`
}

func (p ParImparParams) Game() ID            { return ParImpar }
func (p ParImparParams) Level() int          { return p.Lvl }
func (p ParImparParams) GoalResponseMs() int { return p.GoalRtMs }

func (p ParImparParams) Difficulty() float64 {
	return float64(p.Count) +
		2*float64(p.Digits) +
		flag(p.Distractors, 5) +
		10000/float64(p.ExposureMs) +
		1000/float64(p.GoalRtMs)
}

// MemoryDigitsParams configures a digit span round. A trial is one
// sequence recalled.
type MemoryDigitsParams struct {
	Lvl                int  `json:"level"`
	Digits             int  `json:"digits"`
	ExposurePerDigitMs int  `json:"exposure_per_digit_ms"`
	DecoyDigits        bool `json:"decoy_digits"`
	GoalRtMs           int  `json:"goal_rt_ms"`
}

// ExposureMs is the total time the sequence stays on screen.
func (p MemoryDigitsParams) ExposureMs() int { return p.ExposurePerDigitMs * p.Digits }

func (p MemoryDigitsParams) Game() ID            { return MemoryDigits }
func (p MemoryDigitsParams) Level() int          { return p.Lvl }
func (p MemoryDigitsParams) GoalResponseMs() int { return p.GoalRtMs }

// Difficulty scores the per-digit goal so the longer absolute goal of
// longer sequences does not read as an easier level.
func (p MemoryDigitsParams) Difficulty() float64 {
	perDigitGoal := float64(p.GoalRtMs) / float64(p.Digits)
	return 2*float64(p.Digits) +
		flag(p.DecoyDigits, 2) +
		1000/float64(p.ExposurePerDigitMs) +
		1000/perDigitGoal
}

// RunningWordsParams configures a running words round. A trial is one
// recall question.
type RunningWordsParams struct {
	Lvl            int `json:"level"`
	Lines          int `json:"lines"`
	WordsPerLine   int `json:"words_per_line"`
	WordExposureMs int `json:"word_exposure_ms"`
	BlocksPerRound int `json:"blocks_per_round"`
	GoalRtMs       int `json:"goal_rt_ms"`
}

func (p RunningWordsParams) Game() ID            { return RunningWords }
func (p RunningWordsParams) Level() int          { return p.Lvl }
func (p RunningWordsParams) GoalResponseMs() int { return p.GoalRtMs }

func (p RunningWordsParams) Difficulty() float64 {
	return float64(p.WordsPerLine) +
		2*float64(p.BlocksPerRound) +
		1000/float64(p.WordExposureMs) +
		1000/float64(p.GoalRtMs)
}

// LettersGridParams configures a letters grid round. A trial is one
// target found or missed.
type LettersGridParams struct {
	Lvl         int  `json:"level"`
	Size        int  `json:"size"`
	Targets     int  `json:"targets"`
	ExposureMs  int  `json:"exposure_ms"`
	GoalRtMs    int  `json:"goal_rt_ms"`
	Confusables bool `json:"confusables"`
}

func (p LettersGridParams) Game() ID            { return LettersGrid }
func (p LettersGridParams) Level() int          { return p.Lvl }
func (p LettersGridParams) GoalResponseMs() int { return p.GoalRtMs }

func (p LettersGridParams) Difficulty() float64 {
	return float64(p.Size) +
		2*float64(p.Targets) +
		flag(p.Confusables, 3) +
		10000/float64(p.ExposureMs) +
		1000/float64(p.GoalRtMs)
}

// WordSearchParams configures a word search puzzle. A trial is one word
// found.
type WordSearchParams struct {
	Lvl           int  `json:"level"`
	Size          int  `json:"size"`
	Words         int  `json:"words"`
	Diagonals     bool `json:"diagonals"`
	Reverse       bool `json:"reverse"`
	GoalPerWordMs int  `json:"goal_per_word_ms"`
}

func (p WordSearchParams) Game() ID            { return WordSearch }
func (p WordSearchParams) Level() int          { return p.Lvl }
func (p WordSearchParams) GoalResponseMs() int { return p.GoalPerWordMs }

func (p WordSearchParams) Difficulty() float64 {
	return float64(p.Size) +
		float64(p.Words) +
		flag(p.Diagonals, 3) +
		flag(p.Reverse, 3) +
		10000/float64(p.GoalPerWordMs)
}

// AnagramsParams configures an anagram round. A trial is one word solved
// or timed out.
type AnagramsParams struct {
	Lvl          int  `json:"level"`
	Length       int  `json:"length"`
	TimeLimitMs  int  `json:"time_limit_ms"`
	GoalRtMs     int  `json:"goal_rt_ms"`
	DecoyLetters bool `json:"decoy_letters"`
}

func (p AnagramsParams) Game() ID            { return Anagrams }
func (p AnagramsParams) Level() int          { return p.Lvl }
func (p AnagramsParams) GoalResponseMs() int { return p.GoalRtMs }

func (p AnagramsParams) Difficulty() float64 {
	return 2*float64(p.Length) +
		flag(p.DecoyLetters, 3) +
		10000/float64(p.TimeLimitMs) +
		10000/float64(p.GoalRtMs)
}
