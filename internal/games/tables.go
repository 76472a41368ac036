package games

import (
	"math"
	"time"
)

const (
	standardDuration = 60 * time.Second
	legacyMinValid   = 30 * time.Second
	// Allows 5s of slack for 60s sessions.
	timedMinValid = 55 * time.Second
)

func init() {
	register(Profile{
		ID:               Schulte,
		Name:             "Schulte Table",
		Description:      "Select the cells in order as fast as possible",
		MaxLevel:         DefaultMaxLevel,
		DefaultDuration:  standardDuration,
		MinValidDuration: legacyMinValid,
		Adjustment:       StreakSpec(1.5),
		resolve: func(level int) Params {
			p := row(schulteRows, level)
			p.Lvl = level
			return p
		},
	})
	register(Profile{
		ID:               Shuttle,
		Name:             "Shuttle Table",
		Description:      "Find every number in order across a scattered board",
		MaxLevel:         DefaultMaxLevel,
		DefaultDuration:  standardDuration,
		MinValidDuration: legacyMinValid,
		Adjustment:       StreakSpec(1),
		resolve: func(level int) Params {
			p := row(shuttleRows, level)
			p.Lvl = level
			return p
		},
	})
	register(Profile{
		ID:               TwinWords,
		Name:             "Twin Words",
		Description:      "Decide whether two words are identical",
		MaxLevel:         DefaultMaxLevel,
		DefaultDuration:  standardDuration,
		MinValidDuration: legacyMinValid,
		Playable:         true,
		Adjustment:       WindowSpec(time.Second),
		resolve: func(level int) Params {
			p := row(twinWordsRows, level)
			p.Lvl = level
			return p
		},
	})
	register(Profile{
		ID:               ParImpar,
		Name:             "Odd or Even",
		Description:      "Classify flashed numbers as odd or even",
		MaxLevel:         DefaultMaxLevel,
		DefaultDuration:  standardDuration,
		MinValidDuration: legacyMinValid,
		Playable:         true,
		Adjustment:       WindowSpec(0),
		resolve: func(level int) Params {
			p := row(parImparRows, level)
			p.Lvl = level
			return p
		},
	})
	register(Profile{
		ID:               MemoryDigits,
		Name:             "Memory Digits",
		Description:      "Memorize a flashed digit sequence and type it back",
		MaxLevel:         DefaultMaxLevel,
		DefaultDuration:  standardDuration,
		MinValidDuration: legacyMinValid,
		Playable:         true,
		Adjustment:       StreakSpec(1.25),
		resolve: func(level int) Params {
			p := row(memoryDigitsRows, level)
			p.Lvl = level
			return p
		},
	})
	register(Profile{
		ID:               RunningWords,
		Name:             "Running Words",
		Description:      "Read words flashed line by line and recall them",
		MaxLevel:         DefaultMaxLevel,
		DefaultDuration:  standardDuration,
		MinValidDuration: timedMinValid,
		Adjustment:       StreakSpec(1),
		resolve: func(level int) Params {
			p := row(runningWordsRows, level)
			p.Lvl = level
			return p
		},
	})
	register(Profile{
		ID:               LettersGrid,
		Name:             "Letters Grid",
		Description:      "Spot the target letters hidden in a grid",
		MaxLevel:         DefaultMaxLevel,
		DefaultDuration:  standardDuration,
		MinValidDuration: timedMinValid,
		Adjustment:       StreakSpec(1),
		resolve: func(level int) Params {
			p := row(lettersGridRows, level)
			p.Lvl = level
			return p
		},
	})
	register(Profile{
		ID:               WordSearch,
		Name:             "Word Search",
		Description:      "Find the hidden words in a letter soup",
		MaxLevel:         DefaultMaxLevel,
		DefaultDuration:  standardDuration,
		MinValidDuration: timedMinValid,
		Adjustment:       StreakSpec(1),
		resolve: func(level int) Params {
			p := row(wordSearchRows, level)
			p.Lvl = level
			return p
		},
	})
	register(Profile{
		ID:               Anagrams,
		Name:             "Anagrams",
		Description:      "Unscramble each word before time runs out",
		MaxLevel:         DefaultMaxLevel,
		DefaultDuration:  standardDuration,
		MinValidDuration: timedMinValid,
		Adjustment:       StreakSpec(1),
		resolve: func(level int) Params {
			p := row(anagramsRows, level)
			p.Lvl = level
			return p
		},
	})
}

var schulteRows = func() []SchulteParams {
	type spec struct {
		cells       int
		layout      Layout
		guide       bool
		mode        SchulteMode
		distractors bool
		goal        int
	}
	specs := []spec{
		{9, LayoutGrid, true, ModeNumbers, false, 1700},
		{9, LayoutDispersed, true, ModeNumbers, false, 1650},
		{16, LayoutGrid, true, ModeNumbers, false, 1300},
		{16, LayoutDispersed, true, ModeNumbers, false, 1250},
		{25, LayoutGrid, true, ModeNumbers, false, 1000},
		{25, LayoutDispersed, false, ModeNumbers, false, 1000},
		{36, LayoutGrid, false, ModeNumbers, false, 850},
		{36, LayoutDispersed, false, ModeNumbers, false, 850},
		{49, LayoutGrid, false, ModeNumbers, false, 720},
		{49, LayoutDispersed, false, ModeNumbers, false, 720},
		{49, LayoutGrid, false, ModeLetters, false, 700},
		{49, LayoutDispersed, false, ModeLetters, true, 700},
		{49, LayoutGrid, false, ModeDescending, true, 680},
		{49, LayoutDispersed, false, ModeDescending, true, 660},
		{49, LayoutGrid, false, ModeMultiples, true, 650},
		{49, LayoutDispersed, false, ModeMultiples, true, 640},
		{49, LayoutGrid, false, ModePrimes, true, 620},
		{49, LayoutDispersed, false, ModePrimes, true, 600},
		{49, LayoutGrid, false, ModeFibonacci, true, 590},
		{49, LayoutDispersed, false, ModeFibonacci, true, 580},
	}
	rows := make([]SchulteParams, len(specs))
	for i, s := range specs {
		rows[i] = SchulteParams{
			Lvl:           i + 1,
			Cells:         s.cells,
			Layout:        s.layout,
			Guide:         s.guide,
			Mode:          s.mode,
			Distractors:   s.distractors,
			GoalMsPerCell: s.goal,
			TargetTimeMs:  s.cells * s.goal,
		}
	}
	return rows
}()

var shuttleRows = func() []ShuttleParams {
	rows := make([]ShuttleParams, DefaultMaxLevel)
	for i := range rows {
		level := i + 1
		layout := LayoutGrid
		if level%2 == 0 {
			layout = LayoutDispersed
		}
		rows[i] = ShuttleParams{
			Lvl:              level,
			Numbers:          min(35, 9+(level-1)/2*2),
			Layout:           layout,
			TargetTimeMs:     max(8000, 30000-(level-1)*2000),
			ColorDistractors: level >= 7,
			Descending:       level >= 9,
		}
	}
	return rows
}()

var twinWordsRows = func() []TwinWordsParams {
	rows := make([]TwinWordsParams, DefaultMaxLevel)
	for i := range rows {
		level := i + 1
		rows[i] = TwinWordsParams{
			Lvl:            level,
			Pairs:          min(10, 4+level/2),
			DifferentRatio: math.Min(0.95, 0.5+float64(level-1)*0.03),
			Subtlety:       min(5, (level+1)/2),
			GoalSolveMs:    max(1500, 2500-(level-1)*50),
		}
	}
	return rows
}()

var parImparRows = func() []ParImparParams {
	rows := make([]ParImparParams, DefaultMaxLevel)
	for i := range rows {
		level := i + 1
		rows[i] = ParImparParams{
			Lvl:         level,
			Count:       min(20, 8+(level-1)/2),
			Digits:      min(6, 3+(level-1)/5),
			ExposureMs:  max(4000, 12000-(level-1)*400),
			GoalRtMs:    max(600, 900-(level-1)/3*50),
			Distractors: level > 15,
		}
	}
	return rows
}()

var memoryDigitsRows = func() []MemoryDigitsParams {
	rows := make([]MemoryDigitsParams, DefaultMaxLevel)
	for i := range rows {
		level := i + 1
		digits := min(12, 3+(level-1)/2)
		rows[i] = MemoryDigitsParams{
			Lvl:                level,
			Digits:             digits,
			ExposurePerDigitMs: max(500, 2000-(level-1)*100),
			DecoyDigits:        level >= 6,
			GoalRtMs:           3500 + 200*(digits-3),
		}
	}
	return rows
}()

var runningWordsRows = func() []RunningWordsParams {
	specs := [][4]int{
		// words per line, word exposure, blocks, goal
		{3, 350, 1, 3000}, {3, 320, 1, 3000}, {4, 300, 1, 2800}, {4, 280, 1, 2800},
		{5, 260, 1, 2500}, {5, 240, 1, 2500}, {6, 220, 1, 2200}, {6, 200, 1, 2200},
		{7, 190, 1, 2000}, {7, 180, 1, 2000}, {8, 170, 1, 1800}, {8, 165, 2, 1800},
		{8, 160, 2, 1600}, {9, 158, 2, 1600}, {9, 156, 2, 1500}, {9, 154, 2, 1500},
		{9, 152, 2, 1400}, {9, 151, 2, 1400}, {9, 150, 2, 1300}, {9, 150, 2, 1200},
	}
	rows := make([]RunningWordsParams, len(specs))
	for i, s := range specs {
		rows[i] = RunningWordsParams{
			Lvl:            i + 1,
			Lines:          5,
			WordsPerLine:   s[0],
			WordExposureMs: s[1],
			BlocksPerRound: s[2],
			GoalRtMs:       s[3],
		}
	}
	return rows
}()

var lettersGridRows = func() []LettersGridParams {
	specs := [][4]int{
		// size, targets, exposure, goal
		{5, 1, 12000, 2000}, {6, 1, 11000, 1900}, {6, 1, 10000, 1800}, {7, 2, 10000, 1800},
		{7, 2, 9000, 1700}, {8, 2, 9000, 1700}, {8, 2, 8000, 1600}, {9, 2, 8000, 1600},
		{9, 2, 7000, 1500}, {10, 3, 7000, 1500}, {10, 3, 6500, 1400}, {11, 3, 6000, 1400},
		{11, 3, 5500, 1300}, {12, 3, 5500, 1300}, {12, 3, 5000, 1200}, {13, 3, 5000, 1200},
		{13, 3, 4500, 1100}, {14, 3, 4500, 1100}, {14, 3, 4200, 1000}, {15, 3, 4000, 1000},
	}
	rows := make([]LettersGridParams, len(specs))
	for i, s := range specs {
		rows[i] = LettersGridParams{
			Lvl:         i + 1,
			Size:        s[0],
			Targets:     s[1],
			ExposureMs:  s[2],
			GoalRtMs:    s[3],
			Confusables: i+1 >= 10,
		}
	}
	return rows
}()

var wordSearchRows = func() []WordSearchParams {
	specs := [][3]int{
		// size, words, goal per word
		{8, 3, 8000}, {8, 3, 7500}, {9, 4, 7000}, {9, 4, 6500},
		{10, 5, 6000}, {10, 5, 5500}, {11, 6, 5000}, {11, 6, 5000},
		{12, 7, 4500}, {12, 7, 4000}, {12, 8, 4000}, {13, 8, 3500},
		{13, 9, 3500}, {13, 9, 3000}, {14, 10, 3000}, {14, 10, 2800},
		{14, 10, 2600}, {14, 10, 2400}, {14, 10, 2200}, {14, 10, 2000},
	}
	rows := make([]WordSearchParams, len(specs))
	for i, s := range specs {
		rows[i] = WordSearchParams{
			Lvl:           i + 1,
			Size:          s[0],
			Words:         s[1],
			Diagonals:     i+1 >= 8,
			Reverse:       i+1 >= 8,
			GoalPerWordMs: s[2],
		}
	}
	return rows
}()

var anagramsRows = func() []AnagramsParams {
	specs := [][3]int{
		// length, time limit, goal
		{4, 10000, 8000}, {4, 9500, 7500}, {4, 9000, 7000}, {5, 9000, 7000},
		{5, 8500, 6500}, {5, 8000, 6000}, {6, 8000, 6000}, {6, 7500, 5500},
		{6, 7000, 5000}, {7, 7000, 5000}, {7, 6500, 4500}, {7, 6000, 4000},
		{8, 6000, 4000}, {8, 5500, 3500}, {8, 5000, 3000}, {8, 4800, 2800},
		{8, 4600, 2600}, {8, 4400, 2400}, {8, 4200, 2200}, {8, 4000, 2000},
	}
	rows := make([]AnagramsParams, len(specs))
	for i, s := range specs {
		rows[i] = AnagramsParams{
			Lvl:          i + 1,
			Length:       s[0],
			TimeLimitMs:  s[1],
			GoalRtMs:     s[2],
			DecoyLetters: i+1 >= 12,
		}
	}
	return rows
}()
