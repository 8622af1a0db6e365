package priority

// Params defines all configurable parameters for the priority scoring
// algorithm. The defaults reproduce the weights the study tracker has always
// used: staleness dominates, difficulty and marked-question volume follow.
type Params struct {
	// Caps applied before weighting, so a single runaway input cannot
	// drown the other criteria.
	DaysSinceCap int
	MarkedCap    int

	// Criterion weights. Expected to sum to 1.0.
	DaysWeight       float64
	DifficultyWeight float64
	MarkedWeight     float64

	// Score thresholds for the high/medium classification of graded subjects.
	HighScore   float64
	MediumScore float64

	// Staleness thresholds (in days) for classifying subjects without any
	// graded questions, where no numeric score is defined.
	StaleHighDays   int
	StaleMediumDays int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		DaysSinceCap: 60,
		MarkedCap:    50,

		DaysWeight:       0.5,
		DifficultyWeight: 0.3,
		MarkedWeight:     0.2,

		HighScore:   40,
		MediumScore: 20,

		StaleHighDays:   7,
		StaleMediumDays: 3,
	}
}
