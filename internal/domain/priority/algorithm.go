// Package priority implements the urgency scoring used to rank subjects for
// ad-hoc "what should I review today" suggestions. The computation is pure:
// it reads aggregated study-session facts for one subject and produces a
// score and classification, with no storage or clock access of its own.
package priority

import "math"

// Level is the coarse urgency classification shown to the user.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// SubjectFacts aggregates the study-session history of one subject, the
// only input the scoring algorithm needs.
type SubjectFacts struct {
	// DaysSinceLastStudy is the whole-day distance from the most recent
	// session to today, never negative. Zero when no session carries a date.
	DaysSinceLastStudy int

	// TotalAttempted and TotalCorrect sum the graded questions across all
	// sessions. TotalAttempted == 0 means the subject has no graded data
	// (e.g. essay-only study) and no numeric score can be computed.
	TotalAttempted int
	TotalCorrect   int

	// TotalMarked sums the questions the user flagged for review.
	TotalMarked int
}

// Evaluation is the outcome of scoring one subject.
type Evaluation struct {
	// Score is the numeric urgency, rounded to one decimal. Nil when the
	// subject has no graded questions; such subjects still sort, using an
	// effective score of zero.
	Score *float64

	// AccuracyPercent is the rounded overall accuracy, nil without graded data.
	AccuracyPercent *int

	// Difficulty is 100 - accuracy, zero without graded data.
	Difficulty int

	// Level is the classification shown to the user. For graded subjects it
	// follows the score thresholds; for ungraded subjects it reflects
	// staleness alone.
	Level Level
}

// Evaluate scores one subject from its aggregated facts.
//
// Graded subjects (TotalAttempted > 0):
//
//	score = min(days, DaysSinceCap)*DaysWeight
//	      + (100 - accuracy)*DifficultyWeight
//	      + min(marked, MarkedCap)*MarkedWeight
//
// Ungraded subjects get no score; their level is decided by how long the
// subject has gone unseen, so stale essay-only subjects still surface.
func Evaluate(facts SubjectFacts, params *Params) Evaluation {
	if params == nil {
		params = NewDefaultParams()
	}

	days := facts.DaysSinceLastStudy
	if days < 0 {
		days = 0
	}

	if facts.TotalAttempted <= 0 {
		return Evaluation{
			Level: stalenessLevel(days, params),
		}
	}

	accuracy := int(math.Round(float64(facts.TotalCorrect) / float64(facts.TotalAttempted) * 100))
	difficulty := 100 - accuracy

	score := float64(minInt(days, params.DaysSinceCap))*params.DaysWeight +
		float64(difficulty)*params.DifficultyWeight +
		float64(minInt(facts.TotalMarked, params.MarkedCap))*params.MarkedWeight
	score = math.Round(score*10) / 10

	return Evaluation{
		Score:           &score,
		AccuracyPercent: &accuracy,
		Difficulty:      difficulty,
		Level:           scoreLevel(score, params),
	}
}

// EffectiveScore returns the score used for ordering: the numeric score when
// defined, zero otherwise.
func (e Evaluation) EffectiveScore() float64 {
	if e.Score == nil {
		return 0
	}
	return *e.Score
}

func scoreLevel(score float64, params *Params) Level {
	switch {
	case score >= params.HighScore:
		return LevelHigh
	case score >= params.MediumScore:
		return LevelMedium
	default:
		return LevelLow
	}
}

func stalenessLevel(days int, params *Params) Level {
	switch {
	case days >= params.StaleHighDays:
		return LevelHigh
	case days >= params.StaleMediumDays:
		return LevelMedium
	default:
		return LevelLow
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
