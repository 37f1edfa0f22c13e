package domain

const (
	CategoryAll        = "all"
	CategoryDepression = "depression"
	CategoryAnxiety    = "anxiety"
	CategoryStress     = "stress"
	CategoryWellbeing  = "wellbeing"
)

type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Question is a single item of an instrument. Reversed marks items whose option
// values decrease as agreement increases; the values themselves already carry it.
type Question struct {
	ID       int      `json:"id"`
	Prompt   string   `json:"prompt"`
	Options  []Option `json:"options"`
	Reversed bool     `json:"reversed,omitempty"`
}

func (q Question) HasOption(value int) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// ValueRange returns the lowest and highest option values of the question.
func (q Question) ValueRange() (int, int) {
	if len(q.Options) == 0 {
		return 0, 0
	}
	lo, hi := q.Options[0].Value, q.Options[0].Value
	for _, opt := range q.Options[1:] {
		if opt.Value < lo {
			lo = opt.Value
		}
		if opt.Value > hi {
			hi = opt.Value
		}
	}
	return lo, hi
}

type InterpretationBand struct {
	Min             int      `json:"min"`
	Max             int      `json:"max"`
	Label           string   `json:"label"`
	Recommendations []string `json:"recommendations"`
}

func (b InterpretationBand) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

type Questionnaire struct {
	ID                string               `json:"id"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	EstimatedDuration string               `json:"estimated_duration"`
	Category          string               `json:"category"`
	Questions         []Question           `json:"questions"`
	Bands             []InterpretationBand `json:"interpretation_bands"`
}

// ScoreRange returns the minimum and maximum totals a complete answer set can reach.
func (q Questionnaire) ScoreRange() (int, int) {
	var lo, hi int
	for _, question := range q.Questions {
		qlo, qhi := question.ValueRange()
		lo += qlo
		hi += qhi
	}
	return lo, hi
}

// Band returns the first interpretation band containing score.
func (q Questionnaire) Band(score int) (InterpretationBand, bool) {
	for _, band := range q.Bands {
		if band.Contains(score) {
			return band, true
		}
	}
	return InterpretationBand{}, false
}

// QuestionnaireSummary is the catalog listing form of a questionnaire.
type QuestionnaireSummary struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	EstimatedDuration string `json:"estimated_duration"`
	Category          string `json:"category"`
	QuestionCount     int    `json:"question_count"`
}

func (q Questionnaire) Summary() QuestionnaireSummary {
	return QuestionnaireSummary{
		ID:                q.ID,
		Title:             q.Title,
		Description:       q.Description,
		EstimatedDuration: q.EstimatedDuration,
		Category:          q.Category,
		QuestionCount:     len(q.Questions),
	}
}

// AssessmentPhase is the lifecycle state of a questionnaire attempt.
type AssessmentPhase string

const (
	PhaseIntro      AssessmentPhase = "intro"
	PhaseInProgress AssessmentPhase = "in_progress"
	PhaseCompleted  AssessmentPhase = "completed"
)

type AssessmentResult struct {
	QuestionnaireID string   `json:"questionnaire_id"`
	Score           int      `json:"score"`
	Label           string   `json:"label"`
	Recommendations []string `json:"recommendations"`
}

// AssessmentProgress mirrors the progress bar: 1-based question number over total.
type AssessmentProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}
