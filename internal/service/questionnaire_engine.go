package service

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/1SadFox/psyco/internal/domain"
)

// QuestionnaireEngine opens assessment sessions over a validated catalog.
type QuestionnaireEngine struct {
	catalog *Catalog
	logger  *zap.Logger
}

func NewQuestionnaireEngine(catalog *Catalog, logger *zap.Logger) *QuestionnaireEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionnaireEngine{catalog: catalog, logger: logger}
}

func (e *QuestionnaireEngine) Catalog() *Catalog {
	return e.catalog
}

// LoadQuestionnaire returns a new session in the intro phase.
func (e *QuestionnaireEngine) LoadQuestionnaire(id string) (*AssessmentSession, error) {
	if e == nil || e.catalog == nil {
		return nil, fmt.Errorf("%w: questionnaire %q", ErrNotFound, id)
	}
	q, err := e.catalog.Get(id)
	if err != nil {
		return nil, err
	}
	return &AssessmentSession{
		questionnaire: q,
		phase:         domain.PhaseIntro,
		answers:       make(map[int]int, len(q.Questions)),
		logger:        e.logger,
	}, nil
}

// AssessmentSession is one linear pass through a questionnaire. It is not safe for
// concurrent use.
type AssessmentSession struct {
	questionnaire domain.Questionnaire
	phase         domain.AssessmentPhase
	index         int
	answers       map[int]int
	result        *domain.AssessmentResult
	logger        *zap.Logger
}

func (s *AssessmentSession) Questionnaire() domain.Questionnaire {
	return s.questionnaire
}

func (s *AssessmentSession) Phase() domain.AssessmentPhase {
	return s.phase
}

func (s *AssessmentSession) CurrentIndex() int {
	return s.index
}

// CurrentQuestion is only meaningful while the session is in progress.
func (s *AssessmentSession) CurrentQuestion() (domain.Question, bool) {
	if s.phase != domain.PhaseInProgress {
		return domain.Question{}, false
	}
	return s.questionnaire.Questions[s.index], true
}

// Answer returns the recorded value for questionID.
func (s *AssessmentSession) Answer(questionID int) (int, bool) {
	v, ok := s.answers[questionID]
	return v, ok
}

func (s *AssessmentSession) Start() error {
	if s.phase != domain.PhaseIntro {
		return fmt.Errorf("%w: start from %s", ErrInvalidState, s.phase)
	}
	s.reset()
	s.phase = domain.PhaseInProgress
	return nil
}

// SelectAnswer records value for the current question, overwriting any earlier
// answer. It never advances.
func (s *AssessmentSession) SelectAnswer(questionID, value int) error {
	if s.phase != domain.PhaseInProgress {
		return fmt.Errorf("%w: answer in %s", ErrInvalidState, s.phase)
	}
	current := s.questionnaire.Questions[s.index]
	if current.ID != questionID {
		return fmt.Errorf("%w: question %d is not the current question", ErrInvalidAnswer, questionID)
	}
	if !current.HasOption(value) {
		return fmt.Errorf("%w: %d is not an option of question %d", ErrInvalidAnswer, value, questionID)
	}
	s.answers[questionID] = value
	return nil
}

// Next advances to the following question, or completes and scores the assessment
// after the last one.
func (s *AssessmentSession) Next() error {
	if s.phase != domain.PhaseInProgress {
		return fmt.Errorf("%w: next in %s", ErrInvalidState, s.phase)
	}
	current := s.questionnaire.Questions[s.index]
	if _, ok := s.answers[current.ID]; !ok {
		return fmt.Errorf("%w: question %d", ErrIncompleteAnswer, current.ID)
	}
	if s.index+1 < len(s.questionnaire.Questions) {
		s.index++
		return nil
	}
	result := s.score()
	s.result = &result
	s.phase = domain.PhaseCompleted
	s.logger.Info("assessment completed",
		zap.String("questionnaire_id", s.questionnaire.ID),
		zap.String("result", result.Label),
	)
	return nil
}

// Previous moves back one question, keeping answers. At the first question it is a no-op.
func (s *AssessmentSession) Previous() error {
	if s.phase != domain.PhaseInProgress {
		return fmt.Errorf("%w: previous in %s", ErrInvalidState, s.phase)
	}
	if s.index > 0 {
		s.index--
	}
	return nil
}

// Restart returns a completed session to the intro phase with no answers.
func (s *AssessmentSession) Restart() error {
	if s.phase != domain.PhaseCompleted {
		return fmt.Errorf("%w: restart from %s", ErrInvalidState, s.phase)
	}
	s.reset()
	s.phase = domain.PhaseIntro
	return nil
}

func (s *AssessmentSession) Result() (domain.AssessmentResult, error) {
	if s.phase != domain.PhaseCompleted || s.result == nil {
		return domain.AssessmentResult{}, fmt.Errorf("%w: result in %s", ErrInvalidState, s.phase)
	}
	out := *s.result
	out.Recommendations = append([]string{}, s.result.Recommendations...)
	return out, nil
}

func (s *AssessmentSession) Progress() domain.AssessmentProgress {
	total := len(s.questionnaire.Questions)
	current := s.index + 1
	if s.phase == domain.PhaseIntro {
		current = 0
	}
	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(current) / float64(total) * 100))
	}
	return domain.AssessmentProgress{Current: current, Total: total, Percent: percent}
}

func (s *AssessmentSession) reset() {
	s.index = 0
	s.answers = make(map[int]int, len(s.questionnaire.Questions))
	s.result = nil
}

// score sums the answers and picks the interpretation band. A total outside every band
// means the catalog is corrupt, which NewCatalog is meant to rule out.
func (s *AssessmentSession) score() domain.AssessmentResult {
	total := 0
	for _, q := range s.questionnaire.Questions {
		total += s.answers[q.ID]
	}
	band, ok := s.questionnaire.Band(total)
	if !ok {
		panic(fmt.Sprintf("questionnaire %s: no interpretation band for score %d", s.questionnaire.ID, total))
	}
	return domain.AssessmentResult{
		QuestionnaireID: s.questionnaire.ID,
		Score:           total,
		Label:           band.Label,
		Recommendations: append([]string{}, band.Recommendations...),
	}
}

// AssessmentSnapshot is a serializable view of a session.
type AssessmentSnapshot struct {
	QuestionnaireID string                    `json:"questionnaire_id"`
	Phase           domain.AssessmentPhase    `json:"phase"`
	CurrentIndex    int                       `json:"current_index"`
	CurrentQuestion *domain.Question          `json:"current_question,omitempty"`
	Answers         map[int]int               `json:"answers"`
	Progress        domain.AssessmentProgress `json:"progress"`
	Result          *domain.AssessmentResult  `json:"result,omitempty"`
}

func (s *AssessmentSession) Snapshot() AssessmentSnapshot {
	snap := AssessmentSnapshot{
		QuestionnaireID: s.questionnaire.ID,
		Phase:           s.phase,
		CurrentIndex:    s.index,
		Answers:         make(map[int]int, len(s.answers)),
		Progress:        s.Progress(),
	}
	for k, v := range s.answers {
		snap.Answers[k] = v
	}
	if q, ok := s.CurrentQuestion(); ok {
		snap.CurrentQuestion = &q
	}
	if res, err := s.Result(); err == nil {
		snap.Result = &res
	}
	return snap
}
