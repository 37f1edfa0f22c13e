package service

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/1SadFox/psyco/internal/domain"
)

func fourPointQuestionnaire() domain.Questionnaire {
	questions := make([]domain.Question, 0, 5)
	for i := 1; i <= 5; i++ {
		questions = append(questions, bdiItem(i, "item", "never", "sometimes", "often", "always"))
	}
	return domain.Questionnaire{
		ID:        "q1",
		Title:     "Test instrument",
		Category:  domain.CategoryStress,
		Questions: questions,
		Bands: []domain.InterpretationBand{
			{Min: 0, Max: 9, Label: "A", Recommendations: []string{"rest"}},
			{Min: 10, Max: 18, Label: "B", Recommendations: []string{"talk to someone"}},
		},
	}
}

func newTestEngine(t *testing.T) *QuestionnaireEngine {
	t.Helper()
	catalog, err := NewCatalog(fourPointQuestionnaire())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewQuestionnaireEngine(catalog, zap.NewNop())
}

func answerAll(t *testing.T, s *AssessmentSession, value int) {
	t.Helper()
	for s.Phase() == domain.PhaseInProgress {
		q, _ := s.CurrentQuestion()
		if err := s.SelectAnswer(q.ID, value); err != nil {
			t.Fatalf("select answer %d: %v", q.ID, err)
		}
		if err := s.Next(); err != nil {
			t.Fatalf("next after %d: %v", q.ID, err)
		}
	}
}

func TestLoadQuestionnaire(t *testing.T) {
	engine := newTestEngine(t)

	s, err := engine.LoadQuestionnaire("q1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Phase() != domain.PhaseIntro || s.CurrentIndex() != 0 {
		t.Fatalf("expected intro at index 0, got %s/%d", s.Phase(), s.CurrentIndex())
	}
	if p := s.Progress(); p.Current != 0 || p.Total != 5 || p.Percent != 0 {
		t.Fatalf("unexpected intro progress %+v", p)
	}

	if _, err := engine.LoadQuestionnaire("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssessment_CompletesWithBandLabel(t *testing.T) {
	s, _ := newTestEngine(t).LoadQuestionnaire("q1")
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if p := s.Progress(); p.Current != 1 || p.Percent != 20 {
		t.Fatalf("unexpected progress after start %+v", p)
	}

	answerAll(t, s, 3)

	if s.Phase() != domain.PhaseCompleted {
		t.Fatalf("expected completed, got %s", s.Phase())
	}
	res, err := s.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.Score != 15 || res.Label != "B" || len(res.Recommendations) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if s.CurrentIndex() != 4 {
		t.Fatalf("expected index frozen at last question, got %d", s.CurrentIndex())
	}
}

func TestAssessment_NextRequiresAnswer(t *testing.T) {
	s, _ := newTestEngine(t).LoadQuestionnaire("q1")
	_ = s.Start()
	for i := 0; i < 2; i++ {
		q, _ := s.CurrentQuestion()
		_ = s.SelectAnswer(q.ID, 1)
		if err := s.Next(); err != nil {
			t.Fatalf("next: %v", err)
		}
	}

	if err := s.Next(); !errors.Is(err, ErrIncompleteAnswer) {
		t.Fatalf("expected ErrIncompleteAnswer, got %v", err)
	}
	if s.CurrentIndex() != 2 || s.Phase() != domain.PhaseInProgress {
		t.Fatalf("expected to stay on index 2, got %d/%s", s.CurrentIndex(), s.Phase())
	}
}

func TestAssessment_PreviousKeepsAnswers(t *testing.T) {
	s, _ := newTestEngine(t).LoadQuestionnaire("q1")
	_ = s.Start()

	if err := s.Previous(); err != nil || s.CurrentIndex() != 0 {
		t.Fatalf("expected previous at 0 to be a no-op, got %v/%d", err, s.CurrentIndex())
	}

	_ = s.SelectAnswer(1, 2)
	_ = s.Next()
	_ = s.SelectAnswer(2, 1)
	if err := s.Previous(); err != nil {
		t.Fatalf("previous: %v", err)
	}
	if s.CurrentIndex() != 0 {
		t.Fatalf("expected index 0, got %d", s.CurrentIndex())
	}
	if v, ok := s.Answer(1); !ok || v != 2 {
		t.Fatalf("expected answer 2 kept for question 1, got %d,%v", v, ok)
	}
	if v, ok := s.Answer(2); !ok || v != 1 {
		t.Fatalf("expected answer 1 kept for question 2, got %d,%v", v, ok)
	}
	// Overwrite, then move on without re-answering question 2.
	_ = s.SelectAnswer(1, 0)
	_ = s.Next()
	if err := s.Next(); err != nil {
		t.Fatalf("expected kept answer to satisfy next, got %v", err)
	}
	if v, _ := s.Answer(1); v != 0 {
		t.Fatalf("expected overwritten answer 0, got %d", v)
	}
}

func TestAssessment_SelectAnswerValidation(t *testing.T) {
	s, _ := newTestEngine(t).LoadQuestionnaire("q1")

	if err := s.SelectAnswer(1, 1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState in intro, got %v", err)
	}
	_ = s.Start()
	if err := s.SelectAnswer(2, 1); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for non-current question, got %v", err)
	}
	if err := s.SelectAnswer(1, 7); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for unknown option, got %v", err)
	}
	if _, ok := s.Answer(1); ok {
		t.Fatalf("expected no answer recorded")
	}
}

func TestAssessment_InvalidTransitions(t *testing.T) {
	s, _ := newTestEngine(t).LoadQuestionnaire("q1")

	if err := s.Next(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected next in intro to fail, got %v", err)
	}
	if err := s.Previous(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected previous in intro to fail, got %v", err)
	}
	if err := s.Restart(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected restart in intro to fail, got %v", err)
	}
	if _, err := s.Result(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected result in intro to fail, got %v", err)
	}

	_ = s.Start()
	if err := s.Start(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected second start to fail, got %v", err)
	}
	answerAll(t, s, 0)
	if err := s.Next(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected next after completion to fail, got %v", err)
	}
	if err := s.SelectAnswer(5, 1); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected answer after completion to fail, got %v", err)
	}
}

func TestAssessment_RestartIsDeterministic(t *testing.T) {
	s, _ := newTestEngine(t).LoadQuestionnaire("q1")
	_ = s.Start()
	answerAll(t, s, 3)
	first, _ := s.Result()

	if err := s.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.Phase() != domain.PhaseIntro || s.CurrentIndex() != 0 {
		t.Fatalf("expected intro at 0 after restart, got %s/%d", s.Phase(), s.CurrentIndex())
	}
	if _, ok := s.Answer(1); ok {
		t.Fatalf("expected answers cleared after restart")
	}

	_ = s.Start()
	answerAll(t, s, 3)
	second, _ := s.Result()
	if first.Score != second.Score || first.Label != second.Label {
		t.Fatalf("expected same result after restart, got %+v vs %+v", first, second)
	}

	_ = s.Restart()
	_ = s.Start()
	answerAll(t, s, 0)
	low, _ := s.Result()
	if low.Score != 0 || low.Label != "A" {
		t.Fatalf("expected A for all zeros, got %+v", low)
	}
}

func TestAssessment_ScoreOutsideBandsPanics(t *testing.T) {
	q := fourPointQuestionnaire()
	q.Bands = []domain.InterpretationBand{{Min: 0, Max: 9, Label: "A"}}
	s := &AssessmentSession{
		questionnaire: q,
		phase:         domain.PhaseIntro,
		answers:       map[int]int{},
		logger:        zap.NewNop(),
	}
	_ = s.Start()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for uncovered score")
		}
	}()
	answerAll(t, s, 3)
}

func TestAssessment_STAIReverseScoredItems(t *testing.T) {
	engine := NewQuestionnaireEngine(MustDefaultCatalog(), zap.NewNop())
	s, err := engine.LoadQuestionnaire("stai")
	if err != nil {
		t.Fatalf("load stai: %v", err)
	}
	first := s.Questionnaire().Questions[0]
	if !first.Reversed || first.Options[0].Value != 4 || first.Options[3].Value != 1 {
		t.Fatalf("expected reversed options on item 1, got %+v", first.Options)
	}
	third := s.Questionnaire().Questions[2]
	if third.Reversed || third.Options[0].Value != 1 {
		t.Fatalf("expected straight options on item 3, got %+v", third.Options)
	}

	_ = s.Start()
	// "Not at all" everywhere: 4+4+1+1+4.
	for s.Phase() == domain.PhaseInProgress {
		q, _ := s.CurrentQuestion()
		if err := s.SelectAnswer(q.ID, q.Options[0].Value); err != nil {
			t.Fatalf("answer: %v", err)
		}
		_ = s.Next()
	}
	res, _ := s.Result()
	if res.Score != 14 || res.Label != "Low anxiety" {
		t.Fatalf("unexpected stai result %+v", res)
	}
}

func TestAssessment_Snapshot(t *testing.T) {
	s, _ := newTestEngine(t).LoadQuestionnaire("q1")
	snap := s.Snapshot()
	if snap.CurrentQuestion != nil || snap.Result != nil || snap.Phase != domain.PhaseIntro {
		t.Fatalf("unexpected intro snapshot %+v", snap)
	}

	_ = s.Start()
	_ = s.SelectAnswer(1, 2)
	snap = s.Snapshot()
	if snap.CurrentQuestion == nil || snap.CurrentQuestion.ID != 1 || snap.Answers[1] != 2 {
		t.Fatalf("unexpected in-progress snapshot %+v", snap)
	}
	snap.Answers[1] = 0
	if v, _ := s.Answer(1); v != 2 {
		t.Fatalf("snapshot should not alias session answers")
	}

	_ = s.Next()
	answerAll(t, s, 1)
	snap = s.Snapshot()
	if snap.Result == nil || snap.Result.Score != 6 || snap.CurrentQuestion != nil {
		t.Fatalf("unexpected completed snapshot %+v", snap)
	}
}
