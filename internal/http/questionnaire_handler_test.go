package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/1SadFox/psyco/internal/domain"
	"github.com/1SadFox/psyco/internal/service"
)

type assessmentResponse struct {
	ID         string                     `json:"id"`
	Assessment service.AssessmentSnapshot `json:"assessment"`
	Error      string                     `json:"error"`
}

func createAssessment(t *testing.T, r *gin.Engine, questionnaireID string) string {
	t.Helper()
	rec := performRequest(r, http.MethodPost, "/assessments", map[string]any{"questionnaire_id": questionnaireID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp assessmentResponse
	decode(t, rec, &resp)
	if resp.ID == "" || resp.Assessment.Phase != domain.PhaseIntro {
		t.Fatalf("unexpected create response %+v", resp)
	}
	return resp.ID
}

func TestQuestionnaireHandler_List(t *testing.T) {
	r := setupRouter(t)

	rec := performRequest(r, http.MethodGet, "/questionnaires?category=anxiety", nil)
	var got struct {
		Questionnaires []domain.QuestionnaireSummary `json:"questionnaires"`
		Categories     []string                      `json:"categories"`
	}
	decode(t, rec, &got)
	if len(got.Questionnaires) != 1 || got.Questionnaires[0].ID != "stai" || len(got.Categories) != 2 {
		t.Fatalf("unexpected listing %+v", got)
	}

	rec = performRequest(r, http.MethodGet, "/questionnaires?q=beck", nil)
	decode(t, rec, &got)
	if len(got.Questionnaires) != 1 || got.Questionnaires[0].ID != "bdi" {
		t.Fatalf("unexpected search result %+v", got.Questionnaires)
	}
}

func TestQuestionnaireHandler_Get(t *testing.T) {
	r := setupRouter(t)
	rec := performRequest(r, http.MethodGet, "/questionnaires/bdi", nil)
	var got struct {
		Questionnaire domain.Questionnaire `json:"questionnaire"`
	}
	decode(t, rec, &got)
	if rec.Code != http.StatusOK || len(got.Questionnaire.Questions) != 5 || len(got.Questionnaire.Bands) != 4 {
		t.Fatalf("unexpected questionnaire %d %+v", rec.Code, got.Questionnaire)
	}

	if rec := performRequest(r, http.MethodGet, "/questionnaires/unknown", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestQuestionnaireHandler_FullAssessment(t *testing.T) {
	r := setupRouter(t)
	id := createAssessment(t, r, "bdi")
	base := "/assessments/" + id

	if rec := performRequest(r, http.MethodPost, base+"/start", nil); rec.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d", rec.Code)
	}

	rec := performRequest(r, http.MethodPost, base+"/next", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unanswered question, got %d", rec.Code)
	}
	var resp assessmentResponse
	decode(t, rec, &resp)
	if resp.Assessment.CurrentQuestion == nil || resp.Assessment.CurrentQuestion.ID != 1 {
		t.Fatalf("expected current state with error, got %+v", resp)
	}

	for qid := 1; qid <= 5; qid++ {
		rec = performRequest(r, http.MethodPost, base+"/answer", map[string]any{"question_id": qid, "value": 2})
		if rec.Code != http.StatusOK {
			t.Fatalf("answer %d: expected 200, got %d: %s", qid, rec.Code, rec.Body.String())
		}
		if rec = performRequest(r, http.MethodPost, base+"/next", nil); rec.Code != http.StatusOK {
			t.Fatalf("next %d: expected 200, got %d", qid, rec.Code)
		}
	}

	rec = performRequest(r, http.MethodGet, base+"/result", nil)
	var result struct {
		Result domain.AssessmentResult `json:"result"`
	}
	decode(t, rec, &result)
	if rec.Code != http.StatusOK || result.Result.Score != 10 || result.Result.Label != "Mild depression" {
		t.Fatalf("unexpected result %d %+v", rec.Code, result.Result)
	}

	if rec := performRequest(r, http.MethodPost, base+"/next", nil); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 after completion, got %d", rec.Code)
	}
	if rec := performRequest(r, http.MethodPost, base+"/restart", nil); rec.Code != http.StatusOK {
		t.Fatalf("restart: expected 200, got %d", rec.Code)
	}
	if rec := performRequest(r, http.MethodGet, base+"/result", nil); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for result after restart, got %d", rec.Code)
	}

	if rec := performRequest(r, http.MethodDelete, base, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	if rec := performRequest(r, http.MethodGet, base, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestQuestionnaireHandler_AnswerValidation(t *testing.T) {
	r := setupRouter(t)
	id := createAssessment(t, r, "stai")
	base := "/assessments/" + id
	performRequest(r, http.MethodPost, base+"/start", nil)

	cases := []struct {
		name string
		body any
		want int
	}{
		{"missing value", map[string]any{"question_id": 1}, http.StatusBadRequest},
		{"not current", map[string]any{"question_id": 2, "value": 1}, http.StatusBadRequest},
		{"not an option", map[string]any{"question_id": 1, "value": 0}, http.StatusBadRequest},
		{"ok", map[string]any{"question_id": 1, "value": 4}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performRequest(r, http.MethodPost, base+"/answer", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}

	if rec := performRequest(r, http.MethodPost, "/assessments", map[string]any{"questionnaire_id": "nope"}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown questionnaire, got %d", rec.Code)
	}
	if rec := performRequest(r, http.MethodPost, "/assessments", map[string]any{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", rec.Code)
	}
}
