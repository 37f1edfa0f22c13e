package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultAssessmentTTL = 2 * time.Hour

// AssessmentRegistry keeps in-flight assessment sessions for transports that cannot
// hold them themselves. Sessions idle longer than the TTL are dropped.
type AssessmentRegistry struct {
	mu     sync.Mutex
	engine *QuestionnaireEngine
	ttl    time.Duration
	now    func() time.Time
	items  map[string]*registeredAssessment
}

type registeredAssessment struct {
	mu       sync.Mutex
	session  *AssessmentSession
	lastSeen time.Time
}

func NewAssessmentRegistry(engine *QuestionnaireEngine, ttl time.Duration) *AssessmentRegistry {
	if ttl <= 0 {
		ttl = defaultAssessmentTTL
	}
	return &AssessmentRegistry{
		engine: engine,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
		items:  make(map[string]*registeredAssessment),
	}
}

// Create loads questionnaireID and registers a new session under a fresh id.
func (r *AssessmentRegistry) Create(questionnaireID string) (string, AssessmentSnapshot, error) {
	session, err := r.engine.LoadQuestionnaire(questionnaireID)
	if err != nil {
		return "", AssessmentSnapshot{}, err
	}
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked()
	r.items[id] = &registeredAssessment{session: session, lastSeen: r.now()}
	return id, session.Snapshot(), nil
}

// Do runs fn on the session with exclusive access and returns its snapshot afterwards.
// The snapshot is returned even when fn fails so callers can report the current state.
func (r *AssessmentRegistry) Do(id string, fn func(*AssessmentSession) error) (AssessmentSnapshot, error) {
	r.mu.Lock()
	r.purgeLocked()
	item, ok := r.items[id]
	if ok {
		item.lastSeen = r.now()
	}
	r.mu.Unlock()
	if !ok {
		return AssessmentSnapshot{}, fmt.Errorf("%w: assessment %q", ErrNotFound, id)
	}

	item.mu.Lock()
	defer item.mu.Unlock()
	var err error
	if fn != nil {
		err = fn(item.session)
	}
	return item.session.Snapshot(), err
}

func (r *AssessmentRegistry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("%w: assessment %q", ErrNotFound, id)
	}
	delete(r.items, id)
	return nil
}

func (r *AssessmentRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *AssessmentRegistry) purgeLocked() {
	cutoff := r.now().Add(-r.ttl)
	for id, item := range r.items {
		if item.lastSeen.Before(cutoff) {
			delete(r.items, id)
		}
	}
}
