package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1SadFox/psyco/internal/domain"
)

// Catalog is the read-only set of instruments, validated once at construction.
type Catalog struct {
	items []domain.Questionnaire
	byID  map[string]int
}

// CatalogFilter narrows List. An empty or "all" category matches everything; Search is
// matched case-insensitively against title and description.
type CatalogFilter struct {
	Category string
	Search   string
}

func NewCatalog(questionnaires ...domain.Questionnaire) (*Catalog, error) {
	c := &Catalog{
		items: make([]domain.Questionnaire, 0, len(questionnaires)),
		byID:  make(map[string]int, len(questionnaires)),
	}
	for _, q := range questionnaires {
		if err := ValidateQuestionnaire(q); err != nil {
			return nil, err
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate questionnaire id %q", ErrInvalidCatalog, q.ID)
		}
		c.byID[q.ID] = len(c.items)
		c.items = append(c.items, q)
	}
	return c, nil
}

// DefaultCatalog builds the catalog of bundled instruments.
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(bundledQuestionnaires()...)
}

// MustDefaultCatalog panics when the bundled instruments are inconsistent.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Get(id string) (domain.Questionnaire, error) {
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return domain.Questionnaire{}, fmt.Errorf("%w: questionnaire %q", ErrNotFound, id)
	}
	return c.items[idx], nil
}

func (c *Catalog) List(filter CatalogFilter) []domain.QuestionnaireSummary {
	category := strings.ToLower(strings.TrimSpace(filter.Category))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]domain.QuestionnaireSummary, 0, len(c.items))
	for _, q := range c.items {
		if category != "" && category != domain.CategoryAll && q.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(q.Title), search) &&
			!strings.Contains(strings.ToLower(q.Description), search) {
			continue
		}
		out = append(out, q.Summary())
	}
	return out
}

// ValidateQuestionnaire checks that q can be scored: unique question ids, unique option
// values, and interpretation bands that are ordered, contiguous and cover every
// reachable total.
func ValidateQuestionnaire(q domain.Questionnaire) error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("%w: questionnaire id required", ErrInvalidCatalog)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: %s has no questions", ErrInvalidCatalog, q.ID)
	}

	questionIDs := make(map[int]struct{}, len(q.Questions))
	for _, question := range q.Questions {
		if _, dup := questionIDs[question.ID]; dup {
			return fmt.Errorf("%w: %s duplicate question id %d", ErrInvalidCatalog, q.ID, question.ID)
		}
		questionIDs[question.ID] = struct{}{}
		if len(question.Options) == 0 {
			return fmt.Errorf("%w: %s question %d has no options", ErrInvalidCatalog, q.ID, question.ID)
		}
		values := make(map[int]struct{}, len(question.Options))
		for _, opt := range question.Options {
			if _, dup := values[opt.Value]; dup {
				return fmt.Errorf("%w: %s question %d duplicate option value %d", ErrInvalidCatalog, q.ID, question.ID, opt.Value)
			}
			values[opt.Value] = struct{}{}
		}
	}

	if len(q.Bands) == 0 {
		return fmt.Errorf("%w: %s has no interpretation bands", ErrInvalidCatalog, q.ID)
	}
	for i, band := range q.Bands {
		if band.Min > band.Max {
			return fmt.Errorf("%w: %s band %q has min > max", ErrInvalidCatalog, q.ID, band.Label)
		}
		if i > 0 && band.Min != q.Bands[i-1].Max+1 {
			return fmt.Errorf("%w: %s bands %q and %q are not contiguous", ErrInvalidCatalog, q.ID, q.Bands[i-1].Label, band.Label)
		}
	}
	lo, hi := q.ScoreRange()
	if q.Bands[0].Min > lo || q.Bands[len(q.Bands)-1].Max < hi {
		return fmt.Errorf("%w: %s bands cover [%d, %d], scores range over [%d, %d]",
			ErrInvalidCatalog, q.ID, q.Bands[0].Min, q.Bands[len(q.Bands)-1].Max, lo, hi)
	}
	return nil
}

// Categories returns the distinct categories present in the catalog, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	for _, q := range c.items {
		seen[q.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}
