package service

import (
	"fmt"
	"time"

	"github.com/1SadFox/psyco/internal/domain"
)

// EntryDatePolicy decides which dates users may journal. The journal itself accepts
// any date; callers consult the policy first.
type EntryDatePolicy struct {
	loc         *time.Location
	allowFuture bool
	now         func() time.Time
}

func NewEntryDatePolicy(loc *time.Location, allowFuture bool) *EntryDatePolicy {
	if loc == nil {
		loc = time.Local
	}
	return &EntryDatePolicy{
		loc:         loc,
		allowFuture: allowFuture,
		now:         time.Now,
	}
}

// Today returns midnight of the current day in the policy location.
func (p *EntryDatePolicy) Today() time.Time {
	now := p.now().In(p.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.loc)
}

// IsFuture reports whether date's calendar day, seen from the policy location, comes
// after today.
func (p *EntryDatePolicy) IsFuture(date time.Time) bool {
	return domain.DateKey(date.In(p.loc)) > domain.DateKey(p.Today())
}

func (p *EntryDatePolicy) Check(date time.Time) error {
	if p.allowFuture || !p.IsFuture(date) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrFutureDate, domain.DateKey(date.In(p.loc)))
}
