package usecase

import (
	"time"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/clock"
	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

// archivedAfterDays is the calendar-day age past which an event page moves on
// to the results archive.
const archivedAfterDays = 7

// NewClassifier builds a new Classifier.
func NewClassifier(clk *clock.Clock) *Classifier {
	return &Classifier{clock: clk}
}

// Classifier computes the lifecycle phase of an event page view. It holds no
// state between views; every view is classified fresh.
type Classifier struct {
	clock *clock.Clock
}

// Classify classifies a page view. event is nil when the lookup by natural key
// found nothing; requestedYear is then the year from the requested key and
// decides between "coming soon" and "not found".
//
// The archival cutoff is deliberately a calendar-day comparison, insensitive to
// time of day, while the registration-closed and event-started flags are true
// instant comparisons in the configured timezone. The two tiers must not be
// collapsed into one comparison style.
func (c *Classifier) Classify(event model.Event, requestedYear int) model.PhaseInfo {
	if event == nil {
		if c.plausibleYear(requestedYear) {
			return model.PhaseInfo{Phase: model.PhaseUnknownMaybeUpcoming}
		}
		return model.PhaseInfo{Phase: model.PhaseUnknownNotFound}
	}

	start := c.clock.ToAbsolute(event.Start())
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, c.clock.Location())
	if startDay.Before(c.clock.TodayLocalMidnight().AddDate(0, 0, -archivedAfterDays)) {
		return model.PhaseInfo{Phase: model.PhaseArchived}
	}

	now := c.clock.Now()
	return model.PhaseInfo{
		Phase:              model.PhaseScheduled,
		RegistrationClosed: now.After(c.clock.ToAbsolute(event.RegistrationClose())),
		EventStarted:       now.After(start),
	}
}

// plausibleYear reports whether a not-yet-announced event in the requested year
// is believable: from November onward next year's schedule is expected too,
// otherwise only the current year qualifies.
func (c *Classifier) plausibleYear(year int) bool {
	now := c.clock.NowLocal()
	if now.Month() >= time.November {
		return year == now.Year() || year == now.Year()+1
	}
	return year == now.Year()
}
