// Package calendar renders terms as an iCalendar feed.
package calendar

import (
	"fmt"
	"time"

	"github.com/alexanderramin/aula/internal/domain"
	ics "github.com/arran4/golang-ical"
)

const productID = "-//aula//academic terms//EN"

// ExportTerms returns a PUBLISH calendar holding one all-day event per term.
// DTEND is exclusive in iCalendar, so it is set to the day after EndDate.
func ExportTerms(terms []*domain.Term, now time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	stamp := now.UTC()
	for _, t := range terms {
		event := cal.AddEvent(t.ID)
		event.SetDtStampTime(stamp)
		event.SetSummary(t.GeneratedName)
		event.SetDescription(fmt.Sprintf("state: %s", t.StateAt(now)))
		event.SetAllDayStartAt(domain.DateOnly(t.StartDate))
		event.SetAllDayEndAt(domain.DateOnly(t.EndDate).AddDate(0, 0, 1))
	}
	return cal.Serialize()
}
