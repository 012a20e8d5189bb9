package views

import (
	"time"

	"eventmanager/models"
	"eventmanager/utils"
)

const (
	dateLayout      = "Mon Jan 02 2006"
	inputTimeLayout = "2006-01-02T15:04:05"
)

// EventView decorates an event with display strings for the list page.
type EventView struct {
	models.Event
	FormattedStartDate string
	FormattedEndDate   string
}

// NewEventViews formats start and end of every event in loc. The order of
// events is kept and the events themselves are copied, not modified.
func NewEventViews(events []models.Event, loc *time.Location) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView{
			Event:              e,
			FormattedStartDate: FormatTimestamp(e.StartDateAndTime, loc),
			FormattedEndDate:   FormatTimestamp(e.EndDateAndTime, loc),
		})
	}
	return out
}

// FormatTimestamp renders t as "Mon Jan 02 2006 15:04:05" in loc.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	lt := t.In(loc)
	return lt.Format(dateLayout) + " " + utils.FormatTime(lt.Hour(), lt.Minute(), lt.Second()).String()
}

// EventForm holds the raw values shown in the add and edit forms.
type EventForm struct {
	ID        string
	Name      string
	Location  string
	StartDate string
	EndDate   string
}

// NewEventForm prefills a form from a stored event, with timestamps in the
// datetime-local input format.
func NewEventForm(e models.Event, loc *time.Location) EventForm {
	return EventForm{
		ID:        e.ID,
		Name:      e.Name,
		Location:  e.Location,
		StartDate: inputTime(e.StartDateAndTime, loc),
		EndDate:   inputTime(e.EndDateAndTime, loc),
	}
}

// FormFromInput echoes submitted values back into a form.
func FormFromInput(id string, in models.EventInput) EventForm {
	return EventForm{
		ID:        id,
		Name:      in.Name,
		Location:  in.Location,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
}

func inputTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(inputTimeLayout)
}
