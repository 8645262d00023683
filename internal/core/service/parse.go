package service

import (
	"strings"
	"time"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

// placeholderItem is used when an event yields an order but no recognizable
// line item; the baker fills in the real item through the dashboard.
const placeholderItem = "Cake order"

// looseDateLayouts are the formats accepted for dates typed into event titles
// and descriptions. Day-first slash dates match how the bakery writes them.
var looseDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// eventAccumulator collects order state while walking an event line by line.
type eventAccumulator struct {
	order        domain.ParsedOrder
	items        []domain.OrderItem
	hasDueSource bool
}

// descriptionLabels maps a normalized "Label:" prefix from the event
// description to its update behaviour. Adding a label is a data change here,
// not a new branch in the parser.
var descriptionLabels = map[string]func(acc *eventAccumulator, value string){
	"customer name": func(acc *eventAccumulator, value string) {
		// The title is the more authoritative source for the name.
		if acc.order.CustomerName == "" {
			acc.order.CustomerName = value
		}
	},
	"phone": func(acc *eventAccumulator, value string) {
		acc.order.CustomerPhone = &value
	},
	"email": func(acc *eventAccumulator, value string) {
		acc.order.CustomerEmail = &value
	},
	"event date": func(acc *eventAccumulator, value string) {
		if acc.hasDueSource {
			return
		}
		if due, ok := parseLooseDate(value); ok {
			acc.order.DueAt = due
			acc.hasDueSource = true
		}
	},
	"cake type": func(acc *eventAccumulator, value string) {
		if len(acc.items) == 0 {
			acc.items = append(acc.items, domain.OrderItem{ItemName: value, Quantity: 1})
			return
		}
		acc.items[0].ItemName = value
	},
	"special notes": func(acc *eventAccumulator, value string) {
		acc.appendNote(value)
	},
	"notes": func(acc *eventAccumulator, value string) {
		acc.appendNote(value)
	},
	"request summary": func(acc *eventAccumulator, value string) {
		acc.appendNote(value)
	},
	"delivery required": func(acc *eventAccumulator, value string) {
		acc.appendNote("Delivery required: " + value)
	},
	"delivery address": func(acc *eventAccumulator, value string) {
		acc.appendNote("Delivery address: " + value)
	},
}

func (acc *eventAccumulator) appendNote(line string) {
	if acc.order.Notes == nil {
		notes := line
		acc.order.Notes = &notes
		return
	}
	joined := *acc.order.Notes + "\n" + line
	acc.order.Notes = &joined
}

// ParseEvent turns one calendar event into one order plus its line items.
// Pure and deterministic: the only clock it sees is the one passed in, used
// as the due-date placeholder for events without any date source.
//
// An event is accepted only when it yields a customer name and an explicit
// due-date source (timed start, all-day date, title date segment, or an
// "Event date:" description line). Rejected events must be discarded whole.
func ParseEvent(event domain.CalendarEvent, now time.Time) domain.ParseResult {
	acc := &eventAccumulator{
		order: domain.ParsedOrder{
			DueAt:  now,
			Status: domain.OrderStatusConfirmed,
		},
	}

	// The event's own start wins over anything typed into the text.
	if event.StartsAt != nil {
		acc.order.DueAt = *event.StartsAt
		acc.hasDueSource = true
	}

	parseTitle(acc, event.Summary)
	parseDescription(acc, event.Description)

	if acc.order.CustomerName != "" && len(acc.items) == 0 {
		acc.items = append(acc.items, domain.OrderItem{ItemName: placeholderItem, Quantity: 1})
	}

	skip := acc.order.CustomerName == "" || !acc.hasDueSource

	return domain.ParseResult{
		Order: acc.order,
		Items: acc.items,
		Skip:  skip,
	}
}

// parseTitle decomposes "Customer Name - Cake Type - 2026-01-31" style
// summaries. Only the first two hyphens delimit, so dates keep their own
// hyphens intact.
func parseTitle(acc *eventAccumulator, summary string) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return
	}

	segments := strings.SplitN(summary, "-", 3)
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}

	acc.order.CustomerName = segments[0]

	if len(segments) > 1 && segments[1] != "" {
		acc.items = append(acc.items, domain.OrderItem{ItemName: segments[1], Quantity: 1})
	}

	if len(segments) > 2 && !acc.hasDueSource {
		if due, ok := parseLooseDate(segments[2]); ok {
			acc.order.DueAt = due
			acc.hasDueSource = true
		}
	}
}

// parseDescription walks the description line by line, dispatching
// "Label: value" lines through the label table. Lines without a colon and
// unrecognized labels are ignored.
func parseDescription(acc *eventAccumulator, description string) {
	for _, line := range strings.Split(description, "\n") {
		label, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		apply, ok := descriptionLabels[strings.ToLower(strings.TrimSpace(label))]
		if !ok {
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		apply(acc, value)
	}
}

func parseLooseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range looseDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
