// Package model defines domain entities for the application.
package model

import "time"

// Category classifies a behavioral event.
type Category string

// Event categories. Unknown inbound values normalize to CategoryOther.
const (
	CategoryPageView    Category = "page_view"
	CategoryProductView Category = "product_view"
	CategoryClick       Category = "click"
	CategoryInteraction Category = "interaction"
	CategoryLinkClick   Category = "link_click"
	CategoryOther       Category = "other"
)

// ParseCategory maps a raw category string onto the closed enum.
// Anything outside the known set becomes CategoryOther so that
// unrecognized events are still counted rather than silently dropped.
func ParseCategory(raw string) Category {
	switch Category(raw) {
	case CategoryPageView, CategoryProductView, CategoryClick,
		CategoryInteraction, CategoryLinkClick, CategoryOther:
		return Category(raw)
	default:
		return CategoryOther
	}
}

// IsInteraction reports whether the category counts as a user interaction
// (as opposed to a passive view).
func (c Category) IsInteraction() bool {
	return c == CategoryClick || c == CategoryInteraction || c == CategoryLinkClick
}

// Event is a single behavioral event captured from the storefront.
// Events are immutable and append-only; OccurredAt is the sole ordering key
// and events may arrive out of order.
type Event struct {
	ID string `json:"id"` // ULID (time-sortable)

	// Session grouping
	SessionID string `json:"session_id"`
	VisitorID string `json:"visitor_id,omitempty"` // longer-lived than SessionID; may be empty

	// What happened
	Category Category `json:"category"`
	Label    string   `json:"label,omitempty"` // page path, product name, element name
	URL      string   `json:"url,omitempty"`   // page URL (may embed the host)

	// Timestamps
	OccurredAt time.Time `json:"occurred_at"` // event timestamp
	CreatedAt  time.Time `json:"created_at"`  // DB insertion time
}

// Visitor returns the identity used for unique-visitor counting.
// Falls back to the session ID when no visitor ID was captured.
func (e *Event) Visitor() string {
	if e.VisitorID != "" {
		return e.VisitorID
	}
	return e.SessionID
}
