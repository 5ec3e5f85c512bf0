package domain

import (
	"strings"
	"time"
)

// FulfillmentStatusFulfilled is the only upstream fulfillment status the
// stage resolver acts on.
const FulfillmentStatusFulfilled = "FULFILLED"

// OrderRecord is the subset of an upstream order needed to place it on the
// processing -> packing -> shipped timeline.
type OrderRecord struct {
	Name              string
	CreatedAt         time.Time
	FulfillmentStatus string
	Fulfillments      []Fulfillment
}

type Fulfillment struct {
	Tracking []TrackingInfo
}

type TrackingInfo struct {
	Number string
	URL    string
}

func (t TrackingInfo) Present() bool {
	return strings.TrimSpace(t.Number) != "" || strings.TrimSpace(t.URL) != ""
}

// IsFulfilled reports whether the upstream status says FULFILLED, ignoring case.
func (o OrderRecord) IsFulfilled() bool {
	return strings.EqualFold(strings.TrimSpace(o.FulfillmentStatus), FulfillmentStatusFulfilled)
}

// HasTracking reports whether any fulfillment carries a tracking number or URL.
func (o OrderRecord) HasTracking() bool {
	for _, f := range o.Fulfillments {
		for _, t := range f.Tracking {
			if t.Present() {
				return true
			}
		}
	}
	return false
}
