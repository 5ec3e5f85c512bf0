package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return now.Add(-time.Duration(d) * 24 * time.Hour)
}

func TestResolveStage_ByAge(t *testing.T) {
	cases := []struct {
		days int
		want Stage
	}{
		{0, StageProcessing},
		{1, StageProcessing},
		{2, StagePacking},
		{3, StagePacking},
		{4, StageShipped},
		{30, StageShipped},
	}
	for _, tc := range cases {
		res := ResolveStage(OrderRecord{CreatedAt: daysAgo(tc.days), FulfillmentStatus: "UNFULFILLED"}, now)
		assert.Equal(t, tc.want, res.Stage, "days=%d", tc.days)
		assert.Equal(t, tc.want.Message(), res.Message)
		assert.Equal(t, tc.days, res.DaysSince)
	}
}

func TestResolveStage_TruncatesPartialDays(t *testing.T) {
	created := now.Add(-(47*time.Hour + 59*time.Minute))
	res := ResolveStage(OrderRecord{CreatedAt: created}, now)

	assert.Equal(t, 1, res.DaysSince)
	assert.Equal(t, StageProcessing, res.Stage)
}

func TestResolveStage_FutureCreatedAtClampsToZero(t *testing.T) {
	res := ResolveStage(OrderRecord{CreatedAt: now.Add(72 * time.Hour)}, now)

	assert.Equal(t, 0, res.DaysSince)
	assert.Equal(t, StageProcessing, res.Stage)
}

func TestResolveStage_FulfilledOverridesAge(t *testing.T) {
	for _, status := range []string{"FULFILLED", "fulfilled", " Fulfilled "} {
		for days := 0; days < 6; days++ {
			res := ResolveStage(OrderRecord{CreatedAt: daysAgo(days), FulfillmentStatus: status}, now)
			assert.Equal(t, StageShipped, res.Stage, "status=%q days=%d", status, days)
			assert.Equal(t, MessageShipped, res.Message)
			assert.Equal(t, days, res.DaysSince)
		}
	}
}

func TestResolveStage_TrackingOverridesAge(t *testing.T) {
	cases := map[string]TrackingInfo{
		"number": {Number: "1Z999"},
		"url":    {URL: "https://carrier.example/track/1"},
		"both":   {Number: "1Z999", URL: "https://carrier.example/track/1"},
	}
	for name, tr := range cases {
		order := OrderRecord{
			CreatedAt:         daysAgo(0),
			FulfillmentStatus: "PARTIALLY_FULFILLED",
			Fulfillments: []Fulfillment{
				{},
				{Tracking: []TrackingInfo{{}, tr}},
			},
		}
		res := ResolveStage(order, now)
		assert.Equal(t, StageShipped, res.Stage, name)
		assert.Equal(t, 0, res.DaysSince, name)
	}
}

func TestResolveStage_BlankTrackingIsNotEvidence(t *testing.T) {
	order := OrderRecord{
		CreatedAt:    daysAgo(3),
		Fulfillments: []Fulfillment{{Tracking: []TrackingInfo{{Number: "  ", URL: ""}}}},
	}
	res := ResolveStage(order, now)

	assert.Equal(t, StagePacking, res.Stage)
}

func TestResolveStage_Scenarios(t *testing.T) {
	a := ResolveStage(OrderRecord{CreatedAt: daysAgo(0)}, now)
	assert.Equal(t, StageProcessing, a.Stage)
	assert.Equal(t, 0, a.DaysSince)

	b := ResolveStage(OrderRecord{CreatedAt: daysAgo(3)}, now)
	assert.Equal(t, StagePacking, b.Stage)
	assert.Equal(t, 3, b.DaysSince)

	c := ResolveStage(OrderRecord{
		CreatedAt:    daysAgo(1),
		Fulfillments: []Fulfillment{{Tracking: []TrackingInfo{{Number: "1Z999"}}}},
	}, now)
	assert.Equal(t, StageShipped, c.Stage)
	assert.Equal(t, 1, c.DaysSince)
}

func TestStageIndex(t *testing.T) {
	assert.Equal(t, 0, StageProcessing.Index())
	assert.Equal(t, 1, StagePacking.Index())
	assert.Equal(t, 2, StageShipped.Index())
	assert.Equal(t, -1, Stage("lost").Index())
}

func TestBuildSearchQuery(t *testing.T) {
	assert.Equal(t, "(name:#1043 OR name:1043)", BuildSearchQuery("1043", ""))
	assert.Equal(t, "(name:#1043 OR name:1043) AND email:jo@example.com", BuildSearchQuery("1043", "jo@example.com"))
}

func TestValidOrderInput(t *testing.T) {
	for _, ok := range []string{"1043", "D-1043", "us_1043.2"} {
		assert.True(t, ValidOrderInput(ok), ok)
	}
	for _, bad := range []string{"", "1) OR (created_at:>2000", "10 43", "1043*", `1043"`, "#1043", "name:1"} {
		assert.False(t, ValidOrderInput(bad), bad)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail(""))
	assert.True(t, ValidEmail("jo+orders@example.com"))
	assert.False(t, ValidEmail("jo@example.com OR name:1"))
	assert.False(t, ValidEmail("jo@example.com)"))
	assert.False(t, ValidEmail(`jo"@example.com`))
}

func TestNormalizeInputs(t *testing.T) {
	assert.Equal(t, "1043", NormalizeOrderInput("  #1043 "))
	assert.Equal(t, "1043", NormalizeOrderInput("1043"))
	assert.Equal(t, "", NormalizeOrderInput(" # "))
	assert.Equal(t, "jo@example.com", NormalizeEmail("  Jo@Example.COM "))
}

func TestStatusCheckValidate(t *testing.T) {
	ok := StatusCheck{ID: "6f1c2a9e-0d4b-4c43-9a57-1b2f0e8d3c10", OrderInput: "1043", Outcome: OutcomeFound, Stage: StagePacking, CheckedAt: now}
	assert.NoError(t, ok.Validate())

	nf := StatusCheck{ID: "0b7e5d21-8c3f-4e6a-b1d9-2a4c6e8f0a12", OrderInput: "1043", Outcome: OutcomeNotFound, CheckedAt: now}
	assert.NoError(t, nf.Validate())

	bad := ok
	bad.Stage = "lost"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Outcome = "maybe"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.ID = ""
	assert.Error(t, bad.Validate())

	bad = ok
	bad.ID = "abc"
	assert.EqualError(t, bad.Validate(), "id must be a uuid")
}
