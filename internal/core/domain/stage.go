package domain

import "time"

type Stage string

const (
	StageProcessing Stage = "processing"
	StagePacking    Stage = "packing"
	StageShipped    Stage = "shipped"
)

const (
	MessageProcessing = "order received and now being processed"
	MessagePacking    = "order is being packed by the warehouse; tracking number to follow by email shortly"
	MessageShipped    = "order has shipped"
)

// Age thresholds in whole days.
const (
	packingAfterDays = 2
	shippedAfterDays = 4
)

// Stages lists the timeline in order.
var Stages = []Stage{StageProcessing, StagePacking, StageShipped}

func (s Stage) Message() string {
	switch s {
	case StagePacking:
		return MessagePacking
	case StageShipped:
		return MessageShipped
	default:
		return MessageProcessing
	}
}

// Index is the position of s on the timeline, -1 if unknown.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

type StageResult struct {
	Stage     Stage
	Message   string
	DaysSince int
}

// DaysSince returns the whole days elapsed between created and now,
// truncated and never negative.
func DaysSince(created, now time.Time) int {
	d := int(now.Sub(created) / (24 * time.Hour))
	if d < 0 {
		return 0
	}
	return d
}

// ResolveStage classifies the order by age, then lets fulfillment evidence
// (FULFILLED status or any tracking entry) force the shipped stage.
func ResolveStage(order OrderRecord, now time.Time) StageResult {
	days := DaysSince(order.CreatedAt, now)

	stage := StageProcessing
	switch {
	case days >= shippedAfterDays:
		stage = StageShipped
	case days >= packingAfterDays:
		stage = StagePacking
	}

	if order.IsFulfilled() || order.HasTracking() {
		stage = StageShipped
	}

	return StageResult{
		Stage:     stage,
		Message:   stage.Message(),
		DaysSince: days,
	}
}
