package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatusCheckSchema versions the wire form of StatusCheck on the event stream.
const StatusCheckSchema = "status_check.v1"

type CheckOutcome string

const (
	OutcomeFound    CheckOutcome = "found"
	OutcomeNotFound CheckOutcome = "not_found"
)

// StatusCheck is an audit event describing one lookup. It carries no order
// data beyond what the customer already sees on the status page.
type StatusCheck struct {
	ID            string       `json:"id"`
	OrderInput    string       `json:"order_input"`
	OrderName     string       `json:"order_name,omitempty"`
	EmailProvided bool         `json:"email_provided"`
	Outcome       CheckOutcome `json:"outcome"`
	Stage         Stage        `json:"stage,omitempty"`
	DaysSince     int          `json:"days_since"`
	CheckedAt     time.Time    `json:"checked_at"`
}

func (c StatusCheck) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("id is required")
	}
	// The audit table keys on a UUID column.
	if _, err := uuid.Parse(c.ID); err != nil {
		return errors.New("id must be a uuid")
	}
	if strings.TrimSpace(c.OrderInput) == "" {
		return errors.New("order_input is required")
	}
	switch c.Outcome {
	case OutcomeFound:
		if c.Stage.Index() < 0 {
			return errors.New("stage is invalid")
		}
	case OutcomeNotFound:
	default:
		return errors.New("outcome is invalid")
	}
	if c.CheckedAt.IsZero() {
		return errors.New("checked_at is required")
	}
	return nil
}

// AuditSummary aggregates recorded checks for the admin page.
type AuditSummary struct {
	Total    int
	Found    int
	NotFound int
}
