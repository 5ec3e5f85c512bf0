package kafkain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/kafka-go"

	"github.com/DeuccesApparel/deucces-order-progress-backend/internal/core/domain"
)

const (
	// SchemaHeader names the message header carrying the payload version.
	SchemaHeader = "schema"

	// A status check encodes to a few hundred bytes.
	maxMessageBytes = 16 << 10
)

// DecodeMessage turns a topic message into a validated StatusCheck. Messages
// without a schema header are read as the current version.
func DecodeMessage(msg kafka.Message) (domain.StatusCheck, error) {
	for _, h := range msg.Headers {
		if h.Key == SchemaHeader && string(h.Value) != domain.StatusCheckSchema {
			return domain.StatusCheck{}, fmt.Errorf("unsupported schema %q", h.Value)
		}
	}
	return DecodeStatusCheck(msg.Value)
}

func DecodeStatusCheck(b []byte) (domain.StatusCheck, error) {
	if len(b) > maxMessageBytes {
		return domain.StatusCheck{}, fmt.Errorf("message too large: %d bytes", len(b))
	}

	var c domain.StatusCheck
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return domain.StatusCheck{}, fmt.Errorf("json decode: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.StatusCheck{}, errors.New("json decode: trailing data after status check")
	}

	if err := c.Validate(); err != nil {
		return domain.StatusCheck{}, fmt.Errorf("domain validate: %w", err)
	}
	return c, nil
}
