// Package intake decodes the queue events that trigger the lawlinks
// pipeline.
package intake

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iurcrowd/lawlinks/internal/config"
)

// ErrNoDocumentID is returned when an event names no document
var ErrNoDocumentID = errors.New("event carries no unique_id")

// ErrInvalidDocumentID is returned when unique_id is not a non-negative
// integer
var ErrInvalidDocumentID = errors.New("unique_id is not a document number")

type envelope struct {
	Records []struct {
		Body *string `json:"body"`
	} `json:"Records"`
}

type message struct {
	UniqueID json.RawMessage `json:"unique_id"`
}

// DocumentID returns the unique_id of the first record of a queue event.
// The record body is a JSON object, or a JSON string holding one. The id is
// a non-negative integer, given as a JSON number or as a string of digits.
func DocumentID(event []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(event, &env); err != nil {
		return "", fmt.Errorf("decode event: %w", err)
	}
	if len(env.Records) == 0 {
		return "", fmt.Errorf("event has no records: %w", ErrNoDocumentID)
	}
	for _, r := range env.Records {
		if r.Body == nil {
			return "", fmt.Errorf("record without body: %w", ErrNoDocumentID)
		}
	}

	body := []byte(*env.Records[0].Body)

	// Double encoded bodies are JSON strings that hold the object
	var inner string
	if err := json.Unmarshal(body, &inner); err == nil {
		body = []byte(inner)
	}

	var msg message
	if err := json.Unmarshal(body, &msg); err != nil {
		return "", fmt.Errorf("decode message body: %w", err)
	}
	return parseID(msg.UniqueID)
}

func parseID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", ErrNoDocumentID
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		if id == "" {
			return "", ErrNoDocumentID
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidDocumentID, raw)
		}
		id = n.String()
	}

	if !isDigits(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDocumentID, id)
	}
	return id, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// StageFromARN derives the stage from the invoked function ARN
func StageFromARN(arn string) (config.Stage, bool) {
	switch {
	case strings.Contains(arn, "_dev"):
		return config.StageDev, true
	case strings.Contains(arn, "_prod"):
		return config.StageProd, true
	default:
		return "", false
	}
}
