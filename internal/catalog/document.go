package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyInput         = errors.New("no JSON provided")
	ErrUnrecognizedShape  = errors.New("unrecognized JSON structure")
	ErrUnexpectedDocument = errors.New("catalog document is neither a list nor an object with a scripts list")
)

// DecodeDocument reads a catalog document: a bare list of records or an
// object whose "scripts" field holds that list.
func DecodeDocument(data []byte) ([]Input, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrUnexpectedDocument
	}
	switch data[0] {
	case '[':
		var list []Input
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode catalog list: %w", err)
		}
		return list, nil
	case '{':
		var wrapped struct {
			Scripts json.RawMessage `json:"scripts"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("decode catalog object: %w", err)
		}
		if !isJSONArray(wrapped.Scripts) {
			return nil, ErrUnexpectedDocument
		}
		var list []Input
		if err := json.Unmarshal(wrapped.Scripts, &list); err != nil {
			return nil, fmt.Errorf("decode catalog scripts: %w", err)
		}
		return list, nil
	default:
		return nil, ErrUnexpectedDocument
	}
}

// ImportMode says how a developer batch is applied to the collection.
type ImportMode string

const (
	ModeReplace           ImportMode = "replace"
	ModeReplaceFromObject ImportMode = "replace_from_object"
	ModeAppend            ImportMode = "append"
)

// Message is the notification shown after the batch has been applied.
func (m ImportMode) Message() string {
	switch m {
	case ModeReplace:
		return "Replaced scripts"
	case ModeReplaceFromObject:
		return "Replaced scripts from object"
	case ModeAppend:
		return "Appended scripts"
	default:
		return ""
	}
}

// Batch is parsed developer input.
type Batch struct {
	Mode  ImportMode
	Items []Input
}

// ParseError wraps a JSON syntax problem in developer input.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "JSON parse error: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// ParseDeveloperJSON classifies free-form developer input. A list, or an
// object with a "scripts" list, replaces the collection; any other object is
// appended as a single record.
func ParseDeveloperJSON(raw string) (Batch, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Batch{}, ErrEmptyInput
	}
	var shape any
	if err := json.Unmarshal([]byte(raw), &shape); err != nil {
		return Batch{}, &ParseError{Err: err}
	}
	switch v := shape.(type) {
	case []any:
		var items []Input
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return Batch{}, &ParseError{Err: err}
		}
		return Batch{Mode: ModeReplace, Items: items}, nil
	case map[string]any:
		if _, ok := v["scripts"].([]any); ok {
			items, err := DecodeDocument([]byte(raw))
			if err != nil {
				return Batch{}, &ParseError{Err: err}
			}
			return Batch{Mode: ModeReplaceFromObject, Items: items}, nil
		}
		var item Input
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return Batch{}, &ParseError{Err: err}
		}
		return Batch{Mode: ModeAppend, Items: []Input{item}}, nil
	default:
		return Batch{}, ErrUnrecognizedShape
	}
}

// Notice turns a ParseDeveloperJSON error into the short text shown to the
// developer.
func Notice(err error) string {
	var perr *ParseError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return "No JSON provided"
	case errors.Is(err, ErrUnrecognizedShape):
		return "Unrecognized JSON structure"
	case errors.As(err, &perr):
		return perr.Error()
	default:
		return err.Error()
	}
}

func isJSONArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
