// Package catalog owns the collection of script records: loading it from a
// remote document or persisted slot, reconciling developer-supplied batches
// against it, and keeping every id unique.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
)

const DefaultLink = "#"

// Record is a fully populated catalog entry.
type Record struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Link  string `json:"link"`
	Code  string `json:"code"`
}

// Input is a record as supplied by a remote document, a persisted slot or a
// developer. Every field is optional; ID is nil when absent or unusable.
type Input struct {
	ID    *int64 `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
	Link  string `json:"link,omitempty"`
	Code  string `json:"code,omitempty"`
}

func IDPtr(id int64) *int64 { return &id }

// UnmarshalJSON accepts loosely typed documents. Numeric ids (including zero
// and negative ones) and numeric strings are kept as given; any other id is
// treated as absent. Non-string scalar fields are kept as their JSON text and
// a non-object element decodes to an empty Input.
func (in *Input) UnmarshalJSON(data []byte) error {
	*in = Input{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	in.ID = looseID(raw["id"])
	in.Name = looseString(raw["name"])
	in.Image = looseString(raw["image"])
	in.Link = looseString(raw["link"])
	in.Code = looseString(raw["code"])
	return nil
}

func looseID(raw json.RawMessage) *int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
	} else {
		s = string(raw)
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		n := int64(f)
		return &n
	}
	return nil
}

func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	switch string(raw) {
	case "false", "0", `""`:
		return ""
	}
	return string(raw)
}

// FillDefaults converts an input into a record with the given id.
func FillDefaults(in Input, id int64) Record {
	r := Record{
		ID:    id,
		Name:  in.Name,
		Image: in.Image,
		Link:  in.Link,
		Code:  in.Code,
	}
	if r.Name == "" {
		r.Name = DefaultName(id)
	}
	if r.Link == "" {
		r.Link = DefaultLink
	}
	return r
}

func DefaultName(id int64) string {
	return fmt.Sprintf("Script %d", id)
}

// PlaceholderSVG renders the preview used when a record has no image. The
// background hue is derived from id so the same record always looks the same.
func PlaceholderSVG(id int64, name string) string {
	hue := (id * 47) % 360
	if hue < 0 {
		hue += 360
	}
	label := name
	if label == "" {
		label = "Script"
	}
	if r := []rune(label); len(r) > 12 {
		label = string(r[:12])
	}
	return fmt.Sprintf(`<svg xmlns='http://www.w3.org/2000/svg' width='600' height='300'><rect width='100%%' height='100%%' fill='hsl(%d 60%% 14%%)' /><text x='50%%' y='50%%' dominant-baseline='middle' text-anchor='middle' font-family='Arial' font-size='34' fill='rgba(255,255,255,0.92)'>%s</text></svg>`,
		hue, html.EscapeString(label))
}
