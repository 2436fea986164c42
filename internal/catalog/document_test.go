package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInputDecodingIsLoose(t *testing.T) {
	var got []Input
	raw := `[
		{"id": 3, "name": "a"},
		{"id": "12", "name": 7, "code": true},
		{"id": "abc", "link": null},
		{"id": 2.0, "name": false},
		{"id": -1},
		"not an object",
		{}
	]`
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []Input{
		{ID: IDPtr(3), Name: "a"},
		{ID: IDPtr(12), Name: "7", Code: "true"},
		{},
		{ID: IDPtr(2)},
		{ID: IDPtr(-1)},
		{},
		{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDocumentShapes(t *testing.T) {
	list, err := DecodeDocument([]byte(`[{"id":1},{"name":"x"}]`))
	if err != nil || len(list) != 2 {
		t.Fatalf("list document: %v %+v", err, list)
	}
	wrapped, err := DecodeDocument([]byte(` {"scripts":[{"id":1}], "version": 2}`))
	if err != nil || len(wrapped) != 1 {
		t.Fatalf("wrapped document: %v %+v", err, wrapped)
	}

	for _, raw := range []string{``, `{"items":[]}`, `{"scripts":{}}`, `"x"`, `12`} {
		if _, err := DecodeDocument([]byte(raw)); !errors.Is(err, ErrUnexpectedDocument) {
			t.Fatalf("DecodeDocument(%q) err=%v want ErrUnexpectedDocument", raw, err)
		}
	}
	if _, err := DecodeDocument([]byte(`[{"id":1}`)); err == nil {
		t.Fatalf("expected error for truncated list")
	}
}

func TestParseDeveloperJSONClassifies(t *testing.T) {
	cases := []struct {
		raw   string
		mode  ImportMode
		count int
	}{
		{raw: `[]`, mode: ModeReplace, count: 0},
		{raw: `[{"name":"a"},{"name":"b"}]`, mode: ModeReplace, count: 2},
		{raw: `{"scripts":[{"name":"a"}]}`, mode: ModeReplaceFromObject, count: 1},
		{raw: `{"scripts":"not a list","name":"solo"}`, mode: ModeAppend, count: 1},
		{raw: `{"name":"solo"}`, mode: ModeAppend, count: 1},
	}
	for _, tc := range cases {
		b, err := ParseDeveloperJSON(tc.raw)
		if err != nil {
			t.Fatalf("ParseDeveloperJSON(%q): %v", tc.raw, err)
		}
		if b.Mode != tc.mode || len(b.Items) != tc.count {
			t.Fatalf("ParseDeveloperJSON(%q) = %s/%d want %s/%d", tc.raw, b.Mode, len(b.Items), tc.mode, tc.count)
		}
	}

	_, err := ParseDeveloperJSON("{oops")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %T %v", err, err)
	}
	if !strings.HasPrefix(Notice(err), "JSON parse error: ") {
		t.Fatalf("unexpected notice %q", Notice(err))
	}
}

func TestPlaceholderSVGIsDeterministic(t *testing.T) {
	a := PlaceholderSVG(3, "A very long script name")
	b := PlaceholderSVG(3, "A very long script name")
	if a != b {
		t.Fatalf("placeholder is not deterministic")
	}
	if !strings.Contains(a, "hsl(141 60% 14%)") {
		t.Fatalf("unexpected hue in %q", a)
	}
	if !strings.Contains(a, ">A very long </text>") {
		t.Fatalf("label not truncated to 12 runes: %q", a)
	}
	if got := PlaceholderSVG(1, `<b>&"`); !strings.Contains(got, "&lt;b&gt;&amp;&#34;") {
		t.Fatalf("label not escaped: %q", got)
	}
	if got := PlaceholderSVG(-1, ""); !strings.Contains(got, "hsl(313 ") || !strings.Contains(got, ">Script<") {
		t.Fatalf("unexpected fallback placeholder: %q", got)
	}
}
