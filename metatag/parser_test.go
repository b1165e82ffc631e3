package metatag

import (
	"encoding/json"
	"strings"
	"testing"
)

func fullJSONInput() string {
	obj := map[string]string{}
	for i, k := range Keys {
		obj[k] = "value " + string(rune('a'+i))
	}
	data, _ := json.Marshal(obj)
	return string(data)
}

func TestParse_ValidJSON(t *testing.T) {
	p := NewParser(nil)
	record := p.Parse(fullJSONInput())

	if !record.Complete() {
		t.Fatal("record is missing keys")
	}
	if record["character_primary"] != "value a" {
		t.Errorf("character_primary = %q", record["character_primary"])
	}
	if record["keywords"] != "value k" {
		t.Errorf("keywords = %q", record["keywords"])
	}
}

func TestParse_FencedInputParsesIdentically(t *testing.T) {
	p := NewParser(nil)
	plain := p.Parse(fullJSONInput())
	fenced := p.Parse("```json\n" + fullJSONInput() + "\n```")
	bare := p.Parse("```\n" + fullJSONInput() + "\n```")

	for _, k := range Keys {
		if plain[k] != fenced[k] {
			t.Errorf("key %s: fenced %q != plain %q", k, fenced[k], plain[k])
		}
		if plain[k] != bare[k] {
			t.Errorf("key %s: bare-fenced %q != plain %q", k, bare[k], plain[k])
		}
	}
}

func TestParse_UnfencedValueContainingFenceMarker(t *testing.T) {
	input := `{"keywords": "use ` + "```" + ` to fence code blocks"}`
	p := NewParser(nil)
	record := p.Parse(input)

	if record["keywords"] != "use ``` to fence code blocks" {
		t.Errorf("keywords = %q, interior backticks must not truncate valid JSON", record["keywords"])
	}
	if record["character_primary"] != NotSpecified {
		t.Errorf("character_primary = %q, want %q", record["character_primary"], NotSpecified)
	}
}

func TestParse_MissingKeysDefaulted(t *testing.T) {
	input := `{
		"character_primary": "a fox",
		"setting_primary": "a forest",
		"keywords": "fox, forest"
	}`
	p := NewParser(nil)
	record := p.Parse(input)

	if record["character_primary"] != "a fox" {
		t.Errorf("character_primary = %q", record["character_primary"])
	}
	if record["setting_primary"] != "a forest" {
		t.Errorf("setting_primary = %q", record["setting_primary"])
	}

	defaulted := 0
	for _, k := range Keys {
		if record[k] == NotSpecified {
			defaulted++
		}
	}
	if defaulted != len(Keys)-3 {
		t.Errorf("%d keys defaulted, want %d", defaulted, len(Keys)-3)
	}
}

func TestParse_PythonDictFallback(t *testing.T) {
	input := `{'character_primary': 'Meena', 'keywords': ['mango', 'tree'], 'theme_primary': 'sharing'}`
	p := NewParser(nil)
	record := p.Parse(input)

	if record["character_primary"] != "Meena" {
		t.Errorf("character_primary = %q, want Meena", record["character_primary"])
	}
	if record["keywords"] != `["mango","tree"]` {
		t.Errorf("keywords = %q, want JSON-serialized list", record["keywords"])
	}
	if record["setting_primary"] != NotSpecified {
		t.Errorf("setting_primary = %q, want %q", record["setting_primary"], NotSpecified)
	}
}

func TestParse_NestedValuesFlattened(t *testing.T) {
	input := `{
		"character_primary": ["fox", "crow"],
		"setting_primary": {"place": "forest", "time": "morning"},
		"theme_primary": 42
	}`
	p := NewParser(nil)
	record := p.Parse(input)

	var list []string
	if err := json.Unmarshal([]byte(record["character_primary"]), &list); err != nil {
		t.Errorf("character_primary %q is not a JSON list: %v", record["character_primary"], err)
	}
	var obj map[string]string
	if err := json.Unmarshal([]byte(record["setting_primary"]), &obj); err != nil {
		t.Errorf("setting_primary %q is not a JSON object: %v", record["setting_primary"], err)
	}
	if record["theme_primary"] != "42" {
		t.Errorf("theme_primary = %q, want \"42\"", record["theme_primary"])
	}
}

func TestParse_IdempotentOnOwnOutput(t *testing.T) {
	input := `{
		"character_primary": ["fox", "crow"],
		"setting_primary": {"place": "forest"},
		"keywords": "fox, crow, cheese"
	}`
	p := NewParser(nil)
	first := p.Parse(input)

	// Re-serialize the normalized record and feed it back in.
	data, err := json.Marshal(map[string]string(first))
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	second := p.Parse(string(data))

	for _, k := range Keys {
		if first[k] != second[k] {
			t.Errorf("key %s: second pass %q != first pass %q", k, second[k], first[k])
		}
	}
}

func TestParse_ProseInputDegradesToErrorRecord(t *testing.T) {
	p := NewParser(nil)
	record := p.Parse("Once upon a time there was a story with no braces at all.")

	if !record.Complete() {
		t.Fatal("error record is missing keys")
	}
	for _, k := range Keys {
		if record[k] != ParseError {
			t.Errorf("key %s = %q, want %q", k, record[k], ParseError)
		}
	}
}

func TestParse_ChainOfThoughtPreamble(t *testing.T) {
	input := "The story centers on a thirsty crow and its clever solution.\n\n" +
		"```json\n" + fullJSONInput() + "\n```"
	p := NewParser(nil)
	record := p.Parse(input)

	if record["character_primary"] != "value a" {
		t.Errorf("character_primary = %q, analysis preamble should be discarded", record["character_primary"])
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"{}", "{}"},
		{"  {}  ", "{}"},
		{"analysis first\n```json\n{\"a\": 1}\n```\ntrailing", `{"a": 1}`},
	}
	for _, tc := range cases {
		if got := StripFences(tc.in); got != tc.want {
			t.Errorf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPyLiteral(t *testing.T) {
	v, err := parsePyLiteral(`{'a': 'b', 'n': 3, 'ok': True, 'none': None, 'list': ['x', 'y'], 'nested': {'k': 'v'},}`)
	if err != nil {
		t.Fatalf("parsePyLiteral error: %v", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("result is %T, want map", v)
	}
	if obj["a"] != "b" {
		t.Errorf("a = %v", obj["a"])
	}
	if obj["n"] != 3.0 {
		t.Errorf("n = %v", obj["n"])
	}
	if obj["ok"] != true {
		t.Errorf("ok = %v", obj["ok"])
	}
	if obj["none"] != nil {
		t.Errorf("none = %v", obj["none"])
	}
	list, ok := obj["list"].([]any)
	if !ok || len(list) != 2 || list[0] != "x" {
		t.Errorf("list = %v", obj["list"])
	}
	nested, ok := obj["nested"].(map[string]any)
	if !ok || nested["k"] != "v" {
		t.Errorf("nested = %v", obj["nested"])
	}
}

func TestPyLiteral_EscapesAndQuotes(t *testing.T) {
	v, err := parsePyLiteral(`{'quote': 'it\'s fine', 'newline': 'a\nb', "double": "ok"}`)
	if err != nil {
		t.Fatalf("parsePyLiteral error: %v", err)
	}
	obj := v.(map[string]any)
	if obj["quote"] != "it's fine" {
		t.Errorf("quote = %q", obj["quote"])
	}
	if obj["newline"] != "a\nb" {
		t.Errorf("newline = %q", obj["newline"])
	}
	if obj["double"] != "ok" {
		t.Errorf("double = %q", obj["double"])
	}
}

func TestPyLiteral_RejectsProse(t *testing.T) {
	if _, err := parsePyLiteral("just some words"); err == nil {
		t.Error("expected error for prose input")
	}
	if _, err := parsePyLiteral("{'unterminated': 'value"); err == nil {
		t.Error("expected error for unterminated string")
	}
}

func TestSnippet_BoundsLongInput(t *testing.T) {
	long := strings.Repeat("x", 2000)
	if got := snippet(long); len(got) != 500 {
		t.Errorf("snippet length = %d, want 500", len(got))
	}
	if got := snippet("short"); got != "short" {
		t.Errorf("snippet(short) = %q", got)
	}
}
