package metatag

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kavyahq/storyeval/logger"
)

// logSnippetLen bounds how much malformed model output lands in logs.
const logSnippetLen = 500

// Parser normalizes raw model output into complete Records. Parse
// failures never propagate as errors; they degrade to sentinel records
// so one bad story cannot abort a batch.
type Parser struct {
	log *logger.Logger
}

// NewParser creates a parser. log may be nil.
func NewParser(log *logger.Logger) *Parser {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Parser{log: log.WithComponent("metatag.parser")}
}

// Parse converts raw model output into a complete Record:
// the payload is parsed as JSON and, failing that, as a Python dict
// literal; when neither works, Markdown code fences are stripped and
// both parses retried. Nested values are re-serialized
// to JSON strings so every field is CSV-safe; missing keys are filled
// with "Not specified". When both parses fail the whole record degrades
// to the error sentinel and the first 500 characters of the input are
// logged for diagnosis.
func (p *Parser) Parse(raw string) Record {
	// Unfenced output parses as-is; stripping first would truncate valid
	// JSON whose values happen to contain backtick fences.
	cleaned := strings.TrimSpace(raw)
	parsed, err := decode(cleaned)
	if err != nil {
		cleaned = StripFences(raw)
		parsed, err = decode(cleaned)
	}
	if err != nil {
		p.log.WithError(err).Error("failed to parse meta-tags output", map[string]interface{}{
			"input_prefix": snippet(cleaned),
		})
		return ErrorRecord()
	}

	record := make(Record, len(Keys))
	for key, value := range parsed {
		record[key] = stringifyValue(value)
	}
	for _, key := range Keys {
		if _, ok := record[key]; !ok {
			record[key] = NotSpecified
		}
	}
	return record
}

// decode tries strict JSON first and falls back to a Python dict literal.
func decode(input string) (map[string]any, error) {
	var jsonObj map[string]any
	jsonErr := json.Unmarshal([]byte(input), &jsonObj)
	if jsonErr == nil {
		return jsonObj, nil
	}

	v, pyErr := parsePyLiteral(input)
	if pyErr != nil {
		return nil, fmt.Errorf("json: %v; %v", jsonErr, pyErr)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("json: %v; python literal is not a dict", jsonErr)
	}
	return obj, nil
}

// StripFences removes a Markdown code fence (```json ... ``` or plain
// ``` ... ```) and trims whitespace. A ```json fence appearing later in
// the text marks the payload; chain-of-thought output places analysis
// prose before the fenced JSON.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// stringifyValue flattens a parsed value to a single string: nested
// lists and objects become their JSON serialization, scalars become
// their plain string form.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any, map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// snippet returns the first 500 characters of s without splitting a rune.
func snippet(s string) string {
	if len(s) <= logSnippetLen {
		return s
	}
	cut := logSnippetLen
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
