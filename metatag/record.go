// Package metatag generates and parses structured story meta-tags: a
// fixed set of eleven category keys whose values are always flat strings
// so each record maps directly onto a CSV row.
package metatag

// Sentinel values written into records when the model output is unusable.
const (
	// NotSpecified fills keys the model omitted.
	NotSpecified = "Not specified"
	// ParseError fills every key when no parse attempt succeeded.
	ParseError = "Error parsing"
)

// Keys lists the required category keys in output column order.
var Keys = []string{
	"character_primary",
	"character_secondary",
	"setting_primary",
	"setting_secondary",
	"theme_primary",
	"theme_secondary",
	"events_primary",
	"events_secondary",
	"emotions_primary",
	"emotions_secondary",
	"keywords",
}

// Record maps each category key to a flat string value. A well-formed
// Record carries exactly the keys in Keys.
type Record map[string]string

// NewRecord creates a record with every key set to the given value.
func NewRecord(fill string) Record {
	r := make(Record, len(Keys))
	for _, k := range Keys {
		r[k] = fill
	}
	return r
}

// ErrorRecord creates a record with every key set to the parse-error
// sentinel.
func ErrorRecord() Record {
	return NewRecord(ParseError)
}

// FailureRecord creates a record for a story whose generation call
// failed outright: the first category carries the error message and the
// rest degrade to "Error".
func FailureRecord(msg string) Record {
	r := NewRecord("Error")
	r[Keys[0]] = "Error: " + msg
	return r
}

// Complete reports whether the record carries all required keys.
func (r Record) Complete() bool {
	for _, k := range Keys {
		if _, ok := r[k]; !ok {
			return false
		}
	}
	return true
}

// Values returns the record's values in Keys order.
func (r Record) Values() []string {
	out := make([]string, len(Keys))
	for i, k := range Keys {
		out[i] = r[k]
	}
	return out
}
