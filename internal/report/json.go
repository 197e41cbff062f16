package report

import "encoding/json"

// JSONFormatter outputs a Result as pretty-printed JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(r Result) string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return `{"error": "failed to marshal result"}`
	}
	return string(data)
}
