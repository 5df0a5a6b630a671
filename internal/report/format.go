package report

import (
	"encoding/json"
	"strconv"
)

// formatCell renders a decoded JSON value as a CSV cell. Numbers keep their JSON
// spelling, booleans follow the True/False convention of the original report and
// nested values are written as compact JSON.
func formatCell(v any, missing string) string {
	switch t := v.(type) {
	case nil:
		return missing
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return missing
		}
		return string(b)
	}
}
