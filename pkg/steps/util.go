package steps

import (
	"encoding/json"
	"fmt"
)

// valueToString renders an extracted JSON value as the string form steps
// interpolate into later requests. Integral floats lose the ".0" suffix
// JSON decoding would otherwise give them.
func valueToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
