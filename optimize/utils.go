package optimize

import (
	"strconv"
	"strings"
)

// ReadFloats parses a whitespace-separated list of floats.
func ReadFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	result := make([]float64, 0, len(fields))
	for _, field := range fields {
		x, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return result, err
		}
		result = append(result, x)
	}
	return result, nil
}
