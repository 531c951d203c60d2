package compare

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format encodes the set; pretty output ends with a newline.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil {
		return "", fmt.Errorf("nil comparison set")
	}
	if !jf.Pretty {
		data, err := json.Marshal(compSet)
		return string(data), err
	}
	data, err := json.MarshalIndent(compSet, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
