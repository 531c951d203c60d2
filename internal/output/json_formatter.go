package output

import (
	"encoding/json"
	"fmt"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
)

// JSONFormatter emits the full projection as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(r *projection.Result) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil result")
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal projection: %w", err)
	}
	return append(data, '\n'), nil
}
