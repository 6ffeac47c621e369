package export

import (
	"encoding/json"
	"os"

	"github.com/archiplan/floorplan/pkg/floorplan"
)

// ExportJSON serializes a Layout to JSON with indentation, using snake_case
// keys throughout.
func ExportJSON(layout *floorplan.Layout) ([]byte, error) {
	return json.MarshalIndent(layout, "", "  ")
}

// ExportJSONCompact serializes a Layout to JSON without indentation.
func ExportJSONCompact(layout *floorplan.Layout) ([]byte, error) {
	return json.Marshal(layout)
}

// SaveJSONToFile writes an indented JSON Layout to filepath with 0644
// permissions.
func SaveJSONToFile(layout *floorplan.Layout, filepath string) error {
	data, err := ExportJSON(layout)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// SaveJSONCompactToFile writes a compact JSON Layout to filepath with 0644
// permissions.
func SaveJSONCompactToFile(layout *floorplan.Layout, filepath string) error {
	data, err := ExportJSONCompact(layout)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
