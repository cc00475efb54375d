// Package export writes run output for external consumers: a JSON dump of a
// run and SVG renditions of the inner-product heatmap and the projected
// particle scatter.
package export

import (
	"encoding/json"
	"os"

	"github.com/san-kum/spheresim/internal/manifold"
	"github.com/san-kum/spheresim/internal/storage"
)

type RunData struct {
	Meta      storage.RunMetadata `json:"meta"`
	Positions [][]float64         `json:"positions"`
	Gram      [][]float64         `json:"gram,omitempty"`
	Alignment []float64           `json:"alignment,omitempty"`
}

func WriteJSON(path string, meta storage.RunMetadata, positions manifold.Field, gram [][]float64, alignment []float64) error {
	data := RunData{
		Meta:      meta,
		Positions: make([][]float64, len(positions)),
		Gram:      gram,
		Alignment: alignment,
	}
	for i, p := range positions {
		data.Positions[i] = p
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
