package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/circlesim/internal/dynamo"
)

type ExportData struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Dt      float64            `json:"dt"`
	Steps   int                `json:"steps"`
	Radii   []float64          `json:"radii"`
	Times   []float64          `json:"times"`
	Frames  []ExportFrame      `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

type ExportFrame struct {
	Time   float64      `json:"time"`
	Bodies []ExportBody `json:"bodies"`
}

type ExportBody struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, states [][]dynamo.Body, times []float64) error {
	data := ExportData{
		ID:      meta.ID,
		Name:    meta.Name,
		Steps:   len(times),
		Radii:   meta.Radii,
		Times:   times,
		Frames:  make([]ExportFrame, len(states)),
		Metrics: meta.Metrics,
	}
	if meta.Config != nil {
		data.Dt = meta.Config.Dt
	}

	for i, bodies := range states {
		f := ExportFrame{Bodies: make([]ExportBody, len(bodies))}
		if i < len(times) {
			f.Time = times[i]
		}
		for j, b := range bodies {
			f.Bodies[j] = ExportBody{ID: int(b.ID), X: b.Pos.X, Y: b.Pos.Y, VX: b.Vel.X, VY: b.Vel.Y}
		}
		data.Frames[i] = f
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes states in the same layout as a run's states.csv.
func ExportCSV(w io.Writer, states [][]dynamo.Body, times []float64) error {
	return writeStates(w, states, times)
}
