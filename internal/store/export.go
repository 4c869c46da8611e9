package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/bouncelab/internal/sim"
)

type exportBall struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Mass   float64 `json:"mass"`
}

type exportFrame struct {
	Time  float64      `json:"time"`
	Balls []exportBall `json:"balls"`
}

type ExportData struct {
	Preset      string             `json:"preset"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Ticks       int                `json:"ticks"`
	Gravity     bool               `json:"gravity"`
	WallBoosts  int                `json:"wall_boosts"`
	Collisions  int                `json:"collisions"`
	EnergyDrift float64            `json:"energy_drift"`
	Times       []float64          `json:"times"`
	Energies    []float64          `json:"energies"`
	Frames      []exportFrame      `json:"frames"`
	Metrics     map[string]float64 `json:"metrics"`
}

func buildExport(preset string, seed int64, rc sim.RunConfig, result *sim.Result) ExportData {
	data := ExportData{
		Preset:      preset,
		Seed:        seed,
		Dt:          rc.Dt,
		Ticks:       rc.Ticks,
		Gravity:     rc.Gravity,
		WallBoosts:  result.WallBoosts,
		Collisions:  result.Collisions,
		EnergyDrift: result.EnergyDrift,
		Times:       result.Times,
		Energies:    result.Energies,
		Frames:      make([]exportFrame, len(result.Frames)),
		Metrics:     result.Metrics,
	}

	for i, frame := range result.Frames {
		ef := exportFrame{Time: frame.Time, Balls: make([]exportBall, len(frame.Balls))}
		for j, b := range frame.Balls {
			ef.Balls[j] = exportBall{
				ID:     b.ID,
				X:      b.Position.X,
				Y:      b.Position.Y,
				VX:     b.Velocity.X,
				VY:     b.Velocity.Y,
				Radius: b.Radius,
				Mass:   b.Mass,
			}
		}
		data.Frames[i] = ef
	}

	return data
}

// ExportJSON writes the full run as indented JSON to path.
func ExportJSON(path, preset string, seed int64, rc sim.RunConfig, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, preset, seed, rc, result)
}

// ExportJSONStdout writes the full run as indented JSON to stdout.
func ExportJSONStdout(preset string, seed int64, rc sim.RunConfig, result *sim.Result) error {
	return writeExport(os.Stdout, preset, seed, rc, result)
}

func writeExport(w io.Writer, preset string, seed int64, rc sim.RunConfig, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(preset, seed, rc, result))
}
