package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/bouncelab/internal/sim"
)

// Store persists headless runs on disk. Each run gets its own
// directory under baseDir holding metadata.json, an energy.csv time
// series, and a frames.csv with sampled per-ball states.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Ticks       int                `json:"ticks"`
	Balls       int                `json:"balls"`
	Gravity     bool               `json:"gravity"`
	WallBoosts  int                `json:"wall_boosts"`
	Collisions  int                `json:"collisions"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a completed run and returns its generated ID.
func (s *Store) Save(preset string, seed int64, rc sim.RunConfig, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Preset:      preset,
		Timestamp:   time.Now(),
		Seed:        seed,
		Dt:          rc.Dt,
		Ticks:       rc.Ticks,
		Balls:       rc.Balls,
		Gravity:     rc.Gravity,
		WallBoosts:  result.WallBoosts,
		Collisions:  result.Collisions,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeEnergy(runDir, result); err != nil {
		return "", err
	}
	if err := s.writeFrames(runDir, result); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeEnergy(runDir string, result *sim.Result) error {
	file, err := os.Create(filepath.Join(runDir, "energy.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"time", "energy"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Energies[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeFrames(runDir string, result *sim.Result) error {
	file, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"time", "ball_id", "x", "y", "vx", "vy", "radius", "mass"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, frame := range result.Frames {
		for _, b := range frame.Balls {
			row := []string{
				strconv.FormatFloat(frame.Time, 'f', 6, 64),
				strconv.Itoa(b.ID),
				strconv.FormatFloat(b.Position.X, 'f', 6, 64),
				strconv.FormatFloat(b.Position.Y, 'f', 6, 64),
				strconv.FormatFloat(b.Velocity.X, 'f', 6, 64),
				strconv.FormatFloat(b.Velocity.Y, 'f', 6, 64),
				strconv.FormatFloat(b.Radius, 'f', 6, 64),
				strconv.FormatFloat(b.Mass, 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// List returns metadata for every run in the store, skipping
// directories it cannot parse.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadEnergy reads a run's energy series back as parallel time and
// value slices.
func (s *Store) LoadEnergy(runID string) ([]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "energy.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	energies := make([]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		e, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		energies = append(energies, e)
	}

	return times, energies, nil
}
