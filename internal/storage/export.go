package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

type exportRun struct {
	Meta   RunMetadata `json:"meta"`
	Times  []float64   `json:"times"`
	Frames [][]float64 `json:"frames"`
}

// ExportJSON writes a run's metadata and frames as a single json document.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, times, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(exportRun{Meta: *meta, Times: times, Frames: frames})
}

// ExportCSV writes a run's center-of-mass track as a four-column csv.
func (s *Store) ExportCSV(runID, path string) error {
	frames, times, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"time", "com_x", "com_y", "com_z"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, frame := range frames {
		cx, cy, cz := centerOfMass(frame)
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(cx, 'f', 6, 64),
			strconv.FormatFloat(cy, 'f', 6, 64),
			strconv.FormatFloat(cz, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// CenterHeights extracts the center-of-mass height series of a run, the
// signal fed to the spectrum analysis.
func (s *Store) CenterHeights(runID string) ([]float64, []float64, error) {
	frames, times, err := s.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	heights := make([]float64, len(frames))
	for i, frame := range frames {
		_, cy, _ := centerOfMass(frame)
		heights[i] = cy
	}
	return heights, times, nil
}

func centerOfMass(frame []float64) (x, y, z float64) {
	n := len(frame) / 3
	if n == 0 {
		return 0, 0, 0
	}
	for i := 0; i < n; i++ {
		x += frame[3*i]
		y += frame[3*i+1]
		z += frame[3*i+2]
	}
	f := float64(n)
	return x / f, y / f, z / f
}

// Dir returns the on-disk directory of a run.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}
