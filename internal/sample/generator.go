// Package sample synthesizes the emotional time-series the demo replays:
// for each scenario, 120 one-second samples of seven metrics derived from
// the scenario's baselines plus bounded pseudo-random noise. Generation is
// pure: a fixed seed reproduces the output byte for byte.
package sample

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// SampleCount is the number of rows every scenario file contains, one per
// second.
const SampleCount = 120

// Header is the exact CSV header line, column order included.
var Header = []string{
	"timestamp",
	"engagement",
	"excitement",
	"stress",
	"relaxation",
	"interest",
	"heart_rate",
	"breath_rate",
}

// defaultStart anchors the timestamp column. It is fixed so that a fixed
// seed yields byte-identical files across runs.
var defaultStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Sample is one second of synthesized metrics. Unit metrics are in [0,1];
// HeartRate is in [50,120] bpm and BreathRate in [8,30] breaths per minute.
type Sample struct {
	Timestamp  time.Time
	Engagement float64
	Excitement float64
	Stress     float64
	Relaxation float64
	Interest   float64
	HeartRate  float64
	BreathRate float64
}

// Generator produces the sample series for one scenario.
type Generator struct {
	scenario Scenario
	rng      *rand.Rand
	start    time.Time
}

// NewGenerator creates a generator seeded explicitly. The caller chooses
// the seed; passing the same seed reproduces the same series.
func NewGenerator(sc Scenario, seed int64) *Generator {
	return &Generator{
		scenario: sc,
		rng:      rand.New(rand.NewSource(seed)),
		start:    defaultStart,
	}
}

// Samples synthesizes the full series.
func (g *Generator) Samples() []Sample {
	out := make([]Sample, 0, SampleCount)
	for i := 0; i < SampleCount; i++ {
		stress := clip(g.scenario.Stress+g.noise(0.08), 0, 1)
		engagement := clip(g.scenario.Engagement+g.noise(0.08), 0, 1)
		excitement := clip(g.scenario.Excitement+g.noise(0.08), 0, 1)

		out = append(out, Sample{
			Timestamp:  g.start.Add(time.Duration(i) * time.Second),
			Engagement: engagement,
			Excitement: excitement,
			Stress:     stress,
			Relaxation: clip(1-stress+g.noise(0.05), 0, 1),
			Interest:   clip((engagement+excitement)/2+g.noise(0.08), 0, 1),
			HeartRate:  clip(62+35*stress+18*excitement+g.noise(3), 50, 120),
			BreathRate: clip(11+9*stress+g.noise(1.5), 8, 30),
		})
	}
	return out
}

// WriteCSV encodes the series with the exact documented header.
func (g *Generator) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, s := range g.Samples() {
		row := []string{
			s.Timestamp.UTC().Format(time.RFC3339),
			unit(s.Engagement),
			unit(s.Excitement),
			unit(s.Stress),
			unit(s.Relaxation),
			unit(s.Interest),
			rate(s.HeartRate),
			rate(s.BreathRate),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// GenerateFile writes one scenario's CSV under dir as <scenario>.csv and
// returns the file path.
func GenerateFile(dir string, sc Scenario, seed int64) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, sc.Name+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	gen := NewGenerator(sc, seed)
	if err := gen.WriteCSV(f); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// noise returns a uniform perturbation in [-scale, scale].
func (g *Generator) noise(scale float64) float64 {
	return (g.rng.Float64()*2 - 1) * scale
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func unit(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func rate(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
