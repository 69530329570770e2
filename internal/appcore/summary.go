package appcore

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Summary is the run manifest written to <prefix>.summary.yaml.
type Summary struct {
	RunID     string       `yaml:"run_id"`
	Version   string       `yaml:"version"`
	Started   time.Time    `yaml:"started"`
	Elapsed   string       `yaml:"elapsed"`
	Motifs    string       `yaml:"motifs"`
	Sequences []string     `yaml:"sequences"`
	Threshold float64      `yaml:"threshold"`
	Threads   int          `yaml:"threads"`
	Passes    []MotifTally `yaml:"passes"`
	Outputs   []string     `yaml:"outputs"`
}

// MotifTally counts what one motif pass saw.
type MotifTally struct {
	Motif     string  `yaml:"motif"`
	Sequences int     `yaml:"sequences"`
	Failed    int     `yaml:"failed"`
	Windows   int     `yaml:"windows"`
	Matches   int     `yaml:"matches"`
	Seconds   float64 `yaml:"seconds"`
}

// SummaryPath is where the manifest for prefix goes.
func SummaryPath(prefix string) string { return prefix + ".summary.yaml" }

func (s *Summary) addOutput(path string) {
	if !slices.Contains(s.Outputs, path) {
		s.Outputs = append(s.Outputs, path)
	}
}

// WriteFile writes s as YAML.
func (s *Summary) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadSummary loads a manifest written by WriteFile.
func ReadSummary(path string) (*Summary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Summary
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}
