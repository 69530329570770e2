// Package cli defines the scan command's flags and resolves them, together
// with an optional config file and PWMSCAN_* environment variables, into
// Options.
package cli

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides (PWMSCAN_THREADS, PWMSCAN_LOG_LEVEL, ...).
const EnvPrefix = "PWMSCAN"

// Options holds every scan setting after flags, env and config file are merged.
type Options struct {
	// Input
	Motifs    string   `mapstructure:"motifs"`
	Sequences []string `mapstructure:"sequences"`

	// Scoring
	Threshold   float64 `mapstructure:"threshold"`
	Pseudocount float64 `mapstructure:"pseudocount"`
	Background  string  `mapstructure:"background"`

	// Performance
	Threads int `mapstructure:"threads"`

	// Output
	Prefix  string `mapstructure:"prefix"`
	Scores  bool   `mapstructure:"scores"`
	Predict bool   `mapstructure:"predict"`
	Wig     bool   `mapstructure:"wig"`
	Genomic bool   `mapstructure:"genomic"`
	Summary bool   `mapstructure:"summary"`

	MetricsFile string `mapstructure:"metrics-file"`

	// Logging
	LogLevel string `mapstructure:"log-level"`
	LogJSON  bool   `mapstructure:"log-json"`

	Config string `mapstructure:"config"`
}

// Register installs the scan flags on fs.
func Register(fs *pflag.FlagSet) {
	// Input
	fs.StringP("motifs", "m", "", "MEME motif file (gzip ok) [*]")
	fs.StringArrayP("sequences", "s", nil, "FASTA file(s), repeatable, '-' for stdin (gzip ok) [*]")

	// Scoring
	fs.Float64("threshold", 0, "report matches scoring strictly above this log-odds value")
	fs.Float64("pseudocount", 0, "add to every matrix cell before normalising (0 = none)")
	fs.String("background", "0.3,0.2,0.2,0.3", "background A,C,G,T frequencies")

	// Performance
	fs.IntP("threads", "t", 1, "worker threads (0 = all CPUs)")

	// Output
	fs.StringP("prefix", "o", "pwmscan", "output path prefix")
	fs.Bool("scores", false, "write per-window score tracks")
	fs.Bool("predict", false, "write BED match predictions")
	fs.Bool("wig", false, "score tracks as wig (one file per motif) instead of text")
	fs.Bool("genomic", false, "BED coordinates on the chromosome instead of the record")
	fs.Bool("summary", false, "write <prefix>.summary.yaml after the run")
	fs.String("metrics-file", "", "write Prometheus metrics in text format to this path")

	// Logging
	fs.String("log-level", "info", "log level: debug | info | warn | error")
	fs.Bool("log-json", false, "JSON log lines instead of console text")

	fs.String("config", "", "YAML/TOML/JSON config file")
}

// Load merges fs (already parsed), the environment and the optional config
// file into Options. Explicit flags win over env, env over file, file over
// flag defaults.
func Load(v *viper.Viper, fs *pflag.FlagSet) (Options, error) {
	var o Options
	if err := v.BindPFlags(fs); err != nil {
		return o, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		if err := v.ReadInConfig(); err != nil {
			return o, fmt.Errorf("read config %s: %w", cfg, err)
		}
	}
	if err := v.Unmarshal(&o); err != nil {
		return o, fmt.Errorf("decode options: %w", err)
	}
	return o, nil
}

// Validate checks option combinations that flags alone cannot express.
func Validate(o Options) error {
	if o.Motifs == "" {
		return errors.New("--motifs is required")
	}
	if len(o.Sequences) == 0 {
		return errors.New("at least one --sequences file is required")
	}
	if !o.Scores && !o.Predict {
		return errors.New("nothing to do: pass --scores and/or --predict")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.Pseudocount < 0 || math.IsNaN(o.Pseudocount) {
		return errors.New("--pseudocount must be ≥ 0")
	}
	if math.IsNaN(o.Threshold) || math.IsInf(o.Threshold, 0) {
		return errors.New("--threshold must be a finite number")
	}
	if strings.TrimSpace(o.Prefix) == "" {
		return errors.New("--prefix must not be empty")
	}
	if _, err := ParseFrequencies(o.Background); err != nil {
		return err
	}
	return nil
}

// ParseFrequencies parses "a,c,g,t". Positivity is checked when the
// background is built.
func ParseFrequencies(s string) ([4]float64, error) {
	var f [4]float64
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return f, fmt.Errorf("--background %q: want 4 comma-separated values (A,C,G,T)", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return f, fmt.Errorf("--background %q: %w", s, err)
		}
		f[i] = v
	}
	return f, nil
}

// EffectiveThreads maps 0 to the CPU count.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
