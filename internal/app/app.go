// Package app wires the pwmscan command tree.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pwmscan/internal/appcore"
	"pwmscan/internal/cli"
	"pwmscan/internal/logging"
	"pwmscan/internal/version"
)

// RunContext executes argv and returns the process exit code. Each call
// builds its own command tree and viper instance, so it is safe to call
// repeatedly from tests.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	code := 0
	root := newRootCmd(stdout, stderr, &code)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		_, _ = fmt.Fprintf(stderr, "run '%s --help' for usage\n", root.CommandPath())
		return 2
	}
	return code
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:   "pwmscan",
		Short: "Score DNA sequences against position weight matrices",
		Long: `pwmscan slides every motif of a MEME file along each FASTA sequence,
scoring both strands as log-odds against a background model. It writes
per-window score tracks (text or wig) and/or BED predictions of windows
scoring above a threshold.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("pwmscan version {{.Version}}\n")
	root.AddCommand(newScanCmd(stderr, code), newVersionCmd(stdout))
	return root
}

func newScanCmd(stderr io.Writer, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan --motifs FILE [--sequences FILE]... [FASTA...] [--scores] [--predict]",
		Short: "Scan sequences with every motif",
		Example: `  pwmscan scan -m jaspar.meme -s chr1.fa.gz --predict --threshold 8 -t 0
  pwmscan scan -m jaspar.meme -s peaks.fa --scores --wig -o out/peaks
  zcat reads.fa.gz | pwmscan scan -m motifs.meme -s - --scores
  pwmscan scan -m motifs.meme --predict a.fa b.fa`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := cli.Load(viper.New(), cmd.Flags())
			if err != nil {
				return err
			}
			// positional FASTA files follow any --sequences
			o.Sequences = append(o.Sequences, args...)
			if err := cli.Validate(o); err != nil {
				return err
			}
			log, err := logging.New(stderr, o.LogLevel, o.LogJSON)
			if err != nil {
				return err
			}
			*code = appcore.Run(cmd.Context(), log, o)
			return nil
		},
	}
	cli.Register(cmd.Flags())
	return cmd
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			_, _ = fmt.Fprintf(stdout, "pwmscan version %s\n", version.Version)
		},
	}
}
