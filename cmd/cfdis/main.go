// Command cfdis disassembles ColdFire machine code.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apparentlymart/cfdecode/coldfire"
	"github.com/apparentlymart/cfdecode/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	logLevel     string
	debugModules string
	isa          string
	format       string
	base         uint32

	dec coldfire.Decoder
}

func newRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:          "cfdis",
		Short:        "Disassemble ColdFire machine code",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.InitLogger(o.logLevel); err != nil {
				return err
			}
			log.EnableModules(o.debugModules)
			f, err := coldfire.ParseFeatures(o.isa)
			if err != nil {
				return fmt.Errorf("invalid --isa: %s", err)
			}
			o.dec = coldfire.Decoder{Features: f}
			log.Debug(log.CLIModule, "Decoder configured", "features", f)
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.logLevel, "log-level", "warn", "Log level: trace, debug, info, warn, error or crit")
	flags.StringVar(&o.debugModules, "debug", "", "Comma-separated modules to enable trace and debug logging for")
	flags.StringVar(&o.isa, "isa", "", "Accept only instructions of these variants, such as \"isa_a+,hwdiv\" (default all)")
	flags.StringVar(&o.format, "format", "bin", "Input format: bin or hex")
	flags.Uint32Var(&o.base, "base", 0, "Address of the first byte")

	rootCmd.AddCommand(
		newDisasmCmd(o),
		newReplCmd(o),
		newStatsCmd(o),
	)
	return rootCmd
}

func newDisasmCmd(o *options) *cobra.Command {
	var (
		asJSON bool
		dump   bool
		labels []string
	)
	cmd := &cobra.Command{
		Use:   "disasm <file>",
		Short: "Disassemble a file, \"-\" for standard input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := readInput(cmd.InOrStdin(), args[0], o.format)
			if err != nil {
				return err
			}
			lbls, err := parseLabels(labels)
			if err != nil {
				return err
			}
			d := disassembler{
				dec:    &o.dec,
				base:   o.base,
				labels: lbls,
				json:   asJSON,
				dump:   dump,
			}
			return d.run(cmd.OutOrStdout(), buf)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write one JSON object per statement")
	cmd.Flags().BoolVar(&dump, "dump", false, "Dump each decoded statement in full")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "Attach a label to an address, as addr=name (repeatable)")
	return cmd
}

func newReplCmd(o *options) *cobra.Command {
	var history string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Decode hex words typed interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.OutOrStdout(), &o.dec, o.base, history)
		},
	}
	cmd.Flags().StringVar(&history, "history", defaultHistoryFile(), "Readline history file, empty for none")
	return cmd
}

func newStatsCmd(o *options) *cobra.Command {
	var chart string
	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Count the mnemonics in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := readInput(cmd.InOrStdin(), args[0], o.format)
			if err != nil {
				return err
			}
			st := collectStats(&o.dec, buf)
			writeStats(cmd.OutOrStdout(), st)
			if chart == "" {
				return nil
			}
			f, err := os.Create(chart)
			if err != nil {
				return err
			}
			defer f.Close()
			return renderChart(f, args[0], st)
		},
	}
	cmd.Flags().StringVar(&chart, "chart", "", "Also write an HTML bar chart to this file")
	return cmd
}
