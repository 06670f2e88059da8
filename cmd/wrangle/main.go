// Command wrangle maintains the ColdFire encoding table: it dumps, exports
// and checks the table, renders its decode index and compares listings and
// golden files against it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/apparentlymart/cfdecode/coldfire"
	"github.com/apparentlymart/cfdecode/decode"
	"github.com/apparentlymart/cfdecode/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevel     string
		debugModules string
	)

	rootCmd := &cobra.Command{
		Use:          "wrangle",
		Short:        "Maintain the ColdFire encoding table",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.InitLogger(logLevel); err != nil {
				return err
			}
			log.EnableModules(debugModules)
			return nil
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: trace, debug, info, warn, error or crit")
	rootCmd.PersistentFlags().StringVar(&debugModules, "debug", "", "Comma-separated modules to enable trace and debug logging for")

	rootCmd.AddCommand(
		newDumpCmd(),
		newTreeCmd(),
		newCheckCmd(),
		newExportCmd(),
		newVerifyCmd(),
	)
	return rootCmd
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [mnemonic...]",
		Short: "Dump table rows, optionally only those for the given mnemonics",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := coldfire.Encodings()
			if len(args) != 0 {
				want := make(map[string]bool)
				for _, a := range args {
					want[a] = true
				}
				var sel []*coldfire.Encoding
				for _, enc := range rows {
					if want[enc.Inst.Name] {
						sel = append(sel, enc)
					}
				}
				if len(sel) == 0 {
					return fmt.Errorf("no rows for %v", args)
				}
				rows = sel
			}
			cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
			cfg.Fdump(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}

func newTreeCmd() *cobra.Command {
	var statsOnly bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render the decode index built from the table",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := coldfire.DecodeIndex()
			out := cmd.OutOrStdout()
			if !statsOnly {
				fmt.Fprintln(out, indexTree(root).String())
			}
			st := indexStats(root)
			fmt.Fprintf(out, "depth %d: %d trie, %d chain, %d scan, %d leaf, %d empty\n",
				st.Depth, st.Counts[decode.Trie], st.Counts[decode.Chain], st.Counts[decode.Scan], st.Counts[decode.Leaf], st.Counts[decode.Empty])
			return nil
		},
	}
	cmd.Flags().BoolVar(&statsOnly, "stats", false, "Only print node counts")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [listing]",
		Short: "Validate the built-in table, or a listing file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := coldfire.Encodings()
			if len(args) == 1 {
				var err error
				if rows, err = loadListingFile(args[0]); err != nil {
					return err
				}
			}
			return check(cmd.OutOrStdout(), rows)
		},
	}
}

func check(w io.Writer, rows []*coldfire.Encoding) error {
	problems := coldfire.ValidateTable(rows)
	errs := 0
	for _, p := range problems {
		if p.Unresolved {
			fmt.Fprintf(w, "unresolved: %s\n", p)
			continue
		}
		fmt.Fprintf(w, "error: %s\n", p)
		errs++
	}
	if errs != 0 {
		return fmt.Errorf("%d problems in %d rows", errs, len(rows))
	}
	fmt.Fprintf(w, "%d rows ok\n", len(rows))
	return nil
}

func newExportCmd() *cobra.Command {
	var (
		format string
		pkg    string
	)
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the built-in table as a listing, JSON or Go mnemonics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return export(w, format, pkg)
		},
	}
	cmd.Flags().StringVar(&format, "format", "listing", "Output format: listing, json or go")
	cmd.Flags().StringVar(&pkg, "package", "mnemonic", "Package name for --format go")
	return cmd
}

func export(w io.Writer, format, pkg string) error {
	rows := coldfire.Encodings()
	switch format {
	case "listing":
		return writeListing(w, rows)
	case "json":
		buf, err := tableJSON(rows)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", buf)
		return err
	case "go":
		return writeGoMnemonics(w, pkg, rows)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newVerifyCmd() *cobra.Command {
	var golden string
	cmd := &cobra.Command{
		Use:   "verify [listing]",
		Short: "Compare a listing or golden JSON file against the built-in table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case golden != "":
				return verifyGolden(out, golden)
			case len(args) == 1:
				return verifyListing(out, args[0])
			default:
				return fmt.Errorf("a listing file or --golden is required")
			}
		},
	}
	cmd.Flags().StringVar(&golden, "golden", "", "Golden JSON file written by export --format json")
	return cmd
}
