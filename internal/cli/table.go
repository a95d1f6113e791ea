package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/coord"
	"github.com/SeamusWaldron/cubesolver/internal/cubie"
	"github.com/SeamusWaldron/cubesolver/internal/prune"
)

var (
	tableKind   string
	tableOutput string
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Generate and check pruning tables",
}

var tableGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a pruning table by breadth-first search",
	Args:  cobra.NoArgs,
	RunE:  runTableGenerate,
}

var tableVerifyCmd = &cobra.Command{
	Use:   "verify <path>",
	Short: "Check a pruning table's size and provenance",
	Args:  cobra.ExactArgs(1),
	RunE:  runTableVerify,
}

func init() {
	tableCmd.PersistentFlags().StringVar(&tableKind, "kind", "twist-slice", "Table kind: twist-slice or flip-slice")
	tableGenerateCmd.Flags().StringVarP(&tableOutput, "output", "o", "", "Output path")
	tableGenerateCmd.MarkFlagRequired("output")

	tableCmd.AddCommand(tableGenerateCmd)
	tableCmd.AddCommand(tableVerifyCmd)
	rootCmd.AddCommand(tableCmd)
}

func runTableGenerate(cmd *cobra.Command, _ []string) error {
	kind, err := prune.ParseKind(tableKind)
	if err != nil {
		return err
	}

	start := time.Now()
	t, err := prune.Generate(kind, coord.NewMoveTables(cubie.Moves()))
	if err != nil {
		return err
	}
	if err := t.WriteFile(tableOutput); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s table (%d entries) to %s in %s\n",
		kind, t.Len(), tableOutput, time.Since(start).Round(time.Millisecond))
	printTableInfo(cmd, t)
	return nil
}

func runTableVerify(cmd *cobra.Command, args []string) error {
	kind, err := prune.ParseKind(tableKind)
	if err != nil {
		return err
	}
	t, err := prune.LoadFile(args[0], kind)
	if err != nil {
		return err
	}
	if err := t.Verify(coord.NewMoveTables(cubie.Moves())); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), errorStyle.Render("FAILED"))
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), moveStyle.Render("OK"))
	printTableInfo(cmd, t)
	return nil
}

func printTableInfo(cmd *cobra.Command, t *prune.Table) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "SHA-256: %s\n", t.Digest())
	fmt.Fprintln(out, "Depth  Entries")
	for d, n := range t.Histogram() {
		if n > 0 {
			fmt.Fprintf(out, "%5d  %d\n", d, n)
		}
	}
}
