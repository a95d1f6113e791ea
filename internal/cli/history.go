package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

var (
	historyLimit int
	historyShow  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded solves",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent solves",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <solve-id>",
	Short: "Show one recorded solve",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of solves to list")
	historyShowCmd.Flags().BoolVar(&historyShow, "show", false, "Draw the cube")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*storage.DB, *storage.SolveRepository, error) {
	if cfg.DBPath == "" {
		return nil, nil, fmt.Errorf("history is disabled (no db_path configured)")
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return db, storage.NewSolveRepository(db), nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	db, repo, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	solves, err := repo.List(historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(solves) == 0 {
		fmt.Fprintln(out, "No solves recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tSOURCE\tSTATUS\tMOVES\tTIME")
	for _, s := range solves {
		moves := "-"
		if s.Status == "solved" {
			moves = fmt.Sprint(s.Length)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%dms\n",
			s.SolveID[:8], s.CreatedAt.Local().Format(time.DateTime), s.Source, s.Status, moves, s.ElapsedMs)
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, repo, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := repo.Get(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Solve "+s.SolveID))
	fmt.Fprintf(out, "Recorded:  %s (%s)\n", s.CreatedAt.Local().Format(time.RFC3339), s.Source)
	fmt.Fprintf(out, "Facelets:  %s\n", s.Facelets)
	fmt.Fprintf(out, "Status:    %s\n", s.Status)
	if s.Status == "solved" {
		fmt.Fprintf(out, "Solution:  %s\n", moveStyle.Render(s.Solution))
		fmt.Fprintf(out, "Length:    %d\n", s.Length)
	}
	fmt.Fprintf(out, "Max depth: %d\n", s.MaxDepth)
	fmt.Fprintf(out, "Search:    %d nodes in %dms\n", s.Nodes, s.ElapsedMs)
	if historyShow {
		fmt.Fprintln(out, renderNet(s.Facelets))
	}
	return nil
}
