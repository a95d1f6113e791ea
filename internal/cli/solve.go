package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/app"
	"github.com/SeamusWaldron/cubesolver/internal/server"
)

var (
	solveMaxDepth int
	solveTimeout  time.Duration
	solveShow     bool
	solveNoCache  bool
	solveJSON     bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <facelets>",
	Short: "Find a solution for a cube state",
	Long: `Solve a cube given as 54 facelets in URFDLB order. Any six distinct
characters may be used; each centre names its face.

The search stops at --max-depth moves or after --timeout, whichever comes
first. A repeat of a state already in history is answered from history
unless --no-cache is given.`,
	Example: `  cubesolve solve UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB
  cubesolve solve --max-depth 18 --timeout 30s --show <facelets>`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

var verifyCmd = &cobra.Command{
	Use:   "verify <facelets>",
	Short: "Check that a facelet string is a solvable cube",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	solveCmd.Flags().IntVar(&solveMaxDepth, "max-depth", 0, "Longest solution to look for (default from config, 21)")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Search time limit (default from config, 5s)")
	solveCmd.Flags().BoolVar(&solveShow, "show", false, "Draw the cube before and after")
	solveCmd.Flags().BoolVar(&solveNoCache, "no-cache", false, "Always search, ignoring history")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "Print the result as JSON")

	verifyCmd.Flags().BoolVar(&solveJSON, "json", false, "Print the state as JSON")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(verifyCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	res, err := rt.Service.Solve(app.Request{
		Facelets: args[0],
		MaxDepth: solveMaxDepth,
		Timeout:  solveTimeout,
		Source:   "cli",
		NoCache:  solveNoCache,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", cubesolver.ErrorKind(err), err)
	}

	out := cmd.OutOrStdout()
	if solveJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(server.NewSolveResponse(res))
	}

	if solveShow {
		fmt.Fprintln(out, titleStyle.Render("Before"))
		fmt.Fprintln(out, renderNet(res.Facelets))
	}

	if err := res.Err(); err != nil {
		fmt.Fprintln(out, errorStyle.Render(err.Error()))
		fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf("%d nodes in %s", res.Nodes, res.Elapsed.Round(time.Millisecond))))
		return err
	}

	if res.Len() == 0 {
		fmt.Fprintln(out, "(already solved)")
	} else {
		fmt.Fprintln(out, moveStyle.Render(res.String()))
	}

	detail := fmt.Sprintf("%d moves, %d nodes in %s", res.Len(), res.Nodes, res.Elapsed.Round(time.Millisecond))
	if res.Cached {
		detail = fmt.Sprintf("%d moves, from history (%s)", res.Len(), res.ID)
	}
	fmt.Fprintln(out, statusStyle.Render(detail))

	if solveShow {
		c, err := cubesolver.ParseCube(res.Facelets)
		if err != nil {
			return err
		}
		c.Apply(res.Moves...)
		fmt.Fprintln(out)
		fmt.Fprintln(out, titleStyle.Render("After"))
		fmt.Fprintln(out, renderNet(c.Facelets()))
	}
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	state, err := cubesolver.Inspect(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", cubesolver.ErrorKind(err), err)
	}

	out := cmd.OutOrStdout()
	if solveJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}

	fmt.Fprintln(out, moveStyle.Render("valid"))
	fmt.Fprintf(out, "Facelets: %s\n", state.Facelets)
	fmt.Fprintf(out, "Corners:  %s\n", strings.Join(state.Corners[:], " "))
	fmt.Fprintf(out, "Edges:    %s\n", strings.Join(state.Edges[:], " "))
	fmt.Fprintf(out, "Twist: %d  Flip: %d  Slice: %d\n", state.Twist, state.Flip, state.Slice)
	fmt.Fprintf(out, "Parity: corners %d, edges %d\n", state.CornerParity, state.EdgeParity)
	return nil
}
