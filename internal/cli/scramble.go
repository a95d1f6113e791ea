package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver"
)

var (
	scrambleRandom int
	scrambleSeed   uint64
	scrambleShow   bool
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble [moves...]",
	Short: "Print the facelet string for a move sequence",
	Long: `Apply moves to a solved cube and print the resulting facelet string.
With --random N, a random N-move scramble is generated and applied first.`,
	Example: `  cubesolve scramble "R U R' U'"
  cubesolve scramble --random 25`,
	RunE: runScramble,
}

func init() {
	scrambleCmd.Flags().IntVar(&scrambleRandom, "random", 0, "Generate a random scramble of this many moves")
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Seed for --random (default: random)")
	scrambleCmd.Flags().BoolVar(&scrambleShow, "show", false, "Draw the scrambled cube")
	rootCmd.AddCommand(scrambleCmd)
}

func runScramble(cmd *cobra.Command, args []string) error {
	var moves []cubesolver.Move
	if scrambleRandom > 0 {
		seed := scrambleSeed
		if seed == 0 {
			seed = rand.Uint64()
		}
		moves = cubesolver.RandomScramble(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), scrambleRandom)
	}

	extra, err := cubesolver.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}
	moves = append(moves, extra...)

	c := cubesolver.NewCube()
	c.Apply(moves...)

	out := cmd.OutOrStdout()
	if scrambleRandom > 0 {
		fmt.Fprintf(out, "Scramble: %s\n", cubesolver.FormatMoves(moves))
	}
	fmt.Fprintln(out, c.Facelets())
	if scrambleShow {
		fmt.Fprintln(out, renderNet(c.Facelets()))
	}
	return nil
}
