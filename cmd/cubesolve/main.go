// cubesolve finds solutions for Rubik's Cube states from the command line,
// over HTTP, or live from a GoCube smart cube.
package main

import (
	"github.com/SeamusWaldron/cubesolver/internal/cli"
)

func main() {
	cli.Execute()
}
