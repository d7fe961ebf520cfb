package grid_test

import (
	"fmt"

	"github.com/katalvlaran/tilewave/grid"
)

// ExampleCartesianGrid_NeighbourIndex shows wraparound on a looping axis.
func ExampleCartesianGrid_NeighbourIndex() {
	g, _ := grid.New2D(4, 3, true, false)

	left, ok := g.NeighbourIndex(grid.Pos2(0, 0), grid.XBackward)
	fmt.Println(g.PositionFromIndex(left), ok)

	_, ok = g.NeighbourIndex(grid.Pos2(0, 0), grid.YBackward)
	fmt.Println(ok)

	// Output:
	// (3,0,0) true
	// false
}
