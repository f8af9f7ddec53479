package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgogn-go/cmaps/cmap"
	"github.com/cgogn-go/cmaps/orbit"
)

var buildCmd = &cobra.Command{
	Use:   "build [sides]",
	Short: "Build a single unsewn face with the given number of sides and print its cell counts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sides := 3
		if len(args) == 1 {
			var err error
			if sides, err = parseSides(args[0]); err != nil {
				return err
			}
		}
		m, err := cmap.NewMap2()
		if err != nil {
			return fmt.Errorf("cmapdemo: new map: %w", err)
		}
		face := m.AddFace(sides)
		fmt.Printf("built a %d-sided face, representative dart %v\n", sides, face.D)
		printCounts(m)
		return nil
	},
}

func parseSides(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 3 {
		return 0, fmt.Errorf("cmapdemo: sides must be an integer >= 3, got %q", s)
	}
	return n, nil
}

func printCounts(m *cmap.Map2) {
	faces, vertices, edges := 0, 0, 0
	m.ForeachFace(func(cmap.Cell[orbit.Face]) bool { faces++; return true })
	m.ForeachVertex(func(cmap.Cell[orbit.Vertex]) bool { vertices++; return true })
	m.ForeachEdge(func(cmap.Cell[orbit.Edge]) bool { edges++; return true })
	fmt.Printf("faces=%d vertices=%d edges=%d darts=%d\n", faces, vertices, edges, m.NbDarts())
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
