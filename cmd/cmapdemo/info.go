package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgogn-go/cmaps/cmap"
	"github.com/cgogn-go/cmaps/orbit"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Build two triangles glued along one edge and print per-face codegree",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := cmap.NewMap2()
		if err != nil {
			return fmt.Errorf("cmapdemo: new map: %w", err)
		}
		f1 := m.AddFace(3)
		f2 := m.AddFace(3)
		if err := m.SewFaces(f1.D, f2.D); err != nil {
			return fmt.Errorf("cmapdemo: sew: %w", err)
		}
		m.ForeachFace(func(c cmap.Cell[orbit.Face]) bool {
			fmt.Printf("face dart=%v codegree=%d triangle=%v\n", c.D, m.Codegree(c.D), m.IsTriangle(c.D))
			return true
		})
		printCounts(m)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
