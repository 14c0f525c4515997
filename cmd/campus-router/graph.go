package main

import (
	"os"

	"github.com/natevvv/campus-routing/pkg/graph"
	"github.com/spf13/cobra"
)

var graphOut string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build the walkway graph and write it in FMI text format",
	RunE: func(cmd *cobra.Command, args []string) error {
		router, err := loadRouter()
		if err != nil {
			return err
		}
		if graphOut == "" || graphOut == "-" {
			return graph.WriteFmi(router.Graph(), os.Stdout)
		}
		return graph.WriteFmiFile(router.Graph(), graphOut)
	},
}

func init() {
	graphCmd.Flags().StringVarP(&graphOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(graphCmd)
}
