package main

import (
	"encoding/json"
	"os"

	"github.com/natevvv/campus-routing/pkg/routing"
	"github.com/spf13/cobra"
)

var (
	routeFrom, routeTo         string
	routeFromName, routeToName string
	routeOptions               routing.RouteOptions
	routeGeoJSON               bool
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Compute a single route and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parsePoint(routeFrom)
		if err != nil {
			return err
		}
		to, err := parsePoint(routeTo)
		if err != nil {
			return err
		}
		router, err := loadRouter()
		if err != nil {
			return err
		}

		route := router.FindRoute(from, to, routeFromName, routeToName, routeOptions)
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if routeGeoJSON {
			return encoder.Encode(route.GeoJSON())
		}
		return encoder.Encode(route)
	},
}

func init() {
	f := routeCmd.Flags()
	f.StringVar(&routeFrom, "from", "", "Origin as lon,lat")
	f.StringVar(&routeTo, "to", "", "Destination as lon,lat")
	f.StringVar(&routeFromName, "from-name", "", "Name of the origin")
	f.StringVar(&routeToName, "to-name", "", "Name of the destination")
	f.BoolVar(&routeOptions.Accessible, "accessible", false, "Only use wheelchair accessible paths")
	f.BoolVar(&routeOptions.AvoidStairs, "avoid-stairs", false, "Do not use stairs")
	f.BoolVar(&routeGeoJSON, "geojson", false, "Print the route as GeoJSON feature")
	routeCmd.MarkFlagRequired("from")
	routeCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(routeCmd)
}
