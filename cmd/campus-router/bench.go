package main

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/natevvv/campus-routing/pkg/graph/path"
	"github.com/natevvv/campus-routing/pkg/slice"
	"github.com/spf13/cobra"
)

var (
	benchTargets    int
	benchSeed       int64
	benchCPUProfile string
	benchAccessible bool
	benchNoStairs   bool
)

type benchResult struct {
	name          string
	duration      time.Duration
	pqPops        int
	pqUpdates     int
	relaxations   int
	relaxAttempts int
	found         int
}

func (r *benchResult) add(n path.Navigator, d time.Duration, cost float64) {
	r.duration += d
	r.pqPops += n.GetPqPops()
	r.pqUpdates += n.GetPqUpdates()
	r.relaxations += n.GetEdgeRelaxations()
	r.relaxAttempts += n.GetRelaxationAttempts()
	if cost >= 0 {
		r.found++
	}
}

func (r *benchResult) print(runs int) {
	avg := func(v int) float64 { return float64(v) / float64(runs) }
	fmt.Printf("%-9s avg time %8.3fms  pq pops %9.1f  pq updates %9.1f  relaxed %9.1f  attempts %9.1f  found %d/%d\n",
		r.name,
		float64(r.duration.Microseconds())/float64(runs)/1000,
		avg(r.pqPops), avg(r.pqUpdates), avg(r.relaxations), avg(r.relaxAttempts),
		r.found, runs)
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Compare A* and Dijkstra on random node pairs of the graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		router, err := loadRouter()
		if err != nil {
			return err
		}
		g := router.Graph()
		if g.NodeCount() < 2 {
			return fmt.Errorf("graph of %s has %d nodes, need at least 2", cfg.DataFile, g.NodeCount())
		}

		if benchCPUProfile != "" {
			f, err := os.Create(benchCPUProfile)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return err
			}
			defer pprof.StopCPUProfile()
		}

		options := path.MakeSearchOptions().SetAccessibleOnly(benchAccessible).SetAvoidStairs(benchNoStairs)
		astar := path.NewAStar(g)
		dijkstra := path.NewDijkstra(g)
		for _, n := range []*path.AStar{astar, dijkstra} {
			n.SetSearchOptions(options)
			n.SetMaxNumSettledNodes(cfg.MaxSettledNodes)
		}

		rng := rand.New(rand.NewSource(benchSeed))
		astarResult := benchResult{name: "astar"}
		dijkstraResult := benchResult{name: "dijkstra"}
		costMismatches, pathMismatches := 0, 0

		for i := 0; i < benchTargets; i++ {
			origin := rng.Intn(g.NodeCount())
			destination := rng.Intn(g.NodeCount())

			start := time.Now()
			astarCost := astar.ComputeShortestPath(origin, destination)
			astarResult.add(astar, time.Since(start), astarCost)

			start = time.Now()
			dijkstraCost := dijkstra.ComputeShortestPath(origin, destination)
			dijkstraResult.add(dijkstra, time.Since(start), dijkstraCost)

			// the heuristic ignores the POI discounts, so A* may return a costlier path
			if math.Abs(astarCost-dijkstraCost) > 1e-6 {
				costMismatches++
				logger.Debug("cost mismatch",
					slog.Int("origin", origin),
					slog.Int("destination", destination),
					slog.Float64("astar", astarCost),
					slog.Float64("dijkstra", dijkstraCost))
			}
			if slice.Compare(astar.GetPath(origin, destination), dijkstra.GetPath(origin, destination)) != 0 {
				pathMismatches++
			}
		}

		fmt.Printf("%d queries on %d nodes and %d arcs\n", benchTargets, g.NodeCount(), g.ArcCount())
		astarResult.print(benchTargets)
		dijkstraResult.print(benchTargets)
		fmt.Printf("cost mismatches: %d, path mismatches: %d\n", costMismatches, pathMismatches)
		return nil
	},
}

func init() {
	f := benchCmd.Flags()
	f.IntVarP(&benchTargets, "targets", "n", 100, "Number of random queries")
	f.Int64Var(&benchSeed, "seed", 1, "Random seed")
	f.StringVar(&benchCPUProfile, "cpuprofile", "", "Write a CPU profile to this file")
	f.BoolVar(&benchAccessible, "accessible", false, "Only use wheelchair accessible paths")
	f.BoolVar(&benchNoStairs, "avoid-stairs", false, "Do not use stairs")
	rootCmd.AddCommand(benchCmd)
}
