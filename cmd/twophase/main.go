// Command twophase model checks the abstract two phase commit protocol. The
// check subcommand explores the state space and reports the property
// verdicts; the explore subcommand serves interactive state-space
// introspection over HTTP.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/getong/stateright"
	"github.com/getong/stateright/examples/twophase"
	"github.com/getong/stateright/explore"
)

// Reported through the exit code, not as a message: the report already
// describes the failure.
var errPropertiesFailed = errors.New("properties failed")

func main() {
	setupLogging()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errPropertiesFailed) {
			log.Error().Err(err).Msg("command failed")
		}
		os.Exit(1)
	}
}

func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "twophase",
		Short:         "Model check abstract two phase commit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCmd())
	root.AddCommand(newExploreCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	var configPath string
	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Explore the state space and verify the protocol properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = mergeFlags(cmd, cfg, loaded)
			}
			if err := validateConfig(cfg); err != nil {
				return err
			}

			strategy := stateright.DFS
			if cfg.Strategy == "bfs" {
				strategy = stateright.BFS
			}
			workers := cfg.Threads
			if workers == 0 {
				workers = runtime.GOMAXPROCS(0)
			}

			fmt.Printf("Checking two phase commit with %d resource managers.\n", cfg.RMCount)
			res := stateright.NewChecker[twophase.State, twophase.Action](
				twophase.Sys{RMs: cfg.RMCount},
				stateright.WithStrategy(strategy),
				stateright.WithWorkers(workers),
				stateright.WithMaxStates(cfg.MaxStates),
				stateright.WithLogger(log.Logger),
			).Run()
			res.Report(os.Stdout)
			if !res.Ok() {
				return errPropertiesFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML check configuration")
	cmd.Flags().IntVar(&cfg.RMCount, "rm-count", cfg.RMCount, "number of resource managers")
	cmd.Flags().IntVar(&cfg.Threads, "threads", cfg.Threads, "worker count, 0 means GOMAXPROCS")
	cmd.Flags().StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "search strategy, bfs or dfs")
	cmd.Flags().IntVar(&cfg.MaxStates, "max-states", cfg.MaxStates, "generated state bound, 0 means unbounded")
	return cmd
}

func newExploreCmd() *cobra.Command {
	var (
		rmCount int
		addr    string
	)

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Serve interactive state space exploration over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Exploring state space for two phase commit with %d resource managers on %s.\n", rmCount, addr)
			exp := explore.New[twophase.State, twophase.Action](twophase.Sys{RMs: rmCount})
			srv := explore.NewServer(exp, log.Logger)
			return srv.ListenAndServe(addr)
		},
	}
	cmd.Flags().IntVar(&rmCount, "rm-count", 2, "number of resource managers")
	cmd.Flags().StringVar(&addr, "addr", "localhost:3000", "listen address for the explorer service")
	return cmd
}
