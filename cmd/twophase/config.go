package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// checkConfig holds the parameters of one check run. Values come from
// defaults, then an optional YAML file, then explicitly set flags, in that
// order.
type checkConfig struct {
	RMCount   int    `yaml:"rm_count" validate:"min=1"`
	Threads   int    `yaml:"threads" validate:"min=0"`
	Strategy  string `yaml:"strategy" validate:"omitempty,oneof=bfs dfs"`
	MaxStates int    `yaml:"max_states" validate:"min=0"`
}

func defaultConfig() checkConfig {
	return checkConfig{
		RMCount:  7,
		Strategy: "dfs",
	}
}

func loadConfig(path string) (checkConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func validateConfig(cfg checkConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Flags that were set explicitly on the command line win over the config
// file.
func mergeFlags(cmd *cobra.Command, flags, loaded checkConfig) checkConfig {
	cfg := loaded
	if cmd.Flags().Changed("rm-count") {
		cfg.RMCount = flags.RMCount
	}
	if cmd.Flags().Changed("threads") {
		cfg.Threads = flags.Threads
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = flags.Strategy
	}
	if cmd.Flags().Changed("max-states") {
		cfg.MaxStates = flags.MaxStates
	}
	return cfg
}
