package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/dramctrl/config"
	"github.com/sarchlab/dramctrl/technology"
)

var (
	configPath string
	envFiles   []string
	opts       runOptions
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run cores against the configured memory controllers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(configPath, envFiles)
		if err != nil {
			return err
		}

		sim, err := buildSimulation(cfg, technology.DefaultRegistry(), opts)
		if err != nil {
			return err
		}

		if err := sim.run(); err != nil {
			return err
		}

		sim.printSummary(cmd.OutOrStdout())

		return nil
	},
}

func init() {
	f := runCmd.Flags()

	f.StringVar(&configPath, "config", "", "YAML configuration file")
	f.StringSliceVar(&envFiles, "env", []string{".env"},
		"Environment files overriding the configuration")
	f.StringVar(&opts.tracePath, "trace", "",
		"CSV trace with cycle,core,type,line columns")
	f.IntVar(&opts.numCores, "cores", 1,
		"Number of synthetic cores when no trace is given")
	f.Int64Var(&opts.seed, "seed", 1, "Seed of the synthetic workloads")
	f.IntVar(&opts.accesses, "accesses", 0,
		"Accesses per synthetic core, 0 keeps the default")
	f.IntVar(&opts.window, "window", 8,
		"Maximum outstanding accesses per core")
	f.BoolVar(&opts.monitor, "monitor", false, "Serve the HTTP monitor")
	f.IntVar(&opts.monitorPort, "monitor-port", 0,
		"Port of the HTTP monitor, 0 picks a free port")
	f.BoolVar(&opts.openBrowser, "open", false,
		"Open the monitor in a browser")
	f.StringVar(&opts.recordPath, "record", "",
		"Record completed requests into <record>.sqlite3")
	f.BoolVar(&opts.rejections, "record-rejections", false,
		"Also record rejected submissions")
}

// loadConfig reads the YAML file, if any, applies the environment overrides
// and validates the result.
func loadConfig(path string, envFiles []string) (*config.Config, error) {
	cfg := config.Default()

	if path != "" {
		var err error

		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	env, err := config.Env(envFiles...)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"standard":    cfg.Standard,
		"controllers": cfg.NumControllers,
		"out_dir":     cfg.OutDir,
	}).Info("configuration loaded")

	return cfg, nil
}
