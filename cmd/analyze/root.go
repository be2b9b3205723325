package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/hooplab/internal/adapters/dataset"
	app "github.com/okian/hooplab/internal/app"
	"github.com/okian/hooplab/internal/config"
	"github.com/okian/hooplab/pkg/logger"
)

// flags override the loaded configuration when set.
type flags struct {
	configPath string
	dataset    string
	sheet      string
	k          int
	outDir     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "analyze",
		Short:        "Cluster player seasons and report weak spots",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML config file (overrides "+config.EnvFile+")")
	pf.StringVarP(&f.dataset, "dataset", "d", "", "dataset file (.xlsx or .csv)")
	pf.StringVar(&f.sheet, "sheet", "", "worksheet of an .xlsx dataset")
	pf.IntVarP(&f.k, "clusters", "k", 0, "number of clusters")
	pf.StringVarP(&f.outDir, "out", "o", "", "report directory")
	pf.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(newClusterCmd(f), newElbowCmd(f), newPlayerCmd(f))
	return root
}

// loadConfig layers the command-line flags over config.Load.
func (f *flags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if f.configPath != "" {
		if err := os.Setenv(config.EnvFile, f.configPath); err != nil {
			return nil, fmt.Errorf("set %s: %w", config.EnvFile, err)
		}
	}
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	if f.dataset != "" {
		cfg.DatasetPath = f.dataset
	}
	if f.sheet != "" {
		cfg.DatasetSheet = f.sheet
	}
	if f.k != 0 {
		cfg.ClusterCount = f.k
	}
	if f.outDir != "" {
		cfg.ReportDir = f.outDir
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DatasetPath == "" {
		return nil, fmt.Errorf("%w: no dataset given (use --dataset or dataset_path)", config.ErrInvalidConfig)
	}
	return cfg, nil
}

// run loads configuration and dataset and executes the pipeline once.
func (f *flags) run(cmd *cobra.Command) (*app.Service, *config.Config, error) {
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return nil, nil, err
	}
	l := logger.Named("analyze")

	ds, err := dataset.Load(cmd.Context(), cfg.DatasetPath, cfg.DatasetSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}
	svc := app.New(app.OptionsFromConfig(cfg, l)...)
	if _, err := svc.Run(cmd.Context(), ds); err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}
