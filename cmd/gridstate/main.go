// Package main provides the CLI entry point for gridstate-go.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gridstate-go/pkg/gridstate"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/config"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/models"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/output"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/prefs"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/script"
	"github.com/ukaji3/gridstate-go/pkg/gridstate/validate"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
	outputPath string
	xlsxPath   string
	scriptPath string
	sheetName  string
	cellRange  string
	pretty     bool
	full       bool

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridstate",
		Short: "Apply grid edits to tabular data",
		Long: `gridstate-go loads a dataset from xlsx or JSON, replays an operation
script against the grid state engine and writes the resulting grid.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFileName, "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	runCmd := &cobra.Command{
		Use:   "run [input.xlsx|input.json]",
		Short: "Load a dataset, apply a script and write the grid",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	runCmd.Flags().StringVarP(&scriptPath, "script", "s", "", "YAML operation script")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	runCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also export the grid to this xlsx file")
	runCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet to read (default: first sheet)")
	runCmd.Flags().StringVar(&cellRange, "range", "", "A1 range to read, e.g. A1:F200")
	runCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	runCmd.Flags().BoolVar(&full, "full", false, "Write the full snapshot instead of the rendered grid")

	inferCmd := &cobra.Command{
		Use:   "infer [values...]",
		Short: "Infer the column type of sample values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := validate.New(cfg.ValidationSettings())
			fmt.Fprintln(cmd.OutOrStdout(), svc.Infer(args))
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, inferCmd, widthsCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	level, _ := cfg.LogLevel()
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	ds, err := load(inputPath)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	var ops []gridstate.Operation
	if scriptPath != "" {
		if ops, err = script.DecodeFile(scriptPath); err != nil {
			return fmt.Errorf("script failed: %w", err)
		}
	}

	warnings := 0
	opts := cfg.EngineOptions(logger)
	opts.OnWarning = func(gridstate.Warning) { warnings++ }

	store := gridstate.NewStore(ds, opts)
	store.DispatchAll(ops...)
	logger.Info("applied script",
		zap.String("input", inputPath),
		zap.Int("operations", len(ops)),
		zap.Int("warnings", warnings),
		zap.Int("history", store.HistoryLen()))

	view := store.View()

	var jsonData []byte
	if full {
		jsonData, err = output.SnapshotToJSON(store.Snapshot(), pretty)
	} else {
		jsonData, err = output.ToJSON(view, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	if xlsxPath != "" {
		widths, err := storedWidths(gridName(inputPath))
		if err != nil {
			logger.Warn("column widths unavailable", zap.Error(err))
		}
		if err := output.ToXLSX(view, xlsxPath, output.XLSXOptions{Sheet: sheetName, ColumnWidths: widths}); err != nil {
			return fmt.Errorf("xlsx export failed: %w", err)
		}
	}
	return nil
}

func load(path string) (models.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return gridstate.LoadJSON(path)
	case ".xlsx", ".xlsm":
		return gridstate.LoadXLSX(path, cfg.LoadOptions(sheetName, cellRange))
	}
	return models.Dataset{}, fmt.Errorf("%w: unsupported extension %q", gridstate.ErrInvalidFormat, filepath.Ext(path))
}

// gridName derives the preference namespace from the input file name.
func gridName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func storedWidths(grid string) (map[int]int, error) {
	if _, err := os.Stat(cfg.Prefs.DatabasePath); err != nil {
		return nil, nil
	}
	ps, err := prefs.Open(cfg.Prefs.DatabasePath, cfg.PrefsOptions(grid, logger))
	if err != nil {
		return nil, err
	}
	defer ps.Close()
	return ps.All()
}
