package main

import (
	"go.uber.org/zap"

	"github.com/sells-group/storeplan/internal/dataset"
	"github.com/sells-group/storeplan/internal/selection"
)

// loadStrategyConfig resolves strategy configuration for a run: the explicit
// flag path first, then the configured default path, then built-in defaults.
func loadStrategyConfig(flagPath string) (*selection.Config, error) {
	path := flagPath
	if path == "" {
		path = cfg.Select.ConfigPath
	}
	if path == "" {
		def := selection.DefaultConfig()
		return &def, nil
	}
	return selection.LoadConfig(path)
}

// importOptions builds dataset options from app config with per-command
// overrides. Empty override strings keep the configured values.
func importOptions(charset, delimiter, sheet string, mappings map[string]string) dataset.Options {
	opts := dataset.Options{
		Mappings:  mappings,
		Charset:   cfg.Import.Charset,
		SheetName: cfg.Import.Sheet,
	}
	if charset != "" {
		opts.Charset = charset
	}
	if sheet != "" {
		opts.SheetName = sheet
	}
	delim := cfg.Import.Delimiter
	if delimiter != "" {
		delim = delimiter
	}
	if delim != "" {
		opts.Delimiter = []rune(delim)[0]
	}
	return opts
}

// loadRun loads the strategy config and dataset shared by the selection
// commands. An importable file with zero valid records is not an error;
// the engine produces a well-formed empty result for it.
func loadRun(file, configPath string) (*dataset.Dataset, *selection.Config, error) {
	selCfg, err := loadStrategyConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	ds, err := dataset.Load(file, importOptions("", "", "", selCfg.ColumnMappings))
	if err != nil {
		return nil, nil, err
	}
	if len(ds.Records) == 0 {
		zap.L().Warn("dataset has no valid records", zap.String("file", file))
	}
	return ds, selCfg, nil
}
