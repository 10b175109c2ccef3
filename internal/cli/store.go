package cli

import (
	"fmt"
	"os"

	"riddlebench/internal/config"
	"riddlebench/internal/logstore"
)

// defaultConfigName is searched in the working directory when no explicit
// config or store root is given.
const defaultConfigName = ".riddlebench.yml"

// resolveStore builds the log store from the --store flag, an explicit
// config path, or the default config file.
func resolveStore(storeRoot, configPath string) (logstore.Store, config.Config, error) {
	var cfg config.Config
	switch {
	case configPath != "":
		loaded, err := config.Load(configPath)
		if err != nil {
			return logstore.Store{}, config.Config{}, err
		}
		cfg = loaded
	case storeRoot == "":
		if _, err := os.Stat(defaultConfigName); err == nil {
			loaded, err := config.Load(defaultConfigName)
			if err != nil {
				return logstore.Store{}, config.Config{}, err
			}
			cfg = loaded
		}
	}
	config.Normalize(&cfg)
	if storeRoot != "" {
		cfg.Store.Root = storeRoot
	}
	if cfg.Store.Root == "" {
		return logstore.Store{}, config.Config{}, fmt.Errorf("store root is required (use --store or %s)", defaultConfigName)
	}
	store, err := logstore.New(cfg.Store.Root)
	if err != nil {
		return logstore.Store{}, config.Config{}, err
	}
	return store, cfg, nil
}
