package config

// Config is the `.riddlebench.yml` schema.
type Config struct {
	Version int          `yaml:"version"`
	Store   StoreConfig  `yaml:"store"`
	Serve   ServeConfig  `yaml:"serve"`
	Report  ReportConfig `yaml:"report"`
}

// StoreConfig locates the result-log store.
type StoreConfig struct {
	Root string `yaml:"root"`
}

// ServeConfig configures the report HTTP server.
type ServeConfig struct {
	Addr          string `yaml:"addr"`
	AssetsBaseURL string `yaml:"assets_base_url"`
	DBPath        string `yaml:"db_path"`
}

// ReportConfig sets aggregation defaults for reports and queries.
type ReportConfig struct {
	Mode string `yaml:"mode"`
}

// DefaultAddr is used when serve.addr is not set.
const DefaultAddr = "127.0.0.1:5000"
