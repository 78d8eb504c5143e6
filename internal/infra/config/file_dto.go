package config

// FileConfig mirrors gs1dm.yaml / gs1dm.toml. Pointers mark "not set" so
// defaults survive partial files.
type FileConfig struct {
	GS1DM FileRoot `yaml:"gs1dm" toml:"gs1dm"`
}

type FileRoot struct {
	Server   FileServer  `yaml:"server" toml:"server"`
	HTTP     FileHTTP    `yaml:"http" toml:"http"`
	Export   FileExport  `yaml:"export" toml:"export"`
	History  FileHistory `yaml:"history" toml:"history"`
	Batch    FileBatch   `yaml:"batch" toml:"batch"`
	StateDir string      `yaml:"state_dir" toml:"state_dir"`
}

type FileServer struct {
	BaseURL string `yaml:"base_url" toml:"base_url"`
}

type FileHTTP struct {
	Timeout string `yaml:"timeout" toml:"timeout"`
}

type FileExport struct {
	DefaultFormat string `yaml:"default_format" toml:"default_format"`
	OutputDir     string `yaml:"output_dir" toml:"output_dir"`
	Open          *bool  `yaml:"open" toml:"open"`
	Overwrite     *bool  `yaml:"overwrite" toml:"overwrite"`
	GSToken       string `yaml:"gs_token" toml:"gs_token"`
}

type FileHistory struct {
	Enabled     *bool `yaml:"enabled" toml:"enabled"`
	MaskPayload *bool `yaml:"mask_payload" toml:"mask_payload"`
}

type FileBatch struct {
	Concurrency *int     `yaml:"concurrency" toml:"concurrency"`
	RatePerSec  *float64 `yaml:"rate_per_sec" toml:"rate_per_sec"`
}
