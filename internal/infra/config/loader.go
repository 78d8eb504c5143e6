// Package config reads gs1dm.yaml or gs1dm.toml into domain.Config.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/NikolayPodpryatov/gs1-dm-label-58x40/internal/domain"
)

// EnvServer overrides server.base_url.
const EnvServer = "GS1DM_SERVER"

// FileNames lists the recognised config files in lookup order.
var FileNames = []string{"gs1dm.yaml", "gs1dm.yml", "gs1dm.toml"}

// Load parses one config file; the format follows the extension.
func Load(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = errors.New("unsupported config extension (expected .yaml, .yml or .toml)")
	}
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapConfig(path, fc)
}

// LoadDir loads the first config file found in root. When there is none it
// returns the defaults together with a KindNotFound error.
func LoadDir(root string) (domain.Config, string, error) {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}
	return domain.DefaultConfig(), "", &domain.OpError{
		Op:   "config.load",
		Kind: domain.KindNotFound,
		Path: root,
		Err:  domain.ErrNotFound,
	}
}
