// Package yaml loads pbidoc configuration files.
package yaml

import (
	"os"

	"github.com/fwojciec/pbidoc"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up when no path is given.
const DefaultFilename = "pbidoc.yaml"

// LoadConfig reads config from path, merged over the defaults.
// A missing file yields the defaults. The result is not validated; callers
// validate after applying their own overrides.
func LoadConfig(path string) (*pbidoc.Config, error) {
	cfg := pbidoc.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, pbidoc.Errorf(pbidoc.EINVALID, "reading config file %s: %v", path, err)
	}

	var loaded pbidoc.Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, pbidoc.Errorf(pbidoc.EINVALID, "parsing config file %s: %v", path, err)
	}
	cfg.Apply(loaded)

	return cfg, nil
}

// SaveConfig writes cfg to path. It refuses to overwrite an existing file.
func SaveConfig(path string, cfg *pbidoc.Config) error {
	if _, err := os.Stat(path); err == nil {
		return pbidoc.Errorf(pbidoc.ECONFLICT, "config file already exists: %s", path)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	header := "# pbidoc configuration\n\n"
	return os.WriteFile(path, append([]byte(header), data...), 0644)
}
