package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/traitmix/pkg/errors"
	"github.com/arthur-debert/traitmix/pkg/logging"
)

// Load reads and parses a plan file, picking the format from the
// extension: .toml, .yaml, or .yml.
func Load(path string) (*Plan, error) {
	logger := logging.GetLogger("manifest")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "reading manifest '%s'", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	plan, err := Parse(data, ext)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Str("format", ext).
		Int("classes", len(plan.Classes)).
		Int("units", len(plan.Units)).
		Int("pipelines", len(plan.Pipelines)).
		Msg("Manifest loaded")

	return plan, nil
}

// Parse decodes plan data in the given format (".toml", ".yaml", ".yml")
func Parse(data []byte, format string) (*Plan, error) {
	var plan Plan

	switch strings.ToLower(format) {
	case ".toml", "toml":
		if err := toml.Unmarshal(data, &plan); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "parsing TOML manifest")
		}
	case ".yaml", ".yml", "yaml", "yml":
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "parsing YAML manifest")
		}
	default:
		return nil, errors.Newf(errors.ErrManifestParse, "unsupported manifest format '%s'", format)
	}

	return &plan, nil
}
