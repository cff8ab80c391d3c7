// Package scenario reads calculator inputs from YAML, TOML or JSON files.
package scenario

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions Load cannot decode.
var ErrUnsupportedFormat = eris.New("unsupported scenario format")

// Load decodes the file at path into v, choosing the decoder by extension.
// Fields absent from the file keep whatever value v already holds, so v can
// be pre-filled with defaults.
func Load(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own flag
	if err != nil {
		return eris.Wrap(err, "read scenario")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	case ".toml":
		err = toml.Unmarshal(data, v)
	case ".json":
		err = json.Unmarshal(data, v)
	default:
		return eris.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	if err != nil {
		return eris.Wrapf(err, "parse scenario %s", filepath.Base(path))
	}
	return nil
}
