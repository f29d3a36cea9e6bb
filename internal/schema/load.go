package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Format names accepted by Decode.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// catalogFile is the on-disk shape of a catalog:
//
//	{"entities": [{"name": "User", "fields": [{"name": "id", "type": "integer", "primary_key": true}]}]}
//
// or, in TOML:
//
//	[[entities]]
//	name = "User"
//	  [[entities.fields]]
//	  name = "id"
//	  type = "integer"
//	  primary_key = true
type catalogFile struct {
	Entities []Entity `json:"entities" toml:"entities"`
}

// LoadFile reads a catalog from path. The format is chosen by extension:
// ".json" or ".toml".
func LoadFile(path string) (*Catalog, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads a catalog in the given format. Unknown keys are rejected so
// that a misspelled constraint does not silently disappear.
func Decode(r io.Reader, format string) (*Catalog, error) {
	var cf catalogFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cf); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cf); err != nil {
			return nil, fmt.Errorf("decode toml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	return NewCatalog(cf.Entities...), nil
}

func formatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("catalog %s: unsupported extension %q (want .json or .toml)", path, ext)
	}
}
