package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	toml "github.com/pelletier/go-toml"
	"github.com/viant/afs"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/launchgen/internal/codegen/meta"
)

// Manifest formats, selected by file extension.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FormatOf maps a file name or URL to its manifest format; unknown
// extensions are read as JSON.
func FormatOf(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// LoadManifest reads a metadata table from a file path or afs URL.
func LoadManifest(ctx context.Context, fs afs.Service, URL string) (*meta.Table, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", URL, err)
	}
	table, err := DecodeManifest(data, FormatOf(URL))
	if err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", URL, err)
	}
	for i := range table.Declarations {
		if table.Declarations[i].Source == "" {
			table.Declarations[i].Source = fmt.Sprintf("%s#routes[%d]", URL, i)
		}
	}
	return table, nil
}

// DecodeManifest parses a metadata table in the given format.
func DecodeManifest(data []byte, format string) (*meta.Table, error) {
	table := &meta.Table{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, table)
	case FormatTOML:
		err = toml.Unmarshal(data, table)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(table)
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

// EncodeManifest renders a metadata table, the inverse of DecodeManifest.
func EncodeManifest(table *meta.Table, format string) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(table)
	case FormatTOML:
		return toml.Marshal(*table)
	case FormatJSON:
		data, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", format)
	}
}
