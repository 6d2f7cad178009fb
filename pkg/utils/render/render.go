package render

import (
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/m-mizutani/goerr/v2"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/types"
)

// Format selects the wire encoding of emitted definitions.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat normalizes a user-supplied format name. "yml" is accepted
// as an alias for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", goerr.Wrap(types.ErrUnsupportedFormat, "format must be json or yaml",
			goerr.V("format", s),
		)
	}
}

// Encode writes v to w in the given format. JSON output is indented so
// emitted definitions are directly reviewable.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode JSON")
		}
		return nil

	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return goerr.Wrap(err, "failed to encode YAML")
		}
		if _, err := w.Write(data); err != nil {
			return goerr.Wrap(err, "failed to write YAML")
		}
		return nil

	default:
		return goerr.Wrap(types.ErrUnsupportedFormat, "unknown output format",
			goerr.V("format", string(format)),
		)
	}
}

// FileName returns base with the extension conventional for format.
func FileName(base string, format Format) string {
	if format == FormatJSON {
		return base + ".json"
	}

	return base + ".yaml"
}
