package codec

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"topoconf/internal/domain"
)

// ErrUnknownFormat is returned for formats no codec handles
var ErrUnknownFormat = errors.New("unknown format")

// ErrEmptyDocument is returned when a payload holds no topology object
var ErrEmptyDocument = errors.New("payload must be a topology object")

// Importer interface for importing topology data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.TopologyRecord, error)
	Format() string
}

// Exporter interface for exporting topology data to various formats
type Exporter interface {
	Export(record *domain.TopologyRecord, w io.Writer) error
	Format() string
	ContentType() string
	Extension() string
}

// Codec both imports and exports a format
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec registered under name ("json", "yaml" or "yml")
func ForFormat(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// ForContentType maps a request Content-Type to a codec. Anything that is
// not a YAML media type is treated as JSON.
func ForContentType(contentType string) Codec {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return NewJSONCodec()
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return NewYAMLCodec()
	default:
		return NewJSONCodec()
	}
}

// ForPath picks a codec from a file extension
func ForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ForFormat(ext)
}
