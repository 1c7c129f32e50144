package codec

import (
	"fmt"
	"io"

	"topoconf/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the media type written by Export
func (c *YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Extension returns the file extension for exported documents
func (c *YAMLCodec) Extension() string {
	return "yaml"
}

// Parse imports a topology from the first YAML document
func (c *YAMLCodec) Parse(r io.Reader) (*domain.TopologyRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML: %w", err)
	}

	var in *domain.TopologyInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if in == nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", ErrEmptyDocument)
	}

	return in.Record(), nil
}

// Export exports a topology to YAML
func (c *YAMLCodec) Export(record *domain.TopologyRecord, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
