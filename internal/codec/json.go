package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"topoconf/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the media type written by Export
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// Extension returns the file extension for exported documents
func (c *JSONCodec) Extension() string {
	return "json"
}

// Parse imports a topology from a single JSON object. Missing fields take
// their defaults; trailing data after the object is rejected.
func (c *JSONCodec) Parse(r io.Reader) (*domain.TopologyRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}

	var in *domain.TopologyInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if in == nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", ErrEmptyDocument)
	}

	return in.Record(), nil
}

// Export exports a topology to JSON
func (c *JSONCodec) Export(record *domain.TopologyRecord, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
