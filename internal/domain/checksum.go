package domain

import (
	"encoding/json"
	"fmt"

	"github.com/OneOfOne/xxhash"
)

// Checksum returns a 64-bit xxhash of the record's JSON encoding as 16 hex
// digits. Records that encode identically share a checksum.
func (t *TopologyRecord) Checksum() string {
	data, err := json.Marshal(t)
	if err != nil {
		// Only UPF configs holding unencodable values get here
		data = []byte(fmt.Sprintf("%#v", t))
	}
	return fmt.Sprintf("%016x", xxhash.Checksum64(data))
}
