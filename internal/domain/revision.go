package domain

import (
	"time"

	"github.com/google/uuid"
)

// RevisionAction names the operation that produced a revision
type RevisionAction string

const (
	RevisionSave   RevisionAction = "save"
	RevisionReset  RevisionAction = "reset"
	RevisionImport RevisionAction = "import"
	RevisionSeed   RevisionAction = "seed"
)

// Revision is one entry in the topology journal
type Revision struct {
	ID        string          `json:"id"`
	Action    RevisionAction  `json:"action"`
	CreatedAt time.Time       `json:"createdAt"`
	Checksum  string          `json:"checksum"`
	Record    *TopologyRecord `json:"record"`
}

// NewRevision stamps a record with a fresh ID, the current time and its checksum
func NewRevision(action RevisionAction, record *TopologyRecord) *Revision {
	rev := &Revision{
		ID:        uuid.NewString(),
		Action:    action,
		CreatedAt: time.Now().UTC(),
		Record:    record,
	}
	if record != nil {
		rev.Checksum = record.Checksum()
	}
	return rev
}
