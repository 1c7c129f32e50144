package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"topoconf/internal/codec"
	"topoconf/internal/domain"
	"topoconf/internal/repository"
)

// ErrMalformedTopology is returned when a payload cannot be parsed as a topology object
var ErrMalformedTopology = errors.New("malformed topology")

// ParseError carries the decoder failure for a rejected payload.
// It matches ErrMalformedTopology under errors.Is.
type ParseError struct{ Err error }

// Error returns the decoder's message
func (e *ParseError) Error() string { return e.Err.Error() }

// Unwrap returns the decoder error
func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformedTopology
func (e *ParseError) Is(target error) bool { return target == ErrMalformedTopology }

// DefaultHistoryLimit bounds History when the caller passes no limit
const DefaultHistoryLimit = 50

// TopologyService provides business logic for the topology record
type TopologyService struct {
	store    repository.TopologyStore
	journal  repository.RevisionLog
	eventBus *EventBus
	logger   *log.Logger
}

// NewTopologyService creates a new topology service. journal may be nil.
func NewTopologyService(store repository.TopologyStore, journal repository.RevisionLog, eventBus *EventBus, logger *log.Logger) *TopologyService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &TopologyService{
		store:    store,
		journal:  journal,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Load returns the current record
func (s *TopologyService) Load() *domain.TopologyRecord {
	return s.store.Get()
}

// Save parses a JSON payload and replaces the record with it.
// On a parse failure the stored record is left untouched.
func (s *TopologyService) Save(ctx context.Context, r io.Reader) (*domain.TopologyRecord, error) {
	return s.Import(ctx, codec.NewJSONCodec(), r, domain.RevisionSave)
}

// Import parses a payload with the given codec and replaces the record with it
func (s *TopologyService) Import(ctx context.Context, c codec.Importer, r io.Reader, action domain.RevisionAction) (*domain.TopologyRecord, error) {
	record, err := c.Parse(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	s.Replace(ctx, action, record)
	return record, nil
}

// Replace swaps in record, journals the change and notifies subscribers
func (s *TopologyService) Replace(ctx context.Context, action domain.RevisionAction, record *domain.TopologyRecord) {
	if record == nil {
		record = domain.DefaultTopology()
	}
	record.Normalize()
	s.store.Set(record)

	s.logger.Info("topology replaced",
		"action", action,
		"upfs", record.UPFCount,
		"gnbs", record.GNBCount,
		"links", len(record.Links),
		"checksum", record.Checksum())

	s.record(ctx, action, record)

	s.eventBus.Publish(Event{
		Type: eventForAction(action),
		Payload: map[string]any{
			"numUPFs": record.UPFCount,
			"numGNBs": record.GNBCount,
		},
	})
}

// Reset restores the default record
func (s *TopologyService) Reset(ctx context.Context) {
	s.store.Reset()
	s.logger.Info("topology reset to default")

	s.record(ctx, domain.RevisionReset, domain.DefaultTopology())

	s.eventBus.Publish(Event{Type: EventTopologyReset})
}

// Export writes the current record with the given codec
func (s *TopologyService) Export(c codec.Exporter, w io.Writer) error {
	return c.Export(s.store.Get(), w)
}

// Layout derives the visualization layout of the current record
func (s *TopologyService) Layout() *domain.VisualizationLayout {
	return domain.GenerateLayout(s.store.Get())
}

// Metrics returns the network QoS summary
func (s *TopologyService) Metrics() domain.NetworkMetrics {
	return domain.PlaceholderMetrics()
}

// History returns journaled revisions, newest first
func (s *TopologyService) History(ctx context.Context, limit int) ([]domain.Revision, error) {
	if s.journal == nil {
		return []domain.Revision{}, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	revs, err := s.journal.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}
	return revs, nil
}

// record appends a revision; failures are logged, never returned
func (s *TopologyService) record(ctx context.Context, action domain.RevisionAction, record *domain.TopologyRecord) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Append(ctx, domain.NewRevision(action, record)); err != nil {
		s.logger.Warn("failed to journal topology revision", "action", action, "err", err)
	}
}

func eventForAction(action domain.RevisionAction) EventType {
	switch action {
	case domain.RevisionImport:
		return EventTopologyImported
	case domain.RevisionSeed:
		return EventTopologySeeded
	case domain.RevisionReset:
		return EventTopologyReset
	default:
		return EventTopologySaved
	}
}
