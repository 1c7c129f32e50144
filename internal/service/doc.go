// Package service implements the business logic of the topology service.
//
// This package sits between the HTTP handlers and the repository layer.
//
// # Services
//
// TopologyService owns the topology store. It decodes save and import
// payloads, swaps the stored record, journals every replacement and derives
// the visualization layout.
//
// ReportService serves the QoS report file from disk.
//
// # Event System
//
// TopologyService publishes an Event on every replacement via EventBus. The
// server forwards these to browser clients over Server-Sent Events.
//
// # Design Principles
//
// - Records are replaced wholesale, never patched
// - The journal is best effort; the in-memory record is authoritative
// - Errors are wrapped and classified with sentinel values
package service
