// Package domain defines the core types of the topology configuration service.
//
// # Core Types
//
// TopologyRecord is the single configuration of the simulated network: UPF
// (user-plane function) nodes with opaque per-node configs, gNB radio nodes
// and their UPF assignments, named links, and the DNS endpoint with the UPFs
// attached to it.
//
// VisualizationLayout is derived from a record on every request. UPFs are
// placed on a grid inside the unit square by GenerateLayout; the remaining
// fields are copied through.
//
// Revision is a journal entry recording which operation replaced the record.
//
// # Design Principles
//
// - Records are replaced wholesale, never mutated after they are stored
// - No database or transport dependencies
// - Layout generation is pure and deterministic
package domain
