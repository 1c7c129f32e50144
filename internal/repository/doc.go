// Package repository defines the data access interfaces for the topology service.
//
// # Topology Store
//
// TopologyStore holds the one current TopologyRecord. The memory subpackage
// implements it with an atomic pointer so that a save is a single swap and
// readers never observe a mix of old and new fields.
//
// # Revision Log
//
// RevisionLog keeps a journal of saves, resets and imports. The sqlite
// subpackage implements it on an in-memory SQLite database, so the journal
// lives exactly as long as the process.
package repository
