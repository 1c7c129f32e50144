// Package handler implements the HTTP surface of the topology service.
//
// # Handlers
//
// TopologyHandler serves load, save, reset, the static layout, placeholder
// network metrics, the QoS report download, export/import, revision history
// and the legacy /save_simulation shim.
//
// Middleware provides request IDs, panic recovery, request logging and CORS
// (any origin, every route).
//
// # Response Format
//
// Topology operations answer with an envelope:
//
//	{"status": "success", "message": "...", "data": ...}
//	{"status": "error", "message": "<reason>"}
//
// The static layout and metrics endpoints return their objects unwrapped, as
// the browser client expects.
//
// # Server-Sent Events
//
// The /events endpoint streams topology replacement events so the browser
// can refresh without polling.
package handler
