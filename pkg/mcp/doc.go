// Package mcp implements the Model Context Protocol server for Proxmox VE.
//
// The protocol core is transport-independent: Server dispatches JSON-RPC
// requests to the tool registry, the resource provider, and the upstream
// client, and converts upstream failures into a fixed set of JSON-RPC error
// codes at that one boundary. Two transports feed it: StdioServer speaks
// newline-delimited JSON-RPC over stdin/stdout for a single peer, and
// HTTPServer serves multiple peers over Streamable HTTP with per-session
// SSE notification streams.
//
// In lazy mode the advertised tool catalog starts minimal; calling the
// load_all_tools tool switches to the full catalog and emits a
// notifications/tools/list_changed message out of band.
package mcp
