// Package pve is a client for the Proxmox VE HTTP API.
//
// The client authenticates either with a ticket+CSRF pair obtained via
// Login, or with a static API token supplied at construction. All request
// methods take a context.Context and surface failures as *Error values with
// a closed set of kinds, so callers can map them without string matching.
package pve
