package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getproxmoxd/proxmoxd/pkg/pve"
)

// ResourceProvider serves the static proxmox:// resource catalog. Reads
// derive their content from the live API at call time.
type ResourceProvider struct {
	client *pve.Client
}

// NewResourceProvider creates a resource provider over the upstream client.
func NewResourceProvider(client *pve.Client) *ResourceProvider {
	return &ResourceProvider{client: client}
}

// List returns all resource definitions.
func (p *ResourceProvider) List() []ResourceDefinition {
	return []ResourceDefinition{
		{
			URI:         "proxmox://nodes",
			Name:        "Cluster Nodes",
			Description: "All nodes in the cluster with status and utilization",
			MimeType:    "application/json",
		},
		{
			URI:         "proxmox://vms",
			Name:        "Virtual Machines",
			Description: "All QEMU VMs and LXC containers across the cluster",
			MimeType:    "application/json",
		},
		{
			URI:         "proxmox://cluster/status",
			Name:        "Cluster Status",
			Description: "Cluster membership and quorum state",
			MimeType:    "application/json",
		},
		{
			URI:         "proxmox://storage",
			Name:        "Storage Pools",
			Description: "Cluster-wide storage configuration",
			MimeType:    "application/json",
		},
	}
}

// Read fetches the contents of a resource by URI. Unknown URIs return a
// method-level JSON-RPC error.
func (p *ResourceProvider) Read(ctx context.Context, uri string) ([]ResourceContent, error) {
	var payload interface{}
	var err error

	switch uri {
	case "proxmox://nodes":
		payload, err = p.client.ListNodes(ctx)
	case "proxmox://vms":
		payload, err = p.client.ListVMs(ctx)
	case "proxmox://cluster/status":
		payload, err = p.client.GetClusterStatus(ctx)
	case "proxmox://storage":
		payload, err = p.client.ListStoragePools(ctx)
	default:
		return nil, NewJSONRPCError(ErrCodeNotFound, "Resource not found: "+uri, nil)
	}

	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode resource: %w", err)
	}

	return []ResourceContent{
		{
			URI:      uri,
			MimeType: "application/json",
			Text:     string(data),
		},
	}, nil
}
