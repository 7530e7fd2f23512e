package pve

import (
	"context"
	"encoding/json"
	"fmt"
)

// NodeInfo is one node entry from the nodes listing.
type NodeInfo struct {
	Node    string  `json:"node"`
	Status  string  `json:"status"`
	CPU     float64 `json:"cpu,omitempty"`
	MaxCPU  int     `json:"maxcpu,omitempty"`
	Mem     int64   `json:"mem,omitempty"`
	MaxMem  int64   `json:"maxmem,omitempty"`
	Disk    int64   `json:"disk,omitempty"`
	MaxDisk int64   `json:"maxdisk,omitempty"`
	Uptime  int64   `json:"uptime,omitempty"`
}

// ClusterResource is one entry from cluster/resources. VMID is zero for
// resources that are not guests (nodes, storage).
type ClusterResource struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Node     string `json:"node,omitempty"`
	VMID     int    `json:"vmid,omitempty"`
	Name     string `json:"name,omitempty"`
	Status   string `json:"status,omitempty"`
	Storage  string `json:"storage,omitempty"`
	Template int    `json:"template,omitempty"`
}

// ClusterStatusEntry is one entry from cluster/status.
type ClusterStatusEntry struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Online  int    `json:"online,omitempty"`
	Quorate int    `json:"quorate,omitempty"`
	Nodes   int    `json:"nodes,omitempty"`
	IP      string `json:"ip,omitempty"`
	Local   int    `json:"local,omitempty"`
}

// ClusterLogEntry is one entry from the cluster-wide log.
type ClusterLogEntry struct {
	ID   string `json:"id"`
	Node string `json:"node,omitempty"`
	Time int64  `json:"time,omitempty"`
	User string `json:"user,omitempty"`
	Tag  string `json:"tag,omitempty"`
	Msg  string `json:"msg,omitempty"`
	Pri  int    `json:"pri,omitempty"`
}

// ListNodes lists all nodes in the cluster.
func (c *Client) ListNodes(ctx context.Context) ([]NodeInfo, error) {
	var nodes []NodeInfo
	if err := c.get(ctx, "nodes", &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// ListClusterResources lists cluster resources, optionally filtered by type
// ("vm", "node", "storage"). An empty type lists everything.
func (c *Client) ListClusterResources(ctx context.Context, resourceType string) ([]ClusterResource, error) {
	path := "cluster/resources"
	if resourceType != "" {
		path += "?type=" + resourceType
	}
	var resources []ClusterResource
	if err := c.get(ctx, path, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// GetClusterStatus fetches cluster membership and quorum state.
func (c *Client) GetClusterStatus(ctx context.Context) ([]ClusterStatusEntry, error) {
	var entries []ClusterStatusEntry
	if err := c.get(ctx, "cluster/status", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetClusterLog fetches recent cluster log entries.
func (c *Client) GetClusterLog(ctx context.Context, max int) ([]ClusterLogEntry, error) {
	if max <= 0 {
		max = 50
	}
	var entries []ClusterLogEntry
	if err := c.get(ctx, fmt.Sprintf("cluster/log?max=%d", max), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// HAResource is one entry from the HA resource configuration.
type HAResource struct {
	SID     string `json:"sid"`
	Type    string `json:"type,omitempty"`
	State   string `json:"state,omitempty"`
	Group   string `json:"group,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// ListHAResources lists high-availability managed resources.
func (c *Client) ListHAResources(ctx context.Context) ([]HAResource, error) {
	var resources []HAResource
	if err := c.get(ctx, "cluster/ha/resources", &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// NodeStatus fetches the detailed status of a single node as raw JSON; the
// shape varies with the node's hardware and Proxmox version.
func (c *Client) NodeStatus(ctx context.Context, node string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("nodes/%s/status", node), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
