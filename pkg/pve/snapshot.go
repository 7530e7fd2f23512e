package pve

import (
	"context"
	"fmt"
	"net/url"
)

// Snapshot is one entry from a guest's snapshot listing. The listing always
// includes a synthetic "current" entry for the live state.
type Snapshot struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SnapTime    int64  `json:"snaptime,omitempty"`
	VMState     int    `json:"vmstate,omitempty"`
	Parent      string `json:"parent,omitempty"`
}

// ListSnapshots lists a guest's snapshots.
func (c *Client) ListSnapshots(ctx context.Context, node, vmType string, vmid int) ([]Snapshot, error) {
	var snaps []Snapshot
	path := fmt.Sprintf("nodes/%s/%s/%d/snapshot", node, vmType, vmid)
	if err := c.get(ctx, path, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// CreateSnapshot creates a snapshot and returns the UPID of the task.
// vmstate includes RAM (QEMU only); description is optional.
func (c *Client) CreateSnapshot(ctx context.Context, node, vmType string, vmid int, name, description string, vmstate bool) (string, error) {
	body := map[string]any{"snapname": name}
	if description != "" {
		body["description"] = description
	}
	if vmstate && vmType == "qemu" {
		body["vmstate"] = 1
	}
	var upid string
	path := fmt.Sprintf("nodes/%s/%s/%d/snapshot", node, vmType, vmid)
	if err := c.post(ctx, path, body, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// RollbackSnapshot rolls a guest back to a snapshot and returns the UPID.
func (c *Client) RollbackSnapshot(ctx context.Context, node, vmType string, vmid int, name string) (string, error) {
	var upid string
	path := fmt.Sprintf("nodes/%s/%s/%d/snapshot/%s/rollback", node, vmType, vmid, url.PathEscape(name))
	if err := c.post(ctx, path, map[string]any{}, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// DeleteSnapshot removes a snapshot and returns the UPID.
func (c *Client) DeleteSnapshot(ctx context.Context, node, vmType string, vmid int, name string) (string, error) {
	var upid string
	path := fmt.Sprintf("nodes/%s/%s/%d/snapshot/%s", node, vmType, vmid, url.PathEscape(name))
	if err := c.del(ctx, path, &upid); err != nil {
		return "", err
	}
	return upid, nil
}
