package pve

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// VMInfo describes one guest (QEMU VM or LXC container).
type VMInfo struct {
	VMID   int    `json:"vmid"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status"`
	Node   string `json:"node"`
	Type   string `json:"type"`
}

// ListVMs lists all guests across the cluster, both QEMU and LXC, by walking
// cluster/resources.
func (c *Client) ListVMs(ctx context.Context) ([]VMInfo, error) {
	resources, err := c.ListClusterResources(ctx, "vm")
	if err != nil {
		return nil, err
	}
	vms := make([]VMInfo, 0, len(resources))
	for _, r := range resources {
		vms = append(vms, VMInfo{
			VMID:   r.VMID,
			Name:   r.Name,
			Status: r.Status,
			Node:   r.Node,
			Type:   r.Type,
		})
	}
	return vms, nil
}

// FindVM locates a guest by VMID across the cluster and returns its node and
// type. Returns a not-found error when no resource carries the VMID.
func (c *Client) FindVM(ctx context.Context, vmid int) (*VMInfo, error) {
	resources, err := c.ListClusterResources(ctx, "vm")
	if err != nil {
		return nil, err
	}
	for _, r := range resources {
		if r.VMID == vmid {
			return &VMInfo{
				VMID:   r.VMID,
				Name:   r.Name,
				Status: r.Status,
				Node:   r.Node,
				Type:   r.Type,
			}, nil
		}
	}
	return nil, notFoundError("VM %d", vmid)
}

// GetVMStatus fetches the current status of a guest. vmType is "qemu" or
// "lxc".
func (c *Client) GetVMStatus(ctx context.Context, node, vmType string, vmid int) (json.RawMessage, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("nodes/%s/%s/%d/status/current", node, vmType, vmid)
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// VMAction triggers a lifecycle action ("start", "stop", "shutdown", "reset",
// "reboot", "suspend", "resume") and returns the UPID of the spawned task.
func (c *Client) VMAction(ctx context.Context, node, vmType string, vmid int, action string) (string, error) {
	var upid string
	path := fmt.Sprintf("nodes/%s/%s/%d/status/%s", node, vmType, vmid, action)
	if err := c.post(ctx, path, map[string]any{}, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// GetVMConfig fetches a guest's configuration.
func (c *Client) GetVMConfig(ctx context.Context, node, vmType string, vmid int) (json.RawMessage, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("nodes/%s/%s/%d/config", node, vmType, vmid)
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// UpdateVMConfig applies configuration changes to a guest. The keys follow
// the Proxmox config schema (cores, memory, net0, ...).
func (c *Client) UpdateVMConfig(ctx context.Context, node, vmType string, vmid int, changes map[string]any) error {
	path := fmt.Sprintf("nodes/%s/%s/%d/config", node, vmType, vmid)
	return c.put(ctx, path, changes, nil)
}

// ResizeVMDisk grows a guest disk and returns the UPID of the resize task.
// size uses the Proxmox size syntax, e.g. "+10G" or "50G".
func (c *Client) ResizeVMDisk(ctx context.Context, node, vmType string, vmid int, disk, size string) (string, error) {
	var upid string
	path := fmt.Sprintf("nodes/%s/%s/%d/resize", node, vmType, vmid)
	if err := c.put(ctx, path, map[string]any{"disk": disk, "size": size}, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// CloneVM clones a guest to newID and returns the UPID of the clone task.
// name and target are optional. full selects a full clone over a linked one;
// when nil the option is left out so the API applies its own default.
func (c *Client) CloneVM(ctx context.Context, node, vmType string, vmid, newID int, name, target string, full *bool) (string, error) {
	body := map[string]any{"newid": newID}
	if name != "" {
		body["name"] = name
	}
	if target != "" {
		body["target"] = target
	}
	if full != nil {
		if *full {
			body["full"] = 1
		} else {
			body["full"] = 0
		}
	}
	var upid string
	path := fmt.Sprintf("nodes/%s/%s/%d/clone", node, vmType, vmid)
	if err := c.post(ctx, path, body, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// MigrateVM migrates a guest to another node and returns the UPID. online
// requests live migration.
func (c *Client) MigrateVM(ctx context.Context, node, vmType string, vmid int, target string, online bool) (string, error) {
	body := map[string]any{"target": target}
	if online {
		body["online"] = 1
	}
	var upid string
	path := fmt.Sprintf("nodes/%s/%s/%d/migrate", node, vmType, vmid)
	if err := c.post(ctx, path, body, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// CreateVM creates a guest on a node. params carries the creation options
// (vmid, ostemplate or iso, cores, memory, ...) passed through to the API
// unchanged. Returns the UPID of the create task.
func (c *Client) CreateVM(ctx context.Context, node, vmType string, params map[string]any) (string, error) {
	var upid string
	path := fmt.Sprintf("nodes/%s/%s", node, vmType)
	if err := c.post(ctx, path, params, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// ListTemplates lists guests marked as templates across the cluster.
func (c *Client) ListTemplates(ctx context.Context) ([]VMInfo, error) {
	resources, err := c.ListClusterResources(ctx, "vm")
	if err != nil {
		return nil, err
	}
	var templates []VMInfo
	for _, r := range resources {
		if r.Template == 1 {
			templates = append(templates, VMInfo{
				VMID:   r.VMID,
				Name:   r.Name,
				Status: r.Status,
				Node:   r.Node,
				Type:   r.Type,
			})
		}
	}
	return templates, nil
}

// VNCProxyTicket is the result of a vncproxy call, used to build console
// connections.
type VNCProxyTicket struct {
	Ticket string `json:"ticket"`
	Port   string `json:"port"`
	User   string `json:"user,omitempty"`
	Cert   string `json:"cert,omitempty"`
}

// VNCProxy allocates a VNC console proxy for a guest.
func (c *Client) VNCProxy(ctx context.Context, node, vmType string, vmid int) (*VNCProxyTicket, error) {
	var ticket VNCProxyTicket
	path := fmt.Sprintf("nodes/%s/%s/%d/vncproxy", node, vmType, vmid)
	if err := c.post(ctx, path, map[string]any{}, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// DeleteVM destroys a guest and returns the UPID of the removal task.
func (c *Client) DeleteVM(ctx context.Context, node, vmType string, vmid int) (string, error) {
	var upid string
	path := fmt.Sprintf("nodes/%s/%s/%d", node, vmType, vmid)
	if err := c.del(ctx, path, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// ParseVMID parses a VMID given as a string. Proxmox VMIDs are positive
// integers.
func ParseVMID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, internalError("invalid vmid %q", s)
	}
	return id, nil
}
