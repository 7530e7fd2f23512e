package pve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// NetworkInterface is one entry from a node's network configuration.
type NetworkInterface struct {
	Iface       string `json:"iface"`
	Type        string `json:"type"`
	Method      string `json:"method,omitempty"`
	Address     string `json:"address,omitempty"`
	Netmask     string `json:"netmask,omitempty"`
	Gateway     string `json:"gateway,omitempty"`
	Active      int    `json:"active,omitempty"`
	Autostart   int    `json:"autostart,omitempty"`
	BridgePorts string `json:"bridge_ports,omitempty"`
}

// Service is one entry from a node's service listing.
type Service struct {
	Service string `json:"service"`
	Name    string `json:"name,omitempty"`
	State   string `json:"state,omitempty"`
	Desc    string `json:"desc,omitempty"`
}

// AptUpdate is one pending package update on a node.
type AptUpdate struct {
	Package    string `json:"Package"`
	Title      string `json:"Title,omitempty"`
	OldVersion string `json:"OldVersion,omitempty"`
	Version    string `json:"Version,omitempty"`
	Priority   string `json:"Priority,omitempty"`
}

// AptPackage is one installed Proxmox-related package on a node.
type AptPackage struct {
	Package string `json:"Package"`
	Version string `json:"Version,omitempty"`
	Title   string `json:"Title,omitempty"`
}

// ListNetworkInterfaces lists a node's network configuration.
func (c *Client) ListNetworkInterfaces(ctx context.Context, node string) ([]NetworkInterface, error) {
	var ifaces []NetworkInterface
	if err := c.get(ctx, fmt.Sprintf("nodes/%s/network", node), &ifaces); err != nil {
		return nil, err
	}
	return ifaces, nil
}

// NodeRRDData fetches performance metrics for a node. timeframe is one of
// "hour", "day", "week", "month", "year".
func (c *Client) NodeRRDData(ctx context.Context, node, timeframe string) (json.RawMessage, error) {
	if timeframe == "" {
		timeframe = "hour"
	}
	var raw json.RawMessage
	path := fmt.Sprintf("nodes/%s/rrddata?timeframe=%s", node, url.QueryEscape(timeframe))
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ListServices lists the system services on a node.
func (c *Client) ListServices(ctx context.Context, node string) ([]Service, error) {
	var services []Service
	if err := c.get(ctx, fmt.Sprintf("nodes/%s/services", node), &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ServiceAction starts, stops, or restarts a node service and returns the
// UPID of the task.
func (c *Client) ServiceAction(ctx context.Context, node, service, action string) (string, error) {
	var upid string
	path := fmt.Sprintf("nodes/%s/services/%s/%s", node, url.PathEscape(service), action)
	if err := c.post(ctx, path, map[string]any{}, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// ListAptUpdates lists pending package updates on a node.
func (c *Client) ListAptUpdates(ctx context.Context, node string) ([]AptUpdate, error) {
	var updates []AptUpdate
	if err := c.get(ctx, fmt.Sprintf("nodes/%s/apt/update", node), &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// RunAptUpdate refreshes the package index on a node and returns the UPID of
// the update task.
func (c *Client) RunAptUpdate(ctx context.Context, node string) (string, error) {
	var upid string
	if err := c.post(ctx, fmt.Sprintf("nodes/%s/apt/update", node), map[string]any{}, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// ListAptVersions lists installed package versions on a node.
func (c *Client) ListAptVersions(ctx context.Context, node string) ([]AptPackage, error) {
	var packages []AptPackage
	if err := c.get(ctx, fmt.Sprintf("nodes/%s/apt/versions", node), &packages); err != nil {
		return nil, err
	}
	return packages, nil
}
