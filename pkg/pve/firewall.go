package pve

import (
	"context"
	"fmt"
)

// FirewallRule is one rule from a firewall rule listing at any scope.
type FirewallRule struct {
	Pos     int    `json:"pos"`
	Type    string `json:"type"`
	Action  string `json:"action"`
	Enable  int    `json:"enable,omitempty"`
	Source  string `json:"source,omitempty"`
	Dest    string `json:"dest,omitempty"`
	Proto   string `json:"proto,omitempty"`
	DPort   string `json:"dport,omitempty"`
	SPort   string `json:"sport,omitempty"`
	Comment string `json:"comment,omitempty"`
	Iface   string `json:"iface,omitempty"`
	Log     string `json:"log,omitempty"`
}

// ListClusterFirewallRules lists cluster-scope firewall rules.
func (c *Client) ListClusterFirewallRules(ctx context.Context) ([]FirewallRule, error) {
	var rules []FirewallRule
	if err := c.get(ctx, "cluster/firewall/rules", &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// ListNodeFirewallRules lists node-scope firewall rules.
func (c *Client) ListNodeFirewallRules(ctx context.Context, node string) ([]FirewallRule, error) {
	var rules []FirewallRule
	if err := c.get(ctx, fmt.Sprintf("nodes/%s/firewall/rules", node), &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// ListVMFirewallRules lists guest-scope firewall rules. vmType must match the
// guest's actual type; use FindVM to resolve it.
func (c *Client) ListVMFirewallRules(ctx context.Context, node, vmType string, vmid int) ([]FirewallRule, error) {
	var rules []FirewallRule
	path := fmt.Sprintf("nodes/%s/%s/%d/firewall/rules", node, vmType, vmid)
	if err := c.get(ctx, path, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// firewallRulesPath resolves the rules path for a scope. An empty node
// selects cluster scope; a zero vmid selects node scope.
func firewallRulesPath(node, vmType string, vmid int) string {
	switch {
	case node != "" && vmid > 0:
		return fmt.Sprintf("nodes/%s/%s/%d/firewall/rules", node, vmType, vmid)
	case node != "":
		return fmt.Sprintf("nodes/%s/firewall/rules", node)
	default:
		return "cluster/firewall/rules"
	}
}

// AddFirewallRule creates a rule at the given scope. rule carries the rule
// options (action, type, source, dest, ...) passed through to the API
// unchanged.
func (c *Client) AddFirewallRule(ctx context.Context, node, vmType string, vmid int, rule map[string]any) error {
	return c.post(ctx, firewallRulesPath(node, vmType, vmid), rule, nil)
}

// DeleteFirewallRule removes the rule at position pos at the given scope.
func (c *Client) DeleteFirewallRule(ctx context.Context, node, vmType string, vmid, pos int) error {
	path := fmt.Sprintf("%s/%d", firewallRulesPath(node, vmType, vmid), pos)
	return c.del(ctx, path, nil)
}
