package mcp

import (
	"context"
	"fmt"
)

func handleListFirewallRules(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	scope := getString(args, "scope", "cluster")

	switch scope {
	case "cluster":
		rules, err := s.client.ListClusterFirewallRules(ctx)
		if err != nil {
			return nil, err
		}
		return ToolResultJSON(rules)

	case "node":
		node, err := requireString(args, "node")
		if err != nil {
			return nil, err
		}
		rules, err := s.client.ListNodeFirewallRules(ctx, node)
		if err != nil {
			return nil, err
		}
		return ToolResultJSON(rules)

	case "vm":
		vmid, err := requireInt(args, "vmid")
		if err != nil {
			return nil, err
		}
		// The rule path needs the guest's real type, so resolve it.
		vm, err := s.client.FindVM(ctx, vmid)
		if err != nil {
			return nil, err
		}
		rules, err := s.client.ListVMFirewallRules(ctx, vm.Node, vm.Type, vmid)
		if err != nil {
			return nil, err
		}
		return ToolResultJSON(rules)

	default:
		return nil, &argError{msg: fmt.Sprintf("invalid scope %q", scope)}
	}
}

// resolveFirewallScope maps the scope argument onto the client's path
// parameters. Guest scope resolves the guest's real type first.
func resolveFirewallScope(ctx context.Context, s *Server, args map[string]interface{}) (node, vmType string, vmid int, err error) {
	scope := getString(args, "scope", "cluster")
	switch scope {
	case "cluster":
		return "", "", 0, nil
	case "node":
		node, err = requireString(args, "node")
		return node, "", 0, err
	case "vm":
		vmid, err = requireInt(args, "vmid")
		if err != nil {
			return "", "", 0, err
		}
		vm, err := s.client.FindVM(ctx, vmid)
		if err != nil {
			return "", "", 0, err
		}
		return vm.Node, vm.Type, vmid, nil
	default:
		return "", "", 0, &argError{msg: fmt.Sprintf("invalid scope %q", scope)}
	}
}

func handleAddFirewallRule(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := resolveFirewallScope(ctx, s, args)
	if err != nil {
		return nil, err
	}
	rule, ok := args["rule"].(map[string]interface{})
	if !ok || len(rule) == 0 {
		return nil, &argError{msg: "Missing rule"}
	}
	if err := s.client.AddFirewallRule(ctx, node, vmType, vmid, rule); err != nil {
		return nil, err
	}
	return ToolResultText("Firewall rule added."), nil
}

func handleDeleteFirewallRule(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := resolveFirewallScope(ctx, s, args)
	if err != nil {
		return nil, err
	}
	pos, err := requireInt(args, "pos")
	if err != nil {
		return nil, err
	}
	if err := s.client.DeleteFirewallRule(ctx, node, vmType, vmid, pos); err != nil {
		return nil, err
	}
	return ToolResultTextf("Firewall rule at position %d deleted.", pos), nil
}
