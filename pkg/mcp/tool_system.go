package mcp

import (
	"context"
	"fmt"
)

func handleListNetworkInterfaces(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	ifaces, err := s.client.ListNetworkInterfaces(ctx, node)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(ifaces)
}

func handleGetNodeRRDData(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	data, err := s.client.NodeRRDData(ctx, node, getString(args, "timeframe", "hour"))
	if err != nil {
		return nil, err
	}
	return ToolResultText(string(data)), nil
}

func handleListServices(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	services, err := s.client.ListServices(ctx, node)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(services)
}

func handleManageService(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	service, err := requireString(args, "service")
	if err != nil {
		return nil, err
	}
	action, err := requireString(args, "action")
	if err != nil {
		return nil, err
	}
	if action != "start" && action != "stop" && action != "restart" {
		return nil, &argError{msg: fmt.Sprintf("invalid action %q", action)}
	}

	upid, err := s.client.ServiceAction(ctx, node, service, action)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Service %s %s initiated. UPID: %s", service, action, upid), nil
}

func handleListAptUpdates(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	updates, err := s.client.ListAptUpdates(ctx, node)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(updates)
}

func handleListAptVersions(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	packages, err := s.client.ListAptVersions(ctx, node)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(packages)
}

func handleRunAptUpdate(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	upid, err := s.client.RunAptUpdate(ctx, node)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Package index refresh initiated. UPID: %s", upid), nil
}

func handleGetSubscription(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	sub, err := s.client.GetSubscription(ctx, node)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(sub)
}

func handleSetSubscription(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	key, err := requireString(args, "key")
	if err != nil {
		return nil, err
	}
	if err := s.client.SetSubscription(ctx, node, key); err != nil {
		return nil, err
	}
	return ToolResultText("Subscription key set."), nil
}

func handleUpdateSubscription(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	if err := s.client.UpdateSubscription(ctx, node); err != nil {
		return nil, err
	}
	return ToolResultText("Subscription re-check initiated."), nil
}
