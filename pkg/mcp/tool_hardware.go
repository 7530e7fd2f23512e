package mcp

import "context"

func handleGetPCIDevices(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	devices, err := s.client.ListPCIDevices(ctx, node)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(devices)
}

func handleGetUSBDevices(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	devices, err := s.client.ListUSBDevices(ctx, node)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(devices)
}
