package mcp

import "context"

func handleLoadAllTools(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	if s.catalog.LoadAll() {
		s.log.Info("full tool catalog loaded")
		return ToolResultText("Full tool catalog loaded."), nil
	}
	return ToolResultText("Full tool catalog already loaded."), nil
}

func handleListNodes(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	nodes, err := s.client.ListNodes(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(nodes)
}

func handleGetNodeStatus(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	status, err := s.client.NodeStatus(ctx, node)
	if err != nil {
		return nil, err
	}
	return ToolResultText(string(status)), nil
}

func handleGetClusterStatus(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	entries, err := s.client.GetClusterStatus(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(entries)
}

func handleGetClusterLog(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	entries, err := s.client.GetClusterLog(ctx, getInt(args, "max", 50))
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(entries)
}

func handleListClusterResources(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	resources, err := s.client.ListClusterResources(ctx, getString(args, "type", ""))
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(resources)
}

func handleListHAResources(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	resources, err := s.client.ListHAResources(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(resources)
}
