package mcp

import "context"

func handleListStorage(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	storages, err := s.client.ListNodeStorage(ctx, node)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(storages)
}

func handleListStoragePools(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	pools, err := s.client.ListStoragePools(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(pools)
}

func handleListStorageContent(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	storage, err := requireString(args, "storage")
	if err != nil {
		return nil, err
	}

	volumes, err := s.client.ListStorageContent(ctx, node, storage, getString(args, "content", ""))
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(volumes)
}

func handleDownloadURL(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	storage, err := requireString(args, "storage")
	if err != nil {
		return nil, err
	}
	content, err := requireString(args, "content")
	if err != nil {
		return nil, err
	}
	filename, err := requireString(args, "filename")
	if err != nil {
		return nil, err
	}
	fileURL, err := requireString(args, "url")
	if err != nil {
		return nil, err
	}

	upid, err := s.client.DownloadURL(ctx, node, storage, content, filename, fileURL)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Download of '%s' initiated. UPID: %s", filename, upid), nil
}
