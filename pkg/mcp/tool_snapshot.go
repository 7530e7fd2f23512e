package mcp

import "context"

func handleListSnapshots(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	snaps, err := s.client.ListSnapshots(ctx, node, vmType, vmid)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(snaps)
}

func handleSnapshotVM(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	snapname, err := requireString(args, "snapname")
	if err != nil {
		return nil, err
	}

	upid, err := s.client.CreateSnapshot(ctx, node, vmType, vmid, snapname,
		getString(args, "description", ""),
		getBool(args, "vmstate", false),
	)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Snapshot '%s' created. UPID: %s", snapname, upid), nil
}

func handleRollbackVM(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	snapname, err := requireString(args, "snapname")
	if err != nil {
		return nil, err
	}

	upid, err := s.client.RollbackSnapshot(ctx, node, vmType, vmid, snapname)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Rollback to '%s' initiated. UPID: %s", snapname, upid), nil
}

func handleDeleteSnapshot(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmType, vmid, err := guestArgs(args)
	if err != nil {
		return nil, err
	}
	snapname, err := requireString(args, "snapname")
	if err != nil {
		return nil, err
	}

	upid, err := s.client.DeleteSnapshot(ctx, node, vmType, vmid, snapname)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Delete snapshot '%s' initiated. UPID: %s", snapname, upid), nil
}
