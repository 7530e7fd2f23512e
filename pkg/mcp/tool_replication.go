package mcp

import (
	"context"

	"github.com/getproxmoxd/proxmoxd/pkg/pve"
)

func handleListReplicationJobs(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	jobs, err := s.client.ListReplicationJobs(ctx)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(jobs)
}

func handleCreateReplicationJob(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	target, err := requireString(args, "target")
	if err != nil {
		return nil, err
	}

	opts := pve.ReplicationJobOptions{
		Schedule: getString(args, "schedule", ""),
		Comment:  getString(args, "comment", ""),
		Enabled:  optBool(args, "enable"),
	}
	if rate, ok := args["rate"].(float64); ok {
		opts.Rate = rate
	}

	if err := s.client.CreateReplicationJob(ctx, id, target, opts); err != nil {
		return nil, err
	}
	return ToolResultTextf("Replication job %s created.", id), nil
}

func handleUpdateReplicationJob(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	changes, ok := args["changes"].(map[string]interface{})
	if !ok || len(changes) == 0 {
		return nil, &argError{msg: "Missing changes"}
	}
	if err := s.client.UpdateReplicationJob(ctx, id, changes); err != nil {
		return nil, err
	}
	return ToolResultTextf("Replication job %s updated.", id), nil
}

func handleDeleteReplicationJob(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	if err := s.client.DeleteReplicationJob(ctx, id); err != nil {
		return nil, err
	}
	return ToolResultTextf("Replication job %s deleted.", id), nil
}
