package mcp

import (
	"context"
	"time"
)

func handleGetTaskStatus(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	upid, err := requireString(args, "upid")
	if err != nil {
		return nil, err
	}

	status, err := s.client.GetTaskStatus(ctx, node, upid)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(status)
}

func handleGetTaskLog(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	upid, err := requireString(args, "upid")
	if err != nil {
		return nil, err
	}

	lines, err := s.client.GetTaskLog(ctx, node, upid)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(lines)
}

func handleListTasks(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	tasks, err := s.client.ListTasks(ctx, node, getInt(args, "limit", 50))
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(tasks)
}

func handleWaitForTask(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return nil, err
	}
	upid, err := requireString(args, "upid")
	if err != nil {
		return nil, err
	}

	timeout := s.taskTimeout
	if secs := getInt(args, "timeout_seconds", 0); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	status, err := s.client.WaitForTask(ctx, node, upid, timeout)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(status)
}
