package mcp

import "context"

func agentTarget(args map[string]interface{}) (string, int, error) {
	node, err := requireString(args, "node")
	if err != nil {
		return "", 0, err
	}
	vmid, err := requireInt(args, "vmid")
	if err != nil {
		return "", 0, err
	}
	return node, vmid, nil
}

func handleAgentPing(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmid, err := agentTarget(args)
	if err != nil {
		return nil, err
	}
	if err := s.client.AgentPing(ctx, node, vmid); err != nil {
		return nil, err
	}
	return ToolResultText("Guest agent is responding."), nil
}

func handleAgentExec(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmid, err := agentTarget(args)
	if err != nil {
		return nil, err
	}

	raw, ok := args["command"].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, &argError{msg: "Missing command"}
	}
	command := make([]string, 0, len(raw))
	for _, item := range raw {
		arg, ok := item.(string)
		if !ok {
			return nil, &argError{msg: "command must be an array of strings"}
		}
		command = append(command, arg)
	}

	pid, err := s.client.AgentExec(ctx, node, vmid, command)
	if err != nil {
		return nil, err
	}
	return ToolResultTextf("Command started. PID: %d", pid), nil
}

func handleAgentExecStatus(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmid, err := agentTarget(args)
	if err != nil {
		return nil, err
	}
	pid, err := requireInt(args, "pid")
	if err != nil {
		return nil, err
	}

	result, err := s.client.AgentExecStatus(ctx, node, vmid, pid)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(result)
}

func handleAgentFileRead(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmid, err := agentTarget(args)
	if err != nil {
		return nil, err
	}
	file, err := requireString(args, "file")
	if err != nil {
		return nil, err
	}

	content, err := s.client.AgentFileRead(ctx, node, vmid, file)
	if err != nil {
		return nil, err
	}
	return ToolResultText(content), nil
}

func handleAgentFileWrite(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmid, err := agentTarget(args)
	if err != nil {
		return nil, err
	}
	file, err := requireString(args, "file")
	if err != nil {
		return nil, err
	}
	content, err := requireString(args, "content")
	if err != nil {
		return nil, err
	}

	if err := s.client.AgentFileWrite(ctx, node, vmid, file, content); err != nil {
		return nil, err
	}
	return ToolResultTextf("Wrote %s.", file), nil
}

func handleAgentNetworkInterfaces(ctx context.Context, s *Server, args map[string]interface{}) (*ToolResult, error) {
	node, vmid, err := agentTarget(args)
	if err != nil {
		return nil, err
	}

	interfaces, err := s.client.AgentNetworkInterfaces(ctx, node, vmid)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(interfaces)
}
