package pve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Guest agent calls only exist for QEMU VMs; the API has no agent endpoints
// under lxc.

// AgentExecResult is the response of an agent exec-status poll.
type AgentExecResult struct {
	Exited   int    `json:"exited"`
	ExitCode int    `json:"exitcode,omitempty"`
	OutData  string `json:"out-data,omitempty"`
	ErrData  string `json:"err-data,omitempty"`
}

// AgentPing checks whether the guest agent responds inside a VM.
func (c *Client) AgentPing(ctx context.Context, node string, vmid int) error {
	path := fmt.Sprintf("nodes/%s/qemu/%d/agent/ping", node, vmid)
	return c.post(ctx, path, map[string]any{}, nil)
}

// AgentExec starts a command inside a VM via the guest agent and returns the
// agent-side PID for polling with AgentExecStatus.
func (c *Client) AgentExec(ctx context.Context, node string, vmid int, command []string) (int, error) {
	var result struct {
		PID int `json:"pid"`
	}
	path := fmt.Sprintf("nodes/%s/qemu/%d/agent/exec", node, vmid)
	if err := c.post(ctx, path, map[string]any{"command": command}, &result); err != nil {
		return 0, err
	}
	return result.PID, nil
}

// AgentExecStatus polls a command started with AgentExec.
func (c *Client) AgentExecStatus(ctx context.Context, node string, vmid, pid int) (*AgentExecResult, error) {
	var result AgentExecResult
	path := fmt.Sprintf("nodes/%s/qemu/%d/agent/exec-status?pid=%d", node, vmid, pid)
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AgentFileRead reads a file from inside a VM via the guest agent.
func (c *Client) AgentFileRead(ctx context.Context, node string, vmid int, file string) (string, error) {
	var result struct {
		Content   string `json:"content"`
		Truncated int    `json:"truncated,omitempty"`
	}
	path := fmt.Sprintf("nodes/%s/qemu/%d/agent/file-read?file=%s", node, vmid, url.QueryEscape(file))
	if err := c.get(ctx, path, &result); err != nil {
		return "", err
	}
	return result.Content, nil
}

// AgentFileWrite writes a file inside a VM via the guest agent.
func (c *Client) AgentFileWrite(ctx context.Context, node string, vmid int, file, content string) error {
	path := fmt.Sprintf("nodes/%s/qemu/%d/agent/file-write", node, vmid)
	return c.post(ctx, path, map[string]any{"file": file, "content": content}, nil)
}

// AgentNetworkInterfaces fetches the guest's view of its network interfaces.
func (c *Client) AgentNetworkInterfaces(ctx context.Context, node string, vmid int) (json.RawMessage, error) {
	var raw json.RawMessage
	path := fmt.Sprintf("nodes/%s/qemu/%d/agent/network-get-interfaces", node, vmid)
	if err := c.get(ctx, path, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
