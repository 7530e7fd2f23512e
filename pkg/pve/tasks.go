package pve

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// TaskStatus is one entry from a node task status or task list response.
type TaskStatus struct {
	UPID      string `json:"upid"`
	Node      string `json:"node"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	ExitCode  string `json:"exitstatus,omitempty"`
	User      string `json:"user,omitempty"`
	StartTime int64  `json:"starttime,omitempty"`
	PID       int    `json:"pid,omitempty"`
}

// Finished reports whether the task has reached its terminal state.
func (t TaskStatus) Finished() bool {
	return t.Status == "stopped"
}

// TaskLogLine is one line of a task's log output.
type TaskLogLine struct {
	LineNum int    `json:"n"`
	Text    string `json:"t"`
}

// GetTaskStatus fetches the current status of a task by UPID.
func (c *Client) GetTaskStatus(ctx context.Context, node, upid string) (*TaskStatus, error) {
	var status TaskStatus
	path := fmt.Sprintf("nodes/%s/tasks/%s/status", node, url.PathEscape(upid))
	if err := c.get(ctx, path, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetTaskLog fetches the log lines of a task by UPID.
func (c *Client) GetTaskLog(ctx context.Context, node, upid string) ([]TaskLogLine, error) {
	var lines []TaskLogLine
	path := fmt.Sprintf("nodes/%s/tasks/%s/log", node, url.PathEscape(upid))
	if err := c.get(ctx, path, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// ListTasks lists recent tasks on a node, newest first.
func (c *Client) ListTasks(ctx context.Context, node string, limit int) ([]TaskStatus, error) {
	if limit <= 0 {
		limit = 50
	}
	var tasks []TaskStatus
	path := fmt.Sprintf("nodes/%s/tasks?limit=%d", node, limit)
	if err := c.get(ctx, path, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// WaitForTask polls a task until it stops or the timeout elapses. The elapsed
// check runs before each poll, so a timeout of zero fails without querying.
// Errors from individual polls abort the wait; the poll loop does not mask
// upstream failures.
func (c *Client) WaitForTask(ctx context.Context, node, upid string, timeout time.Duration) (*TaskStatus, error) {
	start := time.Now()
	for {
		if time.Since(start) > timeout {
			return nil, timeoutError("task %s did not finish within %s", upid, timeout)
		}

		status, err := c.GetTaskStatus(ctx, node, upid)
		if err != nil {
			return nil, err
		}
		if status.Finished() {
			return status, nil
		}

		select {
		case <-ctx.Done():
			return nil, timeoutError("wait for task %s: %v", upid, ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
}
