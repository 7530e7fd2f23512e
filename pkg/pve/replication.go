package pve

import (
	"context"
	"fmt"
	"net/url"
)

// ReplicationJob is one entry from the cluster replication job listing.
type ReplicationJob struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Guest    int     `json:"guest,omitempty"`
	Target   string  `json:"target"`
	Schedule string  `json:"schedule,omitempty"`
	Rate     float64 `json:"rate,omitempty"`
	Comment  string  `json:"comment,omitempty"`
	Disable  int     `json:"disable,omitempty"`
}

// ReplicationJobOptions carries the optional settings for a new replication
// job. Enabled is tri-state: nil leaves the API default in place.
type ReplicationJobOptions struct {
	Schedule string
	Rate     float64
	Comment  string
	Enabled  *bool
}

// ListReplicationJobs lists the cluster's replication jobs.
func (c *Client) ListReplicationJobs(ctx context.Context) ([]ReplicationJob, error) {
	var jobs []ReplicationJob
	if err := c.get(ctx, "cluster/replication", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CreateReplicationJob creates a local replication job. id uses the Proxmox
// "<guest>-<n>" form, target is the destination node.
func (c *Client) CreateReplicationJob(ctx context.Context, id, target string, opts ReplicationJobOptions) error {
	body := map[string]any{
		"id":     id,
		"target": target,
		"type":   "local",
	}
	if opts.Schedule != "" {
		body["schedule"] = opts.Schedule
	}
	if opts.Rate > 0 {
		body["rate"] = opts.Rate
	}
	if opts.Comment != "" {
		body["comment"] = opts.Comment
	}
	if opts.Enabled != nil {
		if *opts.Enabled {
			body["disable"] = 0
		} else {
			body["disable"] = 1
		}
	}
	return c.post(ctx, "cluster/replication", body, nil)
}

// UpdateReplicationJob applies configuration changes to a replication job.
func (c *Client) UpdateReplicationJob(ctx context.Context, id string, changes map[string]any) error {
	path := fmt.Sprintf("cluster/replication/%s", url.PathEscape(id))
	return c.put(ctx, path, changes, nil)
}

// DeleteReplicationJob removes a replication job.
func (c *Client) DeleteReplicationJob(ctx context.Context, id string) error {
	path := fmt.Sprintf("cluster/replication/%s", url.PathEscape(id))
	return c.del(ctx, path, nil)
}
