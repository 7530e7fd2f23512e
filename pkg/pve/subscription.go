package pve

import (
	"context"
	"fmt"
)

// Subscription is a node's subscription state.
type Subscription struct {
	Status      string `json:"status"`
	Key         string `json:"key,omitempty"`
	Level       string `json:"level,omitempty"`
	ProductName string `json:"productname,omitempty"`
	ServerID    string `json:"serverid,omitempty"`
	Sockets     int    `json:"sockets,omitempty"`
	NextDue     string `json:"nextduedate,omitempty"`
	CheckTime   int64  `json:"checktime,omitempty"`
	Message     string `json:"message,omitempty"`
}

// GetSubscription reads a node's subscription state.
func (c *Client) GetSubscription(ctx context.Context, node string) (*Subscription, error) {
	var sub Subscription
	if err := c.get(ctx, fmt.Sprintf("nodes/%s/subscription", node), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// SetSubscription sets a node's subscription key.
func (c *Client) SetSubscription(ctx context.Context, node, key string) error {
	path := fmt.Sprintf("nodes/%s/subscription", node)
	return c.put(ctx, path, map[string]any{"key": key}, nil)
}

// UpdateSubscription forces a re-check of a node's subscription against the
// Proxmox servers.
func (c *Client) UpdateSubscription(ctx context.Context, node string) error {
	return c.post(ctx, fmt.Sprintf("nodes/%s/subscription", node), map[string]any{}, nil)
}
