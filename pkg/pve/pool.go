package pve

import (
	"context"
	"net/url"
)

// Pool is one entry from the pools listing.
type Pool struct {
	PoolID  string `json:"poolid"`
	Comment string `json:"comment,omitempty"`
}

// PoolMember is one resource assigned to a pool.
type PoolMember struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Node    string `json:"node,omitempty"`
	VMID    int    `json:"vmid,omitempty"`
	Storage string `json:"storage,omitempty"`
}

// PoolDetails is the full view of a single pool.
type PoolDetails struct {
	Comment string       `json:"comment,omitempty"`
	Members []PoolMember `json:"members,omitempty"`
}

// ListPools lists all resource pools.
func (c *Client) ListPools(ctx context.Context) ([]Pool, error) {
	var pools []Pool
	if err := c.get(ctx, "pools", &pools); err != nil {
		return nil, err
	}
	return pools, nil
}

// GetPool fetches a pool's comment and members.
func (c *Client) GetPool(ctx context.Context, poolid string) (*PoolDetails, error) {
	var details PoolDetails
	if err := c.get(ctx, "pools/"+url.PathEscape(poolid), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// CreatePool creates a resource pool.
func (c *Client) CreatePool(ctx context.Context, poolid, comment string) error {
	body := map[string]any{"poolid": poolid}
	if comment != "" {
		body["comment"] = comment
	}
	return c.post(ctx, "pools", body, nil)
}

// UpdatePool changes a pool's comment or membership. vms and storage are
// comma-separated lists; remove detaches them instead of attaching.
func (c *Client) UpdatePool(ctx context.Context, poolid, comment, vms, storage string, remove bool) error {
	body := map[string]any{}
	if comment != "" {
		body["comment"] = comment
	}
	if vms != "" {
		body["vms"] = vms
	}
	if storage != "" {
		body["storage"] = storage
	}
	if remove {
		body["delete"] = 1
	}
	return c.put(ctx, "pools/"+url.PathEscape(poolid), body, nil)
}

// DeletePool removes an empty resource pool.
func (c *Client) DeletePool(ctx context.Context, poolid string) error {
	return c.del(ctx, "pools/"+url.PathEscape(poolid), nil)
}
