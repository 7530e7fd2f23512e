package pve

import (
	"context"
	"net/url"
)

// User is one entry from the access/users listing.
type User struct {
	UserID  string `json:"userid"`
	Comment string `json:"comment,omitempty"`
	Email   string `json:"email,omitempty"`
	Enable  int    `json:"enable,omitempty"`
	Expire  int64  `json:"expire,omitempty"`
	Groups  string `json:"groups,omitempty"`
}

// Role is one entry from the access/roles listing.
type Role struct {
	RoleID  string `json:"roleid"`
	Privs   string `json:"privs,omitempty"`
	Special int    `json:"special,omitempty"`
}

// ACLEntry is one entry from the access/acl listing.
type ACLEntry struct {
	Path      string `json:"path"`
	RoleID    string `json:"roleid"`
	Type      string `json:"type"`
	UGID      string `json:"ugid"`
	Propagate int    `json:"propagate,omitempty"`
}

// ListUsers lists all users known to the cluster.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "access/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListRoles lists all roles, built-in and custom.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.get(ctx, "access/roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// ListACL lists the access control list.
func (c *Client) ListACL(ctx context.Context) ([]ACLEntry, error) {
	var acl []ACLEntry
	if err := c.get(ctx, "access/acl", &acl); err != nil {
		return nil, err
	}
	return acl, nil
}

// CreateUser creates a user. userid is in user@realm form; the extra map may
// carry password, comment, email, or groups.
func (c *Client) CreateUser(ctx context.Context, userid string, extra map[string]any) error {
	body := map[string]any{"userid": userid}
	for k, v := range extra {
		body[k] = v
	}
	return c.post(ctx, "access/users", body, nil)
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, userid string) error {
	return c.del(ctx, "access/users/"+url.PathEscape(userid), nil)
}

// CreateRole creates a custom role with the given privilege list.
func (c *Client) CreateRole(ctx context.Context, roleid, privs string) error {
	return c.post(ctx, "access/roles", map[string]any{"roleid": roleid, "privs": privs}, nil)
}

// UpdateACL grants or revokes a role on a path for users or groups. ugid is
// a comma-separated user or group list; remove revokes instead of granting.
func (c *Client) UpdateACL(ctx context.Context, path, roleid, users, groups string, propagate, remove bool) error {
	body := map[string]any{"path": path, "roles": roleid}
	if users != "" {
		body["users"] = users
	}
	if groups != "" {
		body["groups"] = groups
	}
	if propagate {
		body["propagate"] = 1
	}
	if remove {
		body["delete"] = 1
	}
	return c.put(ctx, "access/acl", body, nil)
}
