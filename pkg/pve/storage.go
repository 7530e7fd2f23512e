package pve

import (
	"context"
	"fmt"
	"net/url"
)

// StorageInfo is one entry from a node's storage listing.
type StorageInfo struct {
	Storage string  `json:"storage"`
	Type    string  `json:"type"`
	Content string  `json:"content,omitempty"`
	Active  int     `json:"active,omitempty"`
	Enabled int     `json:"enabled,omitempty"`
	Shared  int     `json:"shared,omitempty"`
	Used    int64   `json:"used,omitempty"`
	Avail   int64   `json:"avail,omitempty"`
	Total   int64   `json:"total,omitempty"`
	UsedPct float64 `json:"used_fraction,omitempty"`
}

// StoragePool is one entry from the cluster-wide storage configuration.
type StoragePool struct {
	Storage string `json:"storage"`
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Nodes   string `json:"nodes,omitempty"`
	Shared  int    `json:"shared,omitempty"`
	Path    string `json:"path,omitempty"`
}

// StorageContent is one volume on a storage.
type StorageContent struct {
	VolID   string `json:"volid"`
	Content string `json:"content,omitempty"`
	Format  string `json:"format,omitempty"`
	Size    int64  `json:"size,omitempty"`
	Used    int64  `json:"used,omitempty"`
	VMID    int    `json:"vmid,omitempty"`
	CTime   int64  `json:"ctime,omitempty"`
}

// ListNodeStorage lists the storages visible on a node, with usage.
func (c *Client) ListNodeStorage(ctx context.Context, node string) ([]StorageInfo, error) {
	var storages []StorageInfo
	if err := c.get(ctx, fmt.Sprintf("nodes/%s/storage", node), &storages); err != nil {
		return nil, err
	}
	return storages, nil
}

// ListStoragePools lists the cluster-wide storage configuration.
func (c *Client) ListStoragePools(ctx context.Context) ([]StoragePool, error) {
	var pools []StoragePool
	if err := c.get(ctx, "storage", &pools); err != nil {
		return nil, err
	}
	return pools, nil
}

// DownloadURL asks a node to download a file from a URL into a storage and
// returns the UPID of the download task. content is "iso" or "vztmpl".
func (c *Client) DownloadURL(ctx context.Context, node, storage, content, filename, fileURL string) (string, error) {
	body := map[string]any{
		"content":  content,
		"filename": filename,
		"url":      fileURL,
	}
	var upid string
	path := fmt.Sprintf("nodes/%s/storage/%s/download-url", node, url.PathEscape(storage))
	if err := c.post(ctx, path, body, &upid); err != nil {
		return "", err
	}
	return upid, nil
}

// ListStorageContent lists volumes on a storage, optionally filtered by
// content type ("iso", "backup", "images", ...).
func (c *Client) ListStorageContent(ctx context.Context, node, storage, content string) ([]StorageContent, error) {
	path := fmt.Sprintf("nodes/%s/storage/%s/content", node, url.PathEscape(storage))
	if content != "" {
		path += "?content=" + url.QueryEscape(content)
	}
	var volumes []StorageContent
	if err := c.get(ctx, path, &volumes); err != nil {
		return nil, err
	}
	return volumes, nil
}
