package mcp

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/getproxmoxd/proxmoxd/pkg/pve"
)

func TestResourcesList(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)

	result, rpcErr := s.Dispatch(context.Background(), request(t, "resources/list", nil))
	if rpcErr != nil {
		t.Fatalf("resources/list error = %v", rpcErr)
	}

	list := result.(*ResourcesListResult)
	uris := map[string]bool{}
	for _, def := range list.Resources {
		uris[def.URI] = true
	}
	for _, want := range []string{"proxmox://nodes", "proxmox://vms", "proxmox://cluster/status", "proxmox://storage"} {
		if !uris[want] {
			t.Errorf("missing resource %s", want)
		}
	}
}

func TestResourcesRead_VMs(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, []pve.ClusterResource{
		{Type: "qemu", Node: "pve1", VMID: 100, Name: "web", Status: "running"},
	}), false)

	result, rpcErr := s.Dispatch(context.Background(), request(t, "resources/read", ResourceReadParams{
		URI: "proxmox://vms",
	}))
	if rpcErr != nil {
		t.Fatalf("resources/read error = %v", rpcErr)
	}

	read := result.(*ResourceReadResult)
	if len(read.Contents) != 1 {
		t.Fatalf("contents = %+v", read.Contents)
	}
	content := read.Contents[0]
	if content.URI != "proxmox://vms" || content.MimeType != "application/json" {
		t.Errorf("content = %+v", content)
	}
	if !strings.Contains(content.Text, "web") {
		t.Errorf("text = %q", content.Text)
	}
}

func TestResourcesRead_UnknownURI(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)

	_, rpcErr := s.Dispatch(context.Background(), request(t, "resources/read", ResourceReadParams{
		URI: "proxmox://nope",
	}))
	if rpcErr == nil || rpcErr.Code != ErrCodeNotFound {
		t.Errorf("error = %v, want not-found code", rpcErr)
	}
	if !strings.Contains(rpcErr.Message, "proxmox://nope") {
		t.Errorf("message = %q", rpcErr.Message)
	}
}

func TestResourcesRead_UpstreamFailure(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, false)

	_, rpcErr := s.Dispatch(context.Background(), request(t, "resources/read", ResourceReadParams{
		URI: "proxmox://nodes",
	}))
	if rpcErr == nil || rpcErr.Code != ErrCodeAuth {
		t.Errorf("error = %v, want auth code", rpcErr)
	}
}
