package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/getproxmoxd/proxmoxd/pkg/pve"
)

// --- Helpers ---

// newTestServer creates a Server whose upstream client points at a test
// Proxmox API.
func newTestServer(t *testing.T, handler http.HandlerFunc, lazy bool) *Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parse test server URL: %v", err)
	}
	port, _ := strconv.Atoi(u.Port())

	client, err := pve.NewClient("http://"+u.Hostname(), port,
		pve.WithAPIToken("root@pam", "mcp", "secret"))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	cfg := DefaultConfig()
	cfg.Lazy = lazy
	return NewServer(client, cfg)
}

func pveData(t *testing.T, statusCode int, data any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(map[string]any{"data": data}); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}
}

func request(t *testing.T, method string, params any) *JSONRPCRequest {
	t.Helper()
	req := &JSONRPCRequest{JSONRPC: "2.0", ID: float64(1), Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			t.Fatalf("marshal params: %v", err)
		}
		req.Params = raw
	}
	return req
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) (interface{}, *JSONRPCError) {
	t.Helper()
	return s.Dispatch(context.Background(), request(t, "tools/call", map[string]any{
		"name":      name,
		"arguments": args,
	}))
}

func toolText(t *testing.T, result interface{}) string {
	t.Helper()
	tr, ok := result.(*ToolResult)
	if !ok {
		t.Fatalf("result is %T, want *ToolResult", result)
	}
	if len(tr.Content) != 1 || tr.Content[0].Type != "text" {
		t.Fatalf("content = %+v", tr.Content)
	}
	return tr.Content[0].Text
}

// --- Lifecycle ---

func TestDispatch_Initialize(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)

	result, rpcErr := s.Dispatch(context.Background(), request(t, "initialize", InitializeParams{
		ProtocolVersion: "2024-11-05",
		ClientInfo:      ClientInfo{Name: "test", Version: "1.0"},
	}))
	if rpcErr != nil {
		t.Fatalf("initialize error = %v", rpcErr)
	}

	init, ok := result.(*InitializeResult)
	if !ok {
		t.Fatalf("result is %T", result)
	}
	if init.ProtocolVersion != ProtocolVersion {
		t.Errorf("protocolVersion = %q", init.ProtocolVersion)
	}
	if init.ServerInfo.Name != "proxmoxd" {
		t.Errorf("serverInfo.name = %q", init.ServerInfo.Name)
	}
	if init.Capabilities.Tools == nil || !init.Capabilities.Tools.ListChanged {
		t.Error("tools capability should advertise listChanged")
	}
}

func TestDispatch_Ping(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)
	result, rpcErr := s.Dispatch(context.Background(), request(t, "ping", nil))
	if rpcErr != nil {
		t.Fatalf("ping error = %v", rpcErr)
	}
	if m, ok := result.(map[string]interface{}); !ok || len(m) != 0 {
		t.Errorf("ping result = %#v, want empty object", result)
	}
}

func TestDispatch_InitializedNotification(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)
	result, rpcErr := s.Dispatch(context.Background(), request(t, "notifications/initialized", nil))
	if rpcErr != nil || result != nil {
		t.Errorf("result = %v, err = %v; want nil, nil", result, rpcErr)
	}
}

func TestDispatch_MethodNotFound(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)
	_, rpcErr := s.Dispatch(context.Background(), request(t, "prompts/list", nil))
	if rpcErr == nil || rpcErr.Code != ErrCodeInternalError {
		t.Errorf("error = %v, want internal error", rpcErr)
	}
	if rpcErr != nil && !strings.Contains(rpcErr.Message, "prompts/list") {
		t.Errorf("message %q does not name the method", rpcErr.Message)
	}
}

// --- Tool catalog ---

func TestToolsList_FullByDefault(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)
	result, rpcErr := s.Dispatch(context.Background(), request(t, "tools/list", nil))
	if rpcErr != nil {
		t.Fatalf("tools/list error = %v", rpcErr)
	}

	list := result.(*ToolsListResult)
	if len(list.Tools) < 50 {
		t.Errorf("full catalog has %d tools, want >= 50", len(list.Tools))
	}
}

func TestToolsList_LazyFlow(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), true)

	names := func() map[string]bool {
		result, rpcErr := s.Dispatch(context.Background(), request(t, "tools/list", nil))
		if rpcErr != nil {
			t.Fatalf("tools/list error = %v", rpcErr)
		}
		set := map[string]bool{}
		for _, def := range result.(*ToolsListResult).Tools {
			set[def.Name] = true
		}
		return set
	}

	minimal := names()
	if !minimal["load_all_tools"] || !minimal["list_nodes"] || !minimal["get_cluster_status"] {
		t.Errorf("minimal catalog = %v", minimal)
	}
	if minimal["list_vms"] {
		t.Error("minimal catalog should not contain list_vms")
	}

	result, rpcErr := callTool(t, s, "load_all_tools", nil)
	if rpcErr != nil {
		t.Fatalf("load_all_tools error = %v", rpcErr)
	}
	if !strings.Contains(toolText(t, result), "loaded") {
		t.Errorf("load_all_tools result = %q", toolText(t, result))
	}
	if !s.Catalog().TakeNotification() {
		t.Error("no pending notification after load_all_tools")
	}

	full := names()
	if !full["list_vms"] {
		t.Error("full catalog missing list_vms")
	}

	// Second load: success, but no second notification.
	if _, rpcErr := callTool(t, s, "load_all_tools", nil); rpcErr != nil {
		t.Fatalf("second load_all_tools error = %v", rpcErr)
	}
	if s.Catalog().TakeNotification() {
		t.Error("second load_all_tools re-raised the notification")
	}
}

// --- Tool calls ---

func TestToolsCall_ListNodes(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, []pve.NodeInfo{
		{Node: "pve1", Status: "online"},
	}), false)

	result, rpcErr := callTool(t, s, "list_nodes", nil)
	if rpcErr != nil {
		t.Fatalf("list_nodes error = %v", rpcErr)
	}
	if !strings.Contains(toolText(t, result), "pve1") {
		t.Errorf("result text = %q", toolText(t, result))
	}
}

func TestToolsCall_StartVM(t *testing.T) {
	var gotPath string
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		pveData(t, 200, "UPID:pve1:0001:qmstart:100")(w, r)
	}, false)

	result, rpcErr := callTool(t, s, "start_vm", map[string]any{"node": "pve1", "vmid": 100})
	if rpcErr != nil {
		t.Fatalf("start_vm error = %v", rpcErr)
	}
	if got := toolText(t, result); got != "Action 'start' initiated. UPID: UPID:pve1:0001:qmstart:100" {
		t.Errorf("result = %q", got)
	}
	if gotPath != "/api2/json/nodes/pve1/qemu/100/status/start" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestToolsCall_ContainerForcesLXC(t *testing.T) {
	var gotPath string
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		pveData(t, 200, "UPID:x")(w, r)
	}, false)

	if _, rpcErr := callTool(t, s, "stop_container", map[string]any{"node": "pve1", "vmid": 200}); rpcErr != nil {
		t.Fatalf("stop_container error = %v", rpcErr)
	}
	if gotPath != "/api2/json/nodes/pve1/lxc/200/status/stop" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestToolsCall_ResetResolvesLocation(t *testing.T) {
	var paths []string
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if strings.Contains(r.URL.Path, "cluster/resources") {
			pveData(t, 200, []pve.ClusterResource{
				{Type: "qemu", Node: "pve2", VMID: 100, Status: "running"},
			})(w, r)
			return
		}
		pveData(t, 200, "UPID:pve2:0001:qmreset:100")(w, r)
	}, false)

	result, rpcErr := callTool(t, s, "reset_vm", map[string]any{"vm_id": "100"})
	if rpcErr != nil {
		t.Fatalf("reset_vm error = %v", rpcErr)
	}
	if !strings.Contains(toolText(t, result), "Reset initiated") {
		t.Errorf("result = %q", toolText(t, result))
	}
	if len(paths) != 2 || !strings.HasSuffix(paths[1], "/nodes/pve2/qemu/100/status/reset") {
		t.Errorf("paths = %v", paths)
	}
}

func TestToolsCall_ResetRejectsWrongType(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, []pve.ClusterResource{
		{Type: "lxc", Node: "pve1", VMID: 200},
	}), false)

	_, rpcErr := callTool(t, s, "reset_vm", map[string]any{"vm_id": "200"})
	if rpcErr == nil || rpcErr.Code != ErrCodeInternalError {
		t.Errorf("error = %v, want internal error", rpcErr)
	}
}

func TestToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)
	_, rpcErr := callTool(t, s, "explode_cluster", nil)
	if rpcErr == nil || rpcErr.Code != ErrCodeInternalError {
		t.Fatalf("error = %v", rpcErr)
	}
	if !strings.Contains(rpcErr.Message, "explode_cluster") {
		t.Errorf("message %q does not name the tool", rpcErr.Message)
	}
}

func TestToolsCall_MissingArgument(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)
	_, rpcErr := callTool(t, s, "start_vm", map[string]any{"vmid": 100})
	if rpcErr == nil || rpcErr.Code != ErrCodeInternalError {
		t.Fatalf("error = %v", rpcErr)
	}
	if !strings.Contains(rpcErr.Message, "Missing node") {
		t.Errorf("message = %q", rpcErr.Message)
	}
}

func TestToolsCall_ListTemplatesReadsStorageContent(t *testing.T) {
	var gotPath, gotQuery string
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		pveData(t, 200, []pve.StorageContent{{VolID: "local:vztmpl/debian-12.tar.zst"}})(w, r)
	}, false)

	_, rpcErr := callTool(t, s, "list_templates", map[string]any{"node": "pve1"})
	if rpcErr != nil {
		t.Fatalf("error = %v", rpcErr)
	}
	if gotPath != "/api2/json/nodes/pve1/storage/local/content" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "content=vztmpl" {
		t.Errorf("query = %q", gotQuery)
	}

	_, rpcErr = callTool(t, s, "list_templates", nil)
	if rpcErr == nil || !strings.Contains(rpcErr.Message, "Missing node") {
		t.Errorf("error without node = %v, want missing node", rpcErr)
	}
}

func TestToolsCall_ListGuestTemplates(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, []pve.ClusterResource{
		{Type: "qemu", Node: "pve1", VMID: 900, Name: "debian-tpl", Template: 1},
		{Type: "qemu", Node: "pve1", VMID: 100, Name: "web"},
	}), false)

	result, rpcErr := callTool(t, s, "list_guest_templates", nil)
	if rpcErr != nil {
		t.Fatalf("error = %v", rpcErr)
	}
	text := toolText(t, result)
	if !strings.Contains(text, "debian-tpl") || strings.Contains(text, "\"web\"") {
		t.Errorf("result = %q", text)
	}
}

func TestToolsCall_CloneOmitsFullByDefault(t *testing.T) {
	var gotBody map[string]any
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		pveData(t, 200, "UPID:pve1:0002:clone:100")(w, r)
	}, false)

	result, rpcErr := callTool(t, s, "clone_vm", map[string]any{
		"node": "pve1", "vmid": 100, "newid": 101,
	})
	if rpcErr != nil {
		t.Fatalf("error = %v", rpcErr)
	}
	if _, ok := gotBody["full"]; ok {
		t.Errorf("full should be omitted when not requested, body = %v", gotBody)
	}
	if !strings.Contains(toolText(t, result), "UPID:") {
		t.Error("result should carry the task UPID")
	}

	_, rpcErr = callTool(t, s, "clone_vm", map[string]any{
		"node": "pve1", "vmid": 100, "newid": 102, "full": false,
	})
	if rpcErr != nil {
		t.Fatalf("error = %v", rpcErr)
	}
	if gotBody["full"] != float64(0) {
		t.Errorf("full = %v, want 0 for explicit linked clone", gotBody["full"])
	}
}

func TestToolsCall_AddFirewallRuleGuestScope(t *testing.T) {
	var paths []string
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if strings.Contains(r.URL.Path, "cluster/resources") {
			pveData(t, 200, []pve.ClusterResource{
				{Type: "lxc", Node: "pve2", VMID: 200},
			})(w, r)
			return
		}
		pveData(t, 200, nil)(w, r)
	}, false)

	result, rpcErr := callTool(t, s, "add_firewall_rule", map[string]any{
		"scope": "vm", "vmid": 200,
		"rule": map[string]any{"action": "ACCEPT", "type": "in", "dport": "22"},
	})
	if rpcErr != nil {
		t.Fatalf("add_firewall_rule error = %v", rpcErr)
	}
	if !strings.Contains(toolText(t, result), "added") {
		t.Errorf("result = %q", toolText(t, result))
	}
	if len(paths) != 2 || !strings.HasSuffix(paths[1], "/nodes/pve2/lxc/200/firewall/rules") {
		t.Errorf("paths = %v", paths)
	}

	_, rpcErr = callTool(t, s, "add_firewall_rule", map[string]any{"scope": "cluster"})
	if rpcErr == nil || !strings.Contains(rpcErr.Message, "Missing rule") {
		t.Errorf("error without rule = %v", rpcErr)
	}
}

func TestToolsCall_ReplicationJobLifecycle(t *testing.T) {
	var methods []string
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		pveData(t, 200, nil)(w, r)
	}, false)

	result, rpcErr := callTool(t, s, "create_replication_job", map[string]any{
		"id": "100-0", "target": "pve2", "schedule": "*/15",
	})
	if rpcErr != nil {
		t.Fatalf("create error = %v", rpcErr)
	}
	if !strings.Contains(toolText(t, result), "100-0") {
		t.Errorf("result = %q", toolText(t, result))
	}

	if _, rpcErr = callTool(t, s, "delete_replication_job", map[string]any{"id": "100-0"}); rpcErr != nil {
		t.Fatalf("delete error = %v", rpcErr)
	}
	if len(methods) != 2 || methods[0] != http.MethodPost || methods[1] != http.MethodDelete {
		t.Errorf("methods = %v", methods)
	}
}

func TestToolsCall_GetSubscription(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, pve.Subscription{Status: "active", Level: "c"}), false)

	result, rpcErr := callTool(t, s, "get_subscription", map[string]any{"node": "pve1"})
	if rpcErr != nil {
		t.Fatalf("error = %v", rpcErr)
	}
	if !strings.Contains(toolText(t, result), "active") {
		t.Errorf("result = %q", toolText(t, result))
	}
}

func TestToolsCall_ResizeDiskReportsUPID(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, "UPID:pve1:0003:resize:100"), false)

	result, rpcErr := callTool(t, s, "resize_disk", map[string]any{
		"node": "pve1", "vmid": 100, "disk": "scsi0", "size": "+10G",
	})
	if rpcErr != nil {
		t.Fatalf("error = %v", rpcErr)
	}
	if !strings.Contains(toolText(t, result), "UPID: UPID:pve1:0003:resize:100") {
		t.Errorf("text = %q, want UPID included", toolText(t, result))
	}
}

// --- Error mapping ---

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		upstream   int
		wantCode   int
		wantStatus bool
	}{
		{"401 maps to auth", 401, ErrCodeAuth, false},
		{"403 maps to auth", 403, ErrCodeAuth, false},
		{"404 maps to not found", 404, ErrCodeNotFound, false},
		{"500 maps to internal with data", 500, ErrCodeInternalError, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.upstream)
				if _, err := w.Write([]byte("upstream said no")); err != nil {
					t.Errorf("write response: %v", err)
				}
			}, false)

			_, rpcErr := callTool(t, s, "list_nodes", nil)
			if rpcErr == nil || rpcErr.Code != tt.wantCode {
				t.Fatalf("error = %v, want code %d", rpcErr, tt.wantCode)
			}
			if tt.wantStatus {
				data, ok := rpcErr.Data.(map[string]interface{})
				if !ok || data["status"] != tt.upstream {
					t.Errorf("data = %#v", rpcErr.Data)
				}
			}
		})
	}
}

func TestErrorMapping_NoCredentials(t *testing.T) {
	client, err := pve.NewClient("pve.example.com", 8006)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	s := NewServer(client, nil)

	_, rpcErr := callTool(t, s, "list_nodes", nil)
	if rpcErr == nil || rpcErr.Code != ErrCodeAuth {
		t.Errorf("error = %v, want auth code %d", rpcErr, ErrCodeAuth)
	}
}
