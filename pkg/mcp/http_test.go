package mcp

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestHTTPServer(t *testing.T, lazy bool, authToken string) (*HTTPServer, *httptest.Server) {
	t.Helper()
	s := newTestServer(t, pveData(t, 200, nil), lazy)

	cfg := DefaultConfig()
	cfg.Transport = TransportHTTP
	cfg.HTTPAuthToken = authToken
	h := NewHTTPServer(s, cfg)

	ts := httptest.NewServer(h.Handler())
	t.Cleanup(ts.Close)
	return h, ts
}

func postMCP(t *testing.T, ts *httptest.Server, sessionID, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/mcp", strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("Mcp-Session-Id", sessionID)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHTTP_InitializeCreatesSession(t *testing.T) {
	_, ts := newTestHTTPServer(t, false, "")

	resp := postMCP(t, ts, "", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"t","version":"1"}}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	sessionID := resp.Header.Get("Mcp-Session-Id")
	if sessionID == "" {
		t.Fatal("initialize returned no session ID")
	}

	// The session works for follow-up calls.
	resp2 := postMCP(t, ts, sessionID, `{"jsonrpc":"2.0","id":2,"method":"ping"}`)
	if resp2.StatusCode != http.StatusOK {
		t.Errorf("ping status = %d", resp2.StatusCode)
	}
}

func TestHTTP_UnknownSessionRejected(t *testing.T) {
	_, ts := newTestHTTPServer(t, false, "")

	resp := postMCP(t, ts, "bogus", `{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Error *JSONRPCError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || body.Error.Code != ErrCodeInvalidRequest {
		t.Errorf("error = %+v", body.Error)
	}
}

func TestHTTP_BearerToken(t *testing.T) {
	_, ts := newTestHTTPServer(t, false, "sekrit")

	resp := postMCP(t, ts, "", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/mcp", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`))
	req.Header.Set("Authorization", "Bearer sekrit")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp2.Body.Close() }()
	if resp2.StatusCode != http.StatusOK {
		t.Errorf("status with token = %d", resp2.StatusCode)
	}
}

func TestHTTP_SessionDelete(t *testing.T) {
	h, ts := newTestHTTPServer(t, false, "")

	resp := postMCP(t, ts, "", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	sessionID := resp.Header.Get("Mcp-Session-Id")
	if h.sessions.Count() != 1 {
		t.Fatalf("sessions = %d, want 1", h.sessions.Count())
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/mcp", nil)
	req.Header.Set("Mcp-Session-Id", sessionID)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	defer func() { _ = delResp.Body.Close() }()
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", delResp.StatusCode)
	}
	if h.sessions.Count() != 0 {
		t.Errorf("sessions = %d after delete, want 0", h.sessions.Count())
	}
}

func TestHTTP_NotificationAccepted(t *testing.T) {
	_, ts := newTestHTTPServer(t, false, "")

	resp := postMCP(t, ts, "", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	sessionID := resp.Header.Get("Mcp-Session-Id")

	notif := postMCP(t, ts, sessionID, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	if notif.StatusCode != http.StatusAccepted {
		t.Errorf("notification status = %d, want 202", notif.StatusCode)
	}
}

func TestHTTP_ListChangedBroadcastOverSSE(t *testing.T) {
	_, ts := newTestHTTPServer(t, true, "")

	resp := postMCP(t, ts, "", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	sessionID := resp.Header.Get("Mcp-Session-Id")

	// Open the SSE stream first so the broadcast has somewhere to land.
	sseReq, _ := http.NewRequest(http.MethodGet, ts.URL+"/mcp", nil)
	sseReq.Header.Set("Mcp-Session-Id", sessionID)
	sseResp, err := http.DefaultClient.Do(sseReq)
	if err != nil {
		t.Fatalf("open SSE: %v", err)
	}
	defer func() { _ = sseResp.Body.Close() }()

	events := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(sseResp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "data: ") {
				events <- strings.TrimPrefix(line, "data: ")
				return
			}
		}
	}()

	postMCP(t, ts, sessionID, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"load_all_tools"}}`)

	select {
	case event := <-events:
		if !strings.Contains(event, "notifications/tools/list_changed") {
			t.Errorf("event = %q", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no list_changed event arrived on the SSE stream")
	}
}
