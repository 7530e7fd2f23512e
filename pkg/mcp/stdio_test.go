package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

// runScript feeds newline-delimited frames through a stdio server and
// returns the emitted lines.
func runScript(t *testing.T, s *Server, frames ...string) []json.RawMessage {
	t.Helper()

	stdio := NewStdioServer(s)
	var out bytes.Buffer
	stdio.SetIO(strings.NewReader(strings.Join(frames, "\n")+"\n"), &out)

	if err := stdio.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var lines []json.RawMessage
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, json.RawMessage(line))
	}
	return lines
}

type frame struct {
	ID     interface{}     `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  *JSONRPCError   `json:"error"`
}

func decodeFrame(t *testing.T, raw json.RawMessage) frame {
	t.Helper()
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("decode frame %s: %v", raw, err)
	}
	return f
}

func TestStdio_RequestResponseOrder(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)

	lines := runScript(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"t","version":"1"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":"two","method":"ping"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/list"}`,
	)

	// Three requests carried ids; the notification is silent.
	if len(lines) != 3 {
		t.Fatalf("got %d output lines, want 3: %s", len(lines), lines)
	}

	if f := decodeFrame(t, lines[0]); f.ID != float64(1) || f.Error != nil {
		t.Errorf("frame 0 = %+v", f)
	}
	if f := decodeFrame(t, lines[1]); f.ID != "two" || f.Error != nil {
		t.Errorf("frame 1 = %+v", f)
	}
	if f := decodeFrame(t, lines[2]); f.ID != float64(3) || f.Error != nil {
		t.Errorf("frame 2 = %+v", f)
	}
}

func TestStdio_MalformedLineDropped(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)

	lines := runScript(t, s,
		`{not json`,
		``,
		"   \t  ",
		`{"jsonrpc":"1.0","id":9,"method":"ping"}`,
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
	)

	// The garbage line and the wrong-version line produce nothing; blank
	// and whitespace-only lines are skipped.
	if len(lines) != 1 {
		t.Fatalf("got %d output lines, want 1: %s", len(lines), lines)
	}
	if f := decodeFrame(t, lines[0]); f.ID != float64(1) || f.Error != nil {
		t.Errorf("frame = %+v", f)
	}
}

func TestStdio_WhitespaceLineSkippedSilently(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)

	stdio := NewStdioServer(s)
	var logs, out bytes.Buffer
	stdio.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	stdio.SetIO(strings.NewReader("   \t  \n{\"jsonrpc\":\"2.0\",\"id\":1,\"method\":\"ping\"}\n"), &out)

	if err := stdio.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(logs.String(), "malformed") {
		t.Errorf("whitespace-only line reported as malformed:\n%s", logs.String())
	}
	outLines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(outLines) != 1 || outLines[0] == "" {
		t.Errorf("output = %q, want exactly one response line", out.String())
	}
}

func TestStdio_ErrorsStillRespond(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)

	lines := runScript(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"no/such/method"}`,
	)
	if len(lines) != 1 {
		t.Fatalf("got %d output lines, want 1", len(lines))
	}
	f := decodeFrame(t, lines[0])
	if f.ID != float64(1) || f.Error == nil || f.Error.Code != ErrCodeInternalError {
		t.Errorf("frame = %+v", f)
	}
}

func TestStdio_LazyLoadNotificationInterleave(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), true)

	lines := runScript(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"load_all_tools"}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"load_all_tools"}}`,
	)

	// Response to id 1, then the out-of-band list_changed, then the
	// response to id 2 with no second notification.
	if len(lines) != 3 {
		t.Fatalf("got %d output lines, want 3: %s", len(lines), lines)
	}

	if f := decodeFrame(t, lines[0]); f.ID != float64(1) {
		t.Errorf("frame 0 = %+v", f)
	}
	if f := decodeFrame(t, lines[1]); f.Method != "notifications/tools/list_changed" || f.ID != nil {
		t.Errorf("frame 1 = %s", lines[1])
	}
	if f := decodeFrame(t, lines[2]); f.ID != float64(2) {
		t.Errorf("frame 2 = %+v", f)
	}
}

func TestStdio_NotificationNeverResponds(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)

	// A notification for an unknown method fails internally but must not
	// produce output.
	lines := runScript(t, s,
		`{"jsonrpc":"2.0","method":"no/such/method"}`,
	)
	if len(lines) != 0 {
		t.Fatalf("got %d output lines, want 0: %s", len(lines), lines)
	}
}

func TestStdio_LargeMessage(t *testing.T) {
	s := newTestServer(t, pveData(t, 200, nil), false)

	// A frame well past the default scanner buffer must still parse.
	big := strings.Repeat("x", 128*1024)
	req := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_node_status","arguments":{"node":"pve1","pad":"%s"}}}`, big)

	lines := runScript(t, s, req)
	if len(lines) != 1 {
		t.Fatalf("got %d output lines, want 1", len(lines))
	}
	if f := decodeFrame(t, lines[0]); f.ID != float64(1) || f.Error != nil {
		t.Errorf("frame = %+v", f)
	}
}
