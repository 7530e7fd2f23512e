package pve

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestWaitForTask_StopsOnTerminalStatus(t *testing.T) {
	var polls atomic.Int32
	_, c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		status := "running"
		if n >= 3 {
			status = "stopped"
		}
		dataHandler(t, 200, TaskStatus{
			UPID:     "UPID:pve1:0001:qmstart:100",
			Node:     "pve1",
			Status:   status,
			ExitCode: "OK",
		})(w, r)
	}, WithPollInterval(time.Millisecond))

	status, err := c.WaitForTask(context.Background(), "pve1", "UPID:pve1:0001:qmstart:100", 5*time.Second)
	if err != nil {
		t.Fatalf("WaitForTask() error = %v", err)
	}
	if !status.Finished() || status.ExitCode != "OK" {
		t.Errorf("status = %+v", status)
	}
	if got := polls.Load(); got != 3 {
		t.Errorf("polls = %d, want 3", got)
	}
}

func TestWaitForTask_Timeout(t *testing.T) {
	_, c := testClient(t, dataHandler(t, 200, TaskStatus{
		UPID:   "UPID:pve1:0002:vzdump:100",
		Status: "running",
	}), WithPollInterval(time.Millisecond))

	_, err := c.WaitForTask(context.Background(), "pve1", "UPID:pve1:0002:vzdump:100", 10*time.Millisecond)
	wantKind(t, err, KindTimeout)
}

func TestWaitForTask_ZeroTimeoutNoPoll(t *testing.T) {
	var polls atomic.Int32
	_, c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		dataHandler(t, 200, TaskStatus{Status: "running"})(w, r)
	})

	_, err := c.WaitForTask(context.Background(), "pve1", "UPID:x", 0)
	wantKind(t, err, KindTimeout)
	if got := polls.Load(); got != 0 {
		t.Errorf("polls = %d, want 0", got)
	}
}

func TestWaitForTask_ContextCancel(t *testing.T) {
	_, c := testClient(t, dataHandler(t, 200, TaskStatus{Status: "running"}),
		WithPollInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := c.WaitForTask(ctx, "pve1", "UPID:x", time.Hour)
	wantKind(t, err, KindTimeout)
	if time.Since(start) > time.Second {
		t.Error("cancel did not interrupt the poll sleep")
	}
}

func TestWaitForTask_PollErrorAborts(t *testing.T) {
	_, c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, WithPollInterval(time.Millisecond))

	_, err := c.WaitForTask(context.Background(), "pve1", "UPID:x", time.Second)
	wantKind(t, err, KindAPI)
}

func TestGetTaskStatus_Path(t *testing.T) {
	var gotPath string
	_, c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		dataHandler(t, 200, TaskStatus{Status: "stopped"})(w, r)
	})

	if _, err := c.GetTaskStatus(context.Background(), "pve1", "UPID:pve1:0001:qmstart:100"); err != nil {
		t.Fatalf("GetTaskStatus() error = %v", err)
	}
	if gotPath != "/api2/json/nodes/pve1/tasks/UPID:pve1:0001:qmstart:100/status" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestListTasks_DefaultLimit(t *testing.T) {
	var gotQuery string
	_, c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		dataHandler(t, 200, []TaskStatus{})(w, r)
	})

	if _, err := c.ListTasks(context.Background(), "pve1", 0); err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if gotQuery != "limit=50" {
		t.Errorf("query = %q", gotQuery)
	}
}
