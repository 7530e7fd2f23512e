package mcp

import (
	"sync"
	"testing"
)

func TestCatalog_EagerStartsFull(t *testing.T) {
	c := NewCatalog(false)
	if !c.Full() {
		t.Error("Full() = false, want true without lazy mode")
	}
	if c.LoadAll() {
		t.Error("LoadAll() = true on an already-full catalog")
	}
	if c.TakeNotification() {
		t.Error("TakeNotification() = true without a transition")
	}
}

func TestCatalog_LazyTransition(t *testing.T) {
	c := NewCatalog(true)
	if c.Full() {
		t.Error("Full() = true, want false in lazy mode")
	}

	if !c.LoadAll() {
		t.Error("LoadAll() = false on first call")
	}
	if !c.Full() {
		t.Error("Full() = false after LoadAll")
	}
	if !c.TakeNotification() {
		t.Error("TakeNotification() = false after transition")
	}
	if c.TakeNotification() {
		t.Error("TakeNotification() = true twice for one transition")
	}
}

func TestCatalog_LoadAllIdempotent(t *testing.T) {
	c := NewCatalog(true)
	c.LoadAll()
	if !c.TakeNotification() {
		t.Fatal("first transition produced no notification")
	}

	// Repeat loads must not re-raise the flag.
	if c.LoadAll() {
		t.Error("LoadAll() = true on second call")
	}
	if c.TakeNotification() {
		t.Error("second LoadAll re-raised the notification flag")
	}
}

func TestCatalog_ConcurrentLoadSingleNotification(t *testing.T) {
	c := NewCatalog(true)

	var wg sync.WaitGroup
	transitions := make(chan bool, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			transitions <- c.LoadAll()
		}()
	}
	wg.Wait()
	close(transitions)

	var count int
	for transitioned := range transitions {
		if transitioned {
			count++
		}
	}
	if count != 1 {
		t.Errorf("observed %d transitions, want exactly 1", count)
	}

	notifications := 0
	for i := 0; i < 32; i++ {
		if c.TakeNotification() {
			notifications++
		}
	}
	if notifications != 1 {
		t.Errorf("observed %d notifications, want exactly 1", notifications)
	}
}
