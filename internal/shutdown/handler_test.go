package shutdown

import (
	"testing"
	"time"
)

func TestShutdownCancelsContext(t *testing.T) {
	h := New()
	h.Shutdown()

	select {
	case <-h.Context().Done():
	case <-time.After(time.Second):
		t.Error("context not cancelled after Shutdown")
	}
}

func TestShutdownRunsCleanupsInOrder(t *testing.T) {
	h := New()
	var order []int
	h.AddCleanup(func() { order = append(order, 1) })
	h.AddCleanup(func() { order = append(order, 2) })

	h.Shutdown()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("cleanups ran as %v, want [1 2]", order)
	}
}

func TestCleanupRegisteredFromAnotherGoroutine(t *testing.T) {
	h := New()
	ran := false
	registered := make(chan struct{})
	go func() {
		h.AddCleanup(func() { ran = true })
		close(registered)
	}()
	<-registered

	h.Shutdown()

	if !ran {
		t.Error("cleanup registered on another goroutine did not run")
	}
}
