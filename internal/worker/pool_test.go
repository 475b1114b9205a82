package worker

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllTasksBeforeStop(t *testing.T) {
	p := NewPool(3)
	var n atomic.Int32
	for i := 0; i < 50; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Stop()
	if got := n.Load(); got != 50 {
		t.Fatalf("ran %d tasks, want 50", got)
	}
}

func TestPoolSurvivesPanic(t *testing.T) {
	p := NewPool(1)
	var ran atomic.Bool
	p.Submit(func() { panic("boom") })
	p.Submit(func() { ran.Store(true) })
	p.Stop()
	p.Stop()
	if !ran.Load() {
		t.Fatal("task after panic did not run")
	}
}
