package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubRefresher struct {
	calls atomic.Int32
	n     int
	err   error
	block chan struct{}
}

func (r *stubRefresher) RefreshUtilization(ctx context.Context) (int, error) {
	r.calls.Add(1)
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
		}
	}
	return r.n, r.err
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	if _, err := NewScheduler("every now and then", &stubRefresher{}, zap.NewNop()); err == nil {
		t.Fatal("invalid cron expression should be rejected")
	}
}

func TestRunOnce_LogsResult(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := &stubRefresher{n: 4}
	s, err := NewScheduler("@every 1h", r, zap.New(core))
	if err != nil {
		t.Fatal(err)
	}

	s.RunOnce()

	if r.calls.Load() != 1 {
		t.Fatalf("期望调用 1 次，实际 %d", r.calls.Load())
	}
	entries := logs.FilterMessage("utilization refreshed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one success log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["rooms_updated"]; got != int64(4) {
		t.Errorf("期望 rooms_updated=4，实际 %v", got)
	}
}

func TestRunOnce_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, err := NewScheduler("@every 1h", &stubRefresher{err: errors.New("mongo down")}, zap.New(core))
	if err != nil {
		t.Fatal(err)
	}

	s.RunOnce()

	if logs.FilterMessage("utilization refresh failed").Len() != 1 {
		t.Error("failure should be logged at error level")
	}
	if logs.FilterMessage("utilization refreshed").Len() != 0 {
		t.Error("no success log after a failure")
	}
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	r := &stubRefresher{block: make(chan struct{})}
	s, err := NewScheduler("@every 1s", r, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	s.Start()
	// the first run blocks for longer than several ticks
	time.Sleep(3500 * time.Millisecond)
	close(r.block)
	<-s.Stop().Done()

	if got := r.calls.Load(); got != 1 {
		t.Errorf("overlapping runs should be skipped, got %d calls", got)
	}
}
