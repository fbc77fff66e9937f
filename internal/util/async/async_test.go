package async

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRun_Success(t *testing.T) {
	var count atomic.Int32

	tasks := []Task{
		{Name: "task1", Func: func(_ context.Context) error {
			count.Add(1)
			return nil
		}},
		{Name: "task2", Func: func(_ context.Context) error {
			count.Add(1)
			return nil
		}},
		{Name: "task3", Func: func(_ context.Context) error {
			count.Add(1)
			return nil
		}},
	}

	results := Run(context.Background(), tasks)
	if err := Join(results); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}

	if count.Load() != 3 {
		t.Errorf("expected 3 tasks to run, got %d", count.Load())
	}
}

func TestRun_EmptyTasks(t *testing.T) {
	if results := Run(context.Background(), nil); results != nil {
		t.Errorf("expected nil results for nil tasks, got: %v", results)
	}
	if err := Join(Run(context.Background(), []Task{})); err != nil {
		t.Errorf("expected no error for empty slice, got: %v", err)
	}
}

func TestRun_ResultsInTaskOrder(t *testing.T) {
	tasks := []Task{
		{Name: "slow", Func: func(_ context.Context) error {
			time.Sleep(30 * time.Millisecond)
			return nil
		}},
		{Name: "fast", Func: func(_ context.Context) error {
			return errors.New("fast fail")
		}},
	}

	results := Run(context.Background(), tasks)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "slow" || results[1].Name != "fast" {
		t.Errorf("results out of order: %+v", results)
	}
	if results[0].Err != nil || results[1].Err == nil {
		t.Errorf("unexpected errors: %+v", results)
	}
	if results[0].Elapsed < 30*time.Millisecond {
		t.Errorf("expected elapsed >= 30ms, got %v", results[0].Elapsed)
	}
}

func TestJoin_AllErrors(t *testing.T) {
	err1 := errors.New("error 1")
	err2 := errors.New("error 2")

	tasks := []Task{
		{Name: "fail1", Func: func(_ context.Context) error {
			return err1
		}},
		{Name: "ok", Func: func(_ context.Context) error {
			return nil
		}},
		{Name: "fail2", Func: func(_ context.Context) error {
			return err2
		}},
	}

	err := Join(Run(context.Background(), tasks))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, err1) || !errors.Is(err, err2) {
		t.Errorf("expected both errors to be wrapped, got: %v", err)
	}
	if !strings.Contains(err.Error(), "fail1") || !strings.Contains(err.Error(), "fail2") {
		t.Errorf("error message should name failed tasks, got: %s", err)
	}
	if strings.Contains(err.Error(), "ok:") {
		t.Errorf("successful task should not appear, got: %s", err)
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task{
		{Name: "task", Func: func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(100 * time.Millisecond):
				return nil
			}
		}},
	}

	err := Join(Run(ctx, tasks))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled error, got: %v", err)
	}
}

func TestRun_Concurrent(t *testing.T) {
	var maxConcurrent atomic.Int32
	var current atomic.Int32

	tasks := make([]Task, 5)
	for i := range tasks {
		tasks[i] = Task{
			Name: "task",
			Func: func(_ context.Context) error {
				c := current.Add(1)
				for {
					old := maxConcurrent.Load()
					if c <= old || maxConcurrent.CompareAndSwap(old, c) {
						break
					}
				}
				time.Sleep(50 * time.Millisecond)
				current.Add(-1)
				return nil
			},
		}
	}

	Run(context.Background(), tasks)

	if maxConcurrent.Load() != 5 {
		t.Errorf("expected 5 concurrent tasks, got %d", maxConcurrent.Load())
	}
}
