package async

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// Result is the outcome of one Task.
type Result struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

// Run executes all tasks in parallel and waits for every one of them.
// Results are returned in task order, regardless of completion order.
//
// Example:
//
//	results := Run(ctx, []Task{
//	    {Name: "webhook", Func: webhook.Send},
//	    {Name: "s3", Func: archive.Send},
//	})
//	if err := Join(results); err != nil {
//	    log.Error(err, "some sinks failed")
//	}
func Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	type indexed struct {
		i   int
		res Result
	}

	resultChan := make(chan indexed, len(tasks))

	for i, task := range tasks {
		go func() {
			start := time.Now()
			err := task.Func(ctx)
			resultChan <- indexed{i: i, res: Result{Name: task.Name, Err: err, Elapsed: time.Since(start)}}
		}()
	}

	results := make([]Result, len(tasks))
	for range len(tasks) {
		r := <-resultChan
		results[r.i] = r.res
	}
	return results
}

// Join combines the failed results into one error, each prefixed with its
// task name. It returns nil when every task succeeded.
func Join(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return errors.Join(errs...)
}
