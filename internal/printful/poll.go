package printful

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Polling defaults. Order costs settle slower than quote estimations,
// so the two workflows carry different budgets.
const (
	DefaultOrderCostTimeout   = 90 * time.Second
	DefaultOrderCostInterval  = 2 * time.Second
	DefaultEstimationTimeout  = 45 * time.Second
	DefaultEstimationInterval = 1500 * time.Millisecond
)

// PollOptions bounds a polling loop. Zero values take the workflow's
// defaults.
type PollOptions struct {
	Timeout  time.Duration
	Interval time.Duration
}

func (o PollOptions) withDefaults(timeout, interval time.Duration) PollOptions {
	if o.Timeout <= 0 {
		o.Timeout = timeout
	}
	if o.Interval <= 0 {
		o.Interval = interval
	}
	return o
}

// pollUntil drives one bounded polling loop. check reports the terminal
// result, or (nil, false, nil) to keep waiting. The loop is cancellable
// through ctx; exceeding the budget yields a TimeoutError carrying the
// attempt count.
func pollUntil(ctx context.Context, opts PollOptions, check func(context.Context) (map[string]any, bool, error)) (map[string]any, error) {
	start := time.Now()
	attempts := 0
	for time.Since(start) < opts.Timeout {
		attempts++
		result, done, err := check(ctx)
		if err != nil {
			return nil, err
		}
		if done {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.Interval):
		}
	}
	return nil, &TimeoutError{Attempts: attempts, Timeout: opts.Timeout}
}

// WaitForOrderCosts polls a draft order until its asynchronous cost
// calculation completes. Success is keyed on costs.calculation_status:
// when costs are calculated the result is accepted even while
// retail_costs still reads processing, because the secondary valuation
// routinely finishes later and checkout must not wait on it. A 404 is
// tolerated and retried since a fresh order may not be visible yet.
func (c *Client) WaitForOrderCosts(ctx context.Context, orderID string, opts PollOptions) (map[string]any, error) {
	opts = opts.withDefaults(DefaultOrderCostTimeout, DefaultOrderCostInterval)
	return pollUntil(ctx, opts, func(ctx context.Context) (map[string]any, bool, error) {
		order, err := c.Order(ctx, orderID)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				return nil, false, nil
			}
			return nil, false, err
		}

		costsStatus := calculationStatus(order, "costs")
		retailStatus := calculationStatus(order, "retail_costs")
		if statusIs(costsStatus, "failed") || statusIs(retailStatus, "failed") {
			return nil, false, &CalculationError{Body: compactJSON(order)}
		}
		if statusIs(costsStatus, "calculated") {
			return order, true, nil
		}
		return nil, false, nil
	})
}

// WaitForEstimation polls an order-estimation task until it completes.
// Unlike cost polling there is no 404 grace: the task id came from the
// create call, so any upstream error aborts immediately.
func (c *Client) WaitForEstimation(ctx context.Context, taskID string, opts PollOptions) (map[string]any, error) {
	opts = opts.withDefaults(DefaultEstimationTimeout, DefaultEstimationInterval)
	return pollUntil(ctx, opts, func(ctx context.Context) (map[string]any, bool, error) {
		task, err := c.EstimationTask(ctx, taskID)
		if err != nil {
			return nil, false, err
		}

		status := taskStatus(task)
		if statusIs(status, "failed") {
			return nil, false, &CalculationError{Body: compactJSON(task)}
		}
		if statusIs(status, "completed") {
			return task, true, nil
		}
		return nil, false, nil
	})
}

// calculationStatus reads the status of one cost block, accepting
// either field spelling the API has used.
func calculationStatus(order map[string]any, block string) string {
	costs, ok := order[block].(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"calculation_status", "status"} {
		if s, ok := stringValue(costs[key]); ok && s != "" {
			return s
		}
	}
	return ""
}

// taskStatus reads an estimation task's status, which has shipped under
// both "status" and "state".
func taskStatus(task map[string]any) string {
	for _, key := range []string{"status", "state"} {
		if s, ok := stringValue(task[key]); ok && s != "" {
			return s
		}
	}
	return ""
}

func statusIs(status, want string) bool {
	return strings.EqualFold(strings.TrimSpace(status), want)
}

func compactJSON(m map[string]any) string {
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}
