package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OrderKind identifies which executor endpoint suffix a dispatch targets.
type OrderKind int

const (
	OrderAddition OrderKind = iota
	OrderRestart
	OrderReconfigure
)

// endpointSuffix maps an OrderKind to the executor's route suffix, per
// spec.md §4.5.
func (k OrderKind) endpointSuffix() string {
	switch k {
	case OrderAddition:
		return "/addition"
	case OrderRestart:
		return "/restart"
	case OrderReconfigure:
		return "/reconfig/http"
	default:
		panic(fmt.Sprintf("planner: unknown order kind %v", k))
	}
}

func (k OrderKind) String() string {
	switch k {
	case OrderAddition:
		return "addition"
	case OrderRestart:
		return "restart"
	case OrderReconfigure:
		return "reconfigure"
	default:
		return "unknown"
	}
}

// DispatchFailedError wraps a transport-level error or non-2xx response
// from the executor, per spec.md §4.5/§7.
type DispatchFailedError struct {
	Kind  OrderKind
	Cause error
}

func (e *DispatchFailedError) Error() string {
	return fmt.Sprintf("dispatch %s order failed: %v", e.Kind, e.Cause)
}

func (e *DispatchFailedError) Unwrap() error { return e.Cause }

// Dispatcher posts JSON-serialized orders to the executor's per-kind
// endpoint. Grounded on keda's outbound HTTP call convention
// (pkg/scalers/github_runner_scaler.go's http.NewRequestWithContext +
// *http.Client), and on original_source/bran/src/planner/make_request.rs's
// per-order-kind ENDPOINT suffix table.
type Dispatcher struct {
	baseURL string
	client  *http.Client
}

// NewDispatcher returns a Dispatcher posting to baseURL through client; a
// nil client is replaced by one with a 30-second timeout. No per-cycle
// deadline is enforced beyond the client's own timeout.
func NewDispatcher(baseURL string, client *http.Client) *Dispatcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Dispatcher{baseURL: baseURL, client: client}
}

// Dispatch POSTs order (JSON-marshaled) to <baseURL><kind's suffix>. Any
// transport-level error or non-2xx response is returned as a
// *DispatchFailedError.
func (d *Dispatcher) Dispatch(ctx context.Context, kind OrderKind, order any) error {
	body, err := json.Marshal(order)
	if err != nil {
		return &DispatchFailedError{Kind: kind, Cause: fmt.Errorf("marshal order: %w", err)}
	}

	url := d.baseURL + kind.endpointSuffix()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &DispatchFailedError{Kind: kind, Cause: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return &DispatchFailedError{Kind: kind, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &DispatchFailedError{Kind: kind, Cause: fmt.Errorf("executor responded %s", resp.Status)}
	}
	return nil
}
