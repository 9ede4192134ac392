package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/PiruU/web-import-export/internal/domain"
	"github.com/go-resty/resty/v2"
)

// ErrUpstream classifies forwarding failures: the target was unreachable or
// answered outside 2xx.
var ErrUpstream = errors.New("upstream failure")

// Timeout bounds for one forwarding call. Requests outside the range clamp.
const (
	MinTimeout = 1 * time.Second
	MaxTimeout = 120 * time.Second
)

// Forwarder posts an export document to a remote target and reports the
// target's status code.
type Forwarder interface {
	Forward(ctx context.Context, targetURL string, timeout time.Duration, doc domain.ExportDocument) (int, error)
}

type restyForwarder struct {
	logger *log.Logger
}

// NewForwarder returns a resty-backed Forwarder.
func NewForwarder(logger *log.Logger) Forwarder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &restyForwarder{logger: logger}
}

func (f *restyForwarder) Forward(ctx context.Context, targetURL string, timeout time.Duration, doc domain.ExportDocument) (int, error) {
	client := resty.New().SetTimeout(ClampTimeout(timeout))

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc).
		Post(targetURL)
	if err != nil {
		f.logger.Printf("forwarder: post target=%s error=%v", targetURL, err)
		return 0, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp.StatusCode()/100 != 2 {
		f.logger.Printf("forwarder: target=%s status=%d", targetURL, resp.StatusCode())
		return resp.StatusCode(), fmt.Errorf("%w: target status %d: %s", ErrUpstream, resp.StatusCode(), truncate(resp.String(), 500))
	}

	f.logger.Printf("forwarder: sent target=%s status=%d customers=%d purchases=%d",
		targetURL, resp.StatusCode(), len(doc.Customers), doc.PurchaseCount())
	return resp.StatusCode(), nil
}

// ClampTimeout bounds a requested timeout to [MinTimeout, MaxTimeout].
func ClampTimeout(d time.Duration) time.Duration {
	if d < MinTimeout {
		return MinTimeout
	}
	if d > MaxTimeout {
		return MaxTimeout
	}
	return d
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
