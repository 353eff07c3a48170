
package crawler

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind tells apart the ways a request can fail on the wire.
type Kind int

const (
	KindRequest Kind = iota
	KindHTTPStatus
	KindConnection
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http error"
	case KindConnection:
		return "error connecting"
	case KindTimeout:
		return "timeout error"
	default:
		return "request error"
	}
}

// TransportError is returned for any network-level failure of a fetch.
type TransportError struct {
	Kind       Kind
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("%s: %s: status %d", e.Kind, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsKind reports whether err is a TransportError of kind k.
func IsKind(err error, k Kind) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Kind == k
}

func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return KindConnection
	}
	return KindRequest
}
