package pocketbase

import (
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
)

// loggingTransport logs every outgoing request before handing it on.
type loggingTransport struct {
	next http.RoundTripper
	logf func(format string, v ...any)
}

func newTransport(logf func(format string, v ...any)) *loggingTransport {
	return &loggingTransport{
		next: cleanhttp.DefaultPooledTransport(),
		logf: logf,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logf("HTTP Client [%s] %s", req.Method, req.URL.Redacted())

	return t.next.RoundTrip(req)
}
