package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testUA = "league-results-test/1.0"

func TestFetch(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		statusCode  int
		wantErrType string
	}{
		{
			name:       "successful fetch",
			body:       "<html><body><table></table></body></html>",
			statusCode: http.StatusOK,
		},
		{
			name:        "not found",
			statusCode:  http.StatusNotFound,
			wantErrType: "not_found",
		},
		{
			name:        "forbidden",
			statusCode:  http.StatusForbidden,
			wantErrType: "forbidden",
		},
		{
			name:        "rate limited",
			statusCode:  http.StatusTooManyRequests,
			wantErrType: "rate_limited",
		},
		{
			name:        "server error",
			statusCode:  http.StatusInternalServerError,
			wantErrType: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ua := r.Header.Get("User-Agent"); ua != testUA {
					t.Errorf("User-Agent = %q, want %q", ua, testUA)
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			f := New(5*time.Second, testUA)
			body, err := f.Fetch(context.Background(), server.URL)

			if tt.wantErrType != "" {
				if err == nil {
					t.Fatal("Fetch() expected error, got nil")
				}
				if got := ErrorType(err); got != tt.wantErrType {
					t.Errorf("ErrorType() = %q, want %q (err: %v)", got, tt.wantErrType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if string(body) != tt.body {
				t.Errorf("Fetch() body = %q, want %q", body, tt.body)
			}
		})
	}
}

func TestFetch_TransportErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantErrType string
	}{
		{
			name:        "connection refused",
			err:         errors.New("connection refused"),
			wantErrType: "connection",
		},
		{
			name:        "dns timeout",
			err:         &net.DNSError{Err: "i/o timeout", Name: "results.example.org", IsTimeout: true},
			wantErrType: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := httpmock.NewMockTransport()
			transport.RegisterResponder(http.MethodGet, "https://results.example.org/week3.html",
				httpmock.NewErrorResponder(tt.err))

			metrics := NewMetrics()
			f := New(time.Second, testUA, WithTransport(transport), WithMetrics(metrics))

			_, err := f.Fetch(context.Background(), "https://results.example.org/week3.html")
			if err == nil {
				t.Fatal("Fetch() expected error, got nil")
			}
			if got := ErrorType(err); got != tt.wantErrType {
				t.Errorf("ErrorType() = %q, want %q (err: %v)", got, tt.wantErrType, err)
			}
			if got := testutil.ToFloat64(metrics.ErrorsTotal.WithLabelValues(tt.wantErrType)); got != 1 {
				t.Errorf("errors_total{%s} = %v, want 1", tt.wantErrType, got)
			}
		})
	}
}

func TestFetch_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(5*time.Second, testUA).Fetch(ctx, server.URL)

	var timeout ErrTimeout
	if !errors.As(err, &timeout) {
		t.Errorf("Fetch() error = %v, want ErrTimeout", err)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := New(time.Second, testUA).Fetch(context.Background(), "http://[::1")
	if err == nil {
		t.Fatal("Fetch() expected error for invalid URL")
	}
	if !strings.Contains(err.Error(), "creating request") {
		t.Errorf("Fetch() error = %v, want request creation error", err)
	}
}

func TestMetrics_Snapshot(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodGet, "https://results.example.org/ok.html",
		httpmock.NewStringResponder(http.StatusOK, "<html></html>"))
	transport.RegisterResponder(http.MethodGet, "https://results.example.org/gone.html",
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	metrics := NewMetrics()
	f := New(time.Second, testUA, WithTransport(transport), WithMetrics(metrics))

	ctx := context.Background()
	f.Fetch(ctx, "https://results.example.org/ok.html")
	f.Fetch(ctx, "https://results.example.org/gone.html")
	f.Fetch(ctx, "https://results.example.org/gone.html")

	requests, errorsByType := metrics.Snapshot()
	if requests != 3 {
		t.Errorf("requests = %d, want 3", requests)
	}
	if errorsByType["not_found"] != 2 {
		t.Errorf("errors[not_found] = %d, want 2", errorsByType["not_found"])
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.IncRequest()
	m.IncError("timeout")
	m.ObserveDuration(time.Second)

	requests, errorsByType := m.Snapshot()
	if requests != 0 || len(errorsByType) != 0 {
		t.Errorf("nil Snapshot() = (%d, %v), want zero", requests, errorsByType)
	}
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "unknown"},
		{ErrTimeout{Err: errors.New("x")}, "timeout"},
		{ErrConnection{Err: errors.New("x")}, "connection"},
		{ErrStatus{Code: 502}, "status"},
		{errors.New("plain"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ErrorType(tt.err); got != tt.want {
				t.Errorf("ErrorType(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
