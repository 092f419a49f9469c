package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIP(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name       string
		header     string
		remoteAddr string
		want       string
	}{
		{name: "forwarded_single", header: "203.0.113.1", remoteAddr: "198.51.100.10:1234", want: "203.0.113.1"},
		{name: "forwarded_list_uses_first", header: " 203.0.113.1 , 198.51.100.2 ", remoteAddr: "198.51.100.10:1234", want: "203.0.113.1"},
		{name: "forwarded_invalid_falls_back", header: "invalid", remoteAddr: "198.51.100.10:1234", want: "198.51.100.10"},
		{name: "no_header_uses_remote_host", header: "", remoteAddr: "198.51.100.10:1234", want: "198.51.100.10"},
		{name: "remote_without_port", header: "", remoteAddr: "198.51.100.10", want: "198.51.100.10"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				r.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := clientIP(r); got != tc.want {
				t.Fatalf("clientIP() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	t.Parallel()
	handler := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "203.0.113.7:4444"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		statuses = append(statuses, w.Code)
	}
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("first two statuses = %v, want 200s", statuses[:2])
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("third status = %d, want 429", statuses[2])
	}

	// A different client is unaffected.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.8:4444"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("other client status = %d, want 200", w.Code)
	}
}
