package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/starwars-blog/api/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/user", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "trace-123", seen)

	req = httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", maxRequestIDLen+1))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Len(t, seen, 36)
}

func TestCORSPreflight(t *testing.T) {
	h := CORS([]string{"*"})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/planets", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	h := CORS([]string{"https://holonet.example"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/planets", nil)
	req.Header.Set("Origin", "https://holonet.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "https://holonet.example", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/planets", nil)
	req.Header.Set("Origin", "https://sith.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimitPerIP(t *testing.T) {
	h := RateLimit(1, 2, nil)(okHandler)

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/people", nil)
		req.RemoteAddr = ip + ":5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}

func TestRateLimitDisabled(t *testing.T) {
	h := RateLimit(0, 0, nil)(okHandler)
	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/people", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestVisitorSweep(t *testing.T) {
	vl := &visitorLimiter{rps: 1, burst: 1, visitors: map[string]*limiterEntry{}, lastSweep: time.Now()}
	now := time.Now()
	assert.True(t, vl.allow("10.0.0.9", now))

	later := now.Add(visitorTTL + sweepInterval + time.Second)
	assert.True(t, vl.allow("10.0.0.10", later))
	assert.NotContains(t, vl.visitors, "10.0.0.9")
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	h := RateLimit(1, 1, nil)(okHandler)

	do := func(spoofed string) int {
		req := httptest.NewRequest(http.MethodGet, "/planets", nil)
		req.RemoteAddr = "198.51.100.4:4242"
		req.Header.Set("X-Forwarded-For", spoofed)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("203.0.113.2"))
}

func TestClientIPTrustedProxies(t *testing.T) {
	ips := newClientIP([]string{"10.0.0.0/8", "192.0.2.1", "not-an-ip"})

	cases := []struct {
		name   string
		remote string
		fwd    string
		want   string
	}{
		{"untrusted peer keeps its own address", "198.51.100.4:1000", "203.0.113.7", "198.51.100.4"},
		{"trusted peer forwards the client", "10.1.2.3:1000", "203.0.113.7", "203.0.113.7"},
		{"trusted hops are skipped from the right", "192.0.2.1:1000", "203.0.113.7, 10.0.0.9", "203.0.113.7"},
		{"spoofed leftmost hop is not used", "10.1.2.3:1000", "1.1.1.1, 203.0.113.7", "203.0.113.7"},
		{"garbage hop falls back to the peer", "10.1.2.3:1000", "bogus", "10.1.2.3"},
		{"no header falls back to the peer", "10.1.2.3:1000", "", "10.1.2.3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.fwd != "" {
				req.Header.Set("X-Forwarded-For", tc.fwd)
			}
			assert.Equal(t, tc.want, ips.resolve(req))
		})
	}
}

func TestRecoveryReturnsJSON500(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("reactor breach")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/favorites", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"msg":"Internal server error"}`, rr.Body.String())
}

func TestLoggingRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	h := RequestID(Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/user/3", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)
	assert.EqualValues(t, http.StatusNotFound, entry.ContextMap()["status"])
	assert.Equal(t, "unmatched", entry.ContextMap()["route"])
}
