package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/api"
	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func echoTrace(w http.ResponseWriter, r *http.Request) {
	trace, _ := r.Context().Value(config.TRACE_ID_KEY).(string)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(trace))
}

func TestWrap_Auth(t *testing.T) {
	t.Cleanup(func() { Init("") })

	t.Run("No_Token_Configured_Bypasses_Auth", func(t *testing.T) {
		Init("")
		rr := httptest.NewRecorder()
		Wrap(echoTrace)(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Body.String())
		assert.Equal(t, rr.Body.String(), rr.Header().Get("X-Trace-Id"))
	})

	t.Run("Caller_Trace_Id_Is_Kept", func(t *testing.T) {
		Init("")
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Trace-Id", "trace-123")
		rr := httptest.NewRecorder()
		Wrap(echoTrace)(rr, req)

		assert.Equal(t, "trace-123", rr.Body.String())
	})

	t.Run("Missing_Token_Is_401", func(t *testing.T) {
		Init("secret")
		rr := httptest.NewRecorder()
		Wrap(echoTrace)(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		var body api.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Unauthorized", body.Kind)
		assert.NotEmpty(t, body.TraceId)
	})

	t.Run("Wrong_Token_Is_401", func(t *testing.T) {
		Init("secret")
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Authorization", "Bearer guess")
		rr := httptest.NewRecorder()
		Wrap(echoTrace)(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Valid_Token_Passes", func(t *testing.T) {
		Init("secret")
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Authorization", "Bearer secret")
		rr := httptest.NewRecorder()
		Wrap(echoTrace)(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestWrapLimited_RejectsBurst(t *testing.T) {
	Init("")
	saved := limiterInstance
	limiterInstance = NewIPRateLimiter(rate.Limit(0.001), 2)
	t.Cleanup(func() { limiterInstance = saved })

	handler := WrapLimited(echoTrace)
	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/upload-image", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		rr := httptest.NewRecorder()
		handler(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// other callers have their own bucket
	req := httptest.NewRequest(http.MethodPost, "/upload-image", nil)
	req.RemoteAddr = "10.0.0.8:5555"
	rr := httptest.NewRecorder()
	handler(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestIPRateLimiter_ReusesLimiter(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	assert.Same(t, l.GetLimiter("1.1.1.1"), l.GetLimiter("1.1.1.1"))
	assert.NotSame(t, l.GetLimiter("1.1.1.1"), l.GetLimiter("2.2.2.2"))
}

func TestIPRateLimiter_DropsIdleVisitors(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	clock := time.Now()
	l.now = func() time.Time { return clock }
	l.lastSweep = clock

	l.GetLimiter("1.1.1.1")
	l.GetLimiter("2.2.2.2")
	assert.Equal(t, 2, l.size())

	clock = clock.Add(l.idleTTL + time.Second)
	l.GetLimiter("3.3.3.3")
	assert.Equal(t, 1, l.size(), "idle visitors are swept")
}
