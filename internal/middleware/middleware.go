package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/CaptionSpeech/internal/handlers"
	"github.com/akolanti/CaptionSpeech/internal/metrics"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	kind         string
	errorMessage string
}

var GetHandler = Wrap(handlers.GetHandler)

var UploadImageHandler = WrapLimited(handlers.UploadImageHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)
var AudioControlHandler = Wrap(handlers.AudioControlHandler)
var LatestRecordingsHandler = Wrap(handlers.LatestRecordingsHandler)
var GetWaveformHandler = Wrap(handlers.GetWaveformHandler)
var SearchHandler = Wrap(handlers.SearchHandler)

// Wrap runs trace injection and auth before next.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, false)
}

// WrapLimited adds the per-IP rate limiter, used on the expensive routes.
func WrapLimited(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, true)
}

func wrap(next http.HandlerFunc, limited bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		defer func() {
			metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
		}()

		re := processRequest(requestResponseStruct{req: r, writer: rec}, limited)
		if re.badRequest.isBadRequest {
			return
		}
		next(rec, re.req)
	}
}

func processRequest(re requestResponseStruct, limited bool) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	re.logger.Info("New request received", "method", re.req.Method, "path", re.req.URL.Path)

	re = authenticate(re)
	if !handleBadRequest(re) {
		return re
	}
	if limited {
		re = rateLimiter(re)
		handleBadRequest(re)
	}
	return re
}
