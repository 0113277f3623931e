package middleware

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/akolanti/CaptionSpeech/internal/adapter/utils"
	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
	"github.com/akolanti/CaptionSpeech/internal/handlers"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

var authToken string

// Init sets the bearer token requests must carry. An empty token disables auth.
func Init(token string) {
	authToken = token
	if token == "" {
		logger_i.NewLogger("middleware").Warn("AUTH_TOKEN not set, requests are not authenticated")
	}
}

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set("X-Trace-Id", trace)
	re.writer.Header().Set("X-Trace-Id", trace)
	re.req = req.WithContext(ctx)

	re.logger.Debug("trace middleware injected")
	return re
}

func authenticate(re requestResponseStruct) requestResponseStruct {
	if !IsValidBearerToken(re.req.Header.Get("Authorization"), re.logger) {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusUnauthorized,
			kind:         string(pipelineErrors.KindUnauthorized),
			errorMessage: "invalid or missing bearer token",
		}
		return re
	}
	return re
}

func IsValidBearerToken(authHeader string, log *logger_i.Logger) bool {
	if authToken == "" {
		return true
	}
	if authHeader == "" {
		log.Error("Empty authorization header")
		return false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Error("No Bearer header")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(authHeader, "Bearer ")), []byte(authToken)) != 1 {
		log.Error("Invalid authorization header")
		return false
	}
	return true
}

func rateLimiter(re requestResponseStruct) requestResponseStruct {
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !limiterInstance.GetLimiter(ip).Allow() {
		re.logger.Warn("Too many requests", "ip", ip)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			kind:         string(pipelineErrors.KindRateLimited),
			errorMessage: "rate limit exceeded",
		}
		return re
	}
	return re
}

// handleBadRequest writes the failure, if any, and reports whether the request may continue.
func handleBadRequest(re requestResponseStruct) bool {
	if re.badRequest.isBadRequest {
		re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", re.req.RemoteAddr)
		handlers.WriteErrorResponse(re.writer, re.req, re.badRequest.httpCode, re.badRequest.kind, re.badRequest.errorMessage)
		return false
	}
	return true
}
