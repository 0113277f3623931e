package pipelineErrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   Kind
	}{
		{"file type", ErrInvalidFileType, http.StatusBadRequest, KindInvalidFileType},
		{"wrapped image format", fmt.Errorf("decode red.png: %w", ErrInvalidImageFormat), http.StatusBadRequest, KindInvalidImageFormat},
		{"speaker", ErrInvalidSpeaker, http.StatusBadRequest, KindInvalidSpeaker},
		{"language", ErrInvalidLanguage, http.StatusBadRequest, KindInvalidLanguage},
		{"missing text", ErrMissingText, http.StatusBadRequest, KindMissingText},
		{"no audio", ErrNoAudio, http.StatusNotFound, KindNoAudio},
		{"speech", fmt.Errorf("%w: engine exploded", ErrSpeechGenerationFailed), http.StatusInternalServerError, KindSpeechGenerationFailed},
		{"downstream", fmt.Errorf("caption: %w", ErrDownstreamUnavailable), http.StatusInternalServerError, KindDownstreamUnavailable},
		{"deadline", fmt.Errorf("caption: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, KindTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.wantStatus {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.wantStatus)
			}
			if got := KindOf(tt.err); got != tt.wantKind {
				t.Errorf("KindOf() = %s, want %s", got, tt.wantKind)
			}
		})
	}
}

func TestNilError(t *testing.T) {
	if HTTPStatus(nil) != http.StatusOK {
		t.Error("nil error should map to 200")
	}
	if KindOf(nil) != "" {
		t.Error("nil error should have no kind")
	}
	if IsClientError(nil) {
		t.Error("nil error is not a client error")
	}
}
