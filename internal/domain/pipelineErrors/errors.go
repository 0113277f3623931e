package pipelineErrors

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrInvalidFileType        = errors.New("invalid file type, only images are accepted")
	ErrInvalidImageFormat     = errors.New("invalid image format, please provide a valid image file")
	ErrInvalidDescriptionMode = errors.New("invalid description mode, use summary or detailed")
	ErrInvalidSpeaker         = errors.New("invalid speaker")
	ErrInvalidLanguage        = errors.New("invalid language")
	ErrMissingText            = errors.New("no text provided for speech synthesis")
	ErrSpeechGenerationFailed = errors.New("speech generation failed")
	ErrDownstreamUnavailable  = errors.New("downstream service unavailable")
	ErrNoAudio                = errors.New("no audio found")
	ErrInvalidAudioAction     = errors.New("invalid audio action")
	ErrAudioNotFound          = errors.New("audio file not found")
	ErrInvalidAudioPath       = errors.New("audio path is outside the audio directory")
	ErrMissingFile            = errors.New("file is required")
	ErrPipelineTimeout        = errors.New("pipeline timed out")
	ErrJobNotFound            = errors.New("job not found")
)

type Kind string

const (
	KindInvalidFileType        Kind = "InvalidFileType"
	KindInvalidImageFormat     Kind = "InvalidImageFormat"
	KindInvalidDescriptionMode Kind = "InvalidDescriptionMode"
	KindInvalidSpeaker         Kind = "InvalidSpeaker"
	KindInvalidLanguage        Kind = "InvalidLanguage"
	KindMissingText            Kind = "MissingText"
	KindSpeechGenerationFailed Kind = "SpeechGenerationFailed"
	KindDownstreamUnavailable  Kind = "DownstreamUnavailable"
	KindNoAudio                Kind = "NoAudio"
	KindInvalidAudioAction     Kind = "InvalidAudioAction"
	KindAudioNotFound          Kind = "AudioNotFound"
	KindInvalidAudioPath       Kind = "InvalidAudioPath"
	KindMissingFile            Kind = "MissingFile"
	KindTimeout                Kind = "Timeout"
	KindJobNotFound            Kind = "JobNotFound"
	KindUnauthorized           Kind = "Unauthorized"
	KindRateLimited            Kind = "RateLimited"
	KindInternal               Kind = "Internal"
)

type classification struct {
	err    error
	kind   Kind
	status int
}

// order matters, the first match wins
var table = []classification{
	{ErrInvalidFileType, KindInvalidFileType, http.StatusBadRequest},
	{ErrInvalidImageFormat, KindInvalidImageFormat, http.StatusBadRequest},
	{ErrInvalidDescriptionMode, KindInvalidDescriptionMode, http.StatusBadRequest},
	{ErrInvalidSpeaker, KindInvalidSpeaker, http.StatusBadRequest},
	{ErrInvalidLanguage, KindInvalidLanguage, http.StatusBadRequest},
	{ErrMissingText, KindMissingText, http.StatusBadRequest},
	{ErrMissingFile, KindMissingFile, http.StatusBadRequest},
	{ErrInvalidAudioAction, KindInvalidAudioAction, http.StatusBadRequest},
	{ErrInvalidAudioPath, KindInvalidAudioPath, http.StatusBadRequest},
	{ErrNoAudio, KindNoAudio, http.StatusNotFound},
	{ErrAudioNotFound, KindAudioNotFound, http.StatusNotFound},
	{ErrJobNotFound, KindJobNotFound, http.StatusNotFound},
	{ErrPipelineTimeout, KindTimeout, http.StatusGatewayTimeout},
	{context.DeadlineExceeded, KindTimeout, http.StatusGatewayTimeout},
	{ErrSpeechGenerationFailed, KindSpeechGenerationFailed, http.StatusInternalServerError},
	{ErrDownstreamUnavailable, KindDownstreamUnavailable, http.StatusInternalServerError},
}

func classify(err error) classification {
	for _, c := range table {
		if errors.Is(err, c.err) {
			return c
		}
	}
	return classification{err: err, kind: KindInternal, status: http.StatusInternalServerError}
}

func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return classify(err).kind
}

// HTTPStatus maps a pipeline error onto the status code the API answers with.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return classify(err).status
}

func IsClientError(err error) bool {
	s := HTTPStatus(err)
	return s >= 400 && s < 500
}
