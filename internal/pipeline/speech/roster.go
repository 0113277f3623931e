package speech

import (
	"fmt"
	"strings"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/domain/pipelineErrors"
)

var Speakers = []string{"Kore", "Puck", "Charon", "Aoede", "Fenrir"}
var Languages = []string{"en-US", "en-GB"}

// ResolveVoice applies defaults and checks both values against the roster.
// Speaker names are matched case-insensitively and returned in roster spelling.
func ResolveVoice(speaker string, language string) (string, string, error) {
	speaker = strings.TrimSpace(speaker)
	language = strings.TrimSpace(language)
	if speaker == "" {
		speaker = config.DefaultSpeaker
	}
	if language == "" {
		language = config.DefaultLanguage
	}

	s, ok := lookup(Speakers, speaker)
	if !ok {
		return "", "", fmt.Errorf("%w: %q, choose one of %s", pipelineErrors.ErrInvalidSpeaker, speaker, strings.Join(Speakers, ", "))
	}
	l, ok := lookup(Languages, language)
	if !ok {
		return "", "", fmt.Errorf("%w: %q, choose one of %s", pipelineErrors.ErrInvalidLanguage, language, strings.Join(Languages, ", "))
	}
	return s, l, nil
}

func lookup(roster []string, value string) (string, bool) {
	for _, r := range roster {
		if strings.EqualFold(r, value) {
			return r, true
		}
	}
	return "", false
}
