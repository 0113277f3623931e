package customHttpClient

import (
	"net/http"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/config"
)

// one transport for every outbound http collaborator so connections get reused
var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}

func CloseIdle() {
	customTransport.CloseIdleConnections()
}
