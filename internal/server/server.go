package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/CaptionSpeech/internal/adapter/utils"
	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/middleware"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

// StaticDirs are the on-disk roots behind /temp, /audio and /plots.
type StaticDirs struct {
	Scratch string
	Audio   string
	Plots   string
}

// Routes registers every endpoint on r.
func Routes(r chi.Router, dirs StaticDirs) {
	r.Get("/health", middleware.GetHandler)
	r.Post("/upload-image", middleware.UploadImageHandler)
	r.Get("/status/{id}", middleware.GetStatusHandler)
	r.Get("/audio-control/{action}", middleware.AudioControlHandler)
	r.Get("/latest-recordings", middleware.LatestRecordingsHandler)
	r.Get("/get-waveform", middleware.GetWaveformHandler)
	r.Get("/search", middleware.SearchHandler)

	utils.MountStatic(r, "/temp", dirs.Scratch)
	utils.MountStatic(r, "/audio", dirs.Audio)
	utils.MountStatic(r, "/plots", dirs.Plots)
}

// InitLogger must run before CreateServer and ShutDownHandler are started.
func InitLogger() {
	_logger = logger_i.NewLogger("Server")
}

func CreateServer(listenAddr string, dirs StaticDirs) {
	r := utils.GetRouter()
	Routes(r.Router, dirs)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "err", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Graceful shutdown complete")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
