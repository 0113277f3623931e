// @title           CaptionSpeech API
// @version         1.0
// @description     Upload an image to caption it, index the caption and hear it read aloud.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/customHttpClient"
	"github.com/akolanti/CaptionSpeech/internal/data/redisStore"
	"github.com/akolanti/CaptionSpeech/internal/data/store"
	"github.com/akolanti/CaptionSpeech/internal/domain/jobModel"
	"github.com/akolanti/CaptionSpeech/internal/handlers"
	"github.com/akolanti/CaptionSpeech/internal/job"
	"github.com/akolanti/CaptionSpeech/internal/middleware"
	"github.com/akolanti/CaptionSpeech/internal/pipeline"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/caption"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/caption/gemini"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/caption/openaiCaption"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/embedding/googleEmbedding"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/indexer"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/recordings"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/speech"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/speech/geminiTTS"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/speech/httpTTS"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/upload"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/vectorDB"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/vectorDB/qdrantDB"
	"github.com/akolanti/CaptionSpeech/internal/pipeline/waveform"
	"github.com/akolanti/CaptionSpeech/internal/server"
	"github.com/akolanti/CaptionSpeech/internal/worker"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	settings, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	flag.StringVar(&listenAddr, "listen-addr", settings.ListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan job.Submission, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	redisOpts := redisStore.Options{Addr: settings.RedisAddr, Password: settings.RedisPassword}

	// the stores and the index are independent, bring them up together
	var (
		jobStore       jobModel.JobStore
		recordingStore jobModel.RecordingStore
		indexLock      indexer.Locker
		index          vectorDB.Index
	)
	var g errgroup.Group
	g.Go(func() error {
		if s := store.GetRedisJobStore(serviceContext, redisOpts); s != nil {
			jobStore = s
			return nil
		}
		logger.Error("Redis job store is offline, using in-memory store")
		jobStore = store.InitInMemoryJobStore()
		return nil
	})
	g.Go(func() error {
		if s := store.GetRedisRecordingStore(serviceContext, redisOpts); s != nil {
			recordingStore = s
			return nil
		}
		logger.Error("Redis recording store is offline, using in-memory store")
		recordingStore = store.InitInMemoryRecordingStore()
		return nil
	})
	g.Go(func() error {
		if l := store.GetRedisIndexLock(serviceContext, redisOpts); l != nil {
			indexLock = l
			return nil
		}
		logger.Warn("Redis index lock unavailable, falling back to an in-process lock")
		indexLock = indexer.NewKeyedMutex()
		return nil
	})
	g.Go(func() error {
		q, err := qdrantDB.NewQdrantIndex(serviceContext, settings.QdrantHost, settings.QdrantPort, config.EmbeddingDBName)
		if err != nil {
			logger.Error("Qdrant unavailable, using a process-local index", "err", err)
			index = vectorDB.NewInMemoryIndex()
			return nil
		}
		index = q
		return nil
	})
	_ = g.Wait()

	uploads, err := upload.NewStore(settings.ScratchDir)
	if err != nil {
		logger.Error("Could not prepare scratch dir", "err", err)
		return
	}

	// one genai client serves embeddings and, depending on the providers, captions and speech
	genaiClient, err := gemini.NewClient(serviceContext, settings.GoogleAPIKey)
	if err != nil {
		logger.Error("Could not create Gemini client", "err", err)
		return
	}

	captionModel := captionModelFor(settings, genaiClient)
	engine := speechEngineFor(serviceContext, settings, genaiClient, logger)

	synth, err := speech.New(engine, settings.AudioDir, settings.PublicBaseURL)
	if err != nil {
		logger.Error("Could not prepare audio dir", "err", err)
		return
	}
	renderer, err := waveform.NewRenderer(settings.PlotDir, recordingStore)
	if err != nil {
		logger.Error("Could not prepare plot dir", "err", err)
		return
	}

	idx := indexer.New(indexer.Options{
		Index:         index,
		DocEmbedder:   googleEmbedding.NewGoogleEmbedder(genaiClient, config.GoogleEmbeddingModel),
		QueryEmbedder: googleEmbedding.NewGoogleQueryEmbedder(genaiClient, config.GoogleEmbeddingModel),
		Locker:        indexLock,
	})
	pipelineService := pipeline.NewService(caption.New(captionModel), idx, synth, recordingStore, uploads)

	service := job.InitJobService(job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	})
	logger.Info("Starting job service")

	handlers.InitJobHandler(handlers.Dependencies{
		Jobs:     service,
		Pipeline: pipelineService,
		Uploads:  uploads,
		Renderer: renderer,
		Library:  recordings.NewLibrary(settings.AudioDir, settings.PublicBaseURL, nil),
	})
	middleware.Init(settings.AuthToken)

	//init worker pool
	worker.InitServices(service, pipelineService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices: func() {
			closeExternalServices()
			customHttpClient.CloseIdle()
		},
	}
	server.InitLogger()
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, server.StaticDirs{
		Scratch: settings.ScratchDir,
		Audio:   settings.AudioDir,
		Plots:   settings.PlotDir,
	})

	<-stopExecution
	logger.Info("Server stopped")
}

func captionModelFor(settings *config.Settings, client *genai.Client) caption.Model {
	if settings.CaptionProvider == config.ProviderOpenAI {
		return openaiCaption.NewCaptionModel(settings.OpenAIAPIKey, config.OpenAICaptionModel, customHttpClient.NewPooledClient(config.CaptionServiceTimeout))
	}
	return gemini.NewCaptionModel(client, config.GeminiCaptionModel)
}

func speechEngineFor(ctx context.Context, settings *config.Settings, client *genai.Client, logger *logger_i.Logger) speech.Engine {
	if settings.SpeechProvider != config.ProviderHTTP {
		return geminiTTS.NewEngine(client, config.GeminiSpeechModel)
	}
	engine := httpTTS.NewEngine(settings.TTSServiceURL, customHttpClient.NewPooledClient(config.TTSServiceTimeout))

	healthCtx, cancel := context.WithTimeout(ctx, config.TTSServiceHealthWait)
	defer cancel()
	if err := engine.HealthCheck(healthCtx); err != nil {
		// the service may come up later, requests fail with SpeechGenerationFailed until then
		logger.Warn("TTS service not healthy yet", "url", settings.TTSServiceURL, "err", err)
	}
	return engine
}
