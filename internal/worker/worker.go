package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/CaptionSpeech/internal/config"
	"github.com/akolanti/CaptionSpeech/internal/job"
	"github.com/akolanti/CaptionSpeech/internal/metrics"
	"github.com/akolanti/CaptionSpeech/internal/pipeline"
	"github.com/akolanti/CaptionSpeech/pkg/logger_i"
)

var (
	_jobService        *job.Service
	stopWorkerChannel  chan bool
	workerWaitGroup    *sync.WaitGroup
	dispatcherChannel  chan bool
	currentWorkerCount int64
	logger             *logger_i.Logger
	_pipelineService   pipeline.Service
	minWorkerCount     = config.MinWorkerCount
	pipelineTimeout    = config.PipelineTimeout
	idleWorkerTimeout  = config.IdleWorkerTimeout
)

func InitServices(jobService *job.Service, pipelineService pipeline.Service) {
	_jobService = jobService
	_pipelineService = pipelineService
	dispatcherChannel = jobService.DispatcherChannel
}

func InitWorkerPool(stopWorkerChan chan bool, waitGroup *sync.WaitGroup) {
	stopWorkerChannel = stopWorkerChan
	workerWaitGroup = waitGroup
	logger = logger_i.NewLogger("WorkerPool")
	logger.Info("Initializing worker pool")
	go dispatcher()
}

func dispatcher() {
	createWorker()
	logger.Info("Dispatcher started")
	for range dispatcherChannel {
		if atomic.LoadInt64(&currentWorkerCount) < config.MaxWorkerCount {
			logger.Info("Creating new worker", "workerCount", atomic.LoadInt64(&currentWorkerCount))
			createWorker()
		}
	}
}

func createWorker() {
	workerWaitGroup.Add(1)
	go worker()
	atomic.AddInt64(&currentWorkerCount, 1)
	metrics.IncrementActiveWorkerCount()
	logger.Info("Created new worker")
}

func worker() {
	idle := time.NewTimer(idleWorkerTimeout)
	defer idle.Stop()
	for {
		select {
		case sub := <-_jobService.JobChannel:
			metrics.DecrementJobsInQueue()
			sub.Result <- executeJob(sub.Job)
			resetTimer(idle)

		case <-stopWorkerChannel:
			removeWorker("Stop worker signal received")
			return

		case <-idle.C:
			if retireIdle() {
				return
			}
			idle.Reset(idleWorkerTimeout)
		}
	}
}

// retireIdle drops this worker unless the pool is already at its minimum.
func retireIdle() bool {
	for {
		count := atomic.LoadInt64(&currentWorkerCount)
		if count <= atomic.LoadInt64(&minWorkerCount) {
			return false
		}
		if atomic.CompareAndSwapInt64(&currentWorkerCount, count, count-1) {
			workerWaitGroup.Done()
			metrics.DecrementActiveWorkerCount()
			logger.Info("Removed worker", "reason", "Idle worker timeout", "workerCount", count-1)
			return true
		}
	}
}

func resetTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(idleWorkerTimeout)
}
