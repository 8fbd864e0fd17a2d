package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/ovozlabs/ovoz-voice-service/interfaces"
	logger "github.com/ovozlabs/ovoz-voice-service/log"
	"github.com/ovozlabs/ovoz-voice-service/pipeline"
)

// TranscriptionJob holds all the necessary data for a single transcription task.
type TranscriptionJob struct {
	Ctx        context.Context
	Submission pipeline.Submission
	Pipeline   *pipeline.Pipeline
	Notifier   interfaces.Notifier
	// OnDone, when set, receives the terminal outcome of the job. Used by
	// the status server to count results.
	OnDone func(err error)
}

// WorkerPool manages a pool of workers and a queue of jobs.
type WorkerPool struct {
	JobQueue   chan TranscriptionJob
	MaxWorkers int
}

// New creates a new WorkerPool.
func New(maxWorkers, queueSize int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		JobQueue:   make(chan TranscriptionJob, queueSize),
		MaxWorkers: maxWorkers,
	}
}

// Start creates and starts the worker goroutines.
func (wp *WorkerPool) Start() {
	for i := 1; i <= wp.MaxWorkers; i++ {
		go wp.worker(i)
	}
}

// Submit adds a new job to the job queue.
func (wp *WorkerPool) Submit(job TranscriptionJob) {
	wp.JobQueue <- job
}

// Stop closes the queue; workers drain what is already queued and exit.
func (wp *WorkerPool) Stop() {
	close(wp.JobQueue)
}

// worker is a goroutine that continuously processes jobs from the JobQueue.
func (wp *WorkerPool) worker(id int) {
	for job := range wp.JobQueue {
		processTranscription(job)
	}
}

// processTranscription contains the logic for a single transcription task.
func processTranscription(job TranscriptionJob) {
	text, err := job.Pipeline.Handle(job.Ctx, job.Submission)
	if job.OnDone != nil {
		job.OnDone(err)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return // caller went away, nobody to notify
		}
		logger.Info("[WORKER] submission from user %s failed: %v", job.Submission.UserID, err)
		if notifyErr := job.Notifier.NotifyUser(job.Ctx, job.Submission.UserID, pipeline.UserMessage(err)); notifyErr != nil {
			logger.Error(fmt.Sprintf("notifying user %s about failure", job.Submission.UserID), notifyErr)
		}
		return
	}

	result := fmt.Sprintf("Result:\n%s", text)
	if notifyErr := job.Notifier.NotifyUser(job.Ctx, job.Submission.UserID, result); notifyErr != nil {
		logger.Error(fmt.Sprintf("delivering transcript to user %s", job.Submission.UserID), notifyErr)
	}
}
