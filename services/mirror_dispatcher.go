package services

import (
	"context"
	"log"
	"sync"
	"time"

	"fitTrackAPI/internal/types/workout"
)

// MirrorProvider is the document-store backend the dispatcher writes to.
type MirrorProvider interface {
	SaveWorkout(ctx context.Context, doc *workout.Document) error
	DeleteWorkout(ctx context.Context, workoutID string) error
}

type mirrorOp string

const (
	mirrorOpSave   mirrorOp = "save"
	mirrorOpDelete mirrorOp = "delete"
)

type MirrorJob struct {
	Op        mirrorOp
	Document  *workout.Document
	WorkoutID string
}

// MirrorDispatcher pushes workout documents to the document store after
// the relational write has committed. Jobs are fire-and-forget: failures
// are logged and dropped, never surfaced to the request that queued them.
type MirrorDispatcher struct {
	provider MirrorProvider
	workers  int
	jobQueue chan *MirrorJob
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewMirrorDispatcher() *MirrorDispatcher {
	dispatcher := &MirrorDispatcher{
		workers:  3,
		jobQueue: make(chan *MirrorJob, 100),
		stopChan: make(chan struct{}),
	}

	dispatcher.startWorkers()

	return dispatcher
}

// SetProvider injects the real Firestore provider from main.go. Until a
// provider is set, jobs are skipped with a log line.
func (d *MirrorDispatcher) SetProvider(provider MirrorProvider) {
	d.provider = provider
}

func (d *MirrorDispatcher) startWorkers() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

func (d *MirrorDispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobQueue:
			d.processJob(job)
		case <-d.stopChan:
			return
		}
	}
}

func (d *MirrorDispatcher) processJob(job *MirrorJob) {
	if d.provider == nil {
		log.Printf("Mirror: skipping %s job, no provider configured", job.Op)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	switch job.Op {
	case mirrorOpSave:
		err = d.provider.SaveWorkout(ctx, job.Document)
	case mirrorOpDelete:
		err = d.provider.DeleteWorkout(ctx, job.WorkoutID)
	}

	if err != nil {
		log.Printf("Mirror: %s job failed: %v", job.Op, err)
	}
}

// DispatchSave queues a document upsert. A full queue drops the job
// after a short wait rather than blocking the caller.
func (d *MirrorDispatcher) DispatchSave(doc *workout.Document) {
	d.dispatch(&MirrorJob{Op: mirrorOpSave, Document: doc})
}

// DispatchDelete queues removal of a mirrored document.
func (d *MirrorDispatcher) DispatchDelete(workoutID string) {
	d.dispatch(&MirrorJob{Op: mirrorOpDelete, WorkoutID: workoutID})
}

func (d *MirrorDispatcher) dispatch(job *MirrorJob) {
	select {
	case d.jobQueue <- job:
	case <-time.After(2 * time.Second):
		log.Printf("Mirror: failed to queue %s job: queue full", job.Op)
	}
}

// Stop shuts the worker pool down gracefully.
func (d *MirrorDispatcher) Stop() {
	log.Println("Stopping mirror dispatcher...")
	close(d.stopChan)
	d.wg.Wait()
	log.Println("Mirror dispatcher stopped")
}

// Mock implementation for testing

type MockMirrorProvider struct {
	mu      sync.Mutex
	Saved   []*workout.Document
	Deleted []string
}

func (m *MockMirrorProvider) SaveWorkout(ctx context.Context, doc *workout.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = append(m.Saved, doc)
	return nil
}

func (m *MockMirrorProvider) DeleteWorkout(ctx context.Context, workoutID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, workoutID)
	return nil
}

func (m *MockMirrorProvider) SavedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saved)
}

func (m *MockMirrorProvider) DeletedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Deleted)
}
