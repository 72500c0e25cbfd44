// Package worker runs one split or merge at a time off the caller's loop and
// reports what happens as a stream of events. Front ends render the events;
// the job itself never touches front-end state.
package worker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/thywilljoshua/pdf-splitter/internal/logx"
)

// ErrBusy is returned by Submit while another job is still running.
var ErrBusy = errors.New("worker: a job is already running")

type EventKind int

const (
	EventStarted EventKind = iota
	EventLog
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventLog:
		return "log"
	case EventDone:
		return "done"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

type Event struct {
	JobID   string
	Op      string
	Kind    EventKind
	Time    time.Time
	Level   logrus.Level
	Message string
	Fields  logrus.Fields
	// Err is set on EventDone when the job failed.
	Err error
}

// Job is the unit of work. log forwards every entry to the event stream.
type Job func(log logrus.FieldLogger) error

type Runner struct {
	events chan Event
	level  logrus.Level

	mu   sync.Mutex
	busy bool
	wg   sync.WaitGroup
}

// NewRunner creates a runner whose event channel holds buffer events.
// Jobs block on logging while the buffer is full, so the channel must be drained.
func NewRunner(level logrus.Level, buffer int) *Runner {
	if buffer < 1 {
		buffer = 64
	}
	return &Runner{events: make(chan Event, buffer), level: level}
}

func (r *Runner) Events() <-chan Event { return r.events }

// Busy reports whether a job is running; front ends disable the control that
// submits jobs while it is true.
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Submit starts job on its own goroutine and returns its id.
//
// Busy turns false before EventDone is delivered, so a consumer that reacts
// to EventDone can submit the next job straight away.
func (r *Runner) Submit(op string, job Job) (string, error) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return "", ErrBusy
	}
	r.busy = true
	r.mu.Unlock()

	id := uuid.NewString()
	r.wg.Add(1)
	r.emit(Event{JobID: id, Op: op, Kind: EventStarted})

	go func() {
		defer r.wg.Done()
		err := r.run(id, op, job)

		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()

		r.emit(Event{JobID: id, Op: op, Kind: EventDone, Err: err})
	}()
	return id, nil
}

// Wait blocks until the running job, if any, has delivered EventDone.
func (r *Runner) Wait() { r.wg.Wait() }

func (r *Runner) run(id, op string, job Job) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("worker: %s panicked: %v", op, p)
		}
	}()

	log := logx.Discard(r.level)
	log.AddHook(&forwardHook{runner: r, jobID: id, op: op})
	return job(log.WithField("job", op))
}

func (r *Runner) emit(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	r.events <- ev
}

// forwardHook turns log entries of one job into EventLog events.
type forwardHook struct {
	runner *Runner
	jobID  string
	op     string
}

func (h *forwardHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *forwardHook) Fire(e *logrus.Entry) error {
	fields := make(logrus.Fields, len(e.Data))
	for k, v := range e.Data {
		fields[k] = v
	}
	h.runner.emit(Event{
		JobID:   h.jobID,
		Op:      h.op,
		Kind:    EventLog,
		Time:    e.Time,
		Level:   e.Level,
		Message: e.Message,
		Fields:  fields,
	})
	return nil
}
