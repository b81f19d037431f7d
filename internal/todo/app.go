// Package todo is the persisted FIFO todo queue behind the todo CLI.
package todo

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"localstash/internal/domain"
	"localstash/internal/format"
	"localstash/internal/queue"
)

// ErrCorruptFile is returned when the todo file exists but cannot be decoded.
var ErrCorruptFile = errors.New("corrupt todo file")

// codec is the on-disk format: a borsh sequence of tasks, oldest first.
var codec format.Format = format.Borsh{}

type App struct {
	queue  *queue.Queue[domain.Task]
	path   string
	nextID uint64
	now    func() time.Time
}

type Option func(*App)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// LoadOrNew restores the queue from path. A missing or empty file yields an
// empty queue.
func LoadOrNew(path string, opts ...Option) (*App, error) {
	a := &App{queue: queue.New[domain.Task](), path: path, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read todo file: %w", err)
	case len(b) > 0:
		var tasks []domain.Task
		if err := codec.Unmarshal(b, &tasks); err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrCorruptFile, path, err)
		}
		for _, t := range tasks {
			a.queue.Enqueue(t)
		}
	}

	var maxID uint64
	for t := range a.queue.All() {
		maxID = max(maxID, t.ID)
	}
	a.nextID = incr(maxID)

	log.Debug().Str("path", path).Int("tasks", a.queue.Len()).Uint64("next_id", a.nextID).Msg("todo queue loaded")
	return a, nil
}

// AddTask appends a new task and persists the queue.
func (a *App) AddTask(description string) (domain.Task, error) {
	task := domain.Task{
		ID:          a.nextID,
		Description: description,
		CreatedAt:   unixSeconds(a.now()),
	}
	if err := a.persist(append(a.snapshot(), task)); err != nil {
		return domain.Task{}, err
	}
	a.queue.Enqueue(task)
	a.nextID = incr(a.nextID)
	return task, nil
}

// CompleteNext removes the oldest task and persists the queue. ok is false
// when there was nothing to complete.
func (a *App) CompleteNext() (task domain.Task, ok bool, err error) {
	tasks := a.snapshot()
	if len(tasks) > 0 {
		tasks = tasks[1:]
	}
	if err := a.persist(tasks); err != nil {
		return domain.Task{}, false, err
	}
	task, ok = a.queue.Dequeue()
	return task, ok, nil
}

// DeleteAt removes the task at zero-based position index and persists the
// queue. ok is false when index is out of range.
func (a *App) DeleteAt(index int) (task domain.Task, ok bool, err error) {
	tasks := a.snapshot()
	if index >= 0 && index < len(tasks) {
		tasks = slices.Delete(tasks, index, index+1)
	}
	if err := a.persist(tasks); err != nil {
		return domain.Task{}, false, err
	}
	task, ok = a.queue.RemoveAt(index)
	return task, ok, nil
}

// Tasks iterates over pending tasks, oldest first.
func (a *App) Tasks() iter.Seq[domain.Task] { return a.queue.All() }

func (a *App) Len() int { return a.queue.Len() }

func (a *App) Path() string { return a.path }

func (a *App) snapshot() []domain.Task {
	return slices.Collect(a.queue.All())
}

// persist overwrites the todo file with tasks. The write goes to a temporary
// file in the same directory which is then renamed over the target, so a
// failed write leaves the previous file in place.
func (a *App) persist(tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	b, err := codec.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode todo file: %w", err)
	}

	dir := filepath.Dir(a.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(a.path)+".*")
	if err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write todo file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(a.path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}
	if err := os.Rename(tmp.Name(), a.path); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}

	log.Debug().Str("path", a.path).Int("tasks", len(tasks)).Int("bytes", len(b)).Msg("todo queue persisted")
	return nil
}

func incr(id uint64) uint64 {
	if id == math.MaxUint64 {
		return id
	}
	return id + 1
}

func unixSeconds(t time.Time) uint64 {
	if s := t.Unix(); s > 0 {
		return uint64(s)
	}
	return 0
}
