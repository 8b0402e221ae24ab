package illumiterm

import (
	"errors"

	"go.uber.org/zap"
)

var (
	// ErrNoSurface is returned when spawning without a terminal surface
	ErrNoSurface = errors.New("no terminal surface")

	// ErrAlreadySpawned is returned when a session spawns a second time
	ErrAlreadySpawned = errors.New("child already spawned")
)

// Supervisor owns the child process of one session
type Supervisor struct {
	surface Surface
	log     *zap.Logger

	notify  func(Outcome)
	hangup  func(pid int) error
	subs    Subscriptions
	started bool
	pid     int
	exited  bool
}

// NewSupervisor creates a supervisor for surface. A nil logger discards
// output.
func NewSupervisor(surface Surface, log *zap.Logger) *Supervisor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Supervisor{surface: surface, log: log, hangup: hangupPID}
}

// PID returns the child's process id once the spawn has succeeded
func (s *Supervisor) PID() (int, bool) {
	return s.pid, s.pid > 0
}

// Spawn configures the surface and starts req asynchronously. notify gets
// Spawned or SpawnFailed once, then ChildExited at most once.
func (s *Supervisor) Spawn(req SpawnRequest, notify func(Outcome)) error {
	if s.surface == nil {
		return ErrNoSurface
	}
	if s.started {
		return ErrAlreadySpawned
	}
	s.started = true
	s.notify = notify

	s.surface.Configure(DefaultBehavior())
	s.subs.Add(s.surface.OnChildExited(s.childExited))

	s.log.Debug("spawning child",
		zap.Strings("argv", req.Argv),
		zap.String("dir", req.Dir))
	s.surface.SpawnAsync(req, s.spawnDone)
	return nil
}

func (s *Supervisor) spawnDone(pid int, err error) {
	if s.surface == nil {
		// Detached while the spawn was in flight
		if err == nil && pid > 0 {
			s.log.Debug("hanging up child spawned after detach", zap.Int("pid", pid))
			if err := s.hangup(pid); err != nil {
				s.log.Warn("hangup failed", zap.Int("pid", pid), zap.Error(err))
			}
		}
		return
	}
	if err != nil || pid <= 0 {
		if err == nil {
			err = errors.New("no process id")
		}
		s.log.Warn("spawn failed", zap.Error(err))
		s.notify(SpawnFailed(err))
		return
	}
	s.pid = pid
	s.log.Debug("child spawned", zap.Int("pid", pid))
	s.notify(Spawned(pid))
}

func (s *Supervisor) childExited(status int) {
	if s.surface == nil {
		s.log.Debug("child exit after detach dropped", zap.Int("status", status))
		return
	}
	if s.exited {
		s.log.Debug("duplicate child exit dropped", zap.Int("status", status))
		return
	}
	s.exited = true
	s.log.Debug("child exited", zap.Int("pid", s.pid), zap.Int("status", status))
	s.notify(ChildExited(status))
}

// Hangup asks a running child to terminate
func (s *Supervisor) Hangup() {
	if s.surface == nil || s.pid <= 0 || s.exited {
		return
	}
	s.surface.Hangup()
}

// Detach stops listening to the surface. Notifications arriving afterwards
// are dropped.
func (s *Supervisor) Detach() {
	s.subs.Cancel()
	s.surface = nil
}
