package illumiterm

import (
	"strings"
	"sync"
)

// Invocation is the host's command-invocation context: where the session
// came from and where its exit status goes. The host keeps the Invocation;
// the session reports to it exactly once.
type Invocation struct {
	cwd     string
	environ []string
	command string
	hasCmd  bool

	mu        sync.Mutex
	status    int
	reported  bool
	done      chan struct{}
	onRelease []func(status int)
}

// InvocationOption configures an Invocation
type InvocationOption func(*Invocation)

// WithCommand sets the explicit command line given with --cmd
func WithCommand(cmd string) InvocationOption {
	return func(inv *Invocation) {
		inv.command = cmd
		inv.hasCmd = true
	}
}

// WithReleaseHook registers fn to run after the exit status is reported
func WithReleaseHook(fn func(status int)) InvocationOption {
	return func(inv *Invocation) {
		inv.onRelease = append(inv.onRelease, fn)
	}
}

// NewInvocation creates a context for a session started in cwd with the given
// environment. environ is copied.
func NewInvocation(cwd string, environ []string, opts ...InvocationOption) *Invocation {
	inv := &Invocation{
		cwd:     cwd,
		environ: copyStrings(environ),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Cwd returns the working directory the host was invoked from
func (inv *Invocation) Cwd() string {
	return inv.cwd
}

// Environ returns a fresh copy of the invocation environment
func (inv *Invocation) Environ() []string {
	return copyStrings(inv.environ)
}

// Getenv looks key up in the invocation environment, not the process's.
// The last definition wins, as with os/exec.
func (inv *Invocation) Getenv(key string) (string, bool) {
	prefix := key + "="
	value, found := "", false
	for _, kv := range inv.environ {
		if strings.HasPrefix(kv, prefix) {
			value, found = kv[len(prefix):], true
		}
	}
	return value, found
}

// Command returns the --cmd option and whether it was supplied
func (inv *Invocation) Command() (string, bool) {
	return inv.command, inv.hasCmd
}

// Report records the final exit status and releases the context. Only the
// first call has any effect; it reports whether this call was the one.
func (inv *Invocation) Report(status int) bool {
	inv.mu.Lock()
	if inv.reported {
		inv.mu.Unlock()
		return false
	}
	inv.reported = true
	inv.status = status
	hooks := inv.onRelease
	inv.onRelease = nil
	close(inv.done)
	inv.mu.Unlock()

	for _, fn := range hooks {
		fn(status)
	}
	return true
}

// Done is closed once the exit status has been reported
func (inv *Invocation) Done() <-chan struct{} {
	return inv.done
}

// ExitStatus returns the reported status and whether one has been reported
func (inv *Invocation) ExitStatus() (int, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.status, inv.reported
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
