package illumiterm

import "strings"

const (
	// CommandShell interprets an explicit --cmd
	CommandShell = "/bin/sh"

	// FallbackShell is used when the invocation has no usable SHELL
	FallbackShell = "/bin/sh"
)

// SpawnRequest describes the child process to start. It is built once per
// session, handed to the surface and not kept.
type SpawnRequest struct {
	Dir  string
	Argv []string
	Env  []string
}

// NewSpawnRequest builds the request for inv: "/bin/sh -c <cmd>" when a
// command was given, the invocation's $SHELL otherwise. Env is an independent
// copy of the invocation environment with TERM and COLORTERM filled in when
// missing.
func NewSpawnRequest(inv *Invocation) SpawnRequest {
	return SpawnRequest{
		Dir:  inv.Cwd(),
		Argv: BuildArgv(inv),
		Env:  childEnviron(inv.Environ()),
	}
}

// BuildArgv returns the argument vector for inv
func BuildArgv(inv *Invocation) []string {
	if cmd, ok := inv.Command(); ok {
		return []string{CommandShell, "-c", cmd}
	}
	shell, _ := inv.Getenv("SHELL")
	if shell == "" {
		shell = FallbackShell
	}
	return []string{shell}
}

// childEnviron appends terminal identification unless env already has it.
// env must already be a private copy.
func childEnviron(env []string) []string {
	defaults := []string{"TERM=xterm-256color", "COLORTERM=truecolor"}
	for _, kv := range defaults {
		key := kv[:strings.IndexByte(kv, '=')+1]
		if !hasKey(env, key) {
			env = append(env, kv)
		}
	}
	return env
}

func hasKey(env []string, prefix string) bool {
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			return true
		}
	}
	return false
}
