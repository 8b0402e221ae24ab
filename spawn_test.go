package illumiterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgv(t *testing.T) {
	tests := []struct {
		name string
		inv  *Invocation
		want []string
	}{
		{
			name: "login shell",
			inv:  NewInvocation("/", []string{"SHELL=/bin/zsh"}),
			want: []string{"/bin/zsh"},
		},
		{
			name: "explicit command",
			inv:  NewInvocation("/", []string{"SHELL=/bin/zsh"}, WithCommand("top -d 1")),
			want: []string{"/bin/sh", "-c", "top -d 1"},
		},
		{
			name: "no shell",
			inv:  NewInvocation("/", []string{"HOME=/root"}),
			want: []string{"/bin/sh"},
		},
		{
			name: "empty shell",
			inv:  NewInvocation("/", []string{"SHELL="}),
			want: []string{"/bin/sh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildArgv(tt.inv))
		})
	}
}

func TestNewSpawnRequest(t *testing.T) {
	inv := NewInvocation("/work", []string{"SHELL=/bin/bash", "TERM=dumb"})
	req := NewSpawnRequest(inv)

	assert.Equal(t, "/work", req.Dir)
	assert.Equal(t, []string{"/bin/bash"}, req.Argv)
	assert.Equal(t, []string{"SHELL=/bin/bash", "TERM=dumb", "COLORTERM=truecolor"}, req.Env)

	// The request owns its environment
	req.Env[0] = "SHELL=/bin/false"
	v, _ := inv.Getenv("SHELL")
	assert.Equal(t, "/bin/bash", v)
}

func TestNewSpawnRequestAddsTerm(t *testing.T) {
	req := NewSpawnRequest(NewInvocation("/", nil))
	assert.Equal(t, []string{"TERM=xterm-256color", "COLORTERM=truecolor"}, req.Env)
}
