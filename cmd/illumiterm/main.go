package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/phroun/illumiterm"
	"github.com/phroun/illumiterm/cli"
	"github.com/phroun/illumiterm/cmd/illumiterm/cmd"
	illumitermgtk "github.com/phroun/illumiterm/gtk"
	"github.com/phroun/illumiterm/internal/config"
	"go.uber.org/zap"
)

func main() {
	// GTK must stay on the main thread
	runtime.LockOSThread()

	var result cmd.Result
	root := cmd.NewRootCmd(map[string]cmd.Frontend{
		config.FrontendGTK: runGTK,
		config.FrontendCLI: runCLI,
	}, &result)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(result.Status)
}

func runGTK(_ context.Context, inv *illumiterm.Invocation, cfg *config.Config, log *zap.Logger) error {
	return illumitermgtk.Run(inv, illumitermgtk.Options{
		Font:   cmd.Font(cfg),
		Logger: log,
	})
}

func runCLI(ctx context.Context, inv *illumiterm.Invocation, cfg *config.Config, log *zap.Logger) error {
	t := cli.New(cli.Options{Font: cmd.Font(cfg), Logger: log})
	if err := t.Start(); err != nil {
		return err
	}
	defer t.Stop()

	sess, err := illumiterm.NewSession(illumiterm.Options{
		Window:     t.Window(),
		Surface:    t.Surface(),
		Invocation: inv,
		Prompter:   t.Prompter(),
		Logger:     log,
	})
	if err != nil {
		return err
	}
	if err := sess.Start(); err != nil {
		return err
	}
	return t.Run(ctx, inv.Done())
}
