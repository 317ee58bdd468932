package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"woodsim/internal/bootstrap"
	"woodsim/internal/domain/game"
	"woodsim/internal/errors"
)

const (
	versionTimeout = 10 * time.Second
	// waitDelay bounds how long we wait for the output pipes after the
	// engine was killed on timeout.
	waitDelay = 2 * time.Second
)

// GnuGoRepository runs the GNU Go binary, one process per call.
type GnuGoRepository struct {
	path    string
	level   int
	timeout time.Duration
	log     *zap.SugaredLogger
}

func NewGnuGoRepository(cfg *bootstrap.Config, log *zap.SugaredLogger) *GnuGoRepository {
	return &GnuGoRepository{
		path:    cfg.GnuGoPath,
		level:   cfg.Level,
		timeout: cfg.Timeout,
		log:     log,
	}
}

// CheckVersion asks the engine for its version. It fails when the binary
// cannot be started at all or when the caller's context is done; a non-zero
// exit or a hanging version query still proves the binary is there.
func (g *GnuGoRepository) CheckVersion(parent context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(parent, versionTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, g.path, "--version")
	cmd.WaitDelay = waitDelay
	out, err := cmd.CombinedOutput()
	version := firstLine(string(out))

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return version, nil
	case parent.Err() != nil:
		return "", parent.Err()
	case stderrors.As(err, &exitErr), stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		g.log.Warnw("engine version query did not finish cleanly", "path", g.path, "error", err)
		return version, nil
	default:
		return "", fmt.Errorf("%w: %s: %v", errors.ErrEngineNotFound, g.path, err)
	}
}

// Args returns the command line used to finish and score the game stored in
// recordPath. The finished game is written back to the same file.
func (g *GnuGoRepository) Args(recordPath string) []string {
	return []string{
		"-l", recordPath,
		"-o", recordPath,
		"--score", "finish",
		"--level", strconv.Itoa(g.level),
		"--komi", strconv.Itoa(game.Komi),
	}
}

// PlayOut lets the engine finish the game and returns its combined output.
// The output is returned even when err is not nil.
func (g *GnuGoRepository) PlayOut(ctx context.Context, recordPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	args := g.Args(recordPath)
	g.log.Debugw("running engine", "cmd", g.path+" "+strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, g.path, args...)
	cmd.WaitDelay = waitDelay
	out, err := cmd.CombinedOutput()
	output := string(out)

	if err == nil {
		return output, nil
	}
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return output, fmt.Errorf("%w after %s", errors.ErrEngineTimeout, g.timeout)
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return output, fmt.Errorf("%w: exit code %d", errors.ErrEngineFailed, exitErr.ExitCode())
	}
	if ctx.Err() != nil {
		return output, ctx.Err()
	}
	return output, fmt.Errorf("%w: %v", errors.ErrEngineNotFound, err)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
