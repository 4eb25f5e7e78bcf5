package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// Exec drives the engine through its executable. It mirrors the Wallpaper
// Engine control syntax (`-control <verb> [-file F] [-monitor N]`); other
// engines with the same argv shape work unchanged by pointing Path at them.
type Exec struct {
	// Path is the engine executable.
	Path string
}

// NewExec returns an Exec gateway for the binary at path.
func NewExec(path string) *Exec {
	return &Exec{Path: path}
}

var _ Gateway = (*Exec)(nil)

func openArgs(descriptor string, monitor int) []string {
	return []string{"-control", "openWallpaper", "-file", descriptor, "-monitor", strconv.Itoa(monitor)}
}

func activeArgs(monitor int) []string {
	return []string{"-control", "getWallpaper", "-monitor", strconv.Itoa(monitor)}
}

func monitorsArgs() []string {
	return []string{"-control", "listMonitors"}
}

func staticArgs(image string, monitor int) []string {
	return []string{"-control", "setStaticWallpaper", "-file", image, "-monitor", strconv.Itoa(monitor)}
}

// Open implements Gateway. The engine acknowledges by exiting zero; any
// other outcome is ErrActivationFailed.
func (e *Exec) Open(ctx context.Context, descriptor string, monitor int) error {
	out, err := e.run(ctx, openArgs(descriptor, monitor))
	if err != nil {
		return fmt.Errorf("%w: open %s on monitor %d: %v", ErrActivationFailed, descriptor, monitor, firstLine(out, err))
	}
	return nil
}

// Active implements Gateway. The engine prints the active descriptor path
// on stdout. Failures here are reported, not fatal; callers treat an empty
// result as "unknown".
func (e *Exec) Active(ctx context.Context, monitor int) (string, error) {
	out, err := e.run(ctx, activeArgs(monitor))
	if err != nil {
		return "", fmt.Errorf("get active on monitor %d: %v", monitor, firstLine(out, err))
	}
	return strings.TrimSpace(string(out)), nil
}

// Monitors implements Gateway. The engine prints one display per line:
//
//	<index>\t<device id>\t<active wallpaper path, may be empty>
func (e *Exec) Monitors(ctx context.Context) ([]Monitor, error) {
	out, err := e.run(ctx, monitorsArgs())
	if err != nil {
		return nil, fmt.Errorf("list monitors: %v", firstLine(out, err))
	}
	return parseMonitors(out)
}

// SetStatic implements Gateway.
func (e *Exec) SetStatic(ctx context.Context, monitor int, image string) error {
	out, err := e.run(ctx, staticArgs(image, monitor))
	if err != nil {
		return fmt.Errorf("%w: set static %s on monitor %d: %v", ErrActivationFailed, image, monitor, firstLine(out, err))
	}
	return nil
}

func (e *Exec) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.Path, args...)
	slog.Debug("engine exec", "path", e.Path, "args", args)
	return cmd.CombinedOutput()
}

func parseMonitors(out []byte) ([]Monitor, error) {
	var monitors []Monitor
	for _, line := range bytes.Split(out, []byte("\n")) {
		line = bytes.TrimRight(line, "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		fields := strings.SplitN(string(line), "\t", 3)
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed monitor line %q", line)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("malformed monitor index in %q: %v", line, err)
		}
		m := Monitor{Index: idx, ID: fields[1]}
		if len(fields) == 3 {
			m.Wallpaper = strings.TrimSpace(fields[2])
		}
		monitors = append(monitors, m)
	}
	return monitors, nil
}

// firstLine condenses a failed command's output (or the exec error itself)
// into a single line for error messages.
func firstLine(out []byte, err error) string {
	if trimmed := bytes.TrimSpace(out); len(trimmed) > 0 {
		if i := bytes.IndexByte(trimmed, '\n'); i >= 0 {
			trimmed = trimmed[:i]
		}
		return string(trimmed)
	}
	return err.Error()
}
