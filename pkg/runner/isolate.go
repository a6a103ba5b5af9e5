package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/clapval/clapval/pkg/result"
	"golang.org/x/sys/unix"
)

// runIsolated spawns `self run-single --plugin-path P --plugin-id ID
// --test NAME`, enforcing opts.Timeout with SIGKILL and classifying the
// outcome per the external-interfaces IPC contract: exactly one result
// line on stdout, or a nonzero exit with no valid line treated as a crash.
func runIsolated(target Target, pluginID, name string, opts Options) result.Result {
	ctx := context.Background()
	var cancel context.CancelFunc
	if opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	args := []string{"run-single",
		"--plugin-path", target.Path,
		"--plugin-id", pluginID,
		"--test", name,
	}
	if opts.BlockSize > 0 {
		args = append(args, "--block-size", strconv.Itoa(opts.BlockSize))
	}
	cmd := exec.CommandContext(ctx, opts.SelfPath, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return result.Result{PluginID: pluginID, TestName: name, Status: result.StatusTimedOut,
			Details: fmt.Sprintf("child killed after %s", opts.Timeout)}
	}

	if r, ok := parseResultLine(stdout.Bytes()); ok {
		return r
	}

	if err != nil {
		return result.Result{PluginID: pluginID, TestName: name, Status: result.StatusCrashed,
			Details: fmt.Sprintf("child exited without a result line: %v; stderr: %s", err, stderr.String())}
	}
	return result.Failed(pluginID, name, fmt.Sprintf("child exited cleanly without a result line; stdout: %q", stdout.String()))
}

// parseResultLine extracts the single structured result line a run-single
// child writes to stdout, tolerating trailing blank lines or interleaved
// log noise on other lines.
func parseResultLine(out []byte) (result.Result, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var r result.Result
		if err := json.Unmarshal(line, &r); err == nil && r.TestName != "" {
			return r, true
		}
	}
	return result.Result{}, false
}
