package player

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/dlive-cli/dlive/constant"
)

// ErrUnsupported is returned by controls a backend does not offer.
var ErrUnsupported = errors.New("not supported by this player")

// IINA launches the macOS IINA player. It cannot be controlled once started.
type IINA struct {
	extra  []string
	cmd    *exec.Cmd
	exited chan struct{}
}

func NewIINA(extra ...string) *IINA {
	exited := make(chan struct{})
	close(exited)
	return &IINA{extra: extra, exited: exited}
}

func (i *IINA) args(target Target) []string {
	// IINA forwards options prefixed with --mpv- to its embedded mpv.
	args := []string{
		"-a", "IINA", "--args",
		fmt.Sprintf("--mpv-force-media-title=%s", sanitizeTitle(target.Title)),
		fmt.Sprintf("--mpv-user-agent=%s", constant.UserAgent),
	}

	if len(target.Headers) > 0 {
		args = append(args, fmt.Sprintf("--mpv-http-header-fields=%s", headerFields(target.Headers)))
	}

	if target.Adaptive {
		for _, arg := range AdaptiveArgs {
			args = append(args, "--mpv-"+arg[2:])
		}
	}

	args = append(args, i.extra...)
	return append(args, target.URL)
}

func (i *IINA) Play(target Target) error {
	if runtime.GOOS != "darwin" {
		return errors.New("IINA is only supported on macOS")
	}

	if _, err := sanitizeMediaTarget(target.URL); err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	i.cmd = exec.Command("open", i.args(target)...)
	if err := i.cmd.Start(); err != nil {
		return fmt.Errorf("LaunchServices failed to invoke IINA: %w", err)
	}

	exited := make(chan struct{})
	i.exited = exited
	cmd := i.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	return nil
}

func (*IINA) TogglePause() error { return ErrUnsupported }

func (*IINA) GetTimePos() (float64, error) { return 0, ErrUnsupported }

func (i *IINA) IsRunning() bool {
	select {
	case <-i.exited:
		return false
	default:
		return true
	}
}

func (i *IINA) Close() error {
	if i.IsRunning() {
		return terminate(i.cmd)
	}
	return nil
}

func (i *IINA) Wait() <-chan struct{} {
	return i.exited
}
