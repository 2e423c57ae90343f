package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dlive-cli/dlive/constant"
	"github.com/dlive-cli/dlive/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// AdaptiveArgs are passed to mpv when playing a master playlist adaptively.
var AdaptiveArgs = []string{"--hls-bitrate=max"}

// MPV plays targets with mpv and controls it over JSON-IPC.
type MPV struct {
	executable string
	extra      []string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}

	mu        sync.Mutex
	requestID int
}

// NewMPV returns an idle player that runs executable with extra arguments.
func NewMPV(executable string, extra ...string) *MPV {
	exited := make(chan struct{})
	close(exited)

	return &MPV{
		executable: executable,
		extra:      extra,
		exited:     exited,
	}
}

// Play starts mpv on target. A running instance is closed first.
func (m *MPV) Play(target Target) error {
	if m.IsRunning() {
		if err := m.Close(); err != nil {
			return err
		}
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Dlive, randomBytes))
	}

	args, err := m.args(target)
	if err != nil {
		return err
	}

	log.Infof("starting %s for %s", m.executable, target.Title)
	m.cmd = exec.Command(m.executable, args...)
	detach(m.cmd)

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.executable, err)
	}

	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing %s: socket never became ready", m.executable)
			_ = terminate(cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// args builds the mpv command line for target.
// The user's mpv.conf is respected: only the socket, title and stream options are set.
func (m *MPV) args(target Target) ([]string, error) {
	media, err := sanitizeMediaTarget(target.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	title := sanitizeTitle(target.Title)
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--force-window=yes",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", title),
		fmt.Sprintf("--title=%s", title),
		fmt.Sprintf("--user-agent=%s", constant.UserAgent),
	}

	if len(target.Headers) > 0 {
		args = append(args, fmt.Sprintf("--http-header-fields=%s", headerFields(target.Headers)))
	}

	if target.Adaptive {
		args = append(args, AdaptiveArgs...)
	}

	args = append(args, m.extra...)
	return append(args, "--", media), nil
}

// Wait returns a channel that is closed when mpv exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before its socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// GetTimePos returns the playback position in seconds.
func (m *MPV) GetTimePos() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// IsRunning reports whether mpv is alive.
func (m *MPV) IsRunning() bool {
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Close asks mpv to quit and kills it if it does not.
func (m *MPV) Close() error {
	if !m.IsRunning() {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = terminate(m.cmd)
		<-m.exited
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// TogglePause inverts the pause state.
func (m *MPV) TogglePause() error {
	_, err := m.sendCommand("cycle", "pause")
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	value, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return value, nil
}

// sanitizeMediaTarget accepts http(s) URLs and local paths only.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("url must not start with '-'")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
