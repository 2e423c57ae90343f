package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id"`
}

// ipcResponse is a reply or an event. Events carry a name and no request id.
type ipcResponse struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	Event     string `json:"event"`
	RequestID int    `json:"request_id"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = time.Second
)

// sendCommand runs one mpv command, retrying transient socket failures.
func (m *MPV) sendCommand(command ...any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		m.requestID++
		result, err := exchange(m.socketPath, ipcCommand{Command: command, RequestID: m.requestID})
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

// exchange writes command and reads lines until the reply to it arrives.
func exchange(socketPath string, command ipcCommand) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	return readReply(bufio.NewScanner(conn), command.RequestID)
}

func readReply(scanner *bufio.Scanner, requestID int) (any, error) {
	for scanner.Scan() {
		var response ipcResponse
		if err := json.Unmarshal(scanner.Bytes(), &response); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}

		if response.Event != "" || response.RequestID != requestID {
			continue
		}

		if response.Error != "" && response.Error != "success" {
			return nil, fmt.Errorf("mpv error: %s", response.Error)
		}

		return response.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nil, fmt.Errorf("read: connection closed before reply %d", requestID)
}
