package dlive

import (
	"errors"
	"fmt"
)

// ErrUnavailable means no rendition matched the requested quality.
var ErrUnavailable = errors.New("content unavailable")

// ErrNotFound means the requested channel does not exist.
var ErrNotFound = errors.New("channel not found")

// OfflineError is returned when a channel has no live stream.
type OfflineError struct {
	Displayname string
}

func (e *OfflineError) Error() string {
	return fmt.Sprintf(LabelOffline, e.Displayname)
}
