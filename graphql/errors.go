package graphql

import (
	"fmt"
	"strings"

	"github.com/dlive-cli/dlive/network"
)

// UnknownOperationError is returned when an operation name is not part of the table.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown graphql operation %q", e.Name)
}

// RemoteQueryError is the first error reported by the server.
// It is fatal when the response carries no data and a warning otherwise.
type RemoteQueryError struct {
	Operation string
	Message   string
}

func (e *RemoteQueryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// MalformedResponseError means the response did not have the expected shape.
type MalformedResponseError struct {
	Operation string
	Path      []string
	Reason    string
}

func (e *MalformedResponseError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: malformed response: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("%s: malformed response at %q: %s", e.Operation, strings.Join(e.Path, "."), e.Reason)
}

// TransportError is the network failure shared with other downloads.
type TransportError = network.TransportError

// IsTimeout reports whether err is a TransportError caused by a timeout.
func IsTimeout(err error) bool {
	return network.IsTimeout(err)
}

const unknown = "Unknown error (%s)"

// firstMessage extracts the message of the first entry of an "errors" list.
func firstMessage(errs []any) string {
	if len(errs) == 0 {
		return fmt.Sprintf(unknown, "empty 'errors' list")
	}

	var message string
	switch first := errs[0].(type) {
	case map[string]any:
		raw, ok := first["message"]
		if !ok {
			return fmt.Sprintf(unknown, "missing error 'message'")
		}

		if raw != nil {
			if s, isString := raw.(string); isString {
				message = s
			} else {
				message = fmt.Sprint(raw)
			}
		}
	case string:
		message = first
	case nil:
	default:
		message = fmt.Sprint(first)
	}

	if message == "" {
		return fmt.Sprintf(unknown, "empty error 'message'")
	}

	return message
}
