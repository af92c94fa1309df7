package upstream

import (
	"fmt"
	"sort"
	"strings"
)

// RemoteError means the marketplace API replied but reported failure
// (success:false). The message is safe to surface to the user; Fields holds
// the optional field-keyed validation error map some endpoints return.
type RemoteError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// JoinedFieldErrors flattens the field error map into one user-facing
// message, one error per line, in stable key order. Empty when the response
// carried no field errors.
func (e *RemoteError) JoinedFieldErrors() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var msgs []string
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k]...)
	}
	return strings.Join(msgs, "\n")
}

// UserMessage is the message to show the user: joined field errors when
// present, the server message otherwise.
func (e *RemoteError) UserMessage() string {
	if joined := e.JoinedFieldErrors(); joined != "" {
		return joined
	}
	return e.Message
}

// TransportError wraps a network or decoding failure. The original error is
// kept for diagnostics; the user sees a generic message.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
