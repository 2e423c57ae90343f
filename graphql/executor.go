// Package graphql sends named queries to a GraphQL endpoint and unwraps their payloads.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dlive-cli/dlive/log"
	"github.com/dlive-cli/dlive/network"
	"github.com/google/uuid"
)

// WarningSink receives errors reported alongside usable data.
type WarningSink func(err *RemoteQueryError)

// TokenSource returns an access token to send with every request, if any.
type TokenSource func() (string, bool)

// Executor runs operations from a fixed table against one endpoint.
// It never retries.
type Executor struct {
	endpoint string
	table    Table
	client   *http.Client
	timeout  time.Duration
	headers  http.Header
	warn     WarningSink
	token    TokenSource
}

// Option configures an Executor.
type Option func(*Executor)

// WithClient sets the HTTP client used for requests.
func WithClient(client *http.Client) Option {
	return func(e *Executor) {
		e.client = client
	}
}

// WithTimeout bounds every call. Zero means no per-call bound.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Executor) {
		e.timeout = timeout
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(name, value string) Option {
	return func(e *Executor) {
		e.headers.Set(name, value)
	}
}

// WithWarningSink replaces the default sink, which logs at warn level.
func WithWarningSink(sink WarningSink) Option {
	return func(e *Executor) {
		e.warn = sink
	}
}

// WithToken attaches an authorization token when the source yields one.
func WithToken(source TokenSource) Option {
	return func(e *Executor) {
		e.token = source
	}
}

// New returns an Executor for the given endpoint and operations.
func New(endpoint string, table Table, options ...Option) *Executor {
	e := &Executor{
		endpoint: endpoint,
		table:    table,
		client:   network.Client,
		headers:  http.Header{},
		warn: func(err *RemoteQueryError) {
			log.Warn(err)
		},
	}

	e.headers.Set("Accept", "application/json")
	e.headers.Set("Content-Type", "application/json")

	for _, option := range options {
		option(e)
	}

	return e
}

type request struct {
	Query     string `json:"query"`
	Variables Params `json:"variables,omitempty"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// Execute sends the named operation with params and returns the payload
// found at the end of the operation path.
func (e *Executor) Execute(ctx context.Context, name string, params Params) (Result, error) {
	operation, ok := e.table[name]
	if !ok {
		return Result{}, &UnknownOperationError{Name: name}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	logger := log.WithFields(log.Fields{
		"operation": name,
		"request":   uuid.NewString(),
	})

	body, err := json.Marshal(request{Query: operation.Query, Variables: params})
	if err != nil {
		return Result{}, fmt.Errorf("%s: encode request: %w", name, err)
	}

	logger.Debug("sending query")
	payload, err := e.post(ctx, name, body)
	if err != nil {
		logger.Error(err)
		return Result{}, err
	}

	result, err := e.unwrap(name, operation.Path, payload)
	if err != nil {
		logger.Error(err)
		return Result{}, err
	}

	logger.Debug("query succeeded")
	return result, nil
}

func (e *Executor) post(ctx context.Context, name string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", name, err)
	}

	req.Header = e.headers.Clone()
	if e.token != nil {
		if token, ok := e.token(); ok && token != "" {
			req.Header.Set("Authorization", token)
		}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, network.Failed(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, network.Status(name, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, network.Failed(name, err)
	}

	return payload, nil
}

func (e *Executor) unwrap(name string, path []string, payload []byte) (Result, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Result{}, &MalformedResponseError{Operation: name, Reason: err.Error()}
	}

	data := NewResult(env.Data)

	if env.Errors != nil && !NewResult(env.Errors).IsNull() {
		var errs []any
		if err := json.Unmarshal(env.Errors, &errs); err != nil {
			errs = []any{string(env.Errors)}
		}

		remote := &RemoteQueryError{Operation: name, Message: firstMessage(errs)}
		if data.IsNull() {
			return Result{}, remote
		}

		e.warn(remote)
	}

	for i, key := range path {
		next, ok := data.Field(key)
		if !ok {
			return Result{}, &MalformedResponseError{
				Operation: name,
				Path:      path[:i+1],
				Reason:    "missing key",
			}
		}

		data = next
	}

	return data, nil
}
