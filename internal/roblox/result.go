package roblox

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrAbsent is the cause recorded when a Result carries no data and no more
// specific reason is known.
var ErrAbsent = errors.New("no data")

// Result is the outcome of a single GET against the platform. It is either
// OK (a JSON body is available) or Absent. Transport errors, non-200
// statuses and undecodable bodies all collapse into Absent; callers handle a
// single failure path and never receive a Go error from the transport.
type Result struct {
	cause  error
	body   []byte
	status int
	ok     bool
}

func okResult(status int, body []byte) Result {
	return Result{status: status, body: body, ok: true}
}

func absentResult(status int, cause error) Result {
	if cause == nil {
		cause = ErrAbsent
	}
	return Result{status: status, cause: cause}
}

// OK reports whether the request produced a JSON body.
func (r Result) OK() bool {
	return r.ok
}

// Status is the HTTP status code, or 0 when no response was received.
func (r Result) Status() int {
	return r.status
}

// Cause explains an Absent result. It is diagnostic only and nil for OK.
func (r Result) Cause() error {
	if r.ok {
		return nil
	}
	return r.cause
}

// Decode unmarshals the body into v. It returns false for Absent results and
// for bodies that do not match v.
func (r Result) Decode(v any) bool {
	if !r.ok {
		return false
	}
	return json.Unmarshal(r.body, v) == nil
}

// demote turns an OK result into an Absent one, keeping the status.
func (r Result) demote(format string, args ...any) Result {
	return absentResult(r.status, fmt.Errorf(format, args...))
}
