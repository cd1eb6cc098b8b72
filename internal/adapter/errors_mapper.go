package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// XRPCError is a failed XRPC call. Name and Message come from the standard
// {"error","message"} response body when the server sent one.
type XRPCError struct {
	Status  int
	Name    string
	Message string
}

func (e *XRPCError) Error() string {
	switch {
	case e.Name != "" && e.Message != "":
		return fmt.Sprintf("xrpc %d %s: %s", e.Status, e.Name, e.Message)
	case e.Name != "":
		return fmt.Sprintf("xrpc %d %s", e.Status, e.Name)
	case e.Message != "":
		return fmt.Sprintf("xrpc %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("xrpc %d: %s", e.Status, http.StatusText(e.Status))
}

// Unwrap returns the sentinel matching the status and error name.
func (e *XRPCError) Unwrap() error {
	if e.Name == "ExpiredToken" {
		return ErrExpiredToken
	}

	switch {
	case e.Status == http.StatusBadRequest:
		return ErrBadRequest
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.Status >= http.StatusInternalServerError:
		return ErrInternalServerError
	}
	return ErrUnexpectedStatus
}

// Reason is the most specific human-readable cause.
func (e *XRPCError) Reason() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Name != "" {
		return e.Name
	}
	return http.StatusText(e.Status)
}

type xrpcErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func mapXRPCError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	xerr := &XRPCError{Status: resp.StatusCode()}

	var body xrpcErrorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		xerr.Name = body.Error
		xerr.Message = body.Message
	} else {
		xerr.Message = strings.TrimSpace(string(resp.Body()))
	}

	return xerr
}
