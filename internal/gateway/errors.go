package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Error taxonomy by origin. Callers branch with errors.Is; the concrete
// message always carries whatever the server said.
var (
	// ErrAuthentication marks a 401 that survived the refresh attempt, or a
	// failed refresh itself. It is the only error kind whose handling mutates
	// global state (the credential store is cleared before it is returned).
	ErrAuthentication = errors.New("authentication failed")
	// ErrAuthorization marks a 403: the session is valid but lacks rank.
	ErrAuthorization = errors.New("permission denied")
	// ErrValidation marks a 400; it never mutates session or collection state.
	ErrValidation = errors.New("invalid request")
	// ErrNotFound marks a 404.
	ErrNotFound = errors.New("resource not found")
	// ErrServer marks a 5xx.
	ErrServer = errors.New("server error")
)

const maxErrorBody = 64 << 10
const maxResponseBody = 8 << 20

// DecodeResponse translates a response into target or into a taxonomy
// error. Status interpretation happens here, not in the gateway's request
// path, so the protocol layer stays transparent.
func DecodeResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if target == nil {
		if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody)); err != nil {
			return fmt.Errorf("gateway: discard response body: %w", err)
		}
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("gateway: read response body: %w", err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}

// statusError maps an error response to the taxonomy, pulling the server's
// message out of the body when one is present.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(gjson.GetBytes(body, "message").String())

	kind := kindForStatus(resp.StatusCode)
	if msg == "" {
		return fmt.Errorf("%w (status %d)", kind, resp.StatusCode)
	}
	return fmt.Errorf("%w: %s", kind, msg)
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest:
		return ErrValidation
	case status == http.StatusUnauthorized:
		return ErrAuthentication
	case status == http.StatusForbidden:
		return ErrAuthorization
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrServer
	default:
		return fmt.Errorf("request failed")
	}
}
