package network

import (
	"io"
	"net/http"
	"strings"

	"github.com/anisan-cli/anisync/fault"
)

// maxErrorBody bounds how much of a failed response is quoted in the error.
const maxErrorBody = 256

// Do sends req and classifies a failure to get any response as a transport error.
func Do(client *http.Client, provider string, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fault.Wrap(fault.Transport, provider, err, req.Method+" "+req.URL.Path)
	}
	return resp, nil
}

// Check classifies a non-2xx response and closes its body.
// 401 and 403 are auth failures, 409 and 422 are provider rejections, anything else is transport.
func Check(provider string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	var kind fault.Kind
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = fault.Auth
	case http.StatusConflict, http.StatusUnprocessableEntity:
		kind = fault.Rejected
	default:
		kind = fault.Transport
	}

	return fault.New(kind, provider, "%s %s: %d %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, detail)
}

// ReadAll drains and closes body, classifying a read failure as a transport error.
func ReadAll(provider string, resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fault.Wrap(fault.Transport, provider, err, "read response")
	}
	return body, nil
}
