package source

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// getJSON issues a GET against url and decodes the body as JSON into out.
func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return wrapErr(ErrTransport, err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return wrapErr(ErrTransport, err, "GET %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newErr(ErrTransport, "GET %s: status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return wrapErr(ErrDecode, err, "decode JSON from %s", url)
	}
	return nil
}

// getText issues a GET and returns the raw response body as a string.
func getText(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", wrapErr(ErrTransport, err, "build request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", wrapErr(ErrTransport, err, "GET %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newErr(ErrTransport, "GET %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", wrapErr(ErrTransport, err, "read body from %s", url)
	}
	return string(body), nil
}
