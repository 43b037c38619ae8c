package soundcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// nullJSON is the body some api-v2 endpoints return for missing objects.
var nullJSON = []byte("null") //nolint:gochecknoglobals // Immutable.

// fetchJSON fetches and decodes JSON from rawURL with client_id added to its query.
// An empty or "null" body leaves Data nil without an error.
//
//nolint:revive // Has no sense, it's cause Go doesn't allow struct methods to be generic.
func fetchJSON[T any](c *ClientImpl, ctx context.Context, rawURL string) (*FetchJSONResult[T], error) {
	requestURL, err := c.withClientID(rawURL)
	if err != nil {
		return nil, err
	}

	response, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if response.StatusCode != http.StatusOK {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, nullJSON) {
		return &FetchJSONResult[T]{StatusCode: response.StatusCode}, nil
	}

	var result T
	if err = json.Unmarshal(body, &result); err != nil {
		return &FetchJSONResult[T]{
			Data:       nil,
			StatusCode: response.StatusCode,
		}, fmt.Errorf("failed to decode response: %w", err)
	}

	return &FetchJSONResult[T]{
		Data:       &result,
		StatusCode: response.StatusCode,
	}, nil
}

// withClientID adds the client ID to the query of rawURL, keeping other parameters.
func (c *ClientImpl) withClientID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	query := parsed.Query()
	query.Set(clientIDParam, c.cfg.ClientID)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// get performs a GET request. The caller closes the body.
func (c *ClientImpl) get(ctx context.Context, rawURL string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	return c.httpClient.Do(request)
}

// getOK performs a GET request and fails on any status but 200. The caller closes the body.
func (c *ClientImpl) getOK(ctx context.Context, rawURL string) (*http.Response, error) {
	response, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	return response, nil
}

// readAll performs a GET request and returns the whole body.
func (c *ClientImpl) readAll(ctx context.Context, rawURL string) ([]byte, error) {
	response, err := c.getOK(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	return io.ReadAll(response.Body)
}
