package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"tarediiran-industries.com/rail-dss/internal/web/dashboard_web"
)

// StatusError is a non-2xx answer from the dashboard. Body is kept so callers
// like health can still report it.
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("dashboard returned %d: %s", err.StatusCode, err.Message)
}

func (app *DssCtlApp) endpoint(path string, query url.Values) string {
	endpoint := app.Server + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

func (app *DssCtlApp) do(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, app.endpoint(path, query), nil)
	if err != nil {
		return nil, err
	}

	resp, err := app.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode), Body: body}
		var problem dashboard_web.ErrorResponse
		if json.Unmarshal(body, &problem) == nil && problem.Error != "" {
			statusErr.Message = problem.Error
			if problem.Details != "" {
				statusErr.Message += ": " + problem.Details
			}
		}
		return body, statusErr
	}

	return body, nil
}

func (app *DssCtlApp) fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return app.do(ctx, http.MethodGet, path, query)
}

func (app *DssCtlApp) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := app.fetch(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func decodeJSON(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
