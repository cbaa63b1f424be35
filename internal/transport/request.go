package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"

	"github.com/hmcts/dtsse-ardoq-adapter/pkg/errors"
	"github.com/hmcts/dtsse-ardoq-adapter/pkg/logging"
)

// maxErrorBody caps how much of a failed response is kept in an error.
const maxErrorBody = 512

// DecodeResponse closes resp and decodes its JSON body into target.
// A status outside expected (200 when none given) becomes an *errors.APIError.
// target may be nil when only the status matters.
func DecodeResponse(resp *http.Response, target any, expected ...int) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	if len(expected) == 0 {
		expected = []int{http.StatusOK}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapResource("read", "response body", "", err)
	}

	if !slices.Contains(expected, resp.StatusCode) {
		message := string(body)
		if len(message) > maxErrorBody {
			message = message[:maxErrorBody]
		}
		apiErr := errors.NewAPIError("ardoq", resp.StatusCode, message)
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = resp.Request.Method + " " + resp.Request.URL.Path
		}
		return apiErr
	}

	if target == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}
