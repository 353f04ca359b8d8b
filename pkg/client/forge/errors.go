package forge

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v72/github"
)

var (
	// ErrNotFound is returned when a repository, branch, file or ref does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the token lacks permission for a write.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidRepoRef is returned for repository names not shaped like owner/name.
	ErrInvalidRepoRef = errors.New("invalid repository reference")
)

// classify maps API status codes onto the package sentinels while keeping the
// original error in the chain.
func classify(resp *github.Response, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	message := fmt.Sprintf(format, args...)

	switch statusCode(resp, err) {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w: %w", message, ErrNotFound, err)
	case http.StatusForbidden, http.StatusUnauthorized:
		return fmt.Errorf("%s: %w: %w", message, ErrForbidden, err)
	default:
		return fmt.Errorf("%s: %w", message, err)
	}
}

func statusCode(resp *github.Response, err error) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}

	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		return apiErr.Response.StatusCode
	}

	return 0
}
