package forge

import (
	"net/url"

	"github.com/cli/go-gh/v2/pkg/auth"
)

const defaultHost = "github.com"

// ResolveToken returns token when set. Otherwise it falls back to the
// credentials of the GitHub CLI for the API host: GH_TOKEN and friends,
// then the gh config file. An empty result means unauthenticated calls.
func ResolveToken(token, apiURL string) string {
	if token != "" {
		return token
	}

	found, _ := auth.TokenForHost(apiHost(apiURL))

	return found
}

func apiHost(apiURL string) string {
	if apiURL == "" {
		return defaultHost
	}

	parsed, err := url.Parse(apiURL)
	if err != nil || parsed.Hostname() == "" {
		return defaultHost
	}

	return parsed.Hostname()
}
