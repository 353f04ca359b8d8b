package forge

import "github.com/openedx/repotools/pkg/client/netretry"

// Factory builds Clients from credentials resolved at command run time.
type Factory interface {
	New(token, apiURL string) (Client, error)
}

// GitHubFactory builds GitHubClients whose reads are retried with
// netretry.DefaultPolicy.
type GitHubFactory struct{}

// New returns a client for token and apiURL. An empty token is resolved
// with ResolveToken.
func (GitHubFactory) New(token, apiURL string) (Client, error) {
	client, err := NewGitHubClient(ResolveToken(token, apiURL), apiURL)
	if err != nil {
		return nil, err
	}

	return NewRetryingClient(client, netretry.DefaultPolicy), nil
}
