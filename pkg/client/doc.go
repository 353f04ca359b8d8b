// Package client provides clients for the remote services repotools talks to.
//
//   - forge: repositories, files and pull requests on GitHub
//   - netretry: retries for transient GitHub API failures
package client
