// Package forge wraps the code-forge API calls the OEP-2 sync needs.
//
// The Client interface is deliberately narrow: read and write a text file on a
// ref, ensure a branch exists, and find, create or update a pull request. The
// GitHub implementation talks to the REST API through go-github; failures and
// retries are the remote's concern and are surfaced unchanged apart from the
// ErrNotFound and ErrForbidden classifications.
package forge
