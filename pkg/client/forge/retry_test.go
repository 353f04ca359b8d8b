package forge_test

import (
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openedx/repotools/pkg/client/forge"
	"github.com/openedx/repotools/pkg/client/netretry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // read-only test policy
var fastRetry = netretry.Policy{Attempts: 3, BaseWait: time.Millisecond, MaxWait: time.Millisecond}

func TestRetryingClientRetriesServerErrors(t *testing.T) {
	t.Parallel()

	client, mux := newTestClient(t)

	var calls atomic.Int32

	mux.HandleFunc("GET /repos/edx/app", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}

		_, _ = w.Write([]byte(`{"full_name":"edx/app","default_branch":"master"}`))
	})

	info, err := forge.NewRetryingClient(client, fastRetry).Repository(t.Context(), testRepo)

	require.NoError(t, err)
	assert.Equal(t, "master", info.DefaultBranch)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetryingClientDoesNotRetryNotFound(t *testing.T) {
	t.Parallel()

	client, mux := newTestClient(t)

	var calls atomic.Int32

	mux.HandleFunc("GET /repos/edx/app/contents/openedx.yaml", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := forge.NewRetryingClient(client, fastRetry).ReadText(t.Context(), testRepo, "openedx.yaml", "")

	require.ErrorIs(t, err, forge.ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetryingClientDoesNotRetryWrites(t *testing.T) {
	t.Parallel()

	client, mux := newTestClient(t)

	var calls atomic.Int32

	mux.HandleFunc("PUT /repos/edx/app/contents/openedx.yaml", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	err := forge.NewRetryingClient(client, fastRetry).WriteText(t.Context(), testRepo, forge.FileChange{
		Path:    "openedx.yaml",
		Content: "owner: jdoe\n",
		Branch:  "add-openedx-yaml",
		Message: "Add openedx.yaml",
	})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
