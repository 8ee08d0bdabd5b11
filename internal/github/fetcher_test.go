package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProfile_NoTokenShortCircuits(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	fetcher, err := NewFetcherWithBaseURL("", srv.URL+"/")
	require.NoError(t, err)

	_, err = fetcher.FetchProfile(context.Background(), "alice")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindNoCredential, fetchErr.Kind)
	assert.Equal(t, "alice", fetchErr.User)
	assert.Zero(t, hits.Load(), "no request should leave the process without a token")
}

func TestFetchProfile_UserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))
	defer srv.Close()

	fetcher, err := NewFetcherWithBaseURL("token", srv.URL+"/")
	require.NoError(t, err)

	_, err = fetcher.FetchProfile(context.Background(), "ghost")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindUserNotFound, fetchErr.Kind)
	assert.Equal(t, "ghost", fetchErr.User)
}

func TestFetchProfile_BadCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "Bad credentials"}`)
	}))
	defer srv.Close()

	fetcher, err := NewFetcherWithBaseURL("stale-token", srv.URL+"/")
	require.NoError(t, err)

	_, err = fetcher.FetchProfile(context.Background(), "alice")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindNoCredential, fetchErr.Kind)
}

func TestFetchProfile_PaginatesAndMapsFields(t *testing.T) {
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/alice/repos", r.URL.Path)
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"name": "dotfiles", "html_url": "https://github.com/alice/dotfiles"}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/users/alice/repos?page=2>; rel="next"`, srvURL))
		fmt.Fprint(w, `[{
			"name": "insight-lens",
			"html_url": "https://github.com/alice/insight-lens",
			"description": "Turn screenshots into insights",
			"stargazers_count": 42,
			"pushed_at": "2024-11-02T10:30:00Z"
		}]`)
	}))
	defer srv.Close()
	srvURL = srv.URL

	fetcher, err := NewFetcherWithBaseURL("token", srv.URL+"/")
	require.NoError(t, err)

	records, err := fetcher.FetchProfile(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "insight-lens", first.Name)
	assert.Equal(t, "https://github.com/alice/insight-lens", first.URL)
	assert.Equal(t, "Turn screenshots into insights", first.Description)
	assert.Equal(t, 42, first.Stars)
	assert.Equal(t, 2024, first.PushedAt.Year())
	assert.Empty(t, first.MatchReason)
	assert.Nil(t, first.Audit)

	assert.Equal(t, "dotfiles", records[1].Name)
}

func TestFetchError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &FetchError{Kind: KindTransport, User: "alice", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "alice")
}
