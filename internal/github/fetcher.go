package github

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"

	gh "github.com/google/go-github/v66/github"
)

// Fetcher lists a candidate's public repositories.
type Fetcher struct {
	client   *gh.Client
	hasToken bool
}

// NewFetcher builds a Fetcher. An empty token yields a fetcher whose
// FetchProfile always fails with KindNoCredential, so callers can construct
// it unconditionally and let the request degrade.
func NewFetcher(token string) *Fetcher {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Fetcher{client: client, hasToken: token != ""}
}

// NewFetcherWithBaseURL points the underlying client at an alternate API
// endpoint, used by tests.
func NewFetcherWithBaseURL(token, baseURL string) (*Fetcher, error) {
	f := NewFetcher(token)
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	f.client.BaseURL = parsed
	return f, nil
}

// FetchProfile lists all public repositories for username, in API order.
// MatchReason and Audit start unset; the matcher and auditor fill them in.
func (f *Fetcher) FetchProfile(ctx context.Context, username string) ([]*RepositoryRecord, error) {
	if !f.hasToken {
		return nil, &FetchError{Kind: KindNoCredential, User: username}
	}

	opts := &gh.RepositoryListByUserOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var records []*RepositoryRecord
	for {
		repos, resp, err := f.client.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, classifyFetchError(username, err)
		}
		for _, repo := range repos {
			records = append(records, &RepositoryRecord{
				Name:        repo.GetName(),
				URL:         repo.GetHTMLURL(),
				Description: repo.GetDescription(),
				Stars:       repo.GetStargazersCount(),
				PushedAt:    repo.GetPushedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Printf("github: found %d public repositories for %s", len(records), username)
	return records, nil
}

func classifyFetchError(username string, err error) *FetchError {
	var apiErr *gh.ErrorResponse
	if errors.As(err, &apiErr) {
		switch apiErr.Response.StatusCode {
		case http.StatusNotFound:
			return &FetchError{Kind: KindUserNotFound, User: username, Err: err}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &FetchError{Kind: KindNoCredential, User: username, Err: err}
		}
	}
	return &FetchError{Kind: KindTransport, User: username, Err: err}
}
