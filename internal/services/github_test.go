package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGithubReposPassthrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/alice/repos":
			require.Equal(t, "5", r.URL.Query().Get("per_page"))
			require.Equal(t, "token test-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name":"dotfiles"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	svc := &githubService{
		log:     testLogger(t).With("service", "GithubService"),
		client:  &http.Client{Timeout: time.Second},
		baseURL: upstream.URL,
		token:   "test-token",
	}

	body, err := svc.Repos(context.Background(), "alice")
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"dotfiles"}]`, string(body))

	_, err = svc.Repos(context.Background(), "ghost")
	requireStatus(t, err, http.StatusNotFound)
}
