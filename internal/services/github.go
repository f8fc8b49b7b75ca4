package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/devconnect/devconnect-backend/internal/platform/apierr"
	"github.com/devconnect/devconnect-backend/internal/platform/logger"
)

const githubAPIBase = "https://api.github.com"

// GithubService is an unrelated read-through passthrough to the GitHub
// repository listing API: the five most recently created public repos for a
// username, returned verbatim.
type GithubService interface {
	Repos(ctx context.Context, username string) ([]byte, error)
}

type githubService struct {
	log     *logger.Logger
	client  *http.Client
	baseURL string
	token   string
}

func NewGithubService(log *logger.Logger, token string) GithubService {
	serviceLog := log.With("service", "GithubService")
	return &githubService{
		log:     serviceLog,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: githubAPIBase,
		token:   token,
	}
}

func (s *githubService) Repos(ctx context.Context, username string) ([]byte, error) {
	uri := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", s.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, apierr.Internal("github_request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.token != "" {
		req.Header.Set("Authorization", "token "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apierr.NotFound("no_github_profile", errors.New("no github profile found"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Debug("github lookup failed", "username", username, "status", resp.StatusCode)
		return nil, apierr.NotFound("no_github_profile", errors.New("no github profile found"))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Internal("github_response", err)
	}
	return body, nil
}
