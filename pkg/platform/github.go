package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const defaultGitHubAPIURL = "https://api.github.com"

// GitHubClient implements Platform for GitHub.
type GitHubClient struct {
	token   string
	repo    string // owner/repo format
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewGitHubClient creates a GitHub platform client. GITHUB_API_URL overrides
// the endpoint for GitHub Enterprise installations.
func NewGitHubClient(token, repo string, logger zerolog.Logger) *GitHubClient {
	baseURL := os.Getenv("GITHUB_API_URL")
	if baseURL == "" {
		baseURL = defaultGitHubAPIURL
	}

	return &GitHubClient{
		token:   token,
		repo:    repo,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// SetBaseURL sets a custom API base URL.
func (g *GitHubClient) SetBaseURL(url string) {
	g.baseURL = url
}

// Name returns the platform name.
func (g *GitHubClient) Name() string {
	return "github"
}

// githubPR mirrors the fields of the pull request API response we use.
type githubPR struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	User   struct {
		Login string `json:"login"`
	} `json:"user"`
	Head struct {
		Ref string `json:"ref"`
		SHA string `json:"sha"`
	} `json:"head"`
	Base struct {
		Ref string `json:"ref"`
	} `json:"base"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

// GetDiff retrieves the unified diff for a pull request using GitHub's diff
// media type.
func (g *GitHubClient) GetDiff(ctx context.Context, prID int) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/pulls/%d", g.baseURL, g.repo, prID)
	body, err := g.get(ctx, endpoint, "application/vnd.github.v3.diff")
	if err != nil {
		return "", fmt.Errorf("failed to get diff for PR #%d: %w", prID, err)
	}
	return string(body), nil
}

// GetPRInfo retrieves pull request metadata.
func (g *GitHubClient) GetPRInfo(ctx context.Context, prID int) (*PRInfo, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/pulls/%d", g.baseURL, g.repo, prID)
	body, err := g.get(ctx, endpoint, "application/vnd.github.v3+json")
	if err != nil {
		return nil, fmt.Errorf("failed to get PR #%d: %w", prID, err)
	}

	var pr githubPR
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to decode PR response: %w", err)
	}

	info := &PRInfo{
		Number:     pr.Number,
		Title:      pr.Title,
		Body:       pr.Body,
		Author:     pr.User.Login,
		BaseBranch: pr.Base.Ref,
		HeadBranch: pr.Head.Ref,
		HeadSHA:    pr.Head.SHA,
	}
	for _, l := range pr.Labels {
		info.Labels = append(info.Labels, l.Name)
	}
	return info, nil
}

// GetFile retrieves a file's raw content at a ref.
func (g *GitHubClient) GetFile(ctx context.Context, path, ref string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/contents/%s", g.baseURL, g.repo, path)
	if ref != "" {
		endpoint += "?ref=" + url.QueryEscape(ref)
	}
	body, err := g.get(ctx, endpoint, "application/vnd.github.v3.raw")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// PostComment posts a comment on a pull request.
func (g *GitHubClient) PostComment(ctx context.Context, opts CommentOptions) error {
	if opts.PRID == 0 {
		return fmt.Errorf("PR ID is required")
	}

	payload, err := json.Marshal(map[string]string{"body": opts.Body})
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/issues/%d/comments", g.baseURL, g.repo, opts.PRID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	g.setHeaders(req, "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to post comment (status %d): %s", resp.StatusCode, string(respBody))
	}

	g.logger.Info().Int("pr", opts.PRID).Msg("posted review comment")
	return nil
}

// AddReaction adds an emoji reaction to an issue comment, used to signal
// that a command is being processed. Failures are the caller's to ignore.
func (g *GitHubClient) AddReaction(ctx context.Context, commentID int64, content string) error {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("failed to marshal reaction: %w", err)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/issues/comments/%d/reactions", g.baseURL, g.repo, commentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	g.setHeaders(req, "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to add reaction: %w", err)
	}
	defer resp.Body.Close()

	// 200 when the reaction already existed, 201 when created.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to add reaction (status %d)", resp.StatusCode)
	}
	return nil
}

// get performs an authenticated GET and returns the response body.
func (g *GitHubClient) get(ctx context.Context, endpoint, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	g.setHeaders(req, accept)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return io.ReadAll(resp.Body)
}

func (g *GitHubClient) setHeaders(req *http.Request, accept string) {
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", "review-runner/1.0")
}
