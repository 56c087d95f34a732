package platform

import (
	"encoding/json"
	"fmt"
	"os"
)

// Event is the slice of a GitHub webhook payload the runner routes on. The
// same shape covers pull_request and issue_comment events; unused fields
// stay zero.
type Event struct {
	Action string `json:"action"`

	PullRequest struct {
		Number int `json:"number"`
	} `json:"pull_request"`

	Issue struct {
		Number int `json:"number"`
		// Present only when the issue is a pull request.
		PullRequest json.RawMessage `json:"pull_request"`
	} `json:"issue"`

	Comment struct {
		ID   int64  `json:"id"`
		Body string `json:"body"`
	} `json:"comment"`

	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// LoadEvent reads and decodes a webhook payload file, typically the one
// GITHUB_EVENT_PATH points at.
func LoadEvent(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode event payload: %w", err)
	}
	return &ev, nil
}

// PRNumber returns the pull request number regardless of event shape:
// pull_request events carry it directly, comment events via the issue.
func (e *Event) PRNumber() int {
	if e.PullRequest.Number != 0 {
		return e.PullRequest.Number
	}
	return e.Issue.Number
}

// IsPullRequestComment reports whether a comment event targets a pull
// request rather than a plain issue.
func (e *Event) IsPullRequestComment() bool {
	return len(e.Issue.PullRequest) > 0
}
