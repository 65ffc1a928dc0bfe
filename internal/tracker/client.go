// Package tracker is the HTTP client for the JIRA issue search and Tempo
// timesheet endpoints.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	searchPath   = "rest/api/2/search"
	myselfPath   = "rest/api/2/myself"
	userPath     = "rest/api/2/user"
	worklogPath  = "rest/tempo-timesheets/4/worklogs"
	approvalPath = "rest/tempo-timesheets/4/timesheet-approval"

	defaultPageSize = 100
	maxErrorBody    = 4 << 10
)

// Client talks to one tracker instance with a bearer token.
type Client struct {
	base     *url.URL
	http     *http.Client
	log      zerolog.Logger
	observer Observer
	pageSize int
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	transport http.RoundTripper
	log       zerolog.Logger
	observer  Observer
	pageSize  int
}

// WithTransport sets the round tripper underneath the bearer-token transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

func WithLogger(log zerolog.Logger) Option {
	return func(o *clientOptions) { o.log = log }
}

func WithObserver(obs Observer) Option {
	return func(o *clientOptions) { o.observer = obs }
}

// WithPageSize sets maxResults for issue search pages.
func WithPageSize(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// NewClient creates a Client for the tracker rooted at base. base must end
// in a slash so API paths resolve beneath it.
func NewClient(base *url.URL, token string, opts ...Option) *Client {
	o := clientOptions{
		log:      zerolog.Nop(),
		observer: NoopObserver{},
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = NoopObserver{}
	}

	ctx := context.Background()
	if o.transport != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: o.transport})
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})

	return &Client{
		base:     base,
		http:     oauth2.NewClient(ctx, src),
		log:      o.log,
		observer: o.observer,
		pageSize: o.pageSize,
	}
}

// SearchAssignedIssues returns the current user's issues that are not done
// or changed status after doneSince, following search pagination.
func (c *Client) SearchAssignedIssues(ctx context.Context, doneSince time.Time) ([]*domain.Issue, error) {
	req := issueSearchRequest{
		JQL:        AssignedIssuesJQL(doneSince),
		Fields:     []string{"*navigable"},
		MaxResults: c.pageSize,
	}

	var issues []*domain.Issue
	for {
		var resp issueSearchResponse
		if err := c.do(ctx, "search issues", http.MethodPost, searchPath, nil, req, &resp); err != nil {
			return nil, err
		}
		for _, is := range resp.Issues {
			issues = append(issues, &domain.Issue{IssueKey: is.Key, Fields: is.Fields})
		}
		req.StartAt += len(resp.Issues)
		if len(resp.Issues) == 0 || req.StartAt >= resp.Total {
			break
		}
	}
	return issues, nil
}

// CreateWorklog posts one worklog. Attributes sharing a key collapse to the
// last one given.
func (c *Client) CreateWorklog(ctx context.Context, w domain.Worklog) error {
	attrs := make(map[string]worklogAttribute, len(w.Attributes))
	for _, a := range w.Attributes {
		attrs[a.Key] = worklogAttribute{
			Name:            a.Name,
			WorkAttributeID: a.WorkAttributeID,
			Value:           a.Value,
		}
	}
	body := createWorklogRequest{
		Worker:           w.Worker,
		Started:          w.Date.Format(DateLayout),
		TimeSpentSeconds: int64(w.Duration / time.Second),
		OriginTaskID:     w.TaskKey,
		Attributes:       attrs,
	}
	return c.do(ctx, "create worklog", http.MethodPost, worklogPath, nil, body, nil)
}

// SubmitForApproval submits worker's timesheet period starting at
// periodStart to reviewer.
func (c *Client) SubmitForApproval(ctx context.Context, worker, reviewer string, periodStart time.Time) error {
	body := approvalRequest{
		User:   userRef{Key: worker},
		Period: approvalPeriod{DateFrom: periodStart.Format(DateLayout)},
		Action: approvalAction{Name: "submit", Reviewer: userRef{Key: reviewer}},
	}
	return c.do(ctx, "submit timesheet", http.MethodPost, approvalPath, nil, body, nil)
}

// ResolveUserKey returns the opaque user key for username.
func (c *Client) ResolveUserKey(ctx context.Context, username string) (string, error) {
	var resp userResponse
	err := c.do(ctx, "resolve user", http.MethodGet, userPath, url.Values{"username": {username}}, nil, &resp)
	if StatusCode(err) == http.StatusNotFound {
		return "", errors.WithHint(errors.Wrapf(ErrUserNotFound, "%q", username), "check the username spelling")
	}
	if err != nil {
		return "", err
	}
	if resp.Key == "" {
		return "", errors.Wrapf(ErrUserNotFound, "%q", username)
	}
	return resp.Key, nil
}

// HealthCheck verifies the tracker is reachable and accepts the token.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, "health check", http.MethodGet, myselfPath, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, op, method, path, query, body, out)

	event := CallEvent{
		Op:         op,
		Method:     method,
		Path:       path,
		StatusCode: status,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		event.ErrorCode = errorCode(err)
	}
	c.observer.OnCallComplete(event)
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, query url.Values, body, out any) (int, error) {
	ref := &url.URL{Path: path, RawQuery: query.Encode()}
	target := c.base.ResolveReference(ref)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, errors.Wrapf(err, "%s: marshaling request", op)
		}
		c.log.Debug().Str("op", op).RawJSON("body", data).Msg("request contents")
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: creating request", op)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "%s", op), ErrTransport)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, statusError(op, resp.StatusCode, data)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, errors.Wrapf(err, "%s: decoding response", op)
	}
	return resp.StatusCode, nil
}

func statusError(op string, code int, body []byte) error {
	var err error = &StatusError{Op: op, StatusCode: code, Body: strings.TrimSpace(string(body))}
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		err = errors.WithHint(err, "check that JIRA_TOKEN holds a valid personal access token")
	case http.StatusNotFound:
		err = errors.WithHint(err, "check api_endpoint in the config file")
	}
	return err
}

func errorCode(err error) string {
	if errors.Is(err, ErrTransport) {
		return "transport"
	}
	if code := StatusCode(err); code != 0 {
		return "status_" + strconv.Itoa(code)
	}
	return "decode"
}
