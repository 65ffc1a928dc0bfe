package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL + "/jira/")
	require.NoError(t, err)
	return NewClient(base, "secret-token", opts...), srv
}

func TestSearchAssignedIssues_PaginatesAndAuthenticates(t *testing.T) {
	var starts []int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jira/rest/api/2/search", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		var req issueSearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.JQL, `status CHANGED AFTER "2026-10-11"`)
		assert.Contains(t, req.JQL, "assignee IN (currentUser())")
		assert.Equal(t, []string{"*navigable"}, req.Fields)
		assert.Equal(t, 2, req.MaxResults)
		starts = append(starts, req.StartAt)

		var issues []map[string]any
		for i := req.StartAt; i < req.StartAt+2 && i < 3; i++ {
			issues = append(issues, map[string]any{
				"key":    fmt.Sprintf("ABC-%d", i+1),
				"fields": map[string]any{"summary": fmt.Sprintf("Issue %d", i+1), "customfield_100": "ACC"},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"startAt": req.StartAt, "maxResults": 2, "total": 3, "issues": issues})
	}, WithPageSize(2))

	doneSince := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)
	issues, err := client.SearchAssignedIssues(context.Background(), doneSince)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, starts)
	require.Len(t, issues, 3)
	assert.Equal(t, "ABC-1", issues[0].Key())
	assert.Equal(t, "Issue 3", issues[2].Summary())
	assert.Equal(t, "ACC", issues[0].Fields["customfield_100"])
}

func TestSearchAssignedIssues_EmptyPageStops(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{"total": 50, "issues": []any{}})
	})

	issues, err := client.SearchAssignedIssues(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, 1, calls)
}

func TestCreateWorklog_Payload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jira/rest/tempo-timesheets/4/worklogs", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body createWorklogRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "JIRAUSER100", body.Worker)
		assert.Equal(t, "2026-10-12", body.Started)
		assert.Equal(t, int64(4*3600), body.TimeSpentSeconds)
		assert.Equal(t, "ABC-1", body.OriginTaskID)
		assert.Equal(t, map[string]worklogAttribute{
			"_Account_": {Name: "Account", WorkAttributeID: 3, Value: "STATIC"},
			"_Type_":    {Name: "Type", WorkAttributeID: 4, Value: "Dev"},
		}, body.Attributes)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"tempoWorklogId": 1}]`))
	})

	err := client.CreateWorklog(context.Background(), domain.Worklog{
		Worker:   "JIRAUSER100",
		Date:     time.Date(2026, 10, 12, 0, 0, 0, 0, time.Local),
		TaskKey:  "ABC-1",
		Duration: 4 * time.Hour,
		Attributes: []domain.WorkAttribute{
			{Key: "_Account_", Name: "Account", WorkAttributeID: 3, Value: "DYNAMIC"},
			{Key: "_Type_", Name: "Type", WorkAttributeID: 4, Value: "Dev"},
			{Key: "_Account_", Name: "Account", WorkAttributeID: 3, Value: "STATIC"},
		},
	})

	require.NoError(t, err)
}

func TestSubmitForApproval_Payload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jira/rest/tempo-timesheets/4/timesheet-approval", r.URL.Path)
		var body approvalRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "JIRAUSER100", body.User.Key)
		assert.Equal(t, "JIRAUSER200", body.Action.Reviewer.Key)
		assert.Equal(t, "submit", body.Action.Name)
		assert.Equal(t, "2026-10-10", body.Period.DateFrom)
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.SubmitForApproval(context.Background(), "JIRAUSER100", "JIRAUSER200", time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
}

func TestResolveUserKey(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jira/rest/api/2/user", r.URL.Path)
		switch r.URL.Query().Get("username") {
		case "jdoe":
			json.NewEncoder(w).Encode(userResponse{Key: "JIRAUSER100", Name: "jdoe"})
		case "blank":
			json.NewEncoder(w).Encode(userResponse{Name: "blank"})
		default:
			http.Error(w, `{"errorMessages":["user does not exist"]}`, http.StatusNotFound)
		}
	})

	key, err := client.ResolveUserKey(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Equal(t, "JIRAUSER100", key)

	_, err = client.ResolveUserKey(context.Background(), "ghost")
	assert.True(t, errors.Is(err, ErrUserNotFound))

	_, err = client.ResolveUserKey(context.Background(), "blank")
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestHealthCheck_Unauthorized(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jira/rest/api/2/myself", r.URL.Path)
		http.Error(w, "nope", http.StatusUnauthorized)
	})

	err := client.HealthCheck(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "health check", se.Op)
	assert.Equal(t, "nope", se.Body)
	assert.Contains(t, errors.FlattenHints(err), "JIRA_TOKEN")
}

func TestHealthCheck_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"key": "JIRAUSER100"})
	})

	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	srv.Close()

	obs := &recordingObserver{}
	client := NewClient(base, "t", WithObserver(obs))

	err = client.HealthCheck(context.Background())

	assert.True(t, errors.Is(err, ErrTransport))
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "transport", obs.events[0].ErrorCode)
}

func TestClient_ObserverRecordsCalls(t *testing.T) {
	obs := &recordingObserver{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/jira/rest/tempo-timesheets/4/worklogs" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}, WithObserver(obs))

	require.NoError(t, client.HealthCheck(context.Background()))
	err := client.CreateWorklog(context.Background(), domain.Worklog{TaskKey: "ABC-1", Duration: time.Hour})
	require.Error(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "health check", obs.events[0].Op)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, http.StatusOK, obs.events[0].StatusCode)
	assert.Equal(t, "create worklog", obs.events[1].Op)
	assert.False(t, obs.events[1].Success)
	assert.Equal(t, "status_400", obs.events[1].ErrorCode)
}

func TestAssignedIssuesJQL(t *testing.T) {
	got := AssignedIssuesJQL(time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC))
	assert.Equal(t,
		`(statusCategory NOT IN (Done) OR status CHANGED AFTER "2026-10-11") AND assignee IN (currentUser()) ORDER BY created DESC`,
		got)
}
