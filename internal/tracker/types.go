package tracker

type issueSearchRequest struct {
	JQL        string   `json:"jql"`
	Fields     []string `json:"fields"`
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
}

type issueSearchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []issue `json:"issues"`
}

type issue struct {
	Key    string         `json:"key"`
	Fields map[string]any `json:"fields"`
}

// createWorklogRequest is the Tempo Timesheets worklog payload.
type createWorklogRequest struct {
	Worker           string                      `json:"worker"`
	Started          string                      `json:"started"`
	TimeSpentSeconds int64                       `json:"timeSpentSeconds"`
	OriginTaskID     string                      `json:"originTaskId"`
	Attributes       map[string]worklogAttribute `json:"attributes"`
}

type worklogAttribute struct {
	Name            string `json:"name"`
	WorkAttributeID int64  `json:"workAttributeId"`
	Value           string `json:"value"`
}

type userRef struct {
	Key string `json:"key"`
}

type approvalRequest struct {
	User   userRef        `json:"user"`
	Period approvalPeriod `json:"period"`
	Action approvalAction `json:"action"`
}

type approvalPeriod struct {
	DateFrom string `json:"dateFrom"`
}

type approvalAction struct {
	Name     string  `json:"name"`
	Reviewer userRef `json:"reviewer"`
}

type userResponse struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}
