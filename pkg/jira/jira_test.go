package jira

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"
	"worklog/pkg"
	"worklog/pkg/jira/model"
	"worklog/pkg/status"

	"github.com/magiconair/properties/assert"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type testIssue struct {
	key model.IssueKey
}

func (issue testIssue) Key() model.IssueKey  { return issue.key }
func (issue testIssue) Summary() string      { return "Summary of " + string(issue.key) }
func (issue testIssue) Project() pkg.Project { return "ISSUE" }
func (issue testIssue) Type() string         { return "Task" }
func (issue testIssue) Status() string       { return "Open" }

type testAuthor struct {
	id model.Account
}

func (author testAuthor) Id() model.Account { return author.id }
func (author testAuthor) Name() string      { return "Display " + string(author.id) }

type testWorklog struct {
	author  model.Account
	started string
	seconds int
}

func (worklog testWorklog) Author() model.Author     { return testAuthor{id: worklog.author} }
func (worklog testWorklog) Started() string          { return worklog.started }
func (worklog testWorklog) TimeSpent() string        { return pkg.FormatDayHourMinute(worklog.seconds) }
func (worklog testWorklog) TimeSpentSeconds() int    { return worklog.seconds }
func (worklog testWorklog) Comment() pkg.Description { return "" }

type testApi struct {
	issues     []model.Issue
	worklogs   map[model.IssueKey][]model.Worklog
	myselfErr  error
	worklogErr map[model.IssueKey]error
	searches   []string
	queries    []string
	lookups    []model.IssueKey
}

func (api *testApi) Myself() (*pkg.User, error) {
	if api.myselfErr != nil {
		return nil, api.myselfErr
	}
	return &pkg.User{Name: "admin", DisplayName: "Administrator"}, nil
}

func (api *testApi) Issues(jql model.Jql, page string, maxResults int) (*model.IssuePage, error) {
	api.searches = append(api.searches, page)
	api.queries = append(api.queries, jql.Build())
	startAt := 0
	if page != "" {
		startAt, _ = strconv.Atoi(page)
	}
	end := startAt + maxResults
	next := strconv.Itoa(end)
	if end >= len(api.issues) {
		end = len(api.issues)
		next = ""
	}
	return &model.IssuePage{Total: len(api.issues), Issues: api.issues[startAt:end], Next: next}, nil
}

func (api *testApi) Worklog(key model.IssueKey) ([]model.Worklog, error) {
	api.lookups = append(api.lookups, key)
	if err := api.worklogErr[key]; err != nil {
		return nil, err
	}
	return api.worklogs[key], nil
}

func newTestApi(count int) *testApi {
	api := &testApi{worklogs: map[model.IssueKey][]model.Worklog{}, worklogErr: map[model.IssueKey]error{}}
	for i := 1; i <= count; i++ {
		key := model.IssueKey(fmt.Sprintf("ISSUE-%d", i))
		api.issues = append(api.issues, testIssue{key: key})
	}
	return api
}

func TestFetchFiltersAuthor(t *testing.T) {
	api := newTestApi(2)
	api.worklogs["ISSUE-1"] = []model.Worklog{
		testWorklog{author: "alice", started: "2024-11-06T09:00:00.000+0100", seconds: 3600},
		testWorklog{author: "bob", started: "2024-11-06T10:00:00.000+0100", seconds: 1800},
	}
	api.worklogs["ISSUE-2"] = []model.Worklog{
		testWorklog{author: "Alice", started: "2024-12-01T09:00:00.000+0100", seconds: 60},
		testWorklog{author: "alice", started: "2024-12-01T10:00:00.000+0100", seconds: 7200},
	}
	recorder := &status.Recorder{}
	fetcher := Fetcher{Api: api, Status: recorder}

	worklogs, err := fetcher.Fetch(model.Jql{"project = ISSUE"}, "alice")
	assert.Equal(t, err, nil)
	assert.Equal(t, len(worklogs), 2)
	assert.Equal(t, worklogs[0].Issue.Key, "ISSUE-1")
	assert.Equal(t, worklogs[0].Issue.Summary, "Summary of ISSUE-1")
	assert.Equal(t, worklogs[0].Author.Name, "alice")
	assert.Equal(t, worklogs[0].Author.DisplayName, "Display alice")
	assert.Equal(t, worklogs[1].Issue.Key, "ISSUE-2")
	assert.Equal(t, worklogs[1].StartedAt, time.Date(2024, time.December, 1, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, worklogs.Seconds(), 10800)
	assert.Equal(t, recorder.Lines, []string{
		"JQL search: project = ISSUE",
		"Found 2 issues",
		"Processing 1-2 / 2",
		"Found 2 worklog entries for alice",
	})
}

func TestFetchPages(t *testing.T) {
	api := newTestApi(120)
	recorder := &status.Recorder{}
	fetcher := Fetcher{Api: api, Status: recorder}

	worklogs, err := fetcher.Fetch(model.Jql{"project = ISSUE"}, "alice")
	assert.Equal(t, err, nil)
	assert.Equal(t, len(worklogs), 0)
	assert.Equal(t, api.searches, []string{"", "50", "100"})
	assert.Equal(t, len(api.lookups), 120)
	assert.Equal(t, recorder.Lines[2:5], []string{
		"Processing 1-50 / 120",
		"Processing 51-100 / 120",
		"Processing 101-120 / 120",
	})
}

func TestFetchNoIssues(t *testing.T) {
	api := newTestApi(0)
	worklogs, err := Fetcher{Api: api}.Fetch(model.Jql{"project = NONE"}, "alice")
	assert.Equal(t, err, nil)
	assert.Equal(t, len(worklogs), 0)
	assert.Equal(t, api.searches, []string{""})
}

func TestFetchFailsClosed(t *testing.T) {
	api := newTestApi(3)
	api.worklogs["ISSUE-1"] = []model.Worklog{
		testWorklog{author: "alice", started: "2024-11-06T09:00:00.000+0100", seconds: 3600},
	}
	cause := &pkg.HttpError{StatusCode: 500, Status: "500 Internal Server Error"}
	api.worklogErr["ISSUE-2"] = cause

	worklogs, err := Fetcher{Api: api}.Fetch(model.Jql{"project = ISSUE"}, "alice")
	assert.Equal(t, worklogs == nil, true)
	assert.Equal(t, errors.Is(err, cause), true)
	assert.Equal(t, err.Error(), "could not get worklog of ISSUE-2: 500 Internal Server Error")
	assert.Equal(t, api.lookups, []model.IssueKey{"ISSUE-1", "ISSUE-2"})
}

func TestFetchRejectsNegativeSeconds(t *testing.T) {
	api := newTestApi(1)
	api.worklogs["ISSUE-1"] = []model.Worklog{
		testWorklog{author: "alice", started: "2024-11-06T09:00:00.000+0100", seconds: -1},
	}
	_, err := Fetcher{Api: api}.Fetch(model.Jql{"project = ISSUE"}, "alice")
	assert.Matches(t, err.Error(), "negative time spent")
}

func TestFetchBetween(t *testing.T) {
	api := newTestApi(1)
	api.worklogs["ISSUE-1"] = []model.Worklog{
		testWorklog{author: "alice", started: "2024-10-31T23:00:00.000+0100", seconds: 60},
		testWorklog{author: "alice", started: "2024-11-06T09:00:00.000+0100", seconds: 3600},
		testWorklog{author: "alice", started: "2024-12-01T00:00:00.000+0100", seconds: 60},
	}
	from, to := pkg.GetTimeRange(2024, time.November)
	worklogs, err := Fetcher{Api: api, From: from, To: to}.Fetch(model.Jql{"project = ISSUE"}, "alice")
	assert.Equal(t, err, nil)
	assert.Equal(t, len(worklogs), 1)
	assert.Equal(t, worklogs[0].TimeSpentSeconds, 3600)
}

func TestConnect(t *testing.T) {
	recorder := &status.Recorder{}
	user, err := Fetcher{Api: newTestApi(0), Status: recorder}.Connect()
	assert.Equal(t, err, nil)
	assert.Equal(t, user.Name, "admin")
	assert.Equal(t, recorder.Lines, []string{"Connecting to Jira...", "Connected as Administrator"})

	api := newTestApi(0)
	api.myselfErr = &pkg.HttpError{StatusCode: 401, Status: "401 Unauthorized"}
	_, err = Fetcher{Api: api}.Connect()
	assert.Equal(t, err.Error(), "401 Unauthorized")
}

func TestSource(t *testing.T) {
	api := newTestApi(1)
	api.worklogs["ISSUE-1"] = []model.Worklog{
		testWorklog{author: "bob", started: "2024-11-06T09:00:00.000+0100", seconds: 3600},
	}
	base := model.Jql{"project = ISSUE"}
	source := Source{Fetcher: Fetcher{Api: api}, Jql: base}
	assert.Equal(t, source.Connect(), nil)
	worklogs, err := source.Fetch("bob")
	assert.Equal(t, err, nil)
	assert.Equal(t, len(worklogs), 1)
	_, err = source.Fetch("alice")
	assert.Equal(t, err, nil)

	assert.Equal(t, api.queries, []string{
		"(project = ISSUE) AND (worklogAuthor in ('bob'))",
		"(project = ISSUE) AND (worklogAuthor in ('alice'))",
	})
	assert.Equal(t, base, model.Jql{"project = ISSUE"})
}

func TestFetchStopsOnEmptyPage(t *testing.T) {
	api := &emptyPageApi{testApi: newTestApi(0)}
	recorder := &status.Recorder{}
	worklogs, err := Fetcher{Api: api, Status: recorder}.Fetch(model.Jql{"project = ISSUE"}, "alice")
	assert.Equal(t, err, nil)
	assert.Equal(t, len(worklogs), 0)
	assert.Equal(t, api.calls, 1)
	assert.Equal(t, recorder.Lines[1], "Found 7 issues")
}

// emptyPageApi reports an approximate total but returns no issues.
type emptyPageApi struct {
	*testApi
	calls int
}

func (api *emptyPageApi) Issues(jql model.Jql, page string, maxResults int) (*model.IssuePage, error) {
	api.calls++
	return &model.IssuePage{Total: 7, Next: "token"}, nil
}

func TestConnectTimezoneHint(t *testing.T) {
	var buffer bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buffer)
	defer func() {
		log.Logger = previous
	}()

	api := &zoneApi{testApi: newTestApi(0)}
	_, err := Fetcher{Api: api}.Connect()
	assert.Equal(t, err, nil)
	assert.Matches(t, buffer.String(), `"timezone":"CET"`)

	buffer.Reset()
	_, err = Fetcher{Api: api, Location: time.UTC}.Connect()
	assert.Equal(t, err, nil)
	assert.Equal(t, buffer.String(), "")
}

type zoneApi struct {
	*testApi
}

func (api *zoneApi) Myself() (*pkg.User, error) {
	return &pkg.User{Name: "admin", DisplayName: "Administrator", TimeZone: time.FixedZone("CET", 3600)}, nil
}

func TestNewApi(t *testing.T) {
	_, err := NewApi("4", nil, nil, nil)
	assert.Equal(t, err.Error(), `unsupported Jira REST API version "4"`)
	api, err := NewApi(VersionCloud, nil, nil, nil)
	assert.Equal(t, err, nil)
	assert.Equal(t, api != nil, true)
}
