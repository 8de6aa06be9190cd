package v2

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"worklog/pkg"
	"worklog/pkg/jira/model"

	"github.com/magiconair/properties/assert"
)

var testUrl = &url.URL{Scheme: "https", Host: "jira.example.org", Path: "/jira/"}

func TestMyself(t *testing.T) {
	client := pkg.NewTestClient(func(req *http.Request) *http.Response {
		assert.Equal(t, req.URL.Path, "/jira/rest/api/2/myself")
		assert.Equal(t, req.Header.Get("Authorization"), "Bearer secret")
		return pkg.NewTestResponse(http.StatusOK, `{"name":"jdoe","key":"JIRAUSER1","displayName":"John Doe","timeZone":"Europe/Berlin"}`)
	})
	api := Api{Client: client, Server: testUrl, Credentials: &pkg.Credentials{Token: "secret"}}

	user, err := api.Myself()
	assert.Equal(t, err, nil)
	assert.Equal(t, user.Name, "jdoe")
	assert.Equal(t, user.DisplayName, "John Doe")
}

func TestMyselfUnauthorized(t *testing.T) {
	client := pkg.NewTestClient(func(req *http.Request) *http.Response {
		username, password, ok := req.BasicAuth()
		assert.Equal(t, ok, true)
		assert.Equal(t, username, "jdoe")
		assert.Equal(t, password, "wrong")
		return pkg.NewTestResponse(http.StatusUnauthorized, "")
	})
	api := Api{Client: client, Server: testUrl, Credentials: &pkg.Credentials{Userinfo: url.UserPassword("jdoe", "wrong")}}

	_, err := api.Myself()
	var httpError *pkg.HttpError
	assert.Equal(t, errors.As(err, &httpError), true)
	assert.Equal(t, httpError.Unauthorized(), true)
}

func TestIssues(t *testing.T) {
	client := pkg.NewTestClient(func(req *http.Request) *http.Response {
		assert.Equal(t, req.Method, http.MethodPost)
		assert.Equal(t, req.URL.Path, "/jira/rest/api/2/search")
		body, _ := io.ReadAll(req.Body)
		assert.Equal(t, string(body), `{"startAt":50,"maxResults":50,"fields":["summary","project","issuetype","status"],"jql":"project = ABC"}`)
		return pkg.NewTestResponse(http.StatusOK, `{"startAt":50,"maxResults":50,"total":51,"issues":[
			{"id":"1","key":"ABC-51","fields":{"summary":"Last one","project":{"key":"ABC"},"issuetype":{"name":"Task"},"status":{"name":"Done"}}}
		]}`)
	})
	api := Api{Client: client, Server: testUrl}

	page, err := api.Issues(model.Jql{"project = ABC"}, "50", 50)
	assert.Equal(t, err, nil)
	assert.Equal(t, page.Next, "")
	assert.Equal(t, page.Total, 51)
	assert.Equal(t, len(page.Issues), 1)
	assert.Equal(t, page.Issues[0].Key(), model.IssueKey("ABC-51"))
	assert.Equal(t, page.Issues[0].Summary(), "Last one")
	assert.Equal(t, page.Issues[0].Project(), pkg.Project("ABC"))
	assert.Equal(t, page.Issues[0].Type(), "Task")
	assert.Equal(t, page.Issues[0].Status(), "Done")
}

func TestIssuesMalformed(t *testing.T) {
	client := pkg.NewTestClient(func(req *http.Request) *http.Response {
		return pkg.NewTestResponse(http.StatusOK, `<html>`)
	})
	api := Api{Client: client, Server: testUrl}

	_, err := api.Issues(model.Jql{"project = ABC"}, "", 50)
	assert.Matches(t, err.Error(), "^malformed response")
}

func TestIssuesNextOffset(t *testing.T) {
	client := pkg.NewTestClient(func(req *http.Request) *http.Response {
		body, _ := io.ReadAll(req.Body)
		assert.Matches(t, string(body), `^\{"startAt":0,"maxResults":2,`)
		return pkg.NewTestResponse(http.StatusOK, `{"startAt":0,"maxResults":2,"total":5,"issues":[
			{"id":"1","key":"ABC-1","fields":{"summary":"One","project":{"key":"ABC"},"issuetype":{"name":"Task"},"status":{"name":"Done"}}},
			{"id":"2","key":"ABC-2","fields":{"summary":"Two","project":{"key":"ABC"},"issuetype":{"name":"Task"},"status":{"name":"Done"}}}
		]}`)
	})
	api := Api{Client: client, Server: testUrl}

	page, err := api.Issues(model.Jql{"project = ABC"}, "", 2)
	assert.Equal(t, err, nil)
	assert.Equal(t, page.Total, 5)
	assert.Equal(t, page.Next, "2")

	_, err = api.Issues(model.Jql{"project = ABC"}, "next", 2)
	assert.Matches(t, err.Error(), `^invalid page "next"`)
}

func TestWorklogPages(t *testing.T) {
	var calls []string
	client := pkg.NewTestClient(func(req *http.Request) *http.Response {
		assert.Equal(t, req.URL.Path, "/jira/rest/api/2/issue/ABC-1/worklog")
		calls = append(calls, req.URL.Query().Get("startAt"))
		switch req.URL.Query().Get("startAt") {
		case "0":
			return pkg.NewTestResponse(http.StatusOK, `{"startAt":0,"maxResults":2,"total":3,"worklogs":[
				{"author":{"name":"jdoe","displayName":"John Doe"},"started":"2024-11-05T09:00:00.000+0100","timeSpent":"1h","timeSpentSeconds":3600,"comment":"Review"},
				{"author":{"name":"asmith","displayName":"Anna Smith"},"started":"2024-11-05T10:00:00.000+0100","timeSpent":"30m","timeSpentSeconds":1800}
			]}`)
		case "2":
			return pkg.NewTestResponse(http.StatusOK, `{"startAt":2,"maxResults":2,"total":3,"worklogs":[
				{"author":{"name":"jdoe","displayName":"John Doe"},"started":"2024-12-01T08:00:00.000+0100","timeSpent":"2h","timeSpentSeconds":7200}
			]}`)
		default:
			return pkg.NewTestResponse(http.StatusNotFound, "")
		}
	})
	api := Api{Client: client, Server: testUrl}

	items, err := api.Worklog("ABC-1")
	assert.Equal(t, err, nil)
	assert.Equal(t, strings.Join(calls, ","), "0,2")
	assert.Equal(t, len(items), 3)
	assert.Equal(t, items[0].Author().Id(), model.Account("jdoe"))
	assert.Equal(t, items[0].Author().Name(), "John Doe")
	assert.Equal(t, items[0].Comment(), pkg.Description("Review"))
	assert.Equal(t, items[1].Comment(), pkg.Description(""))
	assert.Equal(t, items[2].Started(), "2024-12-01T08:00:00.000+0100")
	assert.Equal(t, items[2].TimeSpent(), "2h")
	assert.Equal(t, items[2].TimeSpentSeconds(), 7200)
}

func TestWorklogIsLast(t *testing.T) {
	calls := 0
	client := pkg.NewTestClient(func(req *http.Request) *http.Response {
		calls++
		return pkg.NewTestResponse(http.StatusOK, `{"startAt":0,"maxResults":20,"total":0,"isLast":true,"worklogs":[
			{"author":{"name":"jdoe"},"started":"2024-11-05T09:00:00.000+0100","timeSpent":"1h","timeSpentSeconds":3600}
		]}`)
	})
	api := Api{Client: client, Server: testUrl}

	items, err := api.Worklog("ABC-1")
	assert.Equal(t, err, nil)
	assert.Equal(t, calls, 1)
	assert.Equal(t, len(items), 1)
}
