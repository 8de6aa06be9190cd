package v2

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"worklog/pkg"
	"worklog/pkg/jira/model"
)

const (
	myselfUrl      = "rest/api/2/myself"
	searchIssueUrl = "rest/api/2/search"
	worklogUrl     = "rest/api/2/issue/%s/worklog?startAt=%s"
)

// IssueFields are the only fields the search asks for.
var IssueFields = []string{"summary", "project", "issuetype", "status"}

// Api talks to the REST API version 2 of Jira Server and Data Center.
// Server must end with a slash if Jira runs below a context path.
type Api struct {
	Client      *http.Client
	Server      *url.URL
	Credentials *pkg.Credentials
}

func (api Api) Myself() (*pkg.User, error) {
	myself, err := api.server(myselfUrl)
	if err != nil {
		return nil, err
	}
	response, err := pkg.CreateJsonRequest(api.Client, http.MethodGet, myself, api.Credentials, nil)
	if err != nil {
		return nil, err
	}
	var result = myselfResult{}
	if err = pkg.ReadJson(response, &result); err != nil {
		return nil, err
	}
	location, _ := time.LoadLocation(result.TimeZone)
	return &pkg.User{
		Name:        result.Name,
		DisplayName: result.DisplayName,
		TimeZone:    location,
	}, nil
}

// Issues pages by offset, the page token is the start index.
func (api Api) Issues(jql model.Jql, page string, maxResults int) (*model.IssuePage, error) {
	startAt := 0
	if page != "" {
		var err error
		if startAt, err = strconv.Atoi(page); err != nil {
			return nil, fmt.Errorf("invalid page %q: %w", page, err)
		}
	}
	body, err := json.Marshal(issueQuery{
		Fields:         IssueFields,
		Jql:            jql.Build(),
		PaginatedQuery: &PaginatedQuery{StartAt: startAt, MaxResults: maxResults},
	})
	if err != nil {
		return nil, err
	}
	search, err := api.server(searchIssueUrl)
	if err != nil {
		return nil, err
	}
	response, err := pkg.CreateJsonRequest(api.Client, http.MethodPost, search, api.Credentials, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	var result = issueQueryResult{PaginatedResult: &PaginatedResult{}}
	if err = pkg.ReadJson(response, &result); err != nil {
		return nil, err
	}
	issues := result.issues()
	next := ""
	if end := result.StartAt + len(issues); len(issues) > 0 && end < result.Total {
		next = strconv.Itoa(end)
	}
	return &model.IssuePage{
		Total:  result.Total,
		Issues: issues,
		Next:   next,
	}, nil
}

func (api Api) Worklog(key model.IssueKey) ([]model.Worklog, error) {
	var items []model.Worklog
	for {
		worklog, err := api.server(fmt.Sprintf(worklogUrl, url.PathEscape(string(key)), strconv.Itoa(len(items))))
		if err != nil {
			return nil, err
		}
		response, err := pkg.CreateJsonRequest(api.Client, http.MethodGet, worklog, api.Credentials, nil)
		if err != nil {
			return nil, err
		}
		var result = worklogQueryResult{PaginatedResult: &PaginatedResult{}}
		if err = pkg.ReadJson(response, &result); err != nil {
			return nil, err
		}
		page := result.worklogs()
		items = append(items, page...)
		if len(page) == 0 || !result.hasMore(len(items)) {
			return items, nil
		}
	}
}

func (result PaginatedResult) hasMore(fetched int) bool {
	if result.IsLast != nil {
		return !*result.IsLast
	}
	return fetched < result.Total
}

func (api Api) server(path string) (*url.URL, error) {
	return api.Server.Parse(path)
}
