package v3

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
	myselfUrl      = "rest/api/3/myself"
	searchIssueUrl = "rest/api/3/search/jql"
	countIssueUrl  = "rest/api/3/search/approximate-count"
	worklogUrl     = "rest/api/3/issue/%s/worklog?startAt=%s"
)

var IssueFields = []string{"summary", "project", "issuetype", "status"}

// Api talks to the REST API version 3 of Jira Cloud. Worklog authors are identified by
// their account id there.
type Api struct {
	Client      *http.Client
	Server      *url.URL
	Credentials *pkg.Credentials
}

func (api Api) Myself() (*pkg.User, error) {
	myself, err := api.Server.Parse(myselfUrl)
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
		Name:        string(result.AccountId),
		DisplayName: result.DisplayName,
		TimeZone:    location,
	}, nil
}

// Issues uses the token paged search. The search does not report a total, so the first
// page asks the approximate count for it.
func (api Api) Issues(jql model.Jql, page string, maxResults int) (*model.IssuePage, error) {
	query := jql.Build()
	total := -1
	if page == "" {
		count, err := api.count(query)
		if err != nil {
			return nil, err
		}
		total = count
	}
	var result = issueQueryResult{}
	err := api.post(searchIssueUrl, issueQuery{
		Jql:           query,
		Fields:        IssueFields,
		MaxResults:    maxResults,
		NextPageToken: page,
	}, &result)
	if err != nil {
		return nil, err
	}
	issues := result.issues()
	next := ""
	if !result.IsLast && len(issues) > 0 {
		next = result.NextPageToken
	}
	return &model.IssuePage{
		Total:  total,
		Issues: issues,
		Next:   next,
	}, nil
}

func (api Api) count(jql string) (int, error) {
	var result = countResult{}
	if err := api.post(countIssueUrl, countQuery{Jql: jql}, &result); err != nil {
		return 0, fmt.Errorf("could not count issues: %w", err)
	}
	return result.Count, nil
}

func (api Api) post(path string, payload interface{}, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	target, err := api.Server.Parse(path)
	if err != nil {
		return err
	}
	response, err := pkg.CreateJsonRequest(api.Client, http.MethodPost, target, api.Credentials, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	return pkg.ReadJson(response, result)
}

func (api Api) Worklog(key model.IssueKey) ([]model.Worklog, error) {
	var items []model.Worklog
	for {
		worklog, err := api.Server.Parse(fmt.Sprintf(worklogUrl, url.PathEscape(string(key)), strconv.Itoa(len(items))))
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
		if len(page) == 0 || len(items) >= result.Total {
			return items, nil
		}
	}
}
