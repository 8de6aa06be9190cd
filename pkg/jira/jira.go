package jira

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
	"worklog/pkg"
	"worklog/pkg/jira/model"
	v2 "worklog/pkg/jira/v2"
	v3 "worklog/pkg/jira/v3"
	"worklog/pkg/status"

	"github.com/rs/zerolog/log"
)

// PageSize is the number of issues requested per search call.
const PageSize = 50

const (
	VersionServer = "2"
	VersionCloud  = "3"
)

// NewApi returns the client for the REST API version.
func NewApi(version string, client *http.Client, server *url.URL, credentials *pkg.Credentials) (model.Api, error) {
	switch version {
	case VersionServer, "":
		return v2.Api{Client: client, Server: server, Credentials: credentials}, nil
	case VersionCloud:
		return v3.Api{Client: client, Server: server, Credentials: credentials}, nil
	default:
		return nil, fmt.Errorf("unsupported Jira REST API version %q", version)
	}
}

// Fetcher collects the worklogs of single users for a query. Every call is sequential.
type Fetcher struct {
	Api    model.Api
	Status status.Sink
	// Location switches timestamp parsing from the naive first 19 characters to the full
	// timestamp converted into Location.
	Location *time.Location
	// From and To restrict the worklogs to [From, To) if set.
	From time.Time
	To   time.Time
}

func (fetcher Fetcher) sink() status.Sink {
	if fetcher.Status == nil {
		return status.Discard
	}
	return fetcher.Status
}

// Connect verifies that the server accepts the credentials.
func (fetcher Fetcher) Connect() (*pkg.User, error) {
	fetcher.sink().AppendLine("Connecting to Jira...")
	user, err := fetcher.Api.Myself()
	if err != nil {
		return nil, err
	}
	status.Appendf(fetcher.sink(), "Connected as %s", user.DisplayName)
	if user.TimeZone != nil && fetcher.Location == nil {
		log.Debug().Str("timezone", user.TimeZone.String()).
			Msg("Worklog timestamps are used as written, set the timezone to convert them.")
	}
	return user, nil
}

// Fetch pages through every issue matching jql and keeps the worklogs authored by user.
// Nothing is returned if any call fails.
func (fetcher Fetcher) Fetch(jql model.Jql, user model.Account) (pkg.Worklogs, error) {
	sink := fetcher.sink()
	status.Appendf(sink, "JQL search: %s", jql.Build())

	var worklogs pkg.Worklogs
	total, fetched := -1, 0
	for next := ""; ; {
		page, err := fetcher.Api.Issues(jql, next, PageSize)
		if err != nil {
			return nil, fmt.Errorf("could not search issues at %d: %w", fetched, err)
		}
		if total < 0 {
			total = page.Total
			status.Appendf(sink, "Found %d issues", total)
		}
		if len(page.Issues) == 0 {
			break
		}
		status.Appendf(sink, "Processing %d-%d / %d", fetched+1, fetched+len(page.Issues), max(total, fetched+len(page.Issues)))

		for _, issue := range page.Issues {
			items, err := fetcher.Api.Worklog(issue.Key())
			if err != nil {
				return nil, fmt.Errorf("could not get worklog of %s: %w", issue.Key(), err)
			}
			for _, item := range items {
				if item.Author().Id() != user {
					continue
				}
				worklog, err := fetcher.worklog(issue, item)
				if err != nil {
					return nil, fmt.Errorf("could not read worklog of %s: %w", issue.Key(), err)
				}
				worklogs = append(worklogs, worklog)
			}
		}
		fetched += len(page.Issues)
		if page.Next == "" {
			break
		}
		next = page.Next
	}
	if !fetcher.From.IsZero() || !fetcher.To.IsZero() {
		worklogs = worklogs.Between(fetcher.From, fetcher.to())
	}

	status.Appendf(sink, "Found %d worklog entries for %s", len(worklogs), user)
	return worklogs, nil
}

func (fetcher Fetcher) to() time.Time {
	if fetcher.To.IsZero() {
		return time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return fetcher.To
}

func (fetcher Fetcher) worklog(issue model.Issue, item model.Worklog) (pkg.Worklog, error) {
	started, err := pkg.ParseStarted(item.Started(), fetcher.Location)
	if err != nil {
		return pkg.Worklog{}, err
	}
	if item.TimeSpentSeconds() < 0 {
		return pkg.Worklog{}, fmt.Errorf("negative time spent %d", item.TimeSpentSeconds())
	}
	return pkg.Worklog{
		Issue: pkg.Issue{
			Key:     string(issue.Key()),
			Summary: issue.Summary(),
			Project: issue.Project(),
			Type:    issue.Type(),
			Status:  issue.Status(),
		},
		Author: pkg.User{
			Name:        string(item.Author().Id()),
			DisplayName: item.Author().Name(),
		},
		Started:          item.Started(),
		StartedAt:        started,
		TimeSpent:        item.TimeSpent(),
		TimeSpentSeconds: item.TimeSpentSeconds(),
		Comment:          item.Comment(),
	}, nil
}

// Source fetches every user with the same query, narrowed to the issues the user logged
// time on.
type Source struct {
	Fetcher Fetcher
	Jql     model.Jql
}

func (source Source) Connect() error {
	_, err := source.Fetcher.Connect()
	return err
}

func (source Source) Fetch(user string) (pkg.Worklogs, error) {
	return source.Fetcher.Fetch(source.Jql.Users(model.Account(user)), model.Account(user))
}
