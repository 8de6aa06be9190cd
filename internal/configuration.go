package internal

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"worklog/pkg"
	"worklog/pkg/jira/model"
)

const (
	Version           = "0.1.0"
	FlagConfiguration = "config"
	FlagHttp          = "http"
	FlagHost          = "host"
	FlagUsername      = "username"
	FlagPassword      = "password"
	FlagToken         = "token"
	FlagApi           = "api"
	FlagUsers         = "user"
	FlagProjects      = "project"
	FlagJql           = "jql"
	FlagOutput        = "output"
	FlagTimezone      = "timezone"
	FlagTimeout       = "timeout"
	FlagMonth         = "month"
	FlagImport        = "import"
	FlagForce         = "force"
	FlagVerbose       = "verbose"
)

// ConfirmationThreshold is the number of users above which a report asks before running.
const ConfirmationThreshold = 10

type Configuration struct {
	Http     bool          `mapstructure:"http"`
	Host     string        `mapstructure:"host"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Token    string        `mapstructure:"token"`
	Api      string        `mapstructure:"api"`
	Users    []string      `mapstructure:"users"`
	Projects []string      `mapstructure:"projects"`
	Jql      string        `mapstructure:"jql"`
	Output   string        `mapstructure:"output"`
	Timezone string        `mapstructure:"timezone"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Verbose  bool          `mapstructure:"verbose"`
	// These items make no sense to have inside a configuration file
	Month  string
	Import string
	Force  bool
}

var Config Configuration

// Server returns the base url of the tracker. The host may carry a context path like
// jira.example.org/jira. The path always ends with a slash so api paths resolve below it.
func (c *Configuration) Server() *url.URL {
	scheme := "https"
	if c.Http {
		scheme = "http"
	}
	host := strings.TrimPrefix(strings.TrimPrefix(c.Host, "https://"), "http://")
	path := "/"
	if i := strings.Index(host, "/"); i >= 0 {
		path = strings.TrimSuffix(host[i:], "/") + "/"
		host = host[:i]
	}
	return &url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   path,
	}
}

func (c *Configuration) Userinfo() *url.Userinfo {
	if c.Username != "" {
		if c.Password != "" {
			return url.UserPassword(c.Username, c.Password)
		}
		return url.User(c.Username)
	}
	return nil
}

// Credentials prefers the token over username and password.
func (c *Configuration) Credentials() *pkg.Credentials {
	if c.Token != "" {
		return &pkg.Credentials{Token: c.Token}
	}
	return &pkg.Credentials{Userinfo: c.Userinfo()}
}

// Location returns nil unless a timezone is configured.
func (c *Configuration) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, nil
	}
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return location, nil
}

// UserList splits comma separated entries and drops blanks and duplicates, keeping the
// order of first appearance.
func (c *Configuration) UserList() []string {
	seen := make(map[string]struct{})
	var result []string
	for _, entry := range c.Users {
		for _, user := range strings.Split(entry, ",") {
			user = strings.TrimSpace(user)
			if user == "" {
				continue
			}
			if _, ok := seen[user]; ok {
				continue
			}
			seen[user] = struct{}{}
			result = append(result, user)
		}
	}
	return result
}

func (c *Configuration) ProjectList() []pkg.Project {
	result := make([]pkg.Project, 0, len(c.Projects))
	for _, project := range c.Projects {
		if project = strings.TrimSpace(project); project != "" {
			result = append(result, pkg.Project(project))
		}
	}
	return result
}

// Query combines the free form jql with the project and month restrictions.
func (c *Configuration) Query() (model.Jql, time.Time, time.Time, error) {
	var from, to time.Time
	query := model.Jql{}.Filter(c.Jql).Projects(c.ProjectList()...)
	if c.Month != "" {
		var err error
		from, to, err = pkg.ParseMonth(c.Month)
		if err != nil {
			return nil, from, to, err
		}
		query = query.Between(from, to)
	}
	if len(query) == 0 {
		return nil, from, to, fmt.Errorf("a query is required, use --%s, --%s or --%s", FlagJql, FlagProjects, FlagMonth)
	}
	return query, from, to, nil
}
