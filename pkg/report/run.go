package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"worklog/pkg"
	"worklog/pkg/status"
)

// Source delivers the worklogs of single users.
type Source interface {
	Connect() error
	Fetch(user string) (pkg.Worklogs, error)
}

// Imported serves worklogs that were loaded up front, for example from a csv export.
type Imported struct {
	Worklogs pkg.Worklogs
}

func (imported Imported) Connect() error {
	return nil
}

func (imported Imported) Fetch(user string) (pkg.Worklogs, error) {
	return imported.Worklogs.ByAuthor(user), nil
}

// Result describes a finished run. Path and Size are only set if a file was written.
type Result struct {
	Empty   bool
	Path    string
	Size    int64
	Users   int
	Issues  int
	Count   int
	Seconds int
}

type Generator struct {
	Source Source
	Status status.Sink
	// Output is the directory reports are written to.
	Output string
	Now    func() time.Time
}

func (generator Generator) sink() status.Sink {
	if generator.Status == nil {
		return status.Discard
	}
	return generator.Status
}

func (generator Generator) now() time.Time {
	if generator.Now == nil {
		return time.Now()
	}
	return generator.Now()
}

// Generate fetches every user in order, builds the workbook and writes it. The first
// failure aborts the whole run and no file is written. A run without any worklog is not
// a failure but writes no file either.
func (generator Generator) Generate(ctx context.Context, users []string, query string) (*Result, error) {
	sink := generator.sink()
	if len(users) == 0 {
		return nil, generator.fail(FetchFailure, "no users requested", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, generator.fail(FetchFailure, "run cancelled", err)
	}
	if err := generator.Source.Connect(); err != nil {
		message := "could not connect to Jira"
		var httpError *pkg.HttpError
		if errors.As(err, &httpError) && httpError.Unauthorized() {
			message = "Jira rejected the credentials"
		}
		return nil, generator.fail(ConnectionFailure, message, err)
	}

	status.Appendf(sink, "Query for %d users: %s", len(users), strings.Join(users, ", "))
	run := Run{Users: users, Query: query, Rollups: make(map[string]*pkg.Rollup, len(users))}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return nil, generator.fail(FetchFailure, "run cancelled", err)
		}
		status.Appendf(sink, "Fetching worklogs: %s", user)
		worklogs, err := generator.Source.Fetch(user)
		if err != nil {
			return nil, generator.fail(FetchFailure, fmt.Sprintf("could not fetch worklogs of %s", user), err)
		}
		if len(worklogs) == 0 {
			status.Appendf(sink, "No worklogs for %s, skipped", user)
		}
		run.Rollups[user] = pkg.NewRollup(user, worklogs)
	}

	if run.Empty() {
		sink.AppendLine("No worklogs found for the given users and query")
		return &Result{Empty: true, Users: len(users)}, nil
	}

	if len(users) > 1 {
		sink.AppendLine("Creating summary sheet...")
	}
	workbook := Build(run)
	path, err := WriteFile(workbook, generator.Output, users, generator.now())
	if err != nil {
		return nil, generator.fail(WriteFailure, fmt.Sprintf("could not write report to %s", generator.Output), err)
	}
	status.Appendf(sink, "Report saved: %s", path)

	result := &Result{Path: path, Users: len(run.Reported())}
	result.Issues, result.Count, result.Seconds = run.Totals()
	if info, err := os.Stat(path); err == nil {
		result.Size = info.Size()
	}
	return result, nil
}

func (generator Generator) fail(kind Kind, message string, err error) *Failure {
	failure := &Failure{Kind: kind, Message: message, Err: err}
	status.Failf(generator.sink(), "%s", failure.Error())
	return failure
}
