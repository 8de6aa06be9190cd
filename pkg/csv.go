package pkg

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

type CsvSpecification struct {
	fields   int
	header   bool
	user     *CsvProperty
	author   *CsvProperty
	issue    *CsvProperty
	summary  *CsvProperty
	project  *CsvProperty
	kind     *CsvProperty
	status   *CsvProperty
	started  *CsvProperty
	duration *CsvProperty
	seconds  *CsvProperty
	hours    *CsvProperty
	comment  *CsvProperty
}

type CsvProperty struct {
	enabled bool
	index   int
	title   string
}

func NewCsvSpecification() CsvSpecification {
	return CsvSpecification{
		fields:   0,
		header:   false,
		user:     newCsvProperty("User"),
		author:   newCsvProperty("Author"),
		issue:    newCsvProperty("Issue Key"),
		summary:  newCsvProperty("Summary"),
		project:  newCsvProperty("Project"),
		kind:     newCsvProperty("Type"),
		status:   newCsvProperty("Status"),
		started:  newCsvProperty("Started"),
		duration: newCsvProperty("Duration"),
		seconds:  newCsvProperty("Seconds"),
		hours:    newCsvProperty("Hours"),
		comment:  newCsvProperty("Comment"),
	}
}

// NewWorklogCsvSpecification is the layout written by show and read by report --import.
func NewWorklogCsvSpecification() CsvSpecification {
	return NewCsvSpecification().Header(true).
		User(true).Author(true).Issue(true).Summary(true).Project(true).Type(true).Status(true).
		Started(true).Duration(true).Seconds(true).Hours(true).Comment(true)
}

func newCsvProperty(title string) *CsvProperty {
	return &CsvProperty{
		enabled: false,
		index:   0,
		title:   title,
	}
}

func (spec CsvSpecification) Header(enable bool) CsvSpecification {
	spec.header = enable
	return spec
}

func (spec CsvSpecification) Skip() CsvSpecification {
	spec.fields++
	return spec
}

func (spec CsvSpecification) User(enable bool) CsvSpecification {
	return spec.enable(spec.user, enable)
}

func (spec CsvSpecification) Author(enable bool) CsvSpecification {
	return spec.enable(spec.author, enable)
}

func (spec CsvSpecification) Issue(enable bool) CsvSpecification {
	return spec.enable(spec.issue, enable)
}

func (spec CsvSpecification) Summary(enable bool) CsvSpecification {
	return spec.enable(spec.summary, enable)
}

func (spec CsvSpecification) Project(enable bool) CsvSpecification {
	return spec.enable(spec.project, enable)
}

func (spec CsvSpecification) Type(enable bool) CsvSpecification {
	return spec.enable(spec.kind, enable)
}

func (spec CsvSpecification) Status(enable bool) CsvSpecification {
	return spec.enable(spec.status, enable)
}

func (spec CsvSpecification) Started(enable bool) CsvSpecification {
	return spec.enable(spec.started, enable)
}

func (spec CsvSpecification) Duration(enable bool) CsvSpecification {
	return spec.enable(spec.duration, enable)
}

func (spec CsvSpecification) Seconds(enable bool) CsvSpecification {
	return spec.enable(spec.seconds, enable)
}

func (spec CsvSpecification) Hours(enable bool) CsvSpecification {
	return spec.enable(spec.hours, enable)
}

func (spec CsvSpecification) Comment(enable bool) CsvSpecification {
	return spec.enable(spec.comment, enable)
}

func (spec CsvSpecification) enable(property *CsvProperty, enable bool) CsvSpecification {
	if enable {
		spec.addField(property)
	}
	return spec
}

func (spec *CsvSpecification) addField(property *CsvProperty) {
	property.enabled = true
	property.index = spec.fields
	spec.fields++
}

func (spec *CsvSpecification) properties() []*CsvProperty {
	return []*CsvProperty{
		spec.user, spec.author, spec.issue, spec.summary, spec.project, spec.kind,
		spec.status, spec.started, spec.duration, spec.seconds, spec.hours, spec.comment,
	}
}

// ReadCsv parses worklogs written by WriteCsv. The started column is parsed with ParseStarted.
func (ws Worklogs) ReadCsv(data []byte, spec *CsvSpecification, location *time.Location) (Worklogs, error) {
	if len(data) == 0 {
		return ws, nil
	}
	if !spec.started.enabled || !spec.seconds.enabled {
		return ws, fmt.Errorf("csv specification needs the started and seconds columns")
	}

	csvr := csv.NewReader(bytes.NewReader(data))
	csvr.Comma = ';'
	csvr.ReuseRecord = true
	csvr.FieldsPerRecord = spec.fields

	if spec.header {
		_, err := csvr.Read()
		if err != nil {
			return ws, err
		}
	}
	worklogs := make(Worklogs, 0, 20)
	for {
		row, err := csvr.Read()
		if err != nil {
			if err == io.EOF {
				return append(ws, worklogs...), nil
			}
			return ws, err
		}
		line, _ := csvr.FieldPos(0)

		worklog := Worklog{}
		if spec.user.enabled {
			worklog.Author.Name = row[spec.user.index]
		}
		if spec.author.enabled {
			worklog.Author.DisplayName = row[spec.author.index]
		}
		if spec.issue.enabled {
			worklog.Issue.Key = row[spec.issue.index]
		}
		if spec.summary.enabled {
			worklog.Issue.Summary = row[spec.summary.index]
		}
		if spec.project.enabled {
			worklog.Issue.Project = Project(row[spec.project.index])
		}
		if spec.kind.enabled {
			worklog.Issue.Type = row[spec.kind.index]
		}
		if spec.status.enabled {
			worklog.Issue.Status = row[spec.status.index]
		}
		if spec.duration.enabled {
			worklog.TimeSpent = row[spec.duration.index]
		}
		if spec.comment.enabled {
			worklog.Comment = Description(row[spec.comment.index])
		}
		worklog.Started = row[spec.started.index]
		worklog.StartedAt, err = ParseStarted(worklog.Started, location)
		if err != nil {
			return ws, fmt.Errorf("line %d: %w", line, err)
		}
		worklog.TimeSpentSeconds, err = strconv.Atoi(row[spec.seconds.index])
		if err != nil || worklog.TimeSpentSeconds < 0 {
			return ws, fmt.Errorf("line %d: invalid seconds %q", line, row[spec.seconds.index])
		}
		worklogs = append(worklogs, worklog)
	}
}

func (ws Worklogs) WriteCsv(writer io.Writer, spec *CsvSpecification) error {
	csvw := csv.NewWriter(writer)
	csvw.Comma = ';'

	var result = make([]string, spec.fields)

	if spec.header {
		for _, property := range spec.properties() {
			if property.enabled {
				result[property.index] = property.title
			}
		}
		if err := csvw.Write(result); err != nil {
			return err
		}
	}

	for _, worklog := range ws {
		if spec.user.enabled {
			result[spec.user.index] = worklog.Author.Name
		}
		if spec.author.enabled {
			result[spec.author.index] = worklog.Author.DisplayName
		}
		if spec.issue.enabled {
			result[spec.issue.index] = worklog.Issue.Key
		}
		if spec.summary.enabled {
			result[spec.summary.index] = worklog.Issue.Summary
		}
		if spec.project.enabled {
			result[spec.project.index] = string(worklog.Issue.Project)
		}
		if spec.kind.enabled {
			result[spec.kind.index] = worklog.Issue.Type
		}
		if spec.status.enabled {
			result[spec.status.index] = worklog.Issue.Status
		}
		if spec.started.enabled {
			result[spec.started.index] = worklog.Started
		}
		if spec.duration.enabled {
			result[spec.duration.index] = worklog.TimeSpent
		}
		if spec.seconds.enabled {
			result[spec.seconds.index] = strconv.Itoa(worklog.TimeSpentSeconds)
		}
		if spec.hours.enabled {
			result[spec.hours.index] = strconv.FormatFloat(Hours(worklog.TimeSpentSeconds), 'f', 2, 64)
		}
		if spec.comment.enabled {
			result[spec.comment.index] = string(worklog.Comment)
		}

		if err := csvw.Write(result); err != nil {
			return err
		}
	}
	csvw.Flush()
	return csvw.Error()
}
