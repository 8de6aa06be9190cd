package status

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Sink receives human readable progress lines. Lines are fire and forget.
type Sink interface {
	AppendLine(text string)
}

type SinkFunc func(text string)

func (f SinkFunc) AppendLine(text string) {
	f(text)
}

// Discard drops every line.
var Discard Sink = SinkFunc(func(string) {})

// Failer is implemented by sinks that report failures apart from progress.
type Failer interface {
	Fail(text string)
}

// Log writes progress lines as info and failures as error events.
type Log struct {
	Logger zerolog.Logger
}

func (sink Log) AppendLine(text string) {
	sink.Logger.Info().Msg(text)
}

func (sink Log) Fail(text string) {
	sink.Logger.Error().Msg(text)
}

// Appendf formats a line and appends it to the sink.
func Appendf(sink Sink, format string, args ...interface{}) {
	sink.AppendLine(fmt.Sprintf(format, args...))
}

// Failf reports a failure. Sinks without a failure channel get an "ERROR: " line.
func Failf(sink Sink, format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	if failer, ok := sink.(Failer); ok {
		failer.Fail(text)
		return
	}
	sink.AppendLine("ERROR: " + text)
}

// Recorder keeps every line, useful in tests.
type Recorder struct {
	Lines []string
}

func (recorder *Recorder) AppendLine(text string) {
	recorder.Lines = append(recorder.Lines, text)
}
