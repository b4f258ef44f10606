package pdfexport

import (
	"fmt"
	"log/slog"
)

// Reporter is the injected progress-notification sink (§4.7, §6). The
// core only ever calls it; transport is caller-provided.
type Reporter interface {
	Start(taskName string)
	Report(step string, detail ...string)
	Complete()
	Fail(err error)
}

// NullReporter satisfies Reporter with no-op methods, for callers (and
// tests) that don't need progress notifications.
type NullReporter struct{}

func (NullReporter) Start(string)            {}
func (NullReporter) Report(string, ...string) {}
func (NullReporter) Complete()               {}
func (NullReporter) Fail(error)               {}

// ConsoleReporter prints a simple progress line per step, the nearest
// ambient-stack equivalent this module carries to the teacher's
// console-facing tools (which themselves never import a spinner
// library).
type ConsoleReporter struct{}

func (ConsoleReporter) Start(taskName string) {
	fmt.Printf("=> %s\n", taskName)
}

func (ConsoleReporter) Report(step string, detail ...string) {
	if len(detail) > 0 && detail[0] != "" {
		fmt.Printf("   %s (%s)\n", step, detail[0])
		return
	}
	fmt.Printf("   %s\n", step)
}

func (ConsoleReporter) Complete() {
	fmt.Println("done")
}

func (ConsoleReporter) Fail(err error) {
	fmt.Printf("failed: %v\n", err)
}

// CallbackReporter adapts Reporter to a single injected function,
// matching how a GUI host would wire progress notifications across an
// IPC boundary (the boundary itself is out of scope; only the callback
// shape is specified).
type CallbackReporter struct {
	OnEvent func(event string, step string, detail string)
}

// call invokes OnEvent, recovering a caller panic so a misbehaving host
// callback can never abort an export already in progress. The recovered
// value is logged rather than silently dropped.
func (r CallbackReporter) call(event, step, detail string) {
	if r.OnEvent == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			slog.Default().Error("progress reporter callback panicked",
				"event", event, "step", step, "recovered", rec)
		}
	}()
	r.OnEvent(event, step, detail)
}

func (r CallbackReporter) Start(taskName string) { r.call("start", taskName, "") }

func (r CallbackReporter) Report(step string, detail ...string) {
	d := ""
	if len(detail) > 0 {
		d = detail[0]
	}
	r.call("report", step, d)
}

func (r CallbackReporter) Complete() { r.call("complete", "", "") }

func (r CallbackReporter) Fail(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.call("fail", "", msg)
}
