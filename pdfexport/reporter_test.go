package pdfexport

import "testing"

func TestNullReporterIsANoOp(t *testing.T) {
	var r NullReporter
	r.Start("task")
	r.Report("step", "detail")
	r.Complete()
	r.Fail(nil)
}

func TestCallbackReporterForwardsEvents(t *testing.T) {
	var got []string
	r := CallbackReporter{OnEvent: func(event, step, detail string) {
		got = append(got, event+":"+step+":"+detail)
	}}

	r.Start("task")
	r.Report("step one")
	r.Report("step two", "extra")
	r.Complete()
	r.Fail(nil)

	want := []string{"start:task:", "report:step one:", "report:step two:extra", "complete::", "fail::"}
	if len(got) != len(want) {
		t.Fatalf("got %d events %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCallbackReporterRecoversFromPanickingCallback(t *testing.T) {
	r := CallbackReporter{OnEvent: func(event, step, detail string) {
		panic("host callback blew up")
	}}

	defer func() {
		if rec := recover(); rec != nil {
			t.Fatalf("panic escaped CallbackReporter: %v", rec)
		}
	}()

	r.Start("task")
	r.Report("step")
	r.Complete()
	r.Fail(nil)
}

func TestCallbackReporterWithNilOnEventIsANoOp(t *testing.T) {
	var r CallbackReporter
	r.Start("task")
	r.Report("step")
	r.Complete()
	r.Fail(nil)
}
