package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	recording bool
	stopped   bool
	warnings  []string

	calls []string
}

func (f *fakeExec) isRecording() bool         { return f.recording }
func (f *fakeExec) hasStoppedRecording() bool { return f.stopped }
func (f *fakeExec) Warnings() []string {
	w := f.warnings
	f.warnings = nil
	return w
}

func (f *fakeExec) Record(ctx context.Context) error {
	f.calls = append(f.calls, "record")
	f.recording = true
	return nil
}
func (f *fakeExec) StopRecording(ctx context.Context) error {
	f.calls = append(f.calls, "stop")
	f.recording = false
	f.stopped = true
	return nil
}
func (f *fakeExec) SaveEncounter(ctx context.Context) error {
	f.calls = append(f.calls, "save")
	f.stopped = false
	return nil
}
func (f *fakeExec) DiscardRecording(ctx context.Context) error {
	f.calls = append(f.calls, "discard")
	f.stopped = false
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Show(ctx context.Context) error { f.calls = append(f.calls, "show"); return nil }
func (f *fakeExec) Note(ctx context.Context) error { f.calls = append(f.calls, "note"); return nil }
func (f *fakeExec) Delete(ctx context.Context) error {
	f.calls = append(f.calls, "delete")
	return nil
}
func (f *fakeExec) Scripts(ctx context.Context) error {
	f.calls = append(f.calls, "scripts")
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Upgrade(ctx context.Context) error {
	f.calls = append(f.calls, "upgrade")
	return nil
}
func (f *fakeExec) CancelSubscription(ctx context.Context) error {
	f.calls = append(f.calls, "cancel")
	return nil
}

func muteOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func TestRunREPL_CaptureFlowAndCommands(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"record",
		"stop",
		"save",
		"list",
		"status",
		"scripts",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"record", "stop", "save", "list", "status", "scripts"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	out := muteOutput(t)

	input := strings.NewReader("bogus\nquit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}

	sawUnknown := false
	sawBye := false
	for _, line := range *out {
		if strings.Contains(line, "Unknown command") {
			sawUnknown = true
		}
		if strings.Contains(line, "Bye!") {
			sawBye = true
		}
	}
	if !sawUnknown || !sawBye {
		t.Fatalf("missing output lines, got %v", *out)
	}
}

func TestRunREPL_WarningsBanner(t *testing.T) {
	out := muteOutput(t)

	input := strings.NewReader("exit\n")
	exec := &fakeExec{warnings: []string{"warning: encounter.sync: remote unavailable"}}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	found := false
	for _, line := range *out {
		if strings.Contains(line, "encounter.sync") {
			found = true
		}
	}
	if !found {
		t.Fatalf("warning banner not printed, got %v", *out)
	}
}

func TestRunREPL_EOFExits(t *testing.T) {
	muteOutput(t)

	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader(""))

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
