package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vucehq/go-leadengine/components/countries"
	"github.com/vucehq/go-leadengine/pkg/lead"
	"github.com/vucehq/go-leadengine/pkg/submit"
	"github.com/vucehq/go-leadengine/pkg/wizard"
)

var testEntries = []countries.Entry{
	{Name: "India", Code: "IN", Prefix: "+91"},
	{Name: "United States", Code: "US", Prefix: "+1"},
}

// scriptDriver replays queued answers and records Info output.
type scriptDriver struct {
	t       *testing.T
	inputs  []string
	selects []int
	areas   []string
	infos   []string
	abortAt string
}

func (d *scriptDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if d.abortAt != "" && cfg.Message == d.abortAt {
		return "", ErrAborted
	}
	if len(d.inputs) == 0 {
		d.t.Fatalf("unexpected input prompt: %q", cfg.Message)
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *scriptDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		d.t.Fatalf("unexpected select prompt: %q", cfg.Message)
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *scriptDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if len(d.areas) == 0 {
		d.t.Fatalf("unexpected textarea prompt: %q", cfg.Message)
	}
	out := d.areas[0]
	d.areas = d.areas[1:]
	return out, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type runnerTransport struct {
	result submit.Result
	last   *lead.Record
}

func (s *runnerTransport) Send(_ context.Context, record *lead.Record) submit.Result {
	s.last = record.Clone()
	return s.result
}

func TestRun_DesktopFlowEndToEnd(t *testing.T) {
	transport := &runnerTransport{result: submit.Result{OK: true}}
	w := wizard.New(wizard.ModeDesktop, wizard.WithTransport(transport))
	driver := &scriptDriver{
		t: t,
		// fullName, email, linkedin, github, phone
		inputs: []string{"Jordan Vale", "jordan@vale.dev", "", "", "5551234567"},
		// country=US, projectGoal, timeline, engagementScale, origin
		selects: []int{1, 0, 0, 1, 2},
		// blocker, vision
		areas: []string{"Our infra cannot keep up with launch traffic", ""},
	}

	runner := NewRunner(w, WithDriver(driver), WithCountries(testEntries))
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !w.Done() {
		t.Fatalf("wizard should be done")
	}
	got := transport.last
	if got.Country != "US" || got.PhonePrefix != "+1" {
		t.Fatalf("country selection: %+v", got)
	}
	if got.ProjectGoal != string(lead.GoalBuildFromScratch) {
		t.Fatalf("projectGoal = %q", got.ProjectGoal)
	}
	if got.EngagementScale != string(lead.ScaleEnterprise) {
		t.Fatalf("engagementScale = %q", got.EngagementScale)
	}
	if got.Origin != string(lead.OriginSearch) {
		t.Fatalf("origin = %q", got.Origin)
	}

	if len(driver.infos) == 0 || !strings.Contains(driver.infos[len(driver.infos)-1], "Transmission received") {
		t.Fatalf("infos = %v, want closing confirmation", driver.infos)
	}
}

func TestRun_InvalidStageReportsErrorAndReprompts(t *testing.T) {
	transport := &runnerTransport{result: submit.Result{OK: true}}
	w := wizard.New(wizard.ModeDesktop, wizard.WithTransport(transport))
	driver := &scriptDriver{
		t: t,
		// First pass: name too short, stage fails, full step replays.
		inputs: []string{
			"J", "jordan@vale.dev", "", "", "5551234567",
			"Jordan Vale", "jordan@vale.dev", "", "", "5551234567",
		},
		selects: []int{0, 0, 0, 0, 0, 0},
		areas:   []string{"Shipping velocity is stuck in review", ""},
	}

	runner := NewRunner(w, WithDriver(driver), WithCountries(testEntries))
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	found := false
	for _, msg := range driver.infos {
		if msg == "Full name must be at least 2 characters" {
			found = true
		}
	}
	if !found {
		t.Fatalf("infos = %v, want the full-name rule message", driver.infos)
	}
	if transport.last.FullName != "Jordan Vale" {
		t.Fatalf("submitted name = %q", transport.last.FullName)
	}
}

func TestRun_AbortPropagates(t *testing.T) {
	w := wizard.New(wizard.ModeDesktop)
	driver := &scriptDriver{t: t, abortAt: "Full name"}

	runner := NewRunner(w, WithDriver(driver), WithCountries(testEntries))
	if err := runner.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("Run = %v, want ErrAborted", err)
	}
	if w.Done() {
		t.Fatalf("aborted run must not complete the session")
	}
}

func TestRun_RejectedSubmissionSurfacesMessage(t *testing.T) {
	transport := &runnerTransport{result: submit.Result{Message: "Server configuration error"}}
	w := wizard.New(wizard.ModeDesktop, wizard.WithTransport(transport))
	driver := &scriptDriver{
		t:       t,
		inputs:  []string{"Jordan Vale", "jordan@vale.dev", "", "", "5551234567"},
		selects: []int{1, 0, 0, 0, 0},
		areas:   []string{"Legacy monolith blocks every release", ""},
	}

	runner := NewRunner(w, WithDriver(driver), WithCountries(testEntries))
	err := runner.Run(context.Background())
	if !errors.Is(err, ErrSubmissionFailed) {
		t.Fatalf("Run = %v, want ErrSubmissionFailed", err)
	}
	if !strings.Contains(err.Error(), "Server configuration error") {
		t.Fatalf("err = %v, want transport message", err)
	}
}
