package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/vucehq/go-leadengine/components/countries"
	"github.com/vucehq/go-leadengine/pkg/lead"
	"github.com/vucehq/go-leadengine/pkg/wizard"
)

// ErrSubmissionFailed wraps the user-facing message when the final
// submission is rejected by the transport.
var ErrSubmissionFailed = errors.New("tui: submission failed")

var fieldLabels = map[lead.FieldID]string{
	lead.FieldFullName:        "Full name",
	lead.FieldEmail:           "Email",
	lead.FieldLinkedIn:        "LinkedIn (optional)",
	lead.FieldGitHub:          "GitHub (optional)",
	lead.FieldCountry:         "Country",
	lead.FieldPhone:           "Phone number",
	lead.FieldProjectGoal:     "Project goal",
	lead.FieldBlocker:         "What's blocking you?",
	lead.FieldVision:          "The vision (optional)",
	lead.FieldTimeline:        "Timeline",
	lead.FieldEngagementScale: "Engagement scale",
	lead.FieldOrigin:          "How did you find us?",
}

// Runner walks a wizard session step by step over a PromptDriver.
type Runner struct {
	driver  PromptDriver
	entries []countries.Entry
	wizard  *wizard.Wizard
}

// OptionFn mutates a Runner during construction.
type OptionFn func(*Runner)

// WithDriver overrides the prompt driver.
func WithDriver(driver PromptDriver) OptionFn {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithCountries overrides the country directory shown by the country
// select prompt.
func WithCountries(entries []countries.Entry) OptionFn {
	return func(r *Runner) {
		if len(entries) > 0 {
			r.entries = entries
		}
	}
}

// NewRunner wires a wizard session to a prompt driver. The default
// driver talks to the real terminal.
func NewRunner(w *wizard.Wizard, fns ...OptionFn) *Runner {
	entries, err := countries.DefaultEntries()
	if err != nil {
		entries = nil
	}
	r := &Runner{
		driver:  NewSurveyDriver(),
		entries: entries,
		wizard:  w,
	}
	for _, fn := range fns {
		if fn != nil {
			fn(r)
		}
	}
	return r
}

// Run prompts through every remaining step and submits. Steps that fail
// validation are re-prompted; a rejected submission or an aborted prompt
// ends the run with an error.
func (r *Runner) Run(ctx context.Context) error {
	if r.wizard == nil {
		return errors.New("tui: wizard is required")
	}

	lastTitle := ""
	for !r.wizard.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}

		step := r.wizard.CurrentStep()
		if step.Title != lastTitle {
			if err := r.driver.Info(ctx, fmt.Sprintf("\n%s %s", step.Title, step.Subtitle)); err != nil {
				return err
			}
			lastTitle = step.Title
		}

		for _, id := range step.Fields {
			if err := r.promptField(ctx, id); err != nil {
				return err
			}
		}

		if r.wizard.IsFinal() {
			completed, err := r.wizard.Submit(ctx)
			if err != nil {
				return err
			}
			if !completed {
				if r.wizard.SubmitError() != "" {
					_ = r.driver.Info(ctx, r.wizard.SubmitError())
					return fmt.Errorf("%w: %s", ErrSubmissionFailed, r.wizard.SubmitError())
				}
				r.reportErrors(ctx)
			}
			continue
		}

		if !r.wizard.Next() {
			r.reportErrors(ctx)
		}
	}

	return r.driver.Info(ctx, "Transmission received. We'll be in touch.")
}

func (r *Runner) promptField(ctx context.Context, id lead.FieldID) error {
	switch id {
	case lead.FieldCountry:
		return r.promptCountry(ctx)
	case lead.FieldProjectGoal:
		return r.promptChoice(ctx, id, enumStrings(lead.ProjectGoals()))
	case lead.FieldTimeline:
		return r.promptChoice(ctx, id, enumStrings(lead.Timelines()))
	case lead.FieldEngagementScale:
		return r.promptChoice(ctx, id, enumStrings(lead.EngagementScales()))
	case lead.FieldOrigin:
		return r.promptChoice(ctx, id, enumStrings(lead.Origins()))
	case lead.FieldBlocker, lead.FieldVision:
		value, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: fieldLabels[id],
			Default: r.wizard.Record().Get(id),
		})
		if err != nil {
			return err
		}
		r.wizard.SetField(id, value)
		return nil
	default:
		value, err := r.driver.Input(ctx, InputConfig{
			Message: fieldLabels[id],
			Default: r.wizard.Record().Get(id),
		})
		if err != nil {
			return err
		}
		r.wizard.SetField(id, value)
		return nil
	}
}

// promptCountry selects from the directory and writes both the ISO code
// and the dialing prefix in one move, the way the form couples them.
func (r *Runner) promptCountry(ctx context.Context) error {
	options := make([]string, len(r.entries))
	defaultIdx := -1
	current := r.wizard.Record().Get(lead.FieldCountry)
	for i, entry := range r.entries {
		options[i] = fmt.Sprintf("%s (%s)", entry.Name, entry.Prefix)
		if current != "" && entry.Code == current {
			defaultIdx = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      fieldLabels[lead.FieldCountry],
		Options:      options,
		DefaultIndex: defaultIdx,
		PageSize:     12,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(r.entries) {
		return fmt.Errorf("tui: country selection out of range: %d", idx)
	}
	entry := r.entries[idx]
	r.wizard.SetField(lead.FieldCountry, entry.Code)
	r.wizard.SetField(lead.FieldPhonePrefix, entry.Prefix)
	return nil
}

func (r *Runner) promptChoice(ctx context.Context, id lead.FieldID, options []string) error {
	defaultIdx := indexOf(options, r.wizard.Record().Get(id))
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      fieldLabels[id],
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(options) {
		r.wizard.SetField(id, options[idx])
	}
	return nil
}

func (r *Runner) reportErrors(ctx context.Context) {
	errs := r.wizard.FieldErrors()
	if target, found := r.wizard.ConsumeShake(); found {
		if message, ok := errs[target]; ok {
			_ = r.driver.Info(ctx, message)
			return
		}
	}
	for _, message := range errs {
		_ = r.driver.Info(ctx, message)
		return
	}
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
