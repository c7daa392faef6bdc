// Package wizard implements the lead-capture state machine: step
// progression for the desktop and mobile flows, validation gating,
// shake-cue designation, and submission. The wizard exclusively owns
// its record; no other component reads or writes it.
//
// The machine is event-driven and expects a single caller goroutine,
// matching the discrete user-interaction model it serves. The one
// concession to overlap is the Submitting guard, which rejects a
// re-entrant Submit while a transport call is pending.
package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/vucehq/go-leadengine/components/countries"
	"github.com/vucehq/go-leadengine/pkg/lead"
	"github.com/vucehq/go-leadengine/pkg/submit"
	"github.com/vucehq/go-leadengine/pkg/validation"
)

// ShakeSubmit is the shake target used when the submit action itself
// fails, as opposed to a form field.
const ShakeSubmit lead.FieldID = "submit"

// ShakeDuration is how long UIs should run the shake animation. The
// machine itself only designates the target; timing is presentation.
const ShakeDuration = 400 * time.Millisecond

var (
	// ErrFinished is returned when acting on a completed session.
	ErrFinished = errors.New("wizard: session already completed")
	// ErrSubmitInFlight is returned when Submit is re-entered while a
	// transport call is pending.
	ErrSubmitInFlight = errors.New("wizard: submission already in flight")
)

// Transport posts the completed record. *submit.Client satisfies it.
type Transport interface {
	Send(ctx context.Context, record *lead.Record) submit.Result
}

// Wizard is the state machine for one lead-capture session.
type Wizard struct {
	mode      Mode
	steps     []Step
	pos       int
	done      bool
	record    *lead.Record
	transport Transport

	errors     map[lead.FieldID]string
	valid      map[lead.FieldID]struct{}
	submitErr  string
	shake      lead.FieldID
	submitting bool
}

// OptionFn mutates a Wizard during construction.
type OptionFn func(*Wizard)

// WithTransport installs the submission transport.
func WithTransport(t Transport) OptionFn {
	return func(w *Wizard) {
		if t != nil {
			w.transport = t
		}
	}
}

// New constructs a wizard at the first position of the given flow with
// an empty record.
func New(mode Mode, fns ...OptionFn) *Wizard {
	if mode != ModeMobile {
		mode = ModeDesktop
	}
	w := &Wizard{
		mode:   mode,
		steps:  Steps(mode),
		record: lead.NewRecord(),
		errors: make(map[lead.FieldID]string),
		valid:  make(map[lead.FieldID]struct{}),
	}
	if mode == ModeDesktop {
		w.pos = 1
	}
	for _, fn := range fns {
		if fn != nil {
			fn(w)
		}
	}
	return w
}

// Mode returns the latched flow mode.
func (w *Wizard) Mode() Mode { return w.mode }

// Position returns the current step index: 1-based for the desktop
// flow, 0-based for the mobile flow, matching each flow's own
// numbering.
func (w *Wizard) Position() int { return w.pos }

// Done reports whether the session reached the terminal success state.
func (w *Wizard) Done() bool { return w.done }

// Submitting reports whether a transport call is pending; UIs should
// disable the submit trigger while true.
func (w *Wizard) Submitting() bool { return w.submitting }

// Record returns the session record, or nil after a successful
// submission discards it.
func (w *Wizard) Record() *lead.Record { return w.record }

// CurrentStep returns the step at the current position. The zero Step
// is returned on a completed session.
func (w *Wizard) CurrentStep() Step {
	if w.done {
		return Step{}
	}
	return w.steps[w.stepIndex()]
}

// IsFinal reports whether the current position is the last before the
// terminal state, where Submit becomes available.
func (w *Wizard) IsFinal() bool {
	return !w.done && w.stepIndex() == len(w.steps)-1
}

// FieldError returns the message recorded for a field by the last
// failed validation pass, if any.
func (w *Wizard) FieldError(id lead.FieldID) string { return w.errors[id] }

// FieldErrors returns a copy of all recorded field messages.
func (w *Wizard) FieldErrors() map[lead.FieldID]string {
	out := make(map[lead.FieldID]string, len(w.errors))
	for id, message := range w.errors {
		out[id] = message
	}
	return out
}

// SubmitError returns the message from the last failed submission.
func (w *Wizard) SubmitError() string { return w.submitErr }

// FieldValid reports whether the field currently passes its rule with
// a non-empty value. Optional fields left empty are neither valid nor
// erroneous.
func (w *Wizard) FieldValid(id lead.FieldID) bool {
	_, found := w.valid[id]
	return found
}

// ConsumeShake returns the designated shake target and clears it.
// Exactly one target is designated per failed transition.
func (w *Wizard) ConsumeShake() (lead.FieldID, bool) {
	if w.shake == "" {
		return "", false
	}
	target := w.shake
	w.shake = ""
	return target, true
}

// SetField writes a value and synchronously revalidates that field
// only. Messages for the field are cleared on success; stage-level
// messages are otherwise left untouched until the next advance.
func (w *Wizard) SetField(id lead.FieldID, value string) {
	if w.done || w.record == nil {
		return
	}
	w.record.Set(id, value)

	if validation.Optional(id) && value == "" {
		delete(w.valid, id)
		delete(w.errors, id)
		return
	}

	if result := validation.Field(id, value); result.OK {
		w.valid[id] = struct{}{}
		delete(w.errors, id)
	} else {
		delete(w.valid, id)
	}
}

// Prefill writes geolocation-derived country defaults without marking
// the fields user-validated; they pass through normal validation if
// edited later.
func (w *Wizard) Prefill(entry countries.Entry) {
	if w.done || w.record == nil {
		return
	}
	w.record.Set(lead.FieldCountry, entry.Code)
	w.record.Set(lead.FieldPhonePrefix, entry.Prefix)
}

// PrefillFromGeo runs a best-effort geolocation lookup and applies the
// result. Lookup failures and cancelled contexts are silent no-ops.
func (w *Wizard) PrefillFromGeo(ctx context.Context, lookup interface {
	Defaults(ctx context.Context, entries []countries.Entry) (countries.Entry, bool)
}, entries []countries.Entry) {
	if lookup == nil {
		return
	}
	if entry, found := lookup.Defaults(ctx, entries); found {
		w.Prefill(entry)
	}
}

// Next validates the current step and advances on success. On failure
// the position is unchanged, field messages are recorded, and the
// first declared failing field is designated for the shake cue. Next
// never crosses into the terminal state; the final position requires
// Submit.
func (w *Wizard) Next() bool {
	if w.done || w.IsFinal() {
		return false
	}
	if !w.validateCurrent() {
		return false
	}
	w.pos++
	return true
}

// Back retreats one position without validating, never past the first
// position and never out of the terminal state.
func (w *Wizard) Back() {
	if w.done {
		return
	}
	if w.stepIndex() > 0 {
		w.pos--
	}
}

// Submit drives the final transition. Before the final position it
// behaves like Next. At the final position it re-validates the closing
// stage, posts the record, and on transport success moves to the
// terminal state and discards the record. On transport failure the
// wizard stays put with the message in the submit error slot and the
// shake cue on the submit marker.
func (w *Wizard) Submit(ctx context.Context) (completed bool, err error) {
	if w.done {
		return false, ErrFinished
	}
	if w.submitting {
		return false, ErrSubmitInFlight
	}
	if !w.IsFinal() {
		w.Next()
		return false, nil
	}
	if !w.validateFinal() {
		return false, nil
	}

	w.submitting = true
	defer func() {
		w.submitting = false
		// A fault inside the transport becomes a retryable submission
		// error instead of tearing down the session.
		if r := recover(); r != nil {
			w.failSubmit(submit.FallbackMessage)
			completed, err = false, nil
		}
	}()

	w.submitErr = ""
	if w.transport == nil {
		w.failSubmit(submit.FallbackMessage)
		return false, nil
	}

	result := w.transport.Send(ctx, w.record)
	if !result.OK {
		message := result.Message
		if message == "" {
			message = submit.FallbackMessage
		}
		w.failSubmit(message)
		return false, nil
	}

	w.done = true
	w.record = nil
	w.errors = make(map[lead.FieldID]string)
	w.valid = make(map[lead.FieldID]struct{})
	w.shake = ""
	return true, nil
}

// Progress returns the flow completion percentage: 0 at the first
// position, 100 at the terminal state. Purely presentational.
func (w *Wizard) Progress() float64 {
	if w.done {
		return 100
	}
	if w.mode == ModeMobile {
		return float64(w.pos) / float64(len(w.steps)-1) * 100
	}
	return float64(w.pos-1) / float64(len(w.steps)) * 100
}

func (w *Wizard) stepIndex() int {
	if w.mode == ModeMobile {
		return w.pos
	}
	return w.pos - 1
}

func (w *Wizard) validateCurrent() bool {
	var result validation.StageResult
	if w.mode == ModeMobile {
		result = validation.ValidateFields(w.steps[w.pos].Fields, w.record)
	} else {
		result = validation.ValidateStage(validation.Stages()[w.pos-1], w.record)
	}
	return w.applyStageResult(result)
}

// validateFinal re-runs the Logistics stage in both flows; the mobile
// flow's closing micro-steps are subdivisions of that stage.
func (w *Wizard) validateFinal() bool {
	return w.applyStageResult(validation.ValidateStage(validation.Logistics, w.record))
}

func (w *Wizard) applyStageResult(result validation.StageResult) bool {
	if result.OK {
		w.errors = make(map[lead.FieldID]string)
		return true
	}
	w.errors = make(map[lead.FieldID]string, len(result.FieldErrors))
	for id, message := range result.FieldErrors {
		w.errors[id] = message
	}
	w.shake = result.First
	return false
}

func (w *Wizard) failSubmit(message string) {
	w.submitErr = message
	w.shake = ShakeSubmit
}
