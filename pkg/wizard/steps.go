package wizard

import (
	"github.com/vucehq/go-leadengine/pkg/lead"
	"github.com/vucehq/go-leadengine/pkg/validation"
)

// Mode selects the flow the session runs. It is latched at
// construction and never re-evaluated, even if the viewport later
// crosses the breakpoint.
type Mode string

const (
	ModeDesktop Mode = "desktop"
	ModeMobile  Mode = "mobile"
)

// DesktopBreakpoint is the viewport width, in logical pixels, below
// which the mobile flow is selected.
const DesktopBreakpoint = 768

// ModeForWidth maps a viewport width to a flow mode.
func ModeForWidth(width int) Mode {
	if width < DesktopBreakpoint {
		return ModeMobile
	}
	return ModeDesktop
}

// Step is one position of a flow: the fields it collects and the
// heading shown above them. Mobile micro-steps may group two fields;
// only the first declared field of a group receives the shake cue.
type Step struct {
	Title    string
	Subtitle string
	Fields   []lead.FieldID
}

var desktopSteps = []Step{
	{
		Title:    "Identify.",
		Subtitle: "Tell us who you are. We'll handle the rest.",
		Fields:   validation.Identity.Fields,
	},
	{
		Title:    "The Blueprint.",
		Subtitle: "Define the trajectory.",
		Fields:   validation.Blueprint.Fields,
	},
	{
		Title:    "Logistics.",
		Subtitle: "Let's talk execution.",
		Fields:   validation.Logistics.Fields,
	},
}

var mobileSteps = []Step{
	{Title: "Identify.", Subtitle: "Let's start with your name.", Fields: []lead.FieldID{lead.FieldFullName}},
	{Title: "Identify.", Subtitle: "Where can we reach you?", Fields: []lead.FieldID{lead.FieldEmail}},
	{Title: "Identify.", Subtitle: "Your direct line.", Fields: []lead.FieldID{lead.FieldCountry, lead.FieldPhone}},
	{Title: "Identify.", Subtitle: "Your digital footprint.", Fields: []lead.FieldID{lead.FieldLinkedIn, lead.FieldGitHub}},
	{Title: "The Blueprint.", Subtitle: "What is the mission?", Fields: []lead.FieldID{lead.FieldProjectGoal}},
	{Title: "The Blueprint.", Subtitle: "What's standing in your way?", Fields: []lead.FieldID{lead.FieldBlocker}},
	{Title: "The Blueprint.", Subtitle: "Add some context.", Fields: []lead.FieldID{lead.FieldVision}},
	{Title: "Logistics.", Subtitle: "When do we start?", Fields: []lead.FieldID{lead.FieldTimeline}},
	{Title: "Logistics.", Subtitle: "How big is this?", Fields: []lead.FieldID{lead.FieldEngagementScale}},
	{Title: "Logistics.", Subtitle: "How did you find us?", Fields: []lead.FieldID{lead.FieldOrigin}},
}

// Steps returns the step table for a mode, in flow order.
func Steps(mode Mode) []Step {
	if mode == ModeMobile {
		return append([]Step{}, mobileSteps...)
	}
	return append([]Step{}, desktopSteps...)
}
