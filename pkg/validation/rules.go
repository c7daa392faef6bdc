// Package validation declares the per-field correctness rules and the
// stage groupings the wizard validates against. Rules are pure and
// total: they never panic and always return a Result.
package validation

import (
	"net/url"
	"regexp"
	"unicode/utf8"

	"github.com/vucehq/go-leadengine/pkg/lead"
)

// EmailPattern is the email grammar shared by the client-side rules,
// the contact endpoint, and the relay.
const EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

var emailRe = regexp.MustCompile(EmailPattern)

// Result is the outcome of a single field rule.
type Result struct {
	OK      bool
	Message string
}

func ok() Result { return Result{OK: true} }

func fail(message string) Result { return Result{Message: message} }

// Rule checks one field value. Values arrive exactly as entered; rules
// deliberately do not trim whitespace before length checks.
type Rule func(value string) Result

func minLength(n int, message string) Rule {
	return func(value string) Result {
		if utf8.RuneCountInString(value) < n {
			return fail(message)
		}
		return ok()
	}
}

func email(message string) Rule {
	return func(value string) Result {
		if !emailRe.MatchString(value) {
			return fail(message)
		}
		return ok()
	}
}

// optionalURL accepts the empty string; anything else must parse as an
// absolute URL with a scheme and host.
func optionalURL(message string) Rule {
	return func(value string) Result {
		if value == "" {
			return ok()
		}
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fail(message)
		}
		return ok()
	}
}

func oneOf(options []string, message string) Rule {
	return func(value string) Result {
		for _, option := range options {
			if value == option {
				return ok()
			}
		}
		return fail(message)
	}
}

func always() Rule {
	return func(string) Result { return ok() }
}

func goalOptions() []string {
	goals := lead.ProjectGoals()
	out := make([]string, len(goals))
	for i, g := range goals {
		out[i] = string(g)
	}
	return out
}

func timelineOptions() []string {
	timelines := lead.Timelines()
	out := make([]string, len(timelines))
	for i, t := range timelines {
		out[i] = string(t)
	}
	return out
}

func scaleOptions() []string {
	scales := lead.EngagementScales()
	out := make([]string, len(scales))
	for i, s := range scales {
		out[i] = string(s)
	}
	return out
}

func originOptions() []string {
	origins := lead.Origins()
	out := make([]string, len(origins))
	for i, o := range origins {
		out[i] = string(o)
	}
	return out
}

var fieldRules = map[lead.FieldID]Rule{
	lead.FieldFullName:        minLength(2, "Full name must be at least 2 characters"),
	lead.FieldEmail:           email("Enter a valid email address"),
	lead.FieldLinkedIn:        optionalURL("Enter a valid URL"),
	lead.FieldGitHub:          optionalURL("Enter a valid URL"),
	lead.FieldCountry:         minLength(1, "Select a country"),
	lead.FieldPhone:           minLength(5, "Phone number must be at least 5 digits"),
	lead.FieldProjectGoal:     oneOf(goalOptions(), "Select a project goal"),
	lead.FieldBlocker:         minLength(10, "Tell us a bit more (at least 10 characters)"),
	lead.FieldVision:          always(),
	lead.FieldTimeline:        oneOf(timelineOptions(), "Select a timeline"),
	lead.FieldEngagementScale: oneOf(scaleOptions(), "Select an engagement scale"),
	lead.FieldOrigin:          oneOf(originOptions(), "Tell us how you found us"),
}

// Field validates a single value against its rule. Fields without a
// declared rule (phonePrefix, unknown ids) always pass.
func Field(id lead.FieldID, value string) Result {
	rule, found := fieldRules[id]
	if !found {
		return ok()
	}
	return rule(value)
}

// Optional reports whether an empty value is always acceptable for the
// field. Optional fields never block stage completion when left empty.
func Optional(id lead.FieldID) bool {
	switch id {
	case lead.FieldLinkedIn, lead.FieldGitHub, lead.FieldVision:
		return true
	default:
		return false
	}
}
