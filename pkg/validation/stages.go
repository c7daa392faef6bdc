package validation

import "github.com/vucehq/go-leadengine/pkg/lead"

// Stage is a named, ordered group of fields validated together. The
// declared field order is authoritative: when a stage fails, the first
// failing field in that order is the designated shake target.
type Stage struct {
	Name   string
	Fields []lead.FieldID
}

// The three submission stages. phonePrefix is carried alongside the
// phone field but has no rule of its own.
var (
	Identity = Stage{
		Name: "Identity",
		Fields: []lead.FieldID{
			lead.FieldFullName,
			lead.FieldEmail,
			lead.FieldLinkedIn,
			lead.FieldGitHub,
			lead.FieldCountry,
			lead.FieldPhone,
		},
	}
	Blueprint = Stage{
		Name: "Blueprint",
		Fields: []lead.FieldID{
			lead.FieldProjectGoal,
			lead.FieldBlocker,
			lead.FieldVision,
		},
	}
	Logistics = Stage{
		Name: "Logistics",
		Fields: []lead.FieldID{
			lead.FieldTimeline,
			lead.FieldEngagementScale,
			lead.FieldOrigin,
		},
	}
)

// Stages returns the submission stages in flow order.
func Stages() []Stage {
	return []Stage{Identity, Blueprint, Logistics}
}

// StageResult reports a stage (or micro-step) validation pass. First is
// only meaningful when OK is false; it identifies the single field that
// receives the shake cue.
type StageResult struct {
	OK          bool
	FieldErrors map[lead.FieldID]string
	First       lead.FieldID
}

// ValidateStage checks every field of the stage against the record.
func ValidateStage(stage Stage, record *lead.Record) StageResult {
	return ValidateFields(stage.Fields, record)
}

// ValidateFields checks an ordered field subset against the record.
// Mobile micro-steps with grouped fields pass their own subset here;
// the first declared failing field becomes the shake target.
func ValidateFields(fields []lead.FieldID, record *lead.Record) StageResult {
	result := StageResult{OK: true}
	for _, id := range fields {
		r := Field(id, record.Get(id))
		if r.OK {
			continue
		}
		if result.OK {
			result.OK = false
			result.First = id
			result.FieldErrors = make(map[lead.FieldID]string)
		}
		result.FieldErrors[id] = r.Message
	}
	return result
}
