// Package lead defines the single mutable record a wizard session
// collects, together with the closed option sets used by its select
// fields. Wire names match the JSON contract consumed by the contact
// endpoint and the downstream relay.
package lead

// FieldID names a single logical input of the lead record. The values
// double as JSON keys on the wire.
type FieldID string

const (
	FieldFullName        FieldID = "fullName"
	FieldEmail           FieldID = "email"
	FieldLinkedIn        FieldID = "linkedin"
	FieldGitHub          FieldID = "github"
	FieldCountry         FieldID = "country"
	FieldPhonePrefix     FieldID = "phonePrefix"
	FieldPhone           FieldID = "phone"
	FieldProjectGoal     FieldID = "projectGoal"
	FieldBlocker         FieldID = "blocker"
	FieldVision          FieldID = "vision"
	FieldTimeline        FieldID = "timeline"
	FieldEngagementScale FieldID = "engagementScale"
	FieldOrigin          FieldID = "origin"
)

// ProjectGoal is the mission the prospect selects on the Blueprint stage.
type ProjectGoal string

const (
	GoalBuildFromScratch    ProjectGoal = "Build from Scratch"
	GoalScaleInfrastructure ProjectGoal = "Scale Infrastructure"
	GoalAIIntegration       ProjectGoal = "AI Integration"
	GoalPerformanceAudit    ProjectGoal = "Performance Audit"
)

// ProjectGoals returns the selectable goals in display order.
func ProjectGoals() []ProjectGoal {
	return []ProjectGoal{
		GoalBuildFromScratch,
		GoalScaleInfrastructure,
		GoalAIIntegration,
		GoalPerformanceAudit,
	}
}

// Timeline is the desired kickoff window.
type Timeline string

const (
	TimelineImmediate         Timeline = "Immediate"
	TimelineNextQuarter       Timeline = "Next Quarter"
	TimelineStrategicPlanning Timeline = "Strategic Planning"
)

// Timelines returns the selectable timelines in display order.
func Timelines() []Timeline {
	return []Timeline{TimelineImmediate, TimelineNextQuarter, TimelineStrategicPlanning}
}

// EngagementScale sizes the engagement.
type EngagementScale string

const (
	ScaleStandardBuild           EngagementScale = "Standard Build"
	ScaleEnterprise              EngagementScale = "Enterprise Scale"
	ScaleFoundationalPartnership EngagementScale = "Foundational Partnership"
)

// EngagementScales returns the selectable scales in display order.
func EngagementScales() []EngagementScale {
	return []EngagementScale{ScaleStandardBuild, ScaleEnterprise, ScaleFoundationalPartnership}
}

// Origin records how the prospect found the agency.
type Origin string

const (
	OriginSocial   Origin = "Social Media"
	OriginReferral Origin = "Referral"
	OriginSearch   Origin = "Search Engine"
	OriginOther    Origin = "Other"
)

// Origins returns the selectable origins in display order.
func Origins() []Origin {
	return []Origin{OriginSocial, OriginReferral, OriginSearch, OriginOther}
}

// Record holds everything a single wizard session collects. Exactly one
// record exists per session; it starts empty and is discarded after a
// successful submission. All values are kept as entered, untrimmed.
type Record struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	LinkedIn        string `json:"linkedin,omitempty"`
	GitHub          string `json:"github,omitempty"`
	Country         string `json:"country"`
	PhonePrefix     string `json:"phonePrefix"`
	Phone           string `json:"phone"`
	ProjectGoal     string `json:"projectGoal"`
	Blocker         string `json:"blocker"`
	Vision          string `json:"vision,omitempty"`
	Timeline        string `json:"timeline"`
	EngagementScale string `json:"engagementScale"`
	Origin          string `json:"origin"`
}

// NewRecord returns an empty record ready for a wizard session.
func NewRecord() *Record {
	return &Record{}
}

// Get returns the current value for a field. Unknown fields resolve to
// the empty string so callers can stay total.
func (r *Record) Get(id FieldID) string {
	if r == nil {
		return ""
	}
	switch id {
	case FieldFullName:
		return r.FullName
	case FieldEmail:
		return r.Email
	case FieldLinkedIn:
		return r.LinkedIn
	case FieldGitHub:
		return r.GitHub
	case FieldCountry:
		return r.Country
	case FieldPhonePrefix:
		return r.PhonePrefix
	case FieldPhone:
		return r.Phone
	case FieldProjectGoal:
		return r.ProjectGoal
	case FieldBlocker:
		return r.Blocker
	case FieldVision:
		return r.Vision
	case FieldTimeline:
		return r.Timeline
	case FieldEngagementScale:
		return r.EngagementScale
	case FieldOrigin:
		return r.Origin
	default:
		return ""
	}
}

// Set writes a field value. Unknown fields are ignored.
func (r *Record) Set(id FieldID, value string) {
	if r == nil {
		return
	}
	switch id {
	case FieldFullName:
		r.FullName = value
	case FieldEmail:
		r.Email = value
	case FieldLinkedIn:
		r.LinkedIn = value
	case FieldGitHub:
		r.GitHub = value
	case FieldCountry:
		r.Country = value
	case FieldPhonePrefix:
		r.PhonePrefix = value
	case FieldPhone:
		r.Phone = value
	case FieldProjectGoal:
		r.ProjectGoal = value
	case FieldBlocker:
		r.Blocker = value
	case FieldVision:
		r.Vision = value
	case FieldTimeline:
		r.Timeline = value
	case FieldEngagementScale:
		r.EngagementScale = value
	case FieldOrigin:
		r.Origin = value
	}
}

// Clone returns a copy of the record, or nil for a nil receiver.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}
