package miam

// Summary is the structured MIAM intake record. It has no identity of its
// own: it exists only as an encoded block inside one session's notes field
// and is overwritten in full on every save.
//
// Dates are form values in "2006-01-02" form. Ages are never part of the
// payload; they are recomputed from date of birth and the session date at
// display and edit time.
type Summary struct {
	Participant    string              `json:"participant"`
	ParticipantDOB string              `json:"participant_dob,omitempty"`
	GeneralNotes   string              `json:"general_notes,omitempty"`
	Relationship   RelationshipHistory `json:"relationship_history"`
	KeyDates       KeyDates            `json:"key_dates"`
	Children       []Child             `json:"children,omitempty"`
	Wishes         Wishes              `json:"wishes"`
	ScreenedFor    Screening           `json:"screened_for"`
	SignpostingFor Signposting         `json:"signposting_for"`
	Conclusion     Conclusion          `json:"conclusion"`
}

// RelationshipHistory flags the legal stages of the parties' relationship.
type RelationshipHistory struct {
	Married          bool `json:"married"`
	Separated        bool `json:"separated"`
	ConditionalOrder bool `json:"conditional_order"`
	FinalOrder       bool `json:"final_order"`
}

// KeyDates are the relationship milestone dates.
type KeyDates struct {
	MarriageDate   string `json:"marriage_date,omitempty"`
	SeparationDate string `json:"separation_date,omitempty"`
	DivorceDate    string `json:"divorce_date,omitempty"`
}

// Child is one child of the parties.
type Child struct {
	Name string `json:"name"`
	DOB  string `json:"dob,omitempty"`
}

// Wishes records the participant's stated wishes.
type Wishes struct {
	ChildArrangements string `json:"child_arrangements,omitempty"`
	Finances          string `json:"finances,omitempty"`
}

// Screening flags the topics the participant was screened for.
type Screening struct {
	ChildProtection    bool `json:"child_protection"`
	SafetyInMediation  bool `json:"safety_in_mediation"`
	MentalHealth       bool `json:"mental_health"`
	Disability         bool `json:"disability"`
	EmotionalReadiness bool `json:"emotional_readiness"`
}

// Signposting flags external services the participant was directed to.
type Signposting struct {
	ChildMaintenance bool `json:"child_maintenance"`
	WelfareBenefits  bool `json:"welfare_benefits"`
	CAB              bool `json:"cab"`
	DebtSupport      bool `json:"debt_support"`
	GP               bool `json:"gp"`
}

// Conclusion records the mediator's assessment outcomes.
type Conclusion struct {
	EmotionallyReady     bool `json:"emotionally_ready"`
	SuitableForMediation bool `json:"suitable_for_mediation"`
	Children             bool `json:"children"`
	Finances             bool `json:"finances"`
	AIM                  bool `json:"aim"`
	ContactP2            bool `json:"contact_p2"`
	Online               bool `json:"online"`
	SharedSpace          bool `json:"shared_space"`
	SeparateSpace        bool `json:"separate_space"`
}
