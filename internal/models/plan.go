package models

import "time"

// Review verdicts.
const (
	VerdictApprove = "approve"
	VerdictPatch   = "patch"
	VerdictReject  = "reject"
)

// PlanSummary carries the headline numbers for a plan.
type PlanSummary struct {
	ZonesChanged    int `json:"zonesChanged"`
	BottlesAffected int `json:"bottlesAffected"`
	MisplacedBefore int `json:"misplacedBefore"`
	MisplacedAfter  int `json:"misplacedAfter"`
}

// ReviewMetadata records the outcome of the optional plan review.
type ReviewMetadata struct {
	Verdict        string  `json:"verdict"`
	Reason         string  `json:"reason,omitempty"`
	StabilityScore float64 `json:"stabilityScore"`
	PatchesApplied int     `json:"patchesApplied"`
	Escalated      bool    `json:"escalated"`
}

// Plan is an ordered set of proposed actions plus reasoning and a summary,
// generated but not yet applied.
type Plan struct {
	Reasoning string          `json:"reasoning"`
	Actions   []Action        `json:"actions"`
	Summary   PlanSummary     `json:"summary"`
	Review    *ReviewMetadata `json:"review,omitempty"`
}

// StoredPlan is a generated plan held for a short window pending apply.
// Plans expire PlanTTL after creation or on explicit deletion.
type StoredPlan struct {
	ID        string
	CellarID  string
	Plan      Plan
	CreatedAt time.Time
}

// PlanTTL is how long a stored plan stays applicable.
const PlanTTL = 15 * time.Minute
