// Package policy implements the versioned policy store. A policy version is a
// governance-sourced snapshot of every tunable the engine consults: decay
// rate, per-category base weights, regime thresholds, and moderation
// constants. Exactly one version is active at any instant; superseded versions
// are immutable and retained for audit of past computations.
package policy

import (
	"time"

	"github.com/aurora-platform/justice/pkg/points"
)

// Category identifies a violation category known to the policy.
type Category string

const (
	CategoryEko   Category = "EKO"
	CategoryCom   Category = "COM"
	CategorySys   Category = "SYS"
	CategoryTrust Category = "TRUST"
)

// Categories lists every policy-known category.
var Categories = []Category{CategoryEko, CategoryCom, CategorySys, CategoryTrust}

// Valid reports whether c is a policy-known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryEko, CategoryCom, CategorySys, CategoryTrust:
		return true
	}
	return false
}

// Severity bounds for violations.
const (
	MinSeverity = 1
	MaxSeverity = 5
)

// PolicyVersion is an immutable snapshot of all tunable policy values.
// ActivatedAt is serialized as synced_at for compatibility with the
// governance sync consumers.
type PolicyVersion struct {
	Version              string        `json:"version"`
	DecayPerDay          points.Points `json:"decay_per_day"`
	BaseEko              points.Points `json:"base_eko"`
	BaseCom              points.Points `json:"base_com"`
	BaseSys              points.Points `json:"base_sys"`
	BaseTrust            points.Points `json:"base_trust"`
	ThresholdSoftFlag    points.Points `json:"threshold_soft_flag"`
	ThresholdProbation   points.Points `json:"threshold_probation"`
	ThresholdRestricted  points.Points `json:"threshold_restricted"`
	ThresholdLockdown    points.Points `json:"threshold_lockdown"`
	SeverityStep         points.Points `json:"severity_step"`
	HITLThreshold        points.Points `json:"hitl_threshold"`
	RejectRiskIncrement  points.Points `json:"reject_risk_increment"`
	ManualFlagSeverity   int           `json:"manual_flag_severity"`
	OnchainBlock         *int64        `json:"onchain_block,omitempty"`
	OnchainTx            *string       `json:"onchain_tx,omitempty"`
	Active               bool          `json:"active"`
	ActivatedAt          time.Time     `json:"synced_at"`
}

// BaseWeight returns the base penalty weight for a category.
func (p *PolicyVersion) BaseWeight(c Category) points.Points {
	switch c {
	case CategoryEko:
		return p.BaseEko
	case CategoryCom:
		return p.BaseCom
	case CategorySys:
		return p.BaseSys
	case CategoryTrust:
		return p.BaseTrust
	}
	return points.Zero
}

// SeverityFactor returns the multiplier applied to a category's base weight:
// 1 + (severity − 1) × severity_step. Severity 1 always yields factor 1.
func (p *PolicyVersion) SeverityFactor(severity int) points.Points {
	return points.FromUnits(1).Add(p.SeverityStep.MulInt(int64(severity - 1)))
}

// CPDelta computes the penalty contribution of a violation under this policy.
func (p *PolicyVersion) CPDelta(c Category, severity int) points.Points {
	return p.BaseWeight(c).Mul(p.SeverityFactor(severity))
}

// ActivateCommand carries a governance-approved policy snapshot for activation.
// Version must be new; all weights and thresholds must be complete and valid.
type ActivateCommand struct {
	Version             string        `json:"version"`
	DecayPerDay         points.Points `json:"decay_per_day"`
	BaseEko             points.Points `json:"base_eko"`
	BaseCom             points.Points `json:"base_com"`
	BaseSys             points.Points `json:"base_sys"`
	BaseTrust           points.Points `json:"base_trust"`
	ThresholdSoftFlag   points.Points `json:"threshold_soft_flag"`
	ThresholdProbation  points.Points `json:"threshold_probation"`
	ThresholdRestricted points.Points `json:"threshold_restricted"`
	ThresholdLockdown   points.Points `json:"threshold_lockdown"`
	SeverityStep        points.Points `json:"severity_step"`
	HITLThreshold       points.Points `json:"hitl_threshold"`
	RejectRiskIncrement points.Points `json:"reject_risk_increment"`
	ManualFlagSeverity  int           `json:"manual_flag_severity"`
	OnchainBlock        *int64        `json:"onchain_block,omitempty"`
	OnchainTx           *string       `json:"onchain_tx,omitempty"`
}

// Validate checks threshold monotonicity and completeness of all values.
func (c *ActivateCommand) Validate() error {
	if c.Version == "" {
		return errInvalid("version required")
	}
	if c.DecayPerDay < 0 {
		return errInvalid("decay_per_day must be non-negative")
	}

	weights := map[Category]points.Points{
		CategoryEko:   c.BaseEko,
		CategoryCom:   c.BaseCom,
		CategorySys:   c.BaseSys,
		CategoryTrust: c.BaseTrust,
	}
	for _, cat := range Categories {
		if weights[cat] <= 0 {
			return errInvalid("base weight for " + string(cat) + " required")
		}
	}

	thresholds := []points.Points{
		c.ThresholdSoftFlag,
		c.ThresholdProbation,
		c.ThresholdRestricted,
		c.ThresholdLockdown,
	}
	prev := points.Zero
	for _, t := range thresholds {
		if t <= prev {
			return errInvalid("thresholds must be strictly increasing")
		}
		prev = t
	}

	if c.SeverityStep < 0 {
		return errInvalid("severity_step must be non-negative")
	}
	if c.HITLThreshold < 0 || c.HITLThreshold > points.FromUnits(10) {
		return errInvalid("hitl_threshold must be within [0,10]")
	}
	if c.RejectRiskIncrement < 0 {
		return errInvalid("reject_risk_increment must be non-negative")
	}
	if c.ManualFlagSeverity < MinSeverity || c.ManualFlagSeverity > MaxSeverity {
		return errInvalid("manual_flag_severity out of range")
	}

	return nil
}
