package policy

import (
	"github.com/aurora-platform/justice/pkg/query"
	"github.com/aurora-platform/justice/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "policy_versions", "p").
	Project("version", "Version").
	Project("decay_per_day", "DecayPerDay").
	Project("base_eko", "BaseEko").
	Project("base_com", "BaseCom").
	Project("base_sys", "BaseSys").
	Project("base_trust", "BaseTrust").
	Project("threshold_soft_flag", "ThresholdSoftFlag").
	Project("threshold_probation", "ThresholdProbation").
	Project("threshold_restricted", "ThresholdRestricted").
	Project("threshold_lockdown", "ThresholdLockdown").
	Project("severity_step", "SeverityStep").
	Project("hitl_threshold", "HITLThreshold").
	Project("reject_risk_increment", "RejectRiskIncrement").
	Project("manual_flag_severity", "ManualFlagSeverity").
	Project("onchain_block", "OnchainBlock").
	Project("onchain_tx", "OnchainTx").
	Project("active", "Active").
	Project("activated_at", "ActivatedAt")

var defaultSort = query.SortField{
	Field:      "ActivatedAt",
	Descending: true,
}

func scanPolicyVersion(s repository.Scanner) (PolicyVersion, error) {
	var p PolicyVersion

	err := s.Scan(
		&p.Version,
		&p.DecayPerDay,
		&p.BaseEko,
		&p.BaseCom,
		&p.BaseSys,
		&p.BaseTrust,
		&p.ThresholdSoftFlag,
		&p.ThresholdProbation,
		&p.ThresholdRestricted,
		&p.ThresholdLockdown,
		&p.SeverityStep,
		&p.HITLThreshold,
		&p.RejectRiskIncrement,
		&p.ManualFlagSeverity,
		&p.OnchainBlock,
		&p.OnchainTx,
		&p.Active,
		&p.ActivatedAt,
	)

	return p, err
}
