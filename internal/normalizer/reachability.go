package normalizer

import (
	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/models"
	"github.com/ragujp/prometheus-sample-configs/internal/sdfile"
)

// ReachabilityNormalizer maps EC2 reachability rows onto single-target
// groups.
type ReachabilityNormalizer struct {
	logger zerolog.Logger
}

// NewReachabilityNormalizer creates a new ReachabilityNormalizer
func NewReachabilityNormalizer(logger zerolog.Logger) *ReachabilityNormalizer {
	return &ReachabilityNormalizer{
		logger: logger.With().Str("component", "ReachabilityNormalizer").Logger(),
	}
}

// Normalize emits one target group for a row whose address parses as an IP
// literal. Rows with unparseable addresses are dropped so that the ip_version
// label always matches the target's family.
func (n *ReachabilityNormalizer) Normalize(row models.ReachabilityRow) (sdfile.TargetGroup, bool) {
	family := sdfile.FamilyOf(row.Address)
	if family == sdfile.FamilyUnknown {
		n.logger.Debug().
			Str("address", row.Address).
			Str("region", row.Region).
			Msg("Row address is not an IP literal, skipping")
		return sdfile.TargetGroup{}, false
	}

	labels := NewReachabilityLabels(row.Area, row.Region, row.City, row.Country, family)
	return sdfile.TargetGroup{
		Targets: []string{row.Address},
		Labels:  labels.ToMap(),
	}, true
}
