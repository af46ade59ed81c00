package normalizer

import (
	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/models"
	"github.com/ragujp/prometheus-sample-configs/internal/resolver"
	"github.com/ragujp/prometheus-sample-configs/internal/sdfile"
)

// SpeedtestNormalizer maps speedtest servers plus their resolved addresses
// onto per-family target groups.
type SpeedtestNormalizer struct {
	logger zerolog.Logger
}

// NewSpeedtestNormalizer creates a new SpeedtestNormalizer
func NewSpeedtestNormalizer(logger zerolog.Logger) *SpeedtestNormalizer {
	return &SpeedtestNormalizer{
		logger: logger.With().Str("component", "SpeedtestNormalizer").Logger(),
	}
}

// Normalize emits up to two target groups for one server: one per address
// family that resolved. Both groups share the base labels and differ only in
// ip_family. A server with no resolved addresses yields nothing.
func (n *SpeedtestNormalizer) Normalize(server models.SpeedtestServer, fqdn string, addrs resolver.HostAddresses) []sdfile.TargetGroup {
	if addrs.Empty() {
		n.logger.Debug().Str("fqdn", fqdn).Msg("Server resolved to no addresses, skipping")
		return nil
	}

	base := NewSpeedtestLabels(server.ID.String(), server.Name, server.Sponsor, server.CC, fqdn, server.URL)

	var groups []sdfile.TargetGroup
	if len(addrs.V4) > 0 {
		groups = append(groups, sdfile.TargetGroup{
			Targets: addrs.V4,
			Labels:  base.ToMap(sdfile.FamilyIPv4),
		})
	}
	if len(addrs.V6) > 0 {
		groups = append(groups, sdfile.TargetGroup{
			Targets: addrs.V6,
			Labels:  base.ToMap(sdfile.FamilyIPv6),
		})
	}

	return groups
}
