package extractor

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/errorwrapper"
	"github.com/ragujp/prometheus-sample-configs/internal/models"
)

// SpeedtestExtractor extracts server entries from a server list API response.
type SpeedtestExtractor struct {
	logger  zerolog.Logger
	country string
}

// NewSpeedtestExtractor creates an extractor keeping only servers in country.
func NewSpeedtestExtractor(country string, logger zerolog.Logger) *SpeedtestExtractor {
	return &SpeedtestExtractor{
		logger:  logger.With().Str("component", "SpeedtestExtractor").Logger(),
		country: country,
	}
}

// Extract parses the API response and returns the servers passing the country
// filter. A response that is not a JSON array fails the whole document;
// individual entries that fail to decode or lack a host are skipped.
func (se *SpeedtestExtractor) Extract(data []byte) ([]models.SpeedtestServer, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errorwrapper.WrapError(err, "server list document is not a JSON array")
	}

	servers := make([]models.SpeedtestServer, 0, len(entries))
	for i, entry := range entries {
		var server models.SpeedtestServer
		if err := json.Unmarshal(entry, &server); err != nil {
			se.logger.Debug().Err(err).Int("index", i).Msg("Skipping undecodable server entry")
			continue
		}

		if server.Country != se.country {
			continue
		}
		if server.Host == "" {
			se.logger.Debug().Str("name", server.Name).Msg("Skipping server entry without host")
			continue
		}

		servers = append(servers, server)
	}

	return servers, nil
}
