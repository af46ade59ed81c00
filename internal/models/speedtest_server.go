package models

import "encoding/json"

// SpeedtestServer represents one server entry from the Ookla server list API.
type SpeedtestServer struct {
	URL      string     `json:"url"`      // Upload endpoint, kept as an informational label
	Name     string     `json:"name"`     // City name (e.g., "Tokyo")
	Country  string     `json:"country"`  // Full country name, used for the geographic filter
	CC       string     `json:"cc"`       // ISO country code
	Sponsor  string     `json:"sponsor"`  // Operating organization
	ID       FlexibleID `json:"id"`       // Catalog identifier; string or number upstream
	Host     string     `json:"host"`     // "fqdn:port" of the test endpoint
	Distance float64    `json:"distance"` // Distance from the search origin, unused
	Lat      string     `json:"lat"`
	Lon      string     `json:"lon"`
}

// FlexibleID is a catalog identifier the upstream API emits as either a JSON
// string or a JSON number. It always normalizes to its string form.
type FlexibleID string

// UnmarshalJSON accepts both string and numeric identifiers.
func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// String returns the normalized identifier.
func (f FlexibleID) String() string {
	return string(f)
}
