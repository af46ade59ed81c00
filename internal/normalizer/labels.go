// Package normalizer maps extracted candidate records onto the canonical
// target-group label schemas. Each source has a fixed label set; values are
// always present, empty string included.
package normalizer

import (
	"github.com/ragujp/prometheus-sample-configs/internal/extractor"
	"github.com/ragujp/prometheus-sample-configs/internal/sdfile"
)

const (
	ec2Provider = "aws"
	ec2Source   = "ec2-reachability"
)

// SpeedtestLabels is the label schema for speedtest server groups.
type SpeedtestLabels struct {
	OoklaID string
	City    string
	Sponsor string
	CC      string
	FQDN    string
	URL     string
}

// NewSpeedtestLabels builds the base label set for one server, normalizing
// whitespace in every free-text field.
func NewSpeedtestLabels(ooklaID, city, sponsor, cc, fqdn, url string) SpeedtestLabels {
	return SpeedtestLabels{
		OoklaID: extractor.CleanText(ooklaID),
		City:    extractor.CleanText(city),
		Sponsor: extractor.CleanText(sponsor),
		CC:      extractor.CleanText(cc),
		FQDN:    extractor.CleanText(fqdn),
		URL:     extractor.CleanText(url),
	}
}

// ToMap renders the schema for one address family.
func (l SpeedtestLabels) ToMap(family sdfile.Family) map[string]string {
	return map[string]string{
		"ookla_id":  l.OoklaID,
		"city":      l.City,
		"sponsor":   l.Sponsor,
		"cc":        l.CC,
		"fqdn":      l.FQDN,
		"url":       l.URL,
		"ip_family": familyTag(family),
	}
}

// ReachabilityLabels is the label schema for EC2 reachability groups.
type ReachabilityLabels struct {
	Area    string
	Region  string
	City    string
	Country string
	Family  sdfile.Family
}

// NewReachabilityLabels builds the label set for one table row, normalizing
// whitespace in every free-text field.
func NewReachabilityLabels(area, region, city, country string, family sdfile.Family) ReachabilityLabels {
	return ReachabilityLabels{
		Area:    extractor.CleanText(area),
		Region:  extractor.CleanText(region),
		City:    extractor.CleanText(city),
		Country: extractor.CleanText(country),
		Family:  family,
	}
}

// ToMap renders the schema, including the fixed provider and source markers.
func (l ReachabilityLabels) ToMap() map[string]string {
	return map[string]string{
		"provider":   ec2Provider,
		"area":       l.Area,
		"region":     l.Region,
		"city":       l.City,
		"country":    l.Country,
		"ip_version": ipVersionTag(l.Family),
		"source":     ec2Source,
	}
}

// familyTag is the ip_family label value: "v4" or "v6".
func familyTag(family sdfile.Family) string {
	if family == sdfile.FamilyIPv6 {
		return "v6"
	}
	return "v4"
}

// ipVersionTag is the ip_version label value: "4" or "6".
func ipVersionTag(family sdfile.Family) string {
	if family == sdfile.FamilyIPv6 {
		return "6"
	}
	return "4"
}
