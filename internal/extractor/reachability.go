package extractor

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/models"
)

// ReachabilityExtractor extracts endpoint rows from a reachability page.
//
// Pages are a sequence of panels; each panel has a title naming a geographic
// area and a table mixing heading rows (th.region-heading, establishing the
// city/country for subsequent rows) with data rows (region in the first
// column, test address in the third; the second, a prefix, is ignored).
type ReachabilityExtractor struct {
	logger zerolog.Logger
}

// NewReachabilityExtractor creates a new reachability page extractor.
func NewReachabilityExtractor(logger zerolog.Logger) *ReachabilityExtractor {
	return &ReachabilityExtractor{
		logger: logger.With().Str("component", "ReachabilityExtractor").Logger(),
	}
}

// headingContext carries the city/country set by the most recent heading row
// forward across the data rows that follow it.
type headingContext struct {
	city    string
	country string
}

// Extract parses the page and returns one row per usable table data row. A
// document without the expected panel structure yields zero rows.
func (re *ReachabilityExtractor) Extract(htmlContent []byte) []models.ReachabilityRow {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlContent))
	if err != nil {
		re.logger.Warn().Err(err).Msg("Failed to parse reachability page, yielding no records")
		return nil
	}

	var rows []models.ReachabilityRow

	doc.Find(".panel.panel-default").Each(func(_ int, panel *goquery.Selection) {
		area := CleanText(panel.Find(".panel-title").First().Text())

		table := panel.Find("table").First()
		if table.Length() == 0 {
			re.logger.Debug().Str("area", area).Msg("Panel without table, skipping")
			return
		}

		rows = append(rows, re.extractTableRows(table, area)...)
	})

	return rows
}

// extractTableRows walks one table, folding heading rows into the context
// applied to the data rows after them.
func (re *ReachabilityExtractor) extractTableRows(table *goquery.Selection, area string) []models.ReachabilityRow {
	var rows []models.ReachabilityRow
	var current headingContext

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if heading := tr.Find("th.region-heading"); heading.Length() > 0 {
			current.city, current.country = SplitCityCountry(heading.First().Text())
			return
		}

		tds := tr.Find("td")
		if tds.Length() < 3 {
			return
		}

		region := CleanText(tds.Eq(0).Text())
		address := CleanText(tds.Eq(2).Text())
		if isAddressPlaceholder(address) {
			return
		}

		rows = append(rows, models.ReachabilityRow{
			Area:    area,
			Region:  region,
			City:    current.city,
			Country: current.country,
			Address: address,
		})
	})

	return rows
}

// isAddressPlaceholder reports whether the address cell is empty or a header
// placeholder misclassified as data.
func isAddressPlaceholder(address string) bool {
	if address == "" {
		return true
	}
	switch strings.ToLower(address) {
	case "ip", "instance ip":
		return true
	default:
		return false
	}
}
