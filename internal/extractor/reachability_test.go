package extractor

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragujp/prometheus-sample-configs/internal/models"
)

const reachabilityPage = `<html><body>
<div class="panel panel-default">
  <div class="panel-heading"><h3 class="panel-title">Asia Pacific</h3></div>
  <table class="table">
    <tr><th class="region-heading" colspan="3">Tokyo</th></tr>
    <tr><td>Region</td><td>Prefix</td><td>IP</td></tr>
    <tr><td>ap-northeast-1</td><td>46.51.224.0/19</td><td>46.51.224.1</td></tr>
    <tr><td>ap-northeast-1</td><td>46.51.225.0/19</td><td>46.51.225.1</td></tr>
    <tr><th class="region-heading" colspan="3">Osaka,&#160;Japan</th></tr>
    <tr><td>ap-northeast-3</td><td>13.208.0.0/16</td><td>13.208.0.5</td></tr>
  </table>
</div>
<div class="panel panel-default">
  <div class="panel-heading"><h3 class="panel-title">Middle East</h3></div>
  <table>
    <tr><th class="region-heading">Lagos, Nigeria</th></tr>
    <tr><td>mea-south-1</td><td>157.175.0.0/16</td><td>Instance IP</td></tr>
    <tr><td>mea-south-1</td><td>157.175.0.0/16</td><td>157.175.0.1</td></tr>
    <tr><td>broken-row</td></tr>
    <tr><td>empty-address</td><td>p</td><td>   </td></tr>
  </table>
</div>
<div class="panel panel-default">
  <div class="panel-heading"><h3 class="panel-title">No Table</h3></div>
  <p>coming soon</p>
</div>
</body></html>`

func TestReachabilityExtractor_Extract(t *testing.T) {
	ex := NewReachabilityExtractor(zerolog.Nop())
	rows := ex.Extract([]byte(reachabilityPage))

	require.Len(t, rows, 4)

	assert.Equal(t, models.ReachabilityRow{
		Area: "Asia Pacific", Region: "ap-northeast-1", City: "Tokyo", Country: "", Address: "46.51.224.1",
	}, rows[0])
	assert.Equal(t, models.ReachabilityRow{
		Area: "Asia Pacific", Region: "ap-northeast-1", City: "Tokyo", Country: "", Address: "46.51.225.1",
	}, rows[1])

	// Heading context advances with the next heading row
	assert.Equal(t, models.ReachabilityRow{
		Area: "Asia Pacific", Region: "ap-northeast-3", City: "Osaka", Country: "Japan", Address: "13.208.0.5",
	}, rows[2])

	// Second panel: own area, comma heading split, placeholder and short rows skipped
	assert.Equal(t, models.ReachabilityRow{
		Area: "Middle East", Region: "mea-south-1", City: "Lagos", Country: "Nigeria", Address: "157.175.0.1",
	}, rows[3])
}

func TestReachabilityExtractor_PlaceholderCaseInsensitive(t *testing.T) {
	page := `<div class="panel panel-default">
	  <div class="panel-title">Area</div>
	  <table>
	    <tr><td>r1</td><td>p</td><td>ip</td></tr>
	    <tr><td>r1</td><td>p</td><td>INSTANCE IP</td></tr>
	    <tr><td>r1</td><td>p</td><td>Ip</td></tr>
	    <tr><td>r1</td><td>p</td><td>192.0.2.1</td></tr>
	  </table>
	</div>`

	ex := NewReachabilityExtractor(zerolog.Nop())
	rows := ex.Extract([]byte(page))

	require.Len(t, rows, 1)
	assert.Equal(t, "192.0.2.1", rows[0].Address)
	// No heading row seen: city and country stay empty
	assert.Equal(t, "", rows[0].City)
	assert.Equal(t, "", rows[0].Country)
}

func TestReachabilityExtractor_NoPanels(t *testing.T) {
	ex := NewReachabilityExtractor(zerolog.Nop())

	assert.Empty(t, ex.Extract([]byte(`<html><body><p>maintenance</p></body></html>`)))
	assert.Empty(t, ex.Extract([]byte(``)))
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", "Tokyo", "Tokyo"},
		{"surrounding space", "  Tokyo  ", "Tokyo"},
		{"inner runs", "US East   (N. Virginia)", "US East (N. Virginia)"},
		{"non-breaking space", "Osaka, Japan", "Osaka, Japan"},
		{"newlines and tabs", "\n\tap-northeast-1\n", "ap-northeast-1"},
		{"empty", "", ""},
		{"only whitespace", "  \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.in))
		})
	}
}

func TestSplitCityCountry(t *testing.T) {
	tests := []struct {
		name            string
		in              string
		expectedCity    string
		expectedCountry string
	}{
		{"city and country", "Lagos, Nigeria", "Lagos", "Nigeria"},
		{"city only", "Tokyo", "Tokyo", ""},
		{"parenthesized region", "US East (N. Virginia)", "US East (N. Virginia)", ""},
		{"first comma only", "Washington, D.C., USA", "Washington", "D.C., USA"},
		{"nbsp around comma", "Osaka, Japan", "Osaka", "Japan"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, country := SplitCityCountry(tt.in)
			assert.Equal(t, tt.expectedCity, city)
			assert.Equal(t, tt.expectedCountry, country)
		})
	}
}
