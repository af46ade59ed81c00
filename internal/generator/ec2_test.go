package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragujp/prometheus-sample-configs/internal/config"
)

const ipv4Page = `<html><body>
<div class="panel panel-default">
  <div class="panel-heading"><h3 class="panel-title">Europe</h3></div>
  <table>
    <tr><th class="region-heading" colspan="3">Dublin, Ireland</th></tr>
    <tr><td>eu-west-1</td><td>Prefix</td><td>Instance IP</td></tr>
    <tr><td>eu-west-1</td><td>54.72.0.0/16</td><td>54.72.0.1</td></tr>
  </table>
</div>
<div class="panel panel-default">
  <div class="panel-heading"><h3 class="panel-title">Asia Pacific</h3></div>
  <table>
    <tr><th class="region-heading" colspan="3">Tokyo, Japan</th></tr>
    <tr><td>ap-northeast-1</td><td>52.192.0.0/16</td><td>52.192.0.1</td></tr>
    <tr><td>ap-northeast-1</td><td>52.192.0.0/16</td><td>52.192.0.1</td></tr>
    <tr><th class="region-heading" colspan="3">Osaka, Japan</th></tr>
    <tr><td>ap-northeast-3</td><td>13.208.0.0/16</td><td>13.208.0.1</td></tr>
  </table>
</div>
</body></html>`

const ipv6Page = `<html><body>
<div class="panel panel-default">
  <div class="panel-heading"><h3 class="panel-title">Asia Pacific</h3></div>
  <table>
    <tr><th class="region-heading" colspan="3">Tokyo, Japan</th></tr>
    <tr><td>ap-northeast-1</td><td>2406:da14::/36</td><td>2406:da14::1</td></tr>
  </table>
</div>
</body></html>`

func buildEC2Source(t *testing.T, cfg config.EC2Config, f *stubFetcher) *EC2Source {
	t.Helper()
	source, err := NewEC2SourceBuilder(zerolog.Nop()).
		WithConfig(cfg).
		WithFetcher(f).
		Build()
	require.NoError(t, err)
	return source
}

func TestEC2Source_EndToEnd(t *testing.T) {
	cfg := config.NewDefaultEC2Config()
	cfg.OutputDir = t.TempDir()

	f := &stubFetcher{pages: map[string][]byte{
		cfg.IPv4URL: []byte(ipv4Page),
		cfg.IPv6URL: []byte(ipv6Page),
	}}

	source := buildEC2Source(t, cfg, f)
	summary, err := source.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SourceNameEC2, summary.Source)
	assert.Equal(t, 5, summary.Candidates, "placeholder row skipped, duplicate row still counted")
	assert.Equal(t, 3, summary.IPv4Groups, "duplicate Tokyo row collapses")
	assert.Equal(t, 1, summary.IPv6Groups)
	require.Len(t, summary.Files, 3)

	combined := readGroups(t, filepath.Join(cfg.OutputDir, cfg.CombinedFile))
	require.Len(t, combined, 4)

	var targets []string
	for _, group := range combined {
		require.Len(t, group.Targets, 1)
		targets = append(targets, group.Targets[0])
	}
	assert.Equal(t, []string{"2406:da14::1", "52.192.0.1", "13.208.0.1", "54.72.0.1"}, targets,
		"combined file sorts by area, region, city, address, family")

	assert.Equal(t, map[string]string{
		"provider":   "aws",
		"area":       "Europe",
		"region":     "eu-west-1",
		"city":       "Dublin",
		"country":    "Ireland",
		"ip_version": "4",
		"source":     "ec2-reachability",
	}, combined[3].Labels)

	ipv4Groups := readGroups(t, filepath.Join(cfg.OutputDir, cfg.IPv4File))
	require.Len(t, ipv4Groups, 3)
	assert.Equal(t, "52.192.0.1", ipv4Groups[0].Targets[0])

	ipv6Groups := readGroups(t, filepath.Join(cfg.OutputDir, cfg.IPv6File))
	require.Len(t, ipv6Groups, 1)
	assert.Equal(t, "6", ipv6Groups[0].Labels["ip_version"])
}

func TestEC2Source_WritesCompactSingleLine(t *testing.T) {
	cfg := config.NewDefaultEC2Config()
	cfg.OutputDir = t.TempDir()

	f := &stubFetcher{pages: map[string][]byte{
		cfg.IPv4URL: []byte(ipv4Page),
		cfg.IPv6URL: []byte(ipv6Page),
	}}

	source := buildEC2Source(t, cfg, f)
	_, err := source.Generate(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(cfg.OutputDir, cfg.CombinedFile))
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(raw, []byte("\n")), "compact output is a single line")
	assert.True(t, bytes.HasSuffix(raw, []byte("\n")))
	assert.Contains(t, string(raw), `"targets":["52.192.0.1"]`)
}

func TestEC2Source_PageFetchFailureFailsRun(t *testing.T) {
	cfg := config.NewDefaultEC2Config()
	cfg.OutputDir = t.TempDir()

	f := &stubFetcher{
		pages: map[string][]byte{cfg.IPv4URL: []byte(ipv4Page)},
		errs:  map[string]error{cfg.IPv6URL: errors.New("connection reset")},
	}

	source := buildEC2Source(t, cfg, f)
	_, err := source.Generate(context.Background())
	require.Error(t, err)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no files should be written when a page fetch fails")
}

func TestNew_WiresEnabledSources(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	g, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, g.sources, 2)
	assert.Equal(t, SourceNameOokla, g.sources[0].Name())
	assert.Equal(t, SourceNameEC2, g.sources[1].Name())

	cfg.OoklaConfig.Enabled = false
	g, err = New(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, g.sources, 1)
	assert.Equal(t, SourceNameEC2, g.sources[0].Name())

	cfg.EC2Config.Enabled = false
	_, err = New(cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources enabled")
}

func TestGenerator_RunsSourcesIndependently(t *testing.T) {
	okDir := t.TempDir()

	ooklaCfg := config.NewDefaultOoklaConfig()
	ooklaCfg.OutputDir = okDir
	ooklaSource := buildOoklaSource(t, ooklaCfg,
		&stubFetcher{pages: map[string][]byte{ooklaCfg.APIURL: []byte(`[]`)}},
		&stubResolver{})

	ec2Cfg := config.NewDefaultEC2Config()
	ec2Cfg.OutputDir = t.TempDir()
	ec2Source := buildEC2Source(t, ec2Cfg,
		&stubFetcher{errs: map[string]error{
			ec2Cfg.IPv4URL: errors.New("down"),
			ec2Cfg.IPv6URL: errors.New("down"),
		}})

	g := NewFromSources(zerolog.Nop(), ooklaSource, ec2Source)
	summaries, err := g.Run(context.Background())

	require.Error(t, err, "failed source must surface in the run error")
	require.Len(t, summaries, 1, "healthy source still completes")
	assert.Equal(t, SourceNameOokla, summaries[0].Source)

	_, statErr := os.Stat(filepath.Join(okDir, ooklaCfg.IPv4File))
	assert.NoError(t, statErr, "healthy source output is written")
}
