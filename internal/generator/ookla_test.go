package generator

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragujp/prometheus-sample-configs/internal/config"
	"github.com/ragujp/prometheus-sample-configs/internal/resolver"
	"github.com/ragujp/prometheus-sample-configs/internal/sdfile"
)

type stubFetcher struct {
	pages map[string][]byte
	errs  map[string]error
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.pages[url]
	if !ok {
		return nil, errors.New("unexpected url: " + url)
	}
	return body, nil
}

type stubResolver struct {
	addrs map[string]resolver.HostAddresses
	err   error
}

func (r *stubResolver) Resolve(_ context.Context, host string) (resolver.HostAddresses, error) {
	if r.err != nil {
		return resolver.HostAddresses{}, r.err
	}
	return r.addrs[host], nil
}

func buildOoklaSource(t *testing.T, cfg config.OoklaConfig, f *stubFetcher, r *stubResolver) *OoklaSource {
	t.Helper()
	source, err := NewOoklaSourceBuilder(zerolog.Nop()).
		WithConfig(cfg).
		WithResolverConfig(config.NewDefaultResolverConfig()).
		WithFetcher(f).
		WithResolver(r).
		Build()
	require.NoError(t, err)
	return source
}

func readGroups(t *testing.T, path string) []sdfile.TargetGroup {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var groups []sdfile.TargetGroup
	require.NoError(t, json.Unmarshal(data, &groups))
	return groups
}

func TestOoklaSource_EndToEnd(t *testing.T) {
	cfg := config.NewDefaultOoklaConfig()
	cfg.OutputDir = t.TempDir()

	f := &stubFetcher{pages: map[string][]byte{
		cfg.APIURL: []byte(`[{"country":"Japan","host":"a.example.net:8080","id":7,"name":"Osaka","sponsor":"X","cc":"JP","url":"http://a.example.net/"}]`),
	}}
	r := &stubResolver{addrs: map[string]resolver.HostAddresses{
		"a.example.net": {V4: []string{"203.0.113.5"}},
	}}

	source := buildOoklaSource(t, cfg, f, r)
	summary, err := source.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SourceNameOokla, summary.Source)
	assert.Equal(t, 1, summary.Candidates)
	assert.Equal(t, 1, summary.IPv4Groups)
	assert.Equal(t, 0, summary.IPv6Groups)
	require.Len(t, summary.Files, 2)

	ipv4Path := filepath.Join(cfg.OutputDir, cfg.IPv4File)
	groups := readGroups(t, ipv4Path)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"203.0.113.5"}, groups[0].Targets)
	assert.Equal(t, map[string]string{
		"ookla_id":  "7",
		"city":      "Osaka",
		"sponsor":   "X",
		"cc":        "JP",
		"fqdn":      "a.example.net",
		"url":       "http://a.example.net/",
		"ip_family": "v4",
	}, groups[0].Labels)

	raw, err := os.ReadFile(ipv4Path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"url": "http://a.example.net/"`, "URL should not be HTML-escaped")

	ipv6Raw, err := os.ReadFile(filepath.Join(cfg.OutputDir, cfg.IPv6File))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(ipv6Raw))
}

func TestOoklaSource_DeterministicAcrossUpstreamReordering(t *testing.T) {
	serverA := `{"country":"Japan","host":"a.example.net:8080","id":1,"name":"Tokyo","sponsor":"Alpha","cc":"JP","url":"http://a.example.net/"}`
	serverB := `{"country":"Japan","host":"b.example.net:8080","id":2,"name":"Osaka","sponsor":"Beta","cc":"JP","url":"http://b.example.net/"}`

	r := &stubResolver{addrs: map[string]resolver.HostAddresses{
		"a.example.net": {V4: []string{"198.51.100.1"}, V6: []string{"2001:db8::a"}},
		"b.example.net": {V4: []string{"198.51.100.2"}},
	}}

	cfg := config.NewDefaultOoklaConfig()
	cfg.OutputDir = t.TempDir()

	var outputs [2][]byte
	for i, payload := range []string{
		"[" + serverA + "," + serverB + "]",
		"[" + serverB + "," + serverA + "]",
	} {
		f := &stubFetcher{pages: map[string][]byte{cfg.APIURL: []byte(payload)}}
		source := buildOoklaSource(t, cfg, f, r)
		_, err := source.Generate(context.Background())
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, cfg.IPv4File))
		require.NoError(t, err)
		outputs[i] = data
	}

	assert.Equal(t, string(outputs[0]), string(outputs[1]), "output must not depend on upstream ordering")

	groups := readGroups(t, filepath.Join(cfg.OutputDir, cfg.IPv4File))
	require.Len(t, groups, 2)
	assert.Equal(t, "Osaka", groups[0].Labels["city"], "groups should sort by city")
	assert.Equal(t, "Tokyo", groups[1].Labels["city"])
}

func TestOoklaSource_DeduplicatesIdenticalServers(t *testing.T) {
	server := `{"country":"Japan","host":"a.example.net:8080","id":1,"name":"Tokyo","sponsor":"Alpha","cc":"JP","url":"http://a.example.net/"}`

	cfg := config.NewDefaultOoklaConfig()
	cfg.OutputDir = t.TempDir()

	f := &stubFetcher{pages: map[string][]byte{cfg.APIURL: []byte("[" + server + "," + server + "]")}}
	r := &stubResolver{addrs: map[string]resolver.HostAddresses{
		"a.example.net": {V4: []string{"198.51.100.1"}},
	}}

	source := buildOoklaSource(t, cfg, f, r)
	summary, err := source.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Candidates)
	assert.Equal(t, 1, summary.IPv4Groups)
	assert.Len(t, readGroups(t, filepath.Join(cfg.OutputDir, cfg.IPv4File)), 1)
}

func TestOoklaSource_UnresolvedServersAreSkipped(t *testing.T) {
	serverA := `{"country":"Japan","host":"a.example.net:8080","id":1,"name":"Tokyo","sponsor":"Alpha","cc":"JP","url":"http://a.example.net/"}`
	serverB := `{"country":"Japan","host":"b.example.net:8080","id":2,"name":"Osaka","sponsor":"Beta","cc":"JP","url":"http://b.example.net/"}`

	cfg := config.NewDefaultOoklaConfig()
	cfg.OutputDir = t.TempDir()

	f := &stubFetcher{pages: map[string][]byte{cfg.APIURL: []byte("[" + serverA + "," + serverB + "]")}}
	r := &stubResolver{addrs: map[string]resolver.HostAddresses{
		"a.example.net": {V6: []string{"2001:db8::a"}},
	}}

	source := buildOoklaSource(t, cfg, f, r)
	summary, err := source.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Candidates)
	assert.Equal(t, 0, summary.IPv4Groups)
	assert.Equal(t, 1, summary.IPv6Groups)

	groups := readGroups(t, filepath.Join(cfg.OutputDir, cfg.IPv6File))
	require.Len(t, groups, 1)
	assert.Equal(t, "a.example.net", groups[0].Labels["fqdn"])
}

func TestOoklaSource_FetchFailureFailsRun(t *testing.T) {
	cfg := config.NewDefaultOoklaConfig()
	cfg.OutputDir = t.TempDir()

	f := &stubFetcher{errs: map[string]error{cfg.APIURL: errors.New("connection refused")}}
	source := buildOoklaSource(t, cfg, f, &stubResolver{})

	_, err := source.Generate(context.Background())
	require.Error(t, err)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no files should be written when the fetch fails")
}

func TestOoklaSource_MalformedDocumentFailsRun(t *testing.T) {
	cfg := config.NewDefaultOoklaConfig()
	cfg.OutputDir = t.TempDir()

	f := &stubFetcher{pages: map[string][]byte{cfg.APIURL: []byte(`{"servers": []}`)}}
	source := buildOoklaSource(t, cfg, f, &stubResolver{})

	_, err := source.Generate(context.Background())
	require.Error(t, err)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no files should be written when the document is malformed")
}

func TestOoklaSource_ResolverFailureFailsRun(t *testing.T) {
	cfg := config.NewDefaultOoklaConfig()
	cfg.OutputDir = t.TempDir()

	f := &stubFetcher{pages: map[string][]byte{
		cfg.APIURL: []byte(`[{"country":"Japan","host":"a.example.net:8080","id":1,"name":"Tokyo","sponsor":"Alpha","cc":"JP","url":""}]`),
	}}
	r := &stubResolver{err: errors.New("resolver unreachable")}

	source := buildOoklaSource(t, cfg, f, r)
	_, err := source.Generate(context.Background())
	require.Error(t, err)
}
