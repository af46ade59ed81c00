package extractor

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeedtestExtractor_FilterAndSkip(t *testing.T) {
	data := `[
		{"id": 7, "name": "Osaka", "country": "Japan", "cc": "JP", "sponsor": "X", "host": "a.example.net:8080", "url": "http://a.example.net/"},
		{"id": "22", "name": "Berlin", "country": "Germany", "cc": "DE", "sponsor": "Y", "host": "b.example.net:8080"},
		{"id": 31, "name": "Nagoya", "country": "Japan"},
		{"id": {"bad": true}, "name": "Broken", "country": "Japan", "host": "c.example.net:8080"},
		{"id": 48, "name": "Tokyo", "country": "Japan", "cc": "JP", "sponsor": "Z", "host": "d.example.net:8080"}
	]`

	ex := NewSpeedtestExtractor("Japan", zerolog.Nop())
	servers, err := ex.Extract([]byte(data))

	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, "7", servers[0].ID.String())
	assert.Equal(t, "Osaka", servers[0].Name)
	assert.Equal(t, "a.example.net:8080", servers[0].Host)
	assert.Equal(t, "48", servers[1].ID.String())
	assert.Equal(t, "Tokyo", servers[1].Name)
}

func TestSpeedtestExtractor_CountryFilterIsExact(t *testing.T) {
	data := `[
		{"id": 1, "name": "A", "country": "japan", "host": "a.example.net:1"},
		{"id": 2, "name": "B", "country": "Japan ", "host": "b.example.net:1"}
	]`

	ex := NewSpeedtestExtractor("Japan", zerolog.Nop())
	servers, err := ex.Extract([]byte(data))

	require.NoError(t, err)
	assert.Empty(t, servers)
}

func TestSpeedtestExtractor_NotAnArrayFails(t *testing.T) {
	ex := NewSpeedtestExtractor("Japan", zerolog.Nop())

	for _, data := range [][]byte{
		[]byte(`{"servers": []}`),
		[]byte(`not json`),
		nil,
	} {
		servers, err := ex.Extract(data)
		assert.Error(t, err)
		assert.Empty(t, servers)
	}
}

func TestSpeedtestExtractor_EmptyArray(t *testing.T) {
	ex := NewSpeedtestExtractor("Japan", zerolog.Nop())

	servers, err := ex.Extract([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, servers)
}
