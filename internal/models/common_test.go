package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapRoundTripsThroughColumn(t *testing.T) {
	in := JSONMap{"skills": "go", "city": "Almaty"}

	value, err := in.Value()
	require.NoError(t, err)

	var out JSONMap
	require.NoError(t, out.Scan(value))
	assert.Equal(t, "go", out["skills"])
	assert.Equal(t, "Almaty", out["city"])
}

func TestJSONMapScanNilYieldsEmptyMap(t *testing.T) {
	var out JSONMap
	require.NoError(t, out.Scan(nil))
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestCloneJSONMapDoesNotAlias(t *testing.T) {
	src := JSONMap{"k": "v"}

	clone := CloneJSONMap(src)
	clone["k"] = "changed"
	clone["extra"] = "x"

	assert.Equal(t, "v", src["k"])
	assert.NotContains(t, src, "extra")
}
