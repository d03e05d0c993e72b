package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	a := &Profile{Name: "poisson"}
	b := &Profile{Name: "gw_wave"}

	got, err := Select([]*Profile{a}, "")
	require.NoError(t, err)
	assert.Same(t, a, got)

	got, err = Select([]*Profile{a, b}, "GW_WAVE")
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = Select([]*Profile{a, b}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gw_wave, poisson")

	_, err = Select([]*Profile{a}, "missing")
	require.ErrorIs(t, err, ErrProfileNotFound)

	_, err = Select(nil, "")
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, (&Profile{Name: "ok"}).Validate())

	err := (&Profile{Name: "bad", Grid: -1, Steps: -2, Source: "x.hcl"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid must be positive")
	assert.Contains(t, err.Error(), "steps must be positive")
	assert.Contains(t, err.Error(), "x.hcl")
}
