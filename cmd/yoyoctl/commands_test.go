package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yoyo_hotels/internal/domain"
)

func TestDistanceCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := distanceCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"51.5074", "-0.1278", "48.8566", "2.3522"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "343.556\n", out.String())
}

func TestDistanceCommand_NegativeCoordinates(t *testing.T) {
	var out bytes.Buffer
	cmd := distanceCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	// Sydney to Melbourne: every latitude is south of the equator
	cmd.SetArgs([]string{"-33.8688", "151.2093", "-37.8136", "144.9631"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "713.427\n", out.String())
}

func TestDistanceCommand_BadArgs(t *testing.T) {
	cmd := distanceCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"1", "2", "3"})
	assert.Error(t, cmd.Execute())

	cmd.SetArgs([]string{"1", "2", "north", "4"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestHotelCommand_BadID(t *testing.T) {
	cmd := hotelCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"abc"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
