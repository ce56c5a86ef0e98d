package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{in: "5/2025", want: Period{Month: 5, Year: 2025}},
		{in: "12/2024", want: Period{Month: 12, Year: 2024}},
		{in: " 3/2025 ", want: Period{Month: 3, Year: 2025}},
		{in: "13/2025", wantErr: true},
		{in: "0/2025", wantErr: true},
		{in: "2025", wantErr: true},
		{in: "a/2025", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParsePeriod(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestResolvePeriodStringWins(t *testing.T) {
	// Both encodings present and disagreeing: the string form is
	// authoritative.
	got, err := ResolvePeriod("5/2025", 7, 2024)
	require.NoError(t, err)
	assert.Equal(t, Period{Month: 5, Year: 2025}, got)
}

func TestResolvePeriodFallsBackToIntegers(t *testing.T) {
	got, err := ResolvePeriod("", 7, 2024)
	require.NoError(t, err)
	assert.Equal(t, Period{Month: 7, Year: 2024}, got)

	_, err = ResolvePeriod("", 0, 0)
	assert.Error(t, err)
}

func TestPeriodRoundTripIsFixedPoint(t *testing.T) {
	p := Period{Month: 5, Year: 2025}
	again, err := ParsePeriod(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, again)
	assert.Equal(t, p.String(), again.String())
}

func TestPeriodEqualAcrossEncodings(t *testing.T) {
	fromString, err := ParsePeriod("5/2025")
	require.NoError(t, err)
	fromInts, err := ResolvePeriod("", 5, 2025)
	require.NoError(t, err)
	assert.True(t, fromString.Equal(fromInts))
}

func TestPeriodString(t *testing.T) {
	// No zero padding: the backend stores "5/2025".
	assert.Equal(t, "5/2025", Period{Month: 5, Year: 2025}.String())
}
