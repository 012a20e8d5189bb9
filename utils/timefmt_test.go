package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	cases := []struct {
		h, m, s int
		want    FormattedTime
	}{
		{3, 45, 9, FormattedTime{"03", "45", "09"}},
		{13, 5, 59, FormattedTime{"13", "05", "59"}},
		{0, 0, 0, FormattedTime{"00", "00", "00"}},
		{10, 10, 10, FormattedTime{"10", "10", "10"}},
		{99, 123, 7, FormattedTime{"99", "123", "07"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatTime(c.h, c.m, c.s))
	}
	assert.Equal(t, "03:45:09", FormatTime(3, 45, 9).String())
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2024-01-01T10:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))

	got, err = ParseTimestamp("2024-03-05T08:30")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 8, 30, 0, 0, time.Local)))

	got, err = ParseTimestamp(" 2024-03-05 ")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)))

	for _, bad := range []string{"", "tomorrow", "2024-13-01", "01/02/2024"} {
		_, err := ParseTimestamp(bad)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, bad)
	}
}
