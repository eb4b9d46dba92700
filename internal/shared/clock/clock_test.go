package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ist(t *testing.T) *time.Location {
	t.Helper()
	loc, err := LoadLocation("")
	require.NoError(t, err)
	return loc
}

func TestUntilNextMidnight(t *testing.T) {
	loc := ist(t)

	t.Run("ten seconds before midnight", func(t *testing.T) {
		now := time.Date(2024, 3, 10, 23, 59, 50, 0, loc)
		assert.Equal(t, 10*time.Second, UntilNextMidnight(now, loc))
	})

	t.Run("exactly midnight waits a full day", func(t *testing.T) {
		now := time.Date(2024, 3, 11, 0, 0, 0, 0, loc)
		assert.Equal(t, 24*time.Hour, UntilNextMidnight(now, loc))
		assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, loc), NextMidnight(now, loc))
	})

	t.Run("now given in another zone", func(t *testing.T) {
		// 18:29:00 UTC is 23:59:00 IST.
		now := time.Date(2024, 3, 10, 18, 29, 0, 0, time.UTC)
		assert.Equal(t, time.Minute, UntilNextMidnight(now, loc))
	})

	t.Run("month rollover", func(t *testing.T) {
		now := time.Date(2024, 12, 31, 12, 0, 0, 0, loc)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, loc), NextMidnight(now, loc))
	})
}

func TestDateOf(t *testing.T) {
	loc := ist(t)

	// 20:00 UTC on the 10th is already the 11th in IST.
	got := DateOf(time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, "2024-03-11", FormatDate(got))
	assert.Equal(t, 0, got.Hour())
}

func TestNaiveRoundTrip(t *testing.T) {
	loc := ist(t)
	aware := time.Date(2024, 3, 10, 9, 15, 0, 0, loc)

	naive := Naive(aware, loc)
	assert.Equal(t, time.UTC, naive.Location())
	assert.Equal(t, 9, naive.Hour())

	back := Localize(naive, loc)
	assert.True(t, back.Equal(aware))
	assert.Nil(t, LocalizePtr(nil, loc))
	assert.Nil(t, NaivePtr(nil, loc))
}

func TestLoadLocation(t *testing.T) {
	t.Run("default zone has +05:30 offset", func(t *testing.T) {
		loc := ist(t)
		_, offset := time.Date(2024, 7, 1, 0, 0, 0, 0, loc).Zone()
		assert.Equal(t, 19800, offset)
	})

	t.Run("unknown zone is an error", func(t *testing.T) {
		_, err := LoadLocation("Mars/Olympus_Mons")
		assert.Error(t, err)
	})
}

func TestParseDate(t *testing.T) {
	loc := ist(t)
	d, err := ParseDate("2024-01-15", loc)
	require.NoError(t, err)
	assert.Equal(t, loc, d.Location())

	_, err = ParseDate("15/01/2024", loc)
	assert.Error(t, err)
}
