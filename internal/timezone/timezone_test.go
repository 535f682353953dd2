package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	loc := Location(DefaultTimezone)
	// 23h em São Paulo já é dia seguinte em UTC
	late := time.Date(2024, 10, 25, 23, 30, 0, 0, loc)

	d := DateOf(late)
	assert.Equal(t, "2024-10-25", d.Format(DateLayout))
	assert.Equal(t, time.UTC, d.Location())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-10-25")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 10, 25, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)

	_, err = ParseDate("25/10/2024")
	assert.Error(t, err)
}
