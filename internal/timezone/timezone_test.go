package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, "Europe/Berlin", Location("Europe/Berlin").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
}

func TestSetDefault(t *testing.T) {
	t.Cleanup(func() { fallback = DefaultTimezone })

	SetDefault("nope")
	assert.Equal(t, DefaultTimezone, Default())

	SetDefault("UTC")
	assert.Equal(t, "UTC", Default())
	assert.Equal(t, "UTC", Location("").String())
}

func TestToday(t *testing.T) {
	today := Today("UTC")
	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.WithinDuration(t, time.Now(), today, 24*time.Hour)
}

func TestLocationIsCached(t *testing.T) {
	assert.Same(t, Location("Asia/Tashkent"), Location("Asia/Tashkent"))
}
