package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedDays(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("WholeDays", func(t *testing.T) {
		assert.Equal(t, 7, ElapsedDays(base, base.AddDate(0, 0, 7)))
	})

	t.Run("PartialDayFloorsDown", func(t *testing.T) {
		assert.Equal(t, 7, ElapsedDays(base, base.AddDate(0, 0, 7).Add(23*time.Hour)))
	})

	t.Run("SameInstant", func(t *testing.T) {
		assert.Equal(t, 0, ElapsedDays(base, base))
	})

	t.Run("UnderOneDay", func(t *testing.T) {
		assert.Equal(t, 0, ElapsedDays(base, base.Add(23*time.Hour+59*time.Minute)))
	})

	t.Run("ClockSkewClampsToZero", func(t *testing.T) {
		assert.Equal(t, 0, ElapsedDays(base, base.Add(-2*time.Hour)))
	})
}

func TestFee(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("SevenDaysAtTwoPerDay", func(t *testing.T) {
		got := Fee(base, base.AddDate(0, 0, 7), 2)
		assert.Equal(t, 14.0, got)
	})

	t.Run("PartialDayNotCharged", func(t *testing.T) {
		got := Fee(base, base.AddDate(0, 0, 3).Add(6*time.Hour), 2.5)
		assert.Equal(t, 7.5, got)
	})

	t.Run("SameDayReturnIsFree", func(t *testing.T) {
		assert.Equal(t, 0.0, Fee(base, base.Add(4*time.Hour), 3))
	})

	t.Run("NeverNegative", func(t *testing.T) {
		assert.Equal(t, 0.0, Fee(base, base.Add(-time.Hour), 2))
		assert.Equal(t, 0.0, Fee(base, base.AddDate(0, 0, 5), -2))
	})
}
