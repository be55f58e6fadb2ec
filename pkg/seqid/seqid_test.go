package seqid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var day = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

func TestNextStartsAtOne(t *testing.T) {
	assert.Equal(t, "INQ-20250314-001", Next("INQ", day, nil))
}

func TestNextSkipsOtherDays(t *testing.T) {
	existing := []string{"INQ-20250313-007", "INQ-20250312-002"}
	assert.Equal(t, "INQ-20250314-001", Next("INQ", day, existing))
}

func TestNextTakesMaxPlusOne(t *testing.T) {
	existing := []string{
		"INQ-20250314-001",
		"INQ-20250314-005",
		"INQ-20250314-003",
	}
	assert.Equal(t, "INQ-20250314-006", Next("INQ", day, existing))
}

func TestNextIgnoresMalformedIDs(t *testing.T) {
	existing := []string{
		"INQ-20250314-abc",
		"INQ-20250314-12",
		"INQ-20250314-002",
	}
	assert.Equal(t, "INQ-20250314-003", Next("INQ", day, existing))
}

func TestNextIgnoresOtherPrefixes(t *testing.T) {
	existing := []string{"OFF-20250314-004"}
	assert.Equal(t, "INQ-20250314-001", Next("INQ", day, existing))
	assert.Equal(t, "OFF-20250314-005", Next("OFF", day, existing))
}

func TestNextGrowsPastThreeDigits(t *testing.T) {
	existing := []string{"OFF-20250314-999"}
	first := Next("OFF", day, existing)
	assert.Equal(t, "OFF-20250314-1000", first)

	existing = append(existing, first)
	assert.Equal(t, "OFF-20250314-1001", Next("OFF", day, existing))
}

func TestNextZeroPads(t *testing.T) {
	existing := []string{"OFF-20250314-009"}
	assert.Equal(t, "OFF-20250314-010", Next("OFF", day, existing))
}
