package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	window := DefaultWindow(now, 30)

	// A janela termina ontem, nunca no dia corrente.
	assert.Equal(t, "2024-03-14", window.EndDate())
	assert.Equal(t, "2024-02-14", window.StartDate())
	assert.Equal(t, 30, window.Days())
}

func TestDefaultWindowNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	now := time.Date(2024, 3, 15, 2, 0, 0, 0, loc) // 2024-03-14 17:00 UTC
	window := DefaultWindow(now, 7)

	assert.Equal(t, "2024-03-13", window.EndDate())
	assert.Equal(t, 7, window.Days())
}

func TestPreviousWindow(t *testing.T) {
	window := ReportingWindow{
		Start: time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	prev := window.Previous()

	// Mesma duração, imediatamente anterior e sem sobreposição.
	assert.Equal(t, window.Days(), prev.Days())
	assert.Equal(t, "2024-02-13", prev.EndDate())
	assert.Equal(t, "2024-01-15", prev.StartDate())
	assert.True(t, prev.End.Before(window.Start))
}
