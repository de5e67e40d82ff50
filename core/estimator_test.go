package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateFromRaceToTable(t *testing.T) {
	cfg := DefaultEstimatorConfig()

	est := cfg.EstimateDuration(5, SkillExpert, SkillExpert, 0)
	assert.Equal(t, 25, est.BaseMinutes)
	assert.Equal(t, 20, est.AdjustedMinutes)
	assert.InDelta(t, 0.7, est.Confidence, 1e-9)
	assert.NotEmpty(t, est.Factors)
}

func TestEstimateHistoricalTakesPrecedence(t *testing.T) {
	cfg := DefaultEstimatorConfig()

	est := cfg.EstimateDuration(5, SkillBeginner, SkillBeginner, 35)
	assert.Equal(t, 35, est.BaseMinutes)
	assert.Equal(t, 35, est.AdjustedMinutes)
	assert.InDelta(t, 0.8, est.Confidence, 1e-9)
}

func TestEstimateWithoutSkills(t *testing.T) {
	cfg := DefaultEstimatorConfig()

	est := cfg.EstimateDuration(5, "", "", 0)
	assert.Equal(t, 25, est.BaseMinutes)
	assert.Equal(t, 25, est.AdjustedMinutes)
	assert.InDelta(t, 0.5, est.Confidence, 1e-9)
}

func TestEstimateFallbackOutsideTable(t *testing.T) {
	cfg := DefaultEstimatorConfig()

	est := cfg.EstimateDuration(13, "", "", 0)
	assert.Equal(t, 65, est.BaseMinutes)
	assert.Equal(t, 65, est.AdjustedMinutes)
}

func TestEstimateMixedSkills(t *testing.T) {
	cfg := DefaultEstimatorConfig()

	// mean of 1.0 (unknown) and 0.8 (expert) is 0.9
	est := cfg.EstimateDuration(5, SkillUnknown, SkillExpert, 0)
	assert.Equal(t, 23, est.AdjustedMinutes)
	// one known skill is enough for the confidence bump
	assert.InDelta(t, 0.7, est.Confidence, 1e-9)

	// unknown on both sides keeps the base confidence
	est = cfg.EstimateDuration(5, SkillUnknown, SkillUnknown, 0)
	assert.Equal(t, 25, est.AdjustedMinutes)
	assert.InDelta(t, 0.5, est.Confidence, 1e-9)
}

func TestParseSkillLevel(t *testing.T) {
	assert.Equal(t, SkillExpert, ParseSkillLevel("  Expert "))
	assert.Equal(t, SkillBeginner, ParseSkillLevel("beginner"))
	assert.Equal(t, SkillUnknown, ParseSkillLevel("pro"))
	assert.Equal(t, SkillUnknown, ParseSkillLevel(""))
}

func TestParseEstimatorConfigPartialOverride(t *testing.T) {
	cfg, err := ParseEstimatorConfig([]byte("race_to_minutes:\n  5: 30\n"))
	require.NoError(t, err)

	// Named keys override, everything else keeps its default
	assert.Equal(t, 30, cfg.RaceToMinutes[5])
	assert.Equal(t, 15, cfg.RaceToMinutes[3])
	assert.Equal(t, 5, cfg.FallbackPerGame)
	assert.InDelta(t, 1.3, cfg.Multipliers[SkillBeginner], 1e-9)
}

func TestParseEstimatorConfigRejectsBadInput(t *testing.T) {
	_, err := ParseEstimatorConfig([]byte("race_to_minutes: [not, a, map]"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	cfg, err := ParseEstimatorConfig([]byte("fallback_per_game: -2\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.FallbackPerGame)
}
