package core

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// EstimatorConfig is the immutable lookup data behind duration
// estimates: the race-to -> minutes table and the per-skill
// multipliers. It is explicit configuration rather than ambient
// constants so operators can tune it per venue.
type EstimatorConfig struct {
	RaceToMinutes   map[int]int            `yaml:"race_to_minutes"`
	FallbackPerGame int                    `yaml:"fallback_per_game"`
	Multipliers     map[SkillLevel]float64 `yaml:"multipliers"`
}

func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		RaceToMinutes: map[int]int{
			3: 15,
			5: 25,
			7: 35,
			9: 45,
		},
		FallbackPerGame: 5,
		Multipliers: map[SkillLevel]float64{
			SkillBeginner:     1.3,
			SkillIntermediate: 1.0,
			SkillAdvanced:     0.9,
			SkillExpert:       0.8,
			SkillUnknown:      1.0,
		},
	}
}

// ParseEstimatorConfig reads a YAML document over the defaults,
// so a partial document only overrides what it names.
func ParseEstimatorConfig(data []byte) (EstimatorConfig, error) {
	cfg := DefaultEstimatorConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EstimatorConfig{}, fmt.Errorf("%w: estimator config: %v", ErrInvalidInput, err)
	}
	if cfg.FallbackPerGame < 1 {
		cfg.FallbackPerGame = DefaultEstimatorConfig().FallbackPerGame
	}
	return cfg, nil
}

// A DurationEstimate is a projected match duration plus the
// factor set that produced it, for explainability. Confidence
// is advisory metadata only and never gates scheduling.
type DurationEstimate struct {
	RaceTo          int
	BaseMinutes     int
	AdjustedMinutes int
	Factors         []string
	Confidence      float64
}

// EstimateDuration projects how long a race-to match between
// the two skill levels will take.
//
// A positive historical average always takes precedence and is
// used verbatim. Otherwise the base comes from the race-to
// table (race_to x fallback minutes per game outside the table)
// and is scaled by the mean of the supplied skill multipliers.
// Empty skill levels count as not supplied.
func (c EstimatorConfig) EstimateDuration(raceTo int, skillA, skillB SkillLevel, historicalAvg float64) DurationEstimate {
	est := DurationEstimate{RaceTo: raceTo, Confidence: 0.5}

	if historicalAvg > 0 {
		minutes := int(math.Round(historicalAvg))
		est.BaseMinutes = minutes
		est.AdjustedMinutes = minutes
		est.Factors = append(est.Factors, fmt.Sprintf("historical_average=%v", historicalAvg))
		est.Confidence = capConfidence(est.Confidence + 0.3)
		return est
	}

	base, ok := c.RaceToMinutes[raceTo]
	if ok {
		est.Factors = append(est.Factors, fmt.Sprintf("race_to_table[%d]=%d", raceTo, base))
	} else {
		base = raceTo * c.FallbackPerGame
		est.Factors = append(est.Factors, fmt.Sprintf("race_to_fallback=%dx%d", raceTo, c.FallbackPerGame))
	}
	est.BaseMinutes = base

	sum := 0.0
	count := 0
	skillKnown := false
	for _, skill := range []SkillLevel{skillA, skillB} {
		if skill == "" {
			continue
		}
		mult, ok := c.Multipliers[skill]
		if !ok {
			mult = 1.0
		}
		sum += mult
		count++
		if skill != SkillUnknown {
			skillKnown = true
		}
		est.Factors = append(est.Factors, fmt.Sprintf("skill_%s=%v", skill, mult))
	}

	factor := 1.0
	if count > 0 {
		factor = sum / float64(count)
	}
	est.AdjustedMinutes = int(math.Round(float64(base) * factor))

	if skillKnown {
		est.Confidence = capConfidence(est.Confidence + 0.2)
	}
	return est
}

func capConfidence(c float64) float64 {
	return math.Min(c, 1.0)
}
