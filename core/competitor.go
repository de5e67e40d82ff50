package core

import (
	"strconv"
	"strings"
)

// A Competitor is a person or team taking part in a tournament.
// Competitors are created at registration and referenced by id
// from the bracket's matches; they are immutable once seeding
// has begun.
type Competitor struct {
	ID     string
	Name   string
	Rating *Rating
}

// A Rating is a skill rating from some rating system.
// The value may be numeric or numeric text depending on
// where the rating was imported from.
type Rating struct {
	System string
	Value  string
}

// Numeric returns the rating value as a number.
//
// Unparseable values and nil ratings yield 0 so that imported
// garbage never aborts seeding.
func (r *Rating) Numeric() float64 {
	if r == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Value), 64)
	if err != nil {
		return 0
	}
	return v
}

// The skill level of a competitor as used by the
// duration estimator.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
	SkillUnknown      SkillLevel = "unknown"
)

// ParseSkillLevel maps free-form input onto a SkillLevel,
// falling back to SkillUnknown.
func ParseSkillLevel(s string) SkillLevel {
	switch SkillLevel(strings.ToLower(strings.TrimSpace(s))) {
	case SkillBeginner:
		return SkillBeginner
	case SkillIntermediate:
		return SkillIntermediate
	case SkillAdvanced:
		return SkillAdvanced
	case SkillExpert:
		return SkillExpert
	}
	return SkillUnknown
}
