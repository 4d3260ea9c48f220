// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/tomtom215/cinematch/internal/models"
)

const (
	sliderMin     = 0
	sliderMax     = 100
	sliderDefault = 50
)

var eraPattern = regexp.MustCompile(`^[0-9]{3}0s$`)

// Preferences are the user-tunable weights supplied to every scoring pass.
// Mood, Pace, BingePreference, SeasonCommitment and DiscoveryStyle are kept
// and validated but do not enter the score.
type Preferences struct {
	PreferredGenres  []models.Genre `json:"preferred_genres"`
	Mood             int            `json:"mood"`
	Pace             int            `json:"pace"`
	Eras             []string       `json:"eras"`
	EpisodeLength    int            `json:"episode_length"`
	BingePreference  int            `json:"binge_preference"`
	SeasonCommitment int            `json:"season_commitment"`
	DiscoveryStyle   DiscoveryStyle `json:"discovery_style"`
}

// DefaultPreferences returns the starting preferences. eras defaults to the
// 2010s and 2020s when empty.
func DefaultPreferences(eras []string) Preferences {
	if len(eras) == 0 {
		eras = []string{"2010s", "2020s"}
	}
	return Preferences{
		PreferredGenres:  []models.Genre{},
		Mood:             sliderDefault,
		Pace:             sliderDefault,
		Eras:             slices.Clone(eras),
		EpisodeLength:    sliderDefault,
		BingePreference:  sliderDefault,
		SeasonCommitment: sliderDefault,
		DiscoveryStyle:   DiscoveryMixed,
	}
}

// Validate checks slider ranges, era labels and the discovery style.
func (p *Preferences) Validate() error {
	sliders := []struct {
		name  string
		value int
	}{
		{"mood", p.Mood},
		{"pace", p.Pace},
		{"episode_length", p.EpisodeLength},
		{"binge_preference", p.BingePreference},
		{"season_commitment", p.SeasonCommitment},
	}
	for _, s := range sliders {
		if s.value < sliderMin || s.value > sliderMax {
			return fmt.Errorf("%w: %s must be in [%d, %d], got %d", ErrInvalidPreferences, s.name, sliderMin, sliderMax, s.value)
		}
	}
	for _, era := range p.Eras {
		if !eraPattern.MatchString(era) {
			return fmt.Errorf("%w: era %q is not a decade label", ErrInvalidPreferences, era)
		}
	}
	switch p.DiscoveryStyle {
	case DiscoveryPopular, DiscoveryMixed, DiscoveryHidden:
	default:
		return fmt.Errorf("%w: discovery_style %q", ErrInvalidPreferences, p.DiscoveryStyle)
	}
	return nil
}

func (p *Preferences) prefers(g models.Genre) bool {
	return slices.Contains(p.PreferredGenres, g)
}

func (p *Preferences) inEra(decade string) bool {
	return decade != "" && slices.Contains(p.Eras, decade)
}
