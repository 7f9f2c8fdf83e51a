package main

import "math"

// minDecaySpeed is the speed below which movement does not add to decay
const minDecaySpeed = 0.1

// ApplyDecay removes mass from e for a step of deltaMillis ending at now
// (sim clock ms) and returns the new score. Scores at or below the
// threshold are left alone, and decay never pushes a score below it.
func ApplyDecay(cfg DecayConfig, e Entity, deltaMillis, now float64) float64 {
	var score *float64
	multiplier := 1.0

	switch v := e.(type) {
	case *PlayerCell:
		if v == nil {
			return 0
		}
		score = &v.Score
		if speed := v.Speed(); speed > minDecaySpeed {
			multiplier *= 1 + speed*cfg.MovementMultiplier/10
		}
		multiplier *= starvation(cfg, v.LastFoodTime, now)
	case *AICell:
		if v == nil {
			return 0
		}
		score = &v.Score
		multiplier *= starvation(cfg, v.LastFoodTime, now)
	case *Food:
		if v == nil {
			return 0
		}
		score = &v.Score
	default:
		if e == nil {
			return 0
		}
		return e.Mass()
	}

	if !cfg.Enabled || *score <= cfg.Threshold || !(deltaMillis > 0) {
		return *score
	}

	factor := math.Pow(*score, cfg.SizeFactor) / 10
	amount := cfg.Rate * factor * multiplier * (deltaMillis / 1000)
	if !finite(amount) {
		return *score
	}
	*score = math.Max(cfg.Threshold, *score-amount)
	return *score
}

func starvation(cfg DecayConfig, lastFood, now float64) float64 {
	if (now-lastFood)/1000 > cfg.StarvationThreshold {
		return cfg.StarvationMultiplier
	}
	return 1
}
