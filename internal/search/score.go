package search

import "time"

// Weights blend the per-candidate signals into one score.
type Weights struct {
	Relevance float64
	Recency   float64
	NameMatch float64
	// Window is the age at which recency reaches zero.
	Window time.Duration
}

// DefaultWeights is 0.6 relevance, 0.4 recency over 30 days, no name match.
func DefaultWeights() Weights {
	return Weights{
		Relevance: 0.6,
		Recency:   0.4,
		Window:    30 * 24 * time.Hour,
	}
}

// Relevance scores a candidate by its position in the index tool's output:
// the first of total scores 1.0, the last 0.0. A lone candidate scores 1.0.
func Relevance(position, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	return clamp01(1 - float64(position)/float64(max(1, total-1)))
}

// Recency decays linearly from 1.0 for a file modified at now to 0.0 for one
// modified window or longer ago. Timestamps in the future count as now.
func Recency(modified, now time.Time, window time.Duration) float64 {
	if window <= 0 {
		return 0
	}
	age := now.Sub(modified)
	if age <= 0 {
		return 1.0
	}
	if age >= window {
		return 0.0
	}
	return 1 - float64(age)/float64(window)
}

// Score combines the signals and clamps the result to [0,1].
func (w Weights) Score(relevance, recency, nameMatch float64) float64 {
	return clamp01(w.Relevance*relevance + w.Recency*recency + w.NameMatch*nameMatch)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
