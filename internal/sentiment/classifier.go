// Package sentiment classifies article text and aggregates per-article
// labels into a time-decayed overall verdict.
package sentiment

import (
	"context"
	"math"
	"strings"
)

// Prediction is a single classifier output.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier assigns a sentiment label to a piece of text.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// ------------------------------------------------------------------
// Keyword-based classifier (offline, deterministic, no model needed).
// When a remote classifier is configured the service uses it instead;
// this is the default and the fallback.
// ------------------------------------------------------------------

// bullish / bearish keyword dictionaries (lowercase).
var bullishWords = map[string]float64{
	"bullish": 0.7, "rally": 0.6, "surge": 0.7, "upbeat": 0.5,
	"positive": 0.4, "growth": 0.4, "upgrade": 0.6, "outperform": 0.6,
	"buy": 0.5, "strong": 0.4, "recovery": 0.5, "breakout": 0.6,
	"record high": 0.7, "all-time high": 0.7, "beat": 0.5,
	"exceeds": 0.5, "beats estimate": 0.6, "expansion": 0.4,
	"profit": 0.3, "dividend": 0.4, "accumulate": 0.5,
}

var bearishWords = map[string]float64{
	"bearish": 0.7, "crash": 0.8, "plunge": 0.7, "slump": 0.6,
	"negative": 0.4, "downgrade": 0.6, "underperform": 0.6,
	"sell": 0.5, "weak": 0.4, "decline": 0.5, "loss": 0.4,
	"selloff": 0.7, "fall": 0.4, "correction": 0.5,
	"default": 0.7, "fraud": 0.8, "scam": 0.8, "investigation": 0.5,
	"cut": 0.3, "miss": 0.5, "warning": 0.5, "concern": 0.3,
}

// KeywordClassifier scores text against fixed bullish/bearish keyword
// dictionaries. It never fails.
type KeywordClassifier struct{}

// NewKeywordClassifier returns the default offline classifier.
func NewKeywordClassifier() *KeywordClassifier { return &KeywordClassifier{} }

// Classify labels text as positive, negative, or neutral based on the
// net keyword score.
func (k *KeywordClassifier) Classify(_ context.Context, text string) (Prediction, error) {
	lower := strings.ToLower(text)

	bullScore := 0.0
	bearScore := 0.0
	matches := 0

	for word, weight := range bullishWords {
		if strings.Contains(lower, word) {
			bullScore += weight
			matches++
		}
	}
	for word, weight := range bearishWords {
		if strings.Contains(lower, word) {
			bearScore += weight
			matches++
		}
	}

	if matches == 0 || bullScore == bearScore {
		return Prediction{Label: LabelNeutral, Confidence: 0.1}, nil
	}

	label := LabelPositive
	if bearScore > bullScore {
		label = LabelNegative
	}

	// Confidence grows with keyword matches, capped below certainty.
	confidence := math.Min(float64(matches)*0.15+0.2, 0.85)
	return Prediction{Label: label, Confidence: confidence}, nil
}
