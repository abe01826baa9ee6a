package sentiment

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marketmood/marketmood/pkg/models"
)

// Canonical sentiment labels.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// voteOrder fixes the tie-break when two labels carry equal weight:
// positive beats negative beats neutral.
var voteOrder = []string{LabelPositive, LabelNegative, LabelNeutral}

// DefaultHalfLifeHours is how long it takes an article's vote weight to
// halve.
const DefaultHalfLifeHours = 72.0

// defaultAgeHours is the staleness assumed for articles with a missing
// or unparseable timestamp, one week.
const defaultAgeHours = 168.0

// DecayWeight returns the vote weight of an article ageHours old given
// the decay half-life. Weight is 1.0 at age zero and halves every
// halfLife hours. Negative ages (clock skew, future-dated articles)
// count as fresh.
func DecayWeight(ageHours, halfLife float64) float64 {
	if ageHours < 0 {
		ageHours = 0
	}
	return math.Pow(0.5, ageHours/halfLife)
}

// ParsePublishedAt parses a provider timestamp in RFC 3339 form.
// Returns false for empty or unparseable input.
func ParsePublishedAt(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Aggregator scores articles individually and folds the labels into one
// time-decayed verdict.
type Aggregator struct {
	clf      Classifier
	halfLife float64
	now      func() time.Time
	log      *zap.Logger
}

// NewAggregator creates an Aggregator over clf. Non-positive halfLife
// values fall back to DefaultHalfLifeHours.
func NewAggregator(clf Classifier, halfLife float64, log *zap.Logger) *Aggregator {
	if halfLife <= 0 {
		halfLife = DefaultHalfLifeHours
	}
	return &Aggregator{
		clf:      clf,
		halfLife: halfLife,
		now:      time.Now,
		log:      log,
	}
}

// Aggregate classifies each article and returns the scored articles
// together with the overall verdict. The verdict is the capitalized
// label with the largest decay-weighted vote; with no articles, or no
// votes at all, it is "Neutral".
//
// Classification never blocks the verdict: a classifier failure or an
// unrecognized label votes neutral for that article.
func (a *Aggregator) Aggregate(ctx context.Context, articles []models.Article) ([]models.ScoredArticle, string) {
	now := a.now()
	votes := map[string]float64{}
	scored := make([]models.ScoredArticle, 0, len(articles))

	for _, art := range articles {
		label := a.classify(ctx, art)

		age := defaultAgeHours
		if published, ok := ParsePublishedAt(art.PublishedAt); ok {
			age = now.Sub(published).Hours()
		}
		votes[label] += DecayWeight(age, a.halfLife)

		scored = append(scored, models.ScoredArticle{Article: art, Sentiment: label})
	}

	return scored, verdict(votes)
}

// Score classifies a single piece of text, used by the direct-impact
// path. Failures and unknown labels come back neutral.
func (a *Aggregator) Score(ctx context.Context, text string) string {
	pred, err := a.clf.Classify(ctx, text)
	if err != nil {
		a.log.Warn("classification failed", zap.Error(err))
		return LabelNeutral
	}
	return canonicalLabel(pred.Label)
}

// classify labels one article from its title and description.
func (a *Aggregator) classify(ctx context.Context, art models.Article) string {
	return a.Score(ctx, art.Title+". "+art.Description)
}

// canonicalLabel lowercases a classifier label and maps anything
// outside the known vocabulary to neutral.
func canonicalLabel(label string) string {
	switch l := strings.ToLower(strings.TrimSpace(label)); l {
	case LabelPositive, LabelNegative, LabelNeutral:
		return l
	default:
		return LabelNeutral
	}
}

// verdict picks the label with the largest vote in fixed tie-break
// order and capitalizes it for display. All-zero votes mean Neutral.
func verdict(votes map[string]float64) string {
	best := LabelNeutral
	bestWeight := 0.0
	for _, label := range voteOrder {
		if votes[label] > bestWeight {
			best = label
			bestWeight = votes[label]
		}
	}
	return Capitalize(best)
}

// Capitalize uppercases the first byte of an ASCII label.
func Capitalize(label string) string {
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
