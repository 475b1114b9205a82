package competitor

import (
	"errors"
	"math"

	"github.com/baharkarakas/autoblog-backend/internal/models"
)

// Recommendation band around the competitor average.
const (
	LowerBand = 0.8
	UpperBand = 1.2
)

var ErrNoData = errors.New("no competitor data")

// Aggregate reduces competitor stats to recommended min/avg/max ranges.
func Aggregate(stats []models.CompetitorStat) (models.CompetitorAnalysis, error) {
	if len(stats) == 0 {
		return models.CompetitorAnalysis{}, ErrNoData
	}
	var words, headings, paragraphs, images int
	for _, s := range stats {
		words += s.WordCount
		headings += s.HeadingsCount
		paragraphs += s.ParagraphsCount
		images += s.ImagesCount
	}
	n := float64(len(stats))
	return models.CompetitorAnalysis{
		WordCount:       band(float64(words)/n, 0),
		HeadingsCount:   band(float64(headings)/n, 1),
		ParagraphsCount: band(float64(paragraphs)/n, 1),
		ImagesCount:     band(float64(images)/n, 1),
		Competitors:     append([]models.CompetitorStat(nil), stats...),
	}, nil
}

// band rounds the mean and derives the 80%..120% range. floor bounds min from below;
// max never drops under min.
func band(mean float64, floor int) models.MetricRange {
	avg := roundHalfUp(mean)
	r := models.MetricRange{
		Avg: avg,
		Min: roundHalfUp(float64(avg) * LowerBand),
		Max: roundHalfUp(float64(avg) * UpperBand),
	}
	if r.Min < floor {
		r.Min = floor
	}
	if r.Max < r.Min {
		r.Max = r.Min
	}
	return r
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
