package competitor

import (
	"context"
	"errors"

	"github.com/baharkarakas/autoblog-backend/internal/models"
)

// Source supplies competing-article statistics for a keyword in a country.
type Source interface {
	Name() string
	Fetch(ctx context.Context, keyword, country string) ([]models.CompetitorStat, error)
}

// FallbackSource asks Primary first and switches to Fallback on error or an empty result.
type FallbackSource struct {
	Primary    Source
	Fallback   Source
	OnFallback func(reason string, err error)
}

func (f *FallbackSource) Name() string { return f.Primary.Name() }

func (f *FallbackSource) Fetch(ctx context.Context, keyword, country string) ([]models.CompetitorStat, error) {
	stats, err := f.Primary.Fetch(ctx, keyword, country)
	if err == nil && len(stats) > 0 {
		return stats, nil
	}
	reason := "empty_result"
	if err != nil {
		reason = "primary_error"
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
	}
	if f.OnFallback != nil {
		f.OnFallback(reason, err)
	}
	return f.Fallback.Fetch(ctx, keyword, country)
}

var _ Source = (*FallbackSource)(nil)
var _ Source = FixtureSource{}
