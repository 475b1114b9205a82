package competitor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/baharkarakas/autoblog-backend/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	serpDefaultTimeout = 20 * time.Second
	maxPageBytes       = 4 << 20
	pageFetchLimit     = 4
)

type SERPOptions struct {
	Endpoint   string
	APIKey     string
	Results    int
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// SERPSource looks the keyword up on a search API (serper.dev style JSON) and
// measures the top organic results by downloading and parsing each page.
type SERPSource struct {
	endpoint string
	apiKey   string
	results  int
	client   *http.Client
	log      *slog.Logger
}

func NewSERPSource(opts SERPOptions) (*SERPSource, error) {
	if strings.TrimSpace(opts.Endpoint) == "" {
		return nil, errors.New("serp endpoint is required")
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: serpDefaultTimeout}
	}
	results := opts.Results
	if results <= 0 {
		results = 5
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &SERPSource{
		endpoint: opts.Endpoint,
		apiKey:   strings.TrimSpace(opts.APIKey),
		results:  results,
		client:   client,
		log:      log,
	}, nil
}

func (s *SERPSource) Name() string { return "serp" }

type serpRequest struct {
	Q   string `json:"q"`
	GL  string `json:"gl"`
	Num int    `json:"num"`
}

type serpResponse struct {
	Organic []struct {
		Link  string `json:"link"`
		Title string `json:"title"`
	} `json:"organic"`
}

func (s *SERPSource) Fetch(ctx context.Context, keyword, country string) ([]models.CompetitorStat, error) {
	hits, err := s.search(ctx, keyword, ResolveCountry(country))
	if err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		out = make([]models.CompetitorStat, 0, len(hits.Organic))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pageFetchLimit)
	for _, hit := range hits.Organic {
		hit := hit
		g.Go(func() error {
			st, err := s.page(gctx, hit.Link)
			if err != nil {
				// tek sayfa hatası tüm analizi düşürmesin
				s.log.Debug("competitor page skipped", "url", hit.Link, "err", err)
				return nil
			}
			if st.Title == "" {
				st.Title = hit.Title
			}
			mu.Lock()
			out = append(out, st)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}

func (s *SERPSource) search(ctx context.Context, keyword, country string) (*serpResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(serpRequest{Q: keyword, GL: country, Num: s.results}); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-API-KEY", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("serp status %d", resp.StatusCode)
	}
	var out serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode serp response: %w", err)
	}
	if len(out.Organic) > s.results {
		out.Organic = out.Organic[:s.results]
	}
	return &out, nil
}

func (s *SERPSource) page(ctx context.Context, link string) (models.CompetitorStat, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return models.CompetitorStat{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; AutoBlogBot/1.0)")
	req.Header.Set("Accept", "text/html")
	resp, err := s.client.Do(req)
	if err != nil {
		return models.CompetitorStat{}, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return models.CompetitorStat{}, fmt.Errorf("page status %d", resp.StatusCode)
	}
	return PageStats(io.LimitReader(resp.Body, maxPageBytes), link)
}

var _ Source = (*SERPSource)(nil)
