package models

type CompetitorStat struct {
	URL             string `json:"url"`
	Title           string `json:"title"`
	WordCount       int    `json:"wordCount"`
	HeadingsCount   int    `json:"headingsCount"`
	ParagraphsCount int    `json:"paragraphsCount"`
	ImagesCount     int    `json:"imagesCount"`
}

type MetricRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
	Avg int `json:"avg"`
}

type CompetitorAnalysis struct {
	WordCount       MetricRange      `json:"wordCount"`
	HeadingsCount   MetricRange      `json:"headingsCount"`
	ParagraphsCount MetricRange      `json:"paragraphsCount"`
	ImagesCount     MetricRange      `json:"imagesCount"`
	Competitors     []CompetitorStat `json:"competitors"`
}
