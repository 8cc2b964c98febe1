package service

import (
	"github.com/shopspring/decimal"

	"github.com/samandr77/docflow/internal/entity"
)

var (
	AnalyticsPalette = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40"}
	AdminPalette     = []string{"#3B82F6", "#8B5CF6", "#F59E0B", "#10B981", "#6366F1"}
)

type Segment struct {
	Label string
	Count int64
	// Share is the percentage of the total, one decimal place.
	Share decimal.Decimal
	Color string
}

type Chart struct {
	Total    int64
	Segments []Segment
}

// NewChart maps category counts to segments, reusing palette colors by index.
func NewChart(stats []entity.CategoryStat, palette []string) Chart {
	var total int64
	for _, s := range stats {
		total += s.Count
	}

	chart := Chart{Total: total, Segments: make([]Segment, 0, len(stats))}
	hundred := decimal.NewFromInt(100)

	for i, s := range stats {
		share := decimal.Zero
		if total > 0 {
			share = decimal.NewFromInt(s.Count).Mul(hundred).Div(decimal.NewFromInt(total)).Round(1)
		}

		var color string
		if len(palette) > 0 {
			color = palette[i%len(palette)]
		}

		label := s.Category
		if label == "" {
			label = "Uncategorized"
		}

		chart.Segments = append(chart.Segments, Segment{
			Label: label,
			Count: s.Count,
			Share: share,
			Color: color,
		})
	}

	return chart
}
