package service

import (
	"context"

	"github.com/samandr77/docflow/internal/entity"
)

type Analytics struct {
	screen

	documents Documents

	stats []entity.CategoryStat
}

func (s *Service) Analytics() *Analytics {
	a := &Analytics{documents: s.documents}
	a.mount()

	return a
}

func (a *Analytics) Load(ctx context.Context) error {
	stats, err := a.documents.DocumentStats(ctx)
	if err != nil {
		return fail(err, MsgAnalyticsFailed)
	}

	return a.update(func() bool {
		a.stats = stats
		return true
	})
}

func (a *Analytics) Chart() Chart {
	var chart Chart

	a.read(func() { chart = NewChart(a.stats, AnalyticsPalette) })

	return chart
}
