package service

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/samandr77/docflow/internal/entity"
)

const recentApprovals = 5

type ManagerDashboard struct {
	screen

	approvals Approvals

	stats  entity.ApprovalStats
	recent []entity.Approval
}

func (s *Service) ManagerDashboard() *ManagerDashboard {
	m := &ManagerDashboard{approvals: s.approvals}
	m.mount()

	return m
}

func (m *ManagerDashboard) Load(ctx context.Context) error {
	var (
		stats  entity.ApprovalStats
		recent []entity.Approval
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats, err = m.approvals.ApprovalStats(gctx)
		return err
	})

	g.Go(func() (err error) {
		recent, err = m.approvals.Approvals(gctx, recentApprovals)
		return err
	})

	if err := g.Wait(); err != nil {
		return fail(err, MsgManagerFailed)
	}

	return m.update(func() bool {
		m.stats = stats
		m.recent = recent

		return true
	})
}

func (m *ManagerDashboard) Stats() entity.ApprovalStats {
	var out entity.ApprovalStats

	m.read(func() { out = m.stats })

	return out
}

func (m *ManagerDashboard) Recent() []entity.Approval {
	var out []entity.Approval

	m.read(func() { out = slices.Clone(m.recent) })

	return out
}
