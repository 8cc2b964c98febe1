package service

import (
	"context"
	"slices"

	"github.com/samandr77/docflow/internal/entity"
)

type AlertsList struct {
	screen

	alerts Alerts

	items []entity.Alert
}

func (s *Service) AlertsList() *AlertsList {
	a := &AlertsList{alerts: s.alerts}
	a.mount()

	return a
}

func (a *AlertsList) Load(ctx context.Context) error {
	alerts, err := a.alerts.Alerts(ctx)
	if err != nil {
		return fail(err, MsgAlertsFailed)
	}

	return a.update(func() bool {
		a.items = alerts
		return true
	})
}

func (a *AlertsList) Alerts() []entity.Alert {
	var out []entity.Alert

	a.read(func() { out = slices.Clone(a.items) })

	return out
}
