package service

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/samandr77/docflow/internal/entity"
)

type Profile struct {
	screen

	users Users

	user    entity.User
	history []entity.HistoryEvent
}

func (s *Service) Profile() *Profile {
	p := &Profile{users: s.users}
	p.mount()

	return p
}

func (p *Profile) Load(ctx context.Context) error {
	var (
		user    entity.User
		history []entity.HistoryEvent
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		user, err = p.users.Profile(gctx)
		return err
	})

	g.Go(func() (err error) {
		history, err = p.users.History(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return fail(err, MsgProfileFailed)
	}

	return p.update(func() bool {
		p.user = user
		p.history = history

		return true
	})
}

func (p *Profile) User() entity.User {
	var out entity.User

	p.read(func() { out = p.user })

	return out
}

func (p *Profile) History() []entity.HistoryEvent {
	var out []entity.HistoryEvent

	p.read(func() { out = slices.Clone(p.history) })

	return out
}
