package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/samandr77/docflow/internal/entity"
)

const (
	FilterAll    = "all"
	recentEvents = 5
)

type UserFilter struct {
	Search     string
	Role       string
	Department string
}

// FilterUsers keeps users whose name or email contains the search term,
// ignoring case, and whose role and department match exactly. Empty or
// "all" disables a filter.
func FilterUsers(users []entity.User, f UserFilter) []entity.User {
	search := strings.ToLower(f.Search)

	out := make([]entity.User, 0, len(users))

	for _, u := range users {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}

		if !matches(f.Role, string(u.Role)) || !matches(f.Department, u.Department) {
			continue
		}

		out = append(out, u)
	}

	return out
}

func matches(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

type Admin struct {
	screen

	users     Users
	documents Documents
	alerts    Alerts

	roster []entity.User
	stats  []entity.CategoryStat
	events []entity.Alert
	filter UserFilter
}

func (s *Service) Admin() *Admin {
	a := &Admin{users: s.users, documents: s.documents, alerts: s.alerts}
	a.mount()

	return a
}

func (a *Admin) Load(ctx context.Context) error {
	var (
		users  []entity.User
		stats  []entity.CategoryStat
		alerts []entity.Alert
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		users, err = a.users.Users(gctx)
		return err
	})

	g.Go(func() (err error) {
		stats, err = a.documents.DocumentStats(gctx)
		return err
	})

	g.Go(func() (err error) {
		alerts, err = a.alerts.Alerts(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return fail(err, MsgAdminFailed)
	}

	if len(alerts) > recentEvents {
		alerts = alerts[:recentEvents]
	}

	return a.update(func() bool {
		a.roster = users
		a.stats = stats
		a.events = alerts

		return true
	})
}

func (a *Admin) reloadRoster(ctx context.Context) error {
	users, err := a.users.Users(ctx)
	if err != nil {
		return fail(err, MsgAdminFailed)
	}

	return a.update(func() bool {
		a.roster = users
		return true
	})
}

// refreshRoster reloads the roster after a mutation the backend accepted.
// On failure the shown roster is kept.
func (a *Admin) refreshRoster(ctx context.Context, action string) {
	if err := a.reloadRoster(ctx); err != nil {
		slog.WarnContext(ctx, "reload roster", "after", action, "error", err)
	}
}

func (a *Admin) SetFilter(f UserFilter) {
	_ = a.update(func() bool {
		changed := a.filter != f
		a.filter = f

		return changed
	})
}

func (a *Admin) Filter() UserFilter {
	var f UserFilter

	a.read(func() { f = a.filter })

	return f
}

// Users is the roster after the current filter.
func (a *Admin) Users() []entity.User {
	var out []entity.User

	a.read(func() { out = FilterUsers(a.roster, a.filter) })

	return out
}

func (a *Admin) User(id string) (entity.User, bool) {
	var (
		out   entity.User
		found bool
	)

	a.read(func() {
		i := slices.IndexFunc(a.roster, func(u entity.User) bool { return u.ID == id })
		if i >= 0 {
			out, found = a.roster[i], true
		}
	})

	return out, found
}

func (a *Admin) RecentEvents() []entity.Alert {
	var out []entity.Alert

	a.read(func() { out = slices.Clone(a.events) })

	return out
}

func (a *Admin) Chart() Chart {
	var chart Chart

	a.read(func() { chart = NewChart(a.stats, AdminPalette) })

	return chart
}

// Save creates the user when in.ID is empty and updates it otherwise, then
// re-fetches the roster. A failed re-fetch does not fail the save.
func (a *Admin) Save(ctx context.Context, in entity.UserInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	var err error
	if in.ID == "" {
		err = a.users.CreateUser(ctx, in)
	} else {
		err = a.users.UpdateUser(ctx, in)
	}

	if err != nil {
		return fail(err, MsgSaveUserFailed)
	}

	a.refreshRoster(ctx, "save user")

	return nil
}

func (a *Admin) Delete(ctx context.Context, id string, p Prompter) error {
	user, ok := a.User(id)
	if !ok {
		return entity.ErrInvalidSelection
	}

	confirmed, err := p.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete %s?", user.Name))
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}

	if !confirmed {
		return entity.ErrCancelled
	}

	if err := a.users.DeleteUser(ctx, id); err != nil {
		return fail(err, MsgDeleteUserFailed)
	}

	a.refreshRoster(ctx, "delete user")

	return nil
}
