package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/docflow/internal/entity"
	"github.com/samandr77/docflow/internal/service"
)

func TestFilterUsers(t *testing.T) {
	t.Parallel()

	users := []entity.User{
		{ID: "u1", Name: "Ann", Email: "ann@kmrl.in", Role: entity.RoleStaff, Department: "HR"},
		{ID: "u2", Name: "Bo", Email: "bo@kmrl.in", Role: entity.RoleManager, Department: "Finance"},
	}

	tests := []struct {
		name   string
		filter service.UserFilter
		want   []string
	}{
		{name: "no filter", filter: service.UserFilter{Role: service.FilterAll, Department: service.FilterAll}, want: []string{"Ann", "Bo"}},
		{name: "search is case-insensitive", filter: service.UserFilter{Search: "AN"}, want: []string{"Ann"}},
		{name: "search matches email", filter: service.UserFilter{Search: "bo@"}, want: []string{"Bo"}},
		{name: "role", filter: service.UserFilter{Role: "Manager"}, want: []string{"Bo"}},
		{name: "department", filter: service.UserFilter{Department: "HR"}, want: []string{"Ann"}},
		{name: "role is exact", filter: service.UserFilter{Role: "manager"}, want: []string{}},
		{name: "no match with filter", filter: service.UserFilter{Search: "zed", Role: "Staff"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := service.FilterUsers(users, tt.filter)

			names := make([]string, 0, len(got))
			for _, u := range got {
				names = append(names, u.Name)
			}

			require.Equal(t, tt.want, names)
		})
	}
}

func TestAdmin_LoadAndFilter(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	users := []entity.User{
		{ID: "u1", Name: "Ann", Role: entity.RoleStaff},
		{ID: "u2", Name: "Bo", Role: entity.RoleManager},
	}

	alerts := make([]entity.Alert, 7)
	for i := range alerts {
		alerts[i] = entity.Alert{ID: string(rune('a' + i))}
	}

	ts.users.EXPECT().Users(gomock.Any()).Return(users, nil)
	ts.documents.EXPECT().DocumentStats(gomock.Any()).Return([]entity.CategoryStat{{Category: "Finance", Count: 3}}, nil)
	ts.alerts.EXPECT().Alerts(gomock.Any()).Return(alerts, nil)

	a := ts.s.Admin()
	r.NoError(a.Load(context.Background()))
	r.Len(a.RecentEvents(), 5)
	r.Equal("a", a.RecentEvents()[0].ID)
	r.Len(a.Users(), 2)

	a.SetFilter(service.UserFilter{Search: "an"})
	r.Equal([]entity.User{users[0]}, a.Users())

	a.SetFilter(service.UserFilter{Role: "Manager"})
	r.Equal([]entity.User{users[1]}, a.Users())

	chart := a.Chart()
	r.Equal(int64(3), chart.Total)
	r.Equal("#3B82F6", chart.Segments[0].Color)
}

func TestAdmin_SaveAndDelete(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	roster := []entity.User{{ID: "u1", Name: "Ann", Email: "ann@kmrl.in", Role: entity.RoleStaff}}

	ts.users.EXPECT().Users(gomock.Any()).Return(roster, nil)
	ts.documents.EXPECT().DocumentStats(gomock.Any()).Return(nil, nil)
	ts.alerts.EXPECT().Alerts(gomock.Any()).Return(nil, nil)

	a := ts.s.Admin()
	r.NoError(a.Load(ctx))

	r.ErrorIs(a.Save(ctx, entity.UserInput{Email: "x@kmrl.in"}), entity.ErrUserFieldsMissing)

	created := entity.UserInput{Name: "Bo", Email: "bo@kmrl.in", Role: entity.RoleManager, Department: "HR"}
	updated := entity.UserInput{ID: "u1", Name: "Ann K", Email: "ann@kmrl.in", Role: entity.RoleStaff}
	bigger := append(roster, entity.User{ID: "u2", Name: "Bo"})

	gomock.InOrder(
		ts.users.EXPECT().CreateUser(gomock.Any(), created).Return(nil),
		ts.users.EXPECT().Users(gomock.Any()).Return(bigger, nil),
		ts.users.EXPECT().UpdateUser(gomock.Any(), updated).Return(nil),
		ts.users.EXPECT().Users(gomock.Any()).Return(bigger, nil),
	)

	r.NoError(a.Save(ctx, created))
	r.Len(a.Users(), 2)
	r.NoError(a.Save(ctx, updated))

	gomock.InOrder(
		ts.prompter.EXPECT().Confirm(gomock.Any(), "Are you sure you want to delete Bo?").Return(false, nil),
		ts.prompter.EXPECT().Confirm(gomock.Any(), "Are you sure you want to delete Bo?").Return(true, nil),
		ts.users.EXPECT().DeleteUser(gomock.Any(), "u2").Return(nil),
		ts.users.EXPECT().Users(gomock.Any()).Return(roster, nil),
	)

	r.ErrorIs(a.Delete(ctx, "u2", ts.prompter), entity.ErrCancelled)
	r.NoError(a.Delete(ctx, "u2", ts.prompter))
	r.Len(a.Users(), 1)

	r.ErrorIs(a.Delete(ctx, "nobody", ts.prompter), entity.ErrInvalidSelection)
}

func TestAdmin_MutationSucceedsWhenReloadFails(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	roster := []entity.User{{ID: "u1", Name: "Ann", Email: "ann@kmrl.in", Role: entity.RoleStaff}}

	ts.users.EXPECT().Users(gomock.Any()).Return(roster, nil)
	ts.documents.EXPECT().DocumentStats(gomock.Any()).Return(nil, nil)
	ts.alerts.EXPECT().Alerts(gomock.Any()).Return(nil, nil)

	a := ts.s.Admin()
	r.NoError(a.Load(ctx))

	created := entity.UserInput{Name: "Bo", Email: "bo@kmrl.in", Role: entity.RoleManager}

	gomock.InOrder(
		ts.users.EXPECT().CreateUser(gomock.Any(), created).Return(nil),
		ts.users.EXPECT().Users(gomock.Any()).Return(nil, errDown),
		ts.prompter.EXPECT().Confirm(gomock.Any(), "Are you sure you want to delete Ann?").Return(true, nil),
		ts.users.EXPECT().DeleteUser(gomock.Any(), "u1").Return(nil),
		ts.users.EXPECT().Users(gomock.Any()).Return(nil, errDown),
	)

	r.NoError(a.Save(ctx, created))
	r.Equal(roster, a.Users(), "roster kept after failed reload")

	r.NoError(a.Delete(ctx, "u1", ts.prompter))
	r.Equal(roster, a.Users())
}

func TestNewChart(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	stats := []entity.CategoryStat{
		{Category: "Finance", Count: 1},
		{Category: "HR", Count: 1},
		{Category: "", Count: 1},
	}

	chart := service.NewChart(stats, []string{"#111111", "#222222"})
	r.Equal(int64(3), chart.Total)
	r.Len(chart.Segments, 3)
	r.Equal("#111111", chart.Segments[2].Color, "palette is reused cyclically")
	r.Equal("Uncategorized", chart.Segments[2].Label)
	r.True(decimal.RequireFromString("33.3").Equal(chart.Segments[0].Share))

	empty := service.NewChart([]entity.CategoryStat{{Category: "HR"}}, service.AnalyticsPalette)
	r.True(empty.Segments[0].Share.IsZero())
}

func TestAnalytics_Load(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	stats := make([]entity.CategoryStat, 7)
	for i := range stats {
		stats[i] = entity.CategoryStat{Category: string(rune('A' + i)), Count: int64(i + 1)}
	}

	ts.documents.EXPECT().DocumentStats(gomock.Any()).Return(stats, nil)

	a := ts.s.Analytics()
	r.NoError(a.Load(context.Background()))

	chart := a.Chart()
	r.Equal(int64(28), chart.Total)
	r.Equal(service.AnalyticsPalette[0], chart.Segments[6].Color)

	ts.documents.EXPECT().DocumentStats(gomock.Any()).Return(nil, errDown)
	r.Equal(service.MsgAnalyticsFailed, entity.UserMessage(ts.s.Analytics().Load(context.Background()), ""))
}

func TestProfile_Load(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	user := entity.User{ID: "s1", Name: "Ann"}
	history := []entity.HistoryEvent{{Type: entity.HistoryUpload, Item: []byte(`{"originalName":"a.pdf"}`)}}

	ts.users.EXPECT().Profile(gomock.Any()).Return(user, nil)
	ts.users.EXPECT().History(gomock.Any()).Return(history, nil)

	p := ts.s.Profile()
	r.NoError(p.Load(context.Background()))
	r.Equal(user, p.User())
	r.Equal("Uploaded a.pdf", p.History()[0].Describe())
}
