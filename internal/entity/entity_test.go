package entity_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/docflow/internal/entity"
)

func TestRole_Can(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role    entity.Role
		allowed []entity.Capability
		denied  []entity.Capability
	}{
		{
			role:    entity.RoleStaff,
			allowed: []entity.Capability{entity.CapUpload, entity.CapAssignedDocs},
			denied:  []entity.Capability{entity.CapApprovals, entity.CapApprovedDocs, entity.CapCreateUser},
		},
		{
			role:    entity.RoleManager,
			allowed: []entity.Capability{entity.CapApprovals, entity.CapApprovedDocs},
			denied:  []entity.Capability{entity.CapUpload, entity.CapAssignedDocs, entity.CapCreateUser},
		},
		{
			role:    entity.RoleAdmin,
			allowed: []entity.Capability{entity.CapApprovals, entity.CapApprovedDocs, entity.CapCreateUser, entity.CapAdminConsole},
			denied:  []entity.Capability{entity.CapUpload, entity.CapAssignedDocs},
		},
		{
			role:   entity.Role("Guest"),
			denied: []entity.Capability{entity.CapUpload, entity.CapApprovals, entity.CapCreateUser},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			t.Parallel()

			for _, c := range tt.allowed {
				require.True(t, tt.role.Can(c), c)
			}

			for _, c := range tt.denied {
				require.False(t, tt.role.Can(c), c)
			}
		})
	}
}

func TestSession_TokenExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	got, ok, err := entity.Session{Token: token}.TokenExpiry()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, exp.Equal(got))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, ok, err = entity.Session{Token: noExp}.TokenExpiry()
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = entity.Session{Token: "garbage"}.TokenExpiry()
	require.Error(t, err)
}

func TestSessionFromCtx(t *testing.T) {
	t.Parallel()

	_, err := entity.SessionFromCtx(context.Background())
	require.ErrorIs(t, err, entity.ErrNoSession)

	want := entity.Session{UserID: "u1", Role: entity.RoleStaff, Token: "t"}

	got, err := entity.SessionFromCtx(entity.CtxWithSession(context.Background(), want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestUserRef_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var doc struct {
		A entity.UserRef `json:"a"`
		B entity.UserRef `json:"b"`
		C entity.UserRef `json:"c"`
	}

	err := json.Unmarshal([]byte(`{"a":"u1","b":{"_id":"u2","name":"Bo"},"c":null}`), &doc)
	require.NoError(t, err)

	require.Equal(t, entity.UserRef{ID: "u1"}, doc.A)
	require.Equal(t, entity.UserRef{ID: "u2", Name: "Bo"}, doc.B)
	require.Equal(t, entity.UserRef{}, doc.C)
	require.Equal(t, "u1", doc.A.Label())
	require.Equal(t, "Bo", doc.B.Label())
}

type backendErr struct{ msg string }

func (e backendErr) Error() string       { return "backend: " + e.msg }
func (e backendErr) UserMessage() string { return e.msg }

func TestUserMessage(t *testing.T) {
	t.Parallel()

	const fallback = "Something went wrong."

	require.Equal(t, "Please select a file first.", entity.UserMessage(entity.ErrNoFileSelected, fallback))
	require.Equal(t, "quota exceeded", entity.UserMessage(fmt.Errorf("upload: %w", backendErr{"quota exceeded"}), fallback))
	require.Equal(t, fallback, entity.UserMessage(backendErr{}, fallback))
	require.Equal(t, fallback, entity.UserMessage(errors.New("dial tcp: refused"), fallback))

	require.True(t, entity.IsValidation(fmt.Errorf("wrap: %w", entity.ErrInvalidSelection)))
	require.False(t, entity.IsValidation(entity.ErrNotFound))
}

func TestUserInput_Validate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, entity.UserInput{Email: "a@b.c"}.Validate(), entity.ErrUserFieldsMissing)
	require.ErrorIs(t, entity.UserInput{Name: "Ann", Email: "  "}.Validate(), entity.ErrUserFieldsMissing)
	require.Error(t, entity.UserInput{Name: "Ann", Email: "a@b.c", Role: "Root"}.Validate())
	require.NoError(t, entity.UserInput{Name: "Ann", Email: "a@b.c", Role: entity.RoleStaff}.Validate())
}

func TestHistoryEvent_Describe(t *testing.T) {
	t.Parallel()

	var events []entity.HistoryEvent

	err := json.Unmarshal([]byte(`[
		{"type":"UPLOAD","date":"2024-01-02T03:04:05Z","item":{"_id":"d1","originalName":"report.pdf"}},
		{"type":"APPROVAL","date":"2024-01-02T03:04:05Z","item":{"_id":"a1","status":"Approved","document":{"originalName":"plan.docx"}}},
		{"type":"APPROVAL","date":"2024-01-02T03:04:05Z","item":{"_id":"a2","status":"Pending","document":null}},
		{"type":"LOGIN","date":"2024-01-02T03:04:05Z","item":{}}
	]`), &events)
	require.NoError(t, err)

	require.Equal(t, "Uploaded report.pdf", events[0].Describe())
	require.Equal(t, "Approved approval for plan.docx", events[1].Describe())
	require.Equal(t, "Pending approval for (deleted document)", events[2].Describe())
	require.Equal(t, "LOGIN", events[3].Describe())
}
