package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

// UserInput is the admin upsert form. Empty ID means create.
type UserInput struct {
	ID         string `json:"-"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

func (in UserInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return ErrUserFieldsMissing
	}

	if in.Role != "" && !in.Role.IsValid() {
		return NewValidationError(fmt.Sprintf("Unknown role %q.", in.Role))
	}

	return nil
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type HistoryType string

const (
	HistoryUpload   HistoryType = "UPLOAD"
	HistoryApproval HistoryType = "APPROVAL"
)

type HistoryEvent struct {
	Type HistoryType     `json:"type"`
	Date time.Time       `json:"date"`
	Item json.RawMessage `json:"item"`
}

// Describe renders one history line. Unknown event types keep their raw type.
func (e HistoryEvent) Describe() string {
	switch e.Type {
	case HistoryUpload:
		var d Document
		if err := json.Unmarshal(e.Item, &d); err == nil {
			return fmt.Sprintf("Uploaded %s", d.OriginalName)
		}
	case HistoryApproval:
		var a Approval
		if err := json.Unmarshal(e.Item, &a); err == nil {
			return fmt.Sprintf("%s approval for %s", a.Status, a.DocumentName())
		}
	}

	return string(e.Type)
}
