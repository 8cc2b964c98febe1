package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type DocStatus string

const (
	DocStatusProcessing DocStatus = "Processing"
	DocStatusCompleted  DocStatus = "Completed"
	DocStatusFailed     DocStatus = "Failed"
)

type ApprovalStatus string

const (
	ApprovalNotRequested ApprovalStatus = "Not Requested"
	ApprovalPending      ApprovalStatus = "Pending"
	ApprovalApproved     ApprovalStatus = "Approved"
	ApprovalRejected     ApprovalStatus = "Rejected"
)

type Document struct {
	ID             string         `json:"_id"`
	OriginalName   string         `json:"originalName"`
	FileType       string         `json:"fileType"`
	Status         DocStatus      `json:"status"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
	UploadedBy     UserRef        `json:"uploadedBy"`
	Summary        string         `json:"summary"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// UserRef is a reference to a user. The backend sends either the bare id or
// a populated object depending on the endpoint.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*r = UserRef{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("unmarshal user id: %w", err)
		}

		*r = UserRef{ID: id}

		return nil
	}

	type plain UserRef

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("unmarshal user ref: %w", err)
	}

	*r = UserRef(p)

	return nil
}

// Label is the display name, falling back to the id for unpopulated refs.
func (r UserRef) Label() string {
	if r.Name != "" {
		return r.Name
	}

	return r.ID
}
