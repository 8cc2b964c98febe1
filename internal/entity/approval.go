package entity

import "time"

type Decision string

const (
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"
)

func (d Decision) IsValid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

type Approval struct {
	ID              string         `json:"_id"`
	Document        *Document      `json:"document"`
	Requester       UserRef        `json:"requester"`
	CurrentApprover UserRef        `json:"currentApprover"`
	Status          ApprovalStatus `json:"status"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// DocumentName tolerates approvals whose document was deleted.
func (a Approval) DocumentName() string {
	if a.Document == nil {
		return "(deleted document)"
	}

	return a.Document.OriginalName
}

type ApprovalStats struct {
	PendingCount  int64 `json:"pendingCount"`
	ApprovedCount int64 `json:"approvedCount"`
}
