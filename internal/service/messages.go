package service

import (
	"fmt"
	"strings"

	"github.com/samandr77/docflow/internal/entity"
)

const (
	MsgLoginFailed      = "Invalid email or password. Please try again."
	MsgDashboardFailed  = "Failed to fetch documents."
	MsgUploadFailed     = "File upload failed. Please try again."
	MsgUploadDone       = "File uploaded and sent for approval!"
	MsgDetailFailed     = "Failed to fetch details."
	MsgRequestFailed    = "Failed to request approval."
	MsgRequestDone      = "Approval requested successfully!"
	MsgApprovalsFailed  = "Failed to fetch data."
	MsgDecisionFailed   = "Failed to process the request."
	MsgForwardFailed    = "Failed to forward the request."
	MsgForwardDone      = "Request forwarded successfully!"
	MsgApprovedFailed   = "Failed to fetch approved documents."
	MsgStaffFailed      = "Could not fetch the staff list."
	MsgDocForwardFailed = "Failed to forward the document."
	MsgDocForwardDone   = "Document forwarded successfully!"
	MsgAssignedFailed   = "Failed to fetch assigned documents."
	MsgAdminFailed      = "Failed to fetch admin data."
	MsgSaveUserFailed   = "Failed to save user."
	MsgDeleteUserFailed = "Failed to delete user."
	MsgAnalyticsFailed  = "Failed to fetch analytics data."
	MsgProfileFailed    = "Failed to fetch profile data."
	MsgManagerFailed    = "Failed to fetch dashboard data."
	MsgAlertsFailed     = "Failed to fetch alerts."
	MsgCreateUserFailed = "Failed to create user."
)

func DecisionDone(d entity.Decision) string {
	return fmt.Sprintf("Request has been %s!", strings.ToLower(string(d)))
}

func UserCreated(name string) string {
	return fmt.Sprintf("User %q created successfully!", name)
}

// Failure pairs a backend or transport error with the text shown when the
// backend did not send a message of its own.
type Failure struct {
	Err      error
	Fallback string
}

func fail(err error, fallback string) error {
	return &Failure{Err: err, Fallback: fallback}
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Fallback, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func (f *Failure) UserMessage() string {
	return entity.UserMessage(f.Err, f.Fallback)
}
