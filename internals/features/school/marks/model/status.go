package model

import "fmt"

// Status nilai sebagai FSM eksplisit. Transisi ilegal ditolak di satu
// tempat (Transition), controller tidak membandingkan string status.
type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
)

// Action terhadap baris nilai.
type Action string

const (
	ActionResubmit Action = "resubmit"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
)

// ErrInvalidTransition menandai aksi yang tidak sah untuk status sekarang.
type ErrInvalidTransition struct {
	From   Status
	Action Action
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("transisi tidak valid: %s tidak bisa di-%s", e.From, e.Action)
}

// Transition: (status sekarang, aksi) → status berikutnya.
// - resubmit sah dari status APA PUN: nilai yang sudah approved/rejected
//   dibuka lagi dan butuh approval baru.
// - approve/reject hanya sah dari pending_approval (terminal setelahnya).
func Transition(current Status, action Action) (Status, error) {
	switch action {
	case ActionResubmit:
		return StatusPendingApproval, nil
	case ActionApprove:
		if current != StatusPendingApproval {
			return current, &ErrInvalidTransition{From: current, Action: action}
		}
		return StatusApproved, nil
	case ActionReject:
		if current != StatusPendingApproval {
			return current, &ErrInvalidTransition{From: current, Action: action}
		}
		return StatusRejected, nil
	default:
		return current, &ErrInvalidTransition{From: current, Action: action}
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusPendingApproval, StatusApproved, StatusRejected:
		return true
	}
	return false
}
