package models

// Result payloads echoed back by the review workflow endpoints.

type ReportActionResult struct {
	ReportID  string       `json:"reportId"`
	NewStatus ReportStatus `json:"newStatus"`
	Action    ReviewAction `json:"action"`
}

type AddCommentResult struct {
	ReportID string       `json:"reportId"`
	Comment  string       `json:"comment"`
	Action   string       `json:"action"`
	Status   ReportStatus `json:"status"`
}

type PaymentProofActionResult struct {
	PaymentProofID string        `json:"paymentProofId"`
	ReportID       string        `json:"reportId"`
	Status         ProofStatus   `json:"status"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	Comments       string        `json:"comments"`
}
