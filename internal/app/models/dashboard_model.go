package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats is the manager dashboard aggregate. Every metric degrades to
// its zero value when the scan behind it fails.
type DashboardStats struct {
	TotalUsers           int64           `json:"totalUsers"`
	PendingPayments      decimal.Decimal `json:"pendingPayments"`
	TotalPayments        decimal.Decimal `json:"totalPayments"`
	TotalReports         int64           `json:"totalReports"`
	PendingReports       int64           `json:"pendingReports"`
	PendingPaymentProofs int64           `json:"pendingPaymentProofs"`
	TotalReportsToday    int64           `json:"totalReportsToday"`
	TotalAmountToday     decimal.Decimal `json:"totalAmountToday"`
	TodaySubmissions     int64           `json:"todaySubmissions"`
	ThisWeekAmount       decimal.Decimal `json:"thisWeekAmount"`
	ApprovalRate         int             `json:"approvalRate"`
	RejectionRate        int             `json:"rejectionRate"`
	AverageApprovalTime  int             `json:"averageApprovalTime"`
}

// PendingReportSummary is one row of the recent-activity pending list.
type PendingReportSummary struct {
	ID          uuid.UUID       `json:"id"`
	Filename    string          `json:"filename"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Status      ReportStatus    `json:"status"`
	User        *UserSummary    `json:"user"`
}

type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

// RecentAction is one reviewer action derived from the activity log.
type RecentAction struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"` // approval | rejection | comment
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	ReportID    string    `json:"reportId"`
}

// RecentActivity bundles the three recent-activity feeds.
type RecentActivity struct {
	PendingReports []PendingReportSummary `json:"pendingReports"`
	PendingProofs  []PaymentProof         `json:"pendingProofs"`
	RecentActions  []RecentAction         `json:"recentActions"`
}
