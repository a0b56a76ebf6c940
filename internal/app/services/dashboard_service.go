package services

import (
	"encoding/json"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/reportdesk/reportdesk-core/internal/app/pkg"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DashboardService computes the manager dashboard aggregates. All scans run
// concurrently and reduce client-side; a failed scan logs and leaves its
// metrics at zero instead of failing the whole request.
type DashboardService struct {
	db            *gorm.DB
	reportService *ReportService
	auditService  *AuditService
}

func NewDashboardService(db *gorm.DB, reportService *ReportService, auditService *AuditService) *DashboardService {
	return &DashboardService{
		db:            db,
		reportService: reportService,
		auditService:  auditService,
	}
}

type reportAmountRow struct {
	TotalAmount decimal.Decimal
}

type reportApprovalRow struct {
	Status     models.ReportStatus
	ApprovedAt *time.Time
	CreatedAt  time.Time
}

type reportTotalsRow struct {
	TotalAmount decimal.Decimal
	Status      models.ReportStatus
}

// Stats runs the seven dashboard scans in parallel and reduces the results.
func (s *DashboardService) Stats(now time.Time) *models.DashboardStats {
	startOfDay := pkg.StartOfDay(now)
	startOfWeek := pkg.StartOfWeek(now)
	startOfMonth := pkg.StartOfMonth(now)

	stats := &models.DashboardStats{
		PendingPayments:  decimal.Zero,
		TotalPayments:    decimal.Zero,
		TotalAmountToday: decimal.Zero,
		ThisWeekAmount:   decimal.Zero,
	}

	var wg sync.WaitGroup
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				logrus.Errorf("dashboard scan %s failed: %v", name, err)
			}
		}()
	}

	run("pending-reports", func() error {
		var ids []string
		err := s.db.Model(&models.Report{}).
			Where("status = ?", models.ReportStatusPending).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		stats.PendingReports = int64(len(ids))
		return nil
	})

	run("pending-proofs", func() error {
		var ids []string
		err := s.db.Model(&models.PaymentProof{}).
			Where("status = ?", models.ProofStatusPendingApproval).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		stats.PendingPaymentProofs = int64(len(ids))
		return nil
	})

	run("today-submissions", func() error {
		var rows []reportAmountRow
		err := s.db.Model(&models.Report{}).
			Select("total_amount").
			Where("created_at >= ?", startOfDay).
			Find(&rows).Error
		if err != nil {
			return err
		}
		sum := decimal.Zero
		for _, row := range rows {
			sum = sum.Add(row.TotalAmount)
		}
		stats.TodaySubmissions = int64(len(rows))
		stats.TotalReportsToday = int64(len(rows))
		stats.TotalAmountToday = sum
		return nil
	})

	run("week-amount", func() error {
		var rows []reportAmountRow
		err := s.db.Model(&models.Report{}).
			Select("total_amount").
			Where("created_at >= ?", startOfWeek).
			Find(&rows).Error
		if err != nil {
			return err
		}
		sum := decimal.Zero
		for _, row := range rows {
			sum = sum.Add(row.TotalAmount)
		}
		stats.ThisWeekAmount = sum
		return nil
	})

	run("month-approvals", func() error {
		var rows []reportApprovalRow
		err := s.db.Model(&models.Report{}).
			Select("status, approved_at, created_at").
			Where("created_at >= ?", startOfMonth).
			Find(&rows).Error
		if err != nil {
			return err
		}

		var approved, rejected int
		var approvalHours []float64
		for _, row := range rows {
			switch row.Status {
			case models.ReportStatusApproved:
				approved++
				if row.ApprovedAt != nil {
					approvalHours = append(approvalHours, row.ApprovedAt.Sub(row.CreatedAt).Hours())
				}
			case models.ReportStatusRejected:
				rejected++
			}
		}

		if len(rows) > 0 {
			stats.ApprovalRate = int(math.Round(float64(approved) / float64(len(rows)) * 100))
			stats.RejectionRate = int(math.Round(float64(rejected) / float64(len(rows)) * 100))
		}
		if len(approvalHours) > 0 {
			var total float64
			for _, h := range approvalHours {
				total += h
			}
			stats.AverageApprovalTime = int(math.Round(total / float64(len(approvalHours))))
		}
		return nil
	})

	run("totals", func() error {
		var rows []reportTotalsRow
		err := s.db.Model(&models.Report{}).
			Select("total_amount, status").
			Find(&rows).Error
		if err != nil {
			return err
		}

		total := decimal.Zero
		pending := decimal.Zero
		for _, row := range rows {
			total = total.Add(row.TotalAmount)
			if row.Status == models.ReportStatusPending || row.Status == models.ReportStatusProcessing {
				pending = pending.Add(row.TotalAmount)
			}
		}
		stats.TotalReports = int64(len(rows))
		stats.TotalPayments = total
		stats.PendingPayments = pending
		return nil
	})

	run("active-users", func() error {
		var ids []string
		err := s.db.Model(&models.User{}).
			Where("is_active = ?", true).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		stats.TotalUsers = int64(len(ids))
		return nil
	})

	wg.Wait()
	return stats
}

// RecentActivity composes the three recent-activity feeds concurrently.
// Each feed degrades to empty on failure.
func (s *DashboardService) RecentActivity() *models.RecentActivity {
	activity := &models.RecentActivity{
		PendingReports: []models.PendingReportSummary{},
		PendingProofs:  []models.PaymentProof{},
		RecentActions:  []models.RecentAction{},
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		reports, err := s.reportService.RecentPendingReports(10)
		if err != nil {
			logrus.Errorf("recent pending reports fetch failed: %v", err)
			return
		}
		summaries := make([]models.PendingReportSummary, 0, len(reports))
		for _, report := range reports {
			summary := models.PendingReportSummary{
				ID:          report.ID,
				Filename:    report.Filename,
				TotalAmount: report.TotalAmount,
				CreatedAt:   report.CreatedAt,
				Status:      report.Status,
			}
			if report.User != nil {
				summary.User = &models.UserSummary{
					ID:       report.User.ID,
					FullName: report.User.FullName,
					Email:    report.User.Email,
				}
			}
			summaries = append(summaries, summary)
		}
		activity.PendingReports = summaries
	}()

	go func() {
		defer wg.Done()
		proofs, err := s.reportService.RecentPendingProofs(10)
		if err != nil {
			logrus.Errorf("recent pending proofs fetch failed: %v", err)
			return
		}
		activity.PendingProofs = proofs
	}()

	go func() {
		defer wg.Done()
		logs, err := s.auditService.GetRecentReviewerActions(10)
		if err != nil {
			logrus.Errorf("recent reviewer actions fetch failed: %v", err)
			return
		}
		actions := make([]models.RecentAction, 0, len(logs))
		for _, log := range logs {
			actions = append(actions, toRecentAction(log))
		}
		activity.RecentActions = actions
	}()

	wg.Wait()
	return activity
}

func toRecentAction(log models.ActivityLog) models.RecentAction {
	actionType := "comment"
	description := log.Action
	lower := strings.ToLower(log.Action)

	switch {
	case strings.Contains(lower, "approved"):
		actionType = "approval"
		description = "Report approved"
	case strings.Contains(lower, "rejected"):
		actionType = "rejection"
		description = "Report rejected"
	case strings.Contains(lower, "comment"):
		actionType = "comment"
		description = "Comment added"
	}

	reportID := ""
	if log.Details != nil {
		var details map[string]interface{}
		if err := json.Unmarshal([]byte(*log.Details), &details); err == nil {
			if id, ok := details["reportId"].(string); ok {
				reportID = id
			}
		}
	}

	return models.RecentAction{
		ID:          log.ID,
		Type:        actionType,
		Description: description,
		Timestamp:   log.CreatedAt,
		ReportID:    reportID,
	}
}
