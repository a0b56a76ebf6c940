package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/reportdesk/reportdesk-core/internal/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. Connections are capped
// at one so every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.PaymentProof{},
		&models.ReportHistory{},
		&models.Notification{},
		&models.ActivityLog{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role, active bool) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		FullName: "Test " + string(role),
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(user).Error)
	if !active {
		// GORM replaces a zero-valued IsActive with the column default (true)
		// during Create, so deactivation must be persisted separately.
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
		user.IsActive = false
	}
	return user
}

func seedReport(t *testing.T, db *gorm.DB, owner *models.User, status models.ReportStatus, amount string) *models.Report {
	t.Helper()

	report := &models.Report{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Filename:    "expenses-march.xlsx",
		TotalAmount: decimal.RequireFromString(amount),
		Status:      status,
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

func seedProof(t *testing.T, db *gorm.DB, report *models.Report, status models.ProofStatus, amount string) *models.PaymentProof {
	t.Helper()

	proof := &models.PaymentProof{
		ID:       uuid.New(),
		ReportID: report.ID,
		Amount:   decimal.RequireFromString(amount),
		FileType: "application/pdf",
		Status:   status,
	}
	require.NoError(t, db.Create(proof).Error)
	return proof
}

func seedNotification(t *testing.T, db *gorm.DB, userID uuid.UUID, createdAt time.Time) *models.Notification {
	t.Helper()

	notification := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      models.NotificationReportApproved,
		Title:     "Report Approved",
		Message:   "Your report has been approved",
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(notification).Error)
	return notification
}
