package repository

import (
	"fmt"
	"testing"
	"time"

	"itsupport/internal/app/ds"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	// One shared in-memory database per test, so pooled connections see the
	// same schema without leaking state between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := NewWithDB(db)
	require.NoError(t, err)
	return repo
}

func newTestRequest(t *testing.T, repo *Repository, createdAt time.Time) *ds.ServiceRequest {
	t.Helper()

	req := &ds.ServiceRequest{
		CreatedAt:   createdAt,
		CreatorID:   1,
		FullName:    "Amina El Fassi",
		Email:       "amina@example.com",
		Phone:       "+212600000000",
		ServiceType: ds.ServiceMaintenance,
		Plan:        ds.PlanStandard,
		TotalAmount: 1200,
	}
	require.NoError(t, repo.CreateRequest(req))
	return req
}

func TestCreateRequestDefaults(t *testing.T) {
	repo := newTestRepository(t)

	req := &ds.ServiceRequest{
		CreatorID: 1,
		FullName:  "Amina El Fassi",
		Email:     "amina@example.com",
		Phone:     "+212600000000",
	}
	require.NoError(t, repo.CreateRequest(req))

	stored, err := repo.GetRequestByID(req.ID)
	require.NoError(t, err)
	require.Equal(t, ds.StatusPending, stored.Status)
	require.Equal(t, ds.PaymentUnpaid, stored.PaymentStatus)
	require.False(t, stored.CreatedAt.IsZero())
	require.Nil(t, stored.FileKey)
	require.Nil(t, stored.FileName)
}

func TestGetRequestsNewestFirst(t *testing.T) {
	repo := newTestRepository(t)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	first := newTestRequest(t, repo, base)
	second := newTestRequest(t, repo, base.Add(time.Hour))
	third := newTestRequest(t, repo, base.Add(2*time.Hour))

	requests, err := repo.GetRequests("", nil, nil)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	require.Equal(t, third.ID, requests[0].ID)
	require.Equal(t, second.ID, requests[1].ID)
	require.Equal(t, first.ID, requests[2].ID)
}

func TestGetRequestsFilters(t *testing.T) {
	repo := newTestRepository(t)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	old := newTestRequest(t, repo, base)
	recent := newTestRequest(t, repo, base.Add(48*time.Hour))
	require.NoError(t, repo.UpdateRequestStatus(recent.ID, ds.StatusPending, ds.StatusApproved))

	byStatus, err := repo.GetRequests(ds.StatusApproved, nil, nil)
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	require.Equal(t, recent.ID, byStatus[0].ID)

	from := base.Add(24 * time.Hour)
	byDate, err := repo.GetRequests("", &from, nil)
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	require.Equal(t, recent.ID, byDate[0].ID)

	to := base.Add(time.Hour)
	byDateTo, err := repo.GetRequests("", nil, &to)
	require.NoError(t, err)
	require.Len(t, byDateTo, 1)
	require.Equal(t, old.ID, byDateTo[0].ID)
}

func TestUpdateRequestStatusGuarded(t *testing.T) {
	repo := newTestRepository(t)
	req := newTestRequest(t, repo, time.Now())

	require.NoError(t, repo.UpdateRequestStatus(req.ID, ds.StatusPending, ds.StatusApproved))

	stored, err := repo.GetRequestByID(req.ID)
	require.NoError(t, err)
	require.Equal(t, ds.StatusApproved, stored.Status)

	// The expected current status no longer matches, so the guarded update
	// must refuse instead of overwriting the concurrent transition.
	err = repo.UpdateRequestStatus(req.ID, ds.StatusPending, ds.StatusRejected)
	require.ErrorIs(t, err, ErrStatusConflict)

	stored, err = repo.GetRequestByID(req.ID)
	require.NoError(t, err)
	require.Equal(t, ds.StatusApproved, stored.Status)
}

func TestUpdateRequestStatusUnknownID(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.UpdateRequestStatus(999, ds.StatusPending, ds.StatusApproved)
	require.ErrorIs(t, err, ErrStatusConflict)
}
