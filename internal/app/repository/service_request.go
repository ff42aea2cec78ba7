package repository

import (
	"errors"
	"time"

	"itsupport/internal/app/ds"
)

var ErrStatusConflict = errors.New("la demande a changé de statut entre-temps")

// CreateRequest inserts the submitted record. Insertion happens exactly once
// per form submission; there is no update path for the collected fields.
func (r *Repository) CreateRequest(req *ds.ServiceRequest) error {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	if req.Status == "" {
		req.Status = ds.StatusPending
	}
	if req.PaymentStatus == "" {
		req.PaymentStatus = ds.PaymentUnpaid
	}
	return r.db.Create(req).Error
}

// GetRequests returns all requests newest first. Filters are optional; the
// dashboard loads the full list and there is no pagination.
func (r *Repository) GetRequests(status ds.Status, dateFrom, dateTo *time.Time) ([]ds.ServiceRequest, error) {
	query := r.db.Model(&ds.ServiceRequest{}).Order("created_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if dateFrom != nil {
		query = query.Where("created_at >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("created_at <= ?", *dateTo)
	}

	var requests []ds.ServiceRequest
	err := query.Find(&requests).Error
	return requests, err
}

func (r *Repository) GetRequestByID(id uint) (*ds.ServiceRequest, error) {
	var req ds.ServiceRequest
	err := r.db.First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateRequestStatus moves a request from one status to another. The update
// is guarded on the expected current status, so a transition raced by
// another admin session fails instead of skipping a workflow state.
func (r *Repository) UpdateRequestStatus(id uint, from, to ds.Status) error {
	result := r.db.Model(&ds.ServiceRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}
