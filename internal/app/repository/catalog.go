package repository

import (
	"itsupport/internal/app/ds"
)

// Catalog reads feeding the services and pricing pages.

func (r *Repository) GetServicePlans() ([]ds.ServicePlan, error) {
	var plans []ds.ServicePlan
	err := r.db.Order("monthly_price ASC").Find(&plans).Error
	return plans, err
}

func (r *Repository) GetServiceOfferings() ([]ds.ServiceOffering, error) {
	var offerings []ds.ServiceOffering
	err := r.db.Order("id ASC").Find(&offerings).Error
	return offerings, err
}
