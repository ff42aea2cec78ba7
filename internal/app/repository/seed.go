package repository

import (
	"itsupport/internal/app/ds"
)

// Idempotent writes used by cmd/seed. Reference rows are matched on their
// code so reseeding updates copy without duplicating rows.

func (r *Repository) UpsertServicePlan(plan ds.ServicePlan) error {
	return r.db.
		Where(ds.ServicePlan{Code: plan.Code}).
		Assign(ds.ServicePlan{
			Name:         plan.Name,
			MonthlyPrice: plan.MonthlyPrice,
			Description:  plan.Description,
			Features:     plan.Features,
			Popular:      plan.Popular,
		}).
		FirstOrCreate(&plan).Error
}

func (r *Repository) UpsertServiceOffering(offering ds.ServiceOffering) error {
	return r.db.
		Where(ds.ServiceOffering{Code: offering.Code}).
		Assign(ds.ServiceOffering{
			Name:        offering.Name,
			Description: offering.Description,
			Icon:        offering.Icon,
		}).
		FirstOrCreate(&offering).Error
}

// EnsureAdminUser creates the admin account if it does not exist yet. An
// existing account keeps its password.
func (r *Repository) EnsureAdminUser(email, hashedPassword, fullName string) error {
	exists, err := r.UserExistsByEmail(email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = r.CreateUser(email, hashedPassword, fullName, true)
	return err
}
