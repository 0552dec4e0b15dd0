package repository

import (
	"context"
	"database/sql"

	"github.com/medicore/hospital-occupancy/internal/model"
)

// PatientRepo reads the patient projection the occupancy service needs.
// Patient lifecycle (registration, editing, archival) belongs to the
// registry service; only lookups live here.
type PatientRepo struct {
	db *sql.DB
}

// NewPatientRepo constructs a PatientRepo with the given DB handle.
func NewPatientRepo(db *sql.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

const patientColumns = `id, first_name, last_name, age, blood_group, status`

// GetPatient retrieves a patient by id.
func (r *PatientRepo) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	const q = `SELECT ` + patientColumns + ` FROM patients WHERE id = ?`
	var p model.Patient
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.FirstName, &p.LastName, &p.Age, &p.BloodGroup, &p.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListAdmittable returns active patients who do not currently occupy a bed.
// This is the authoritative version of the selection the assignment form
// offers, so a stale client cannot admit someone twice.
func (r *PatientRepo) ListAdmittable(ctx context.Context) ([]model.Patient, error) {
	const q = `SELECT ` + patientColumns + `
	           FROM patients pt
	           WHERE pt.status = 'Active'
	             AND NOT EXISTS (SELECT 1 FROM beds b WHERE b.patient_id = pt.id)
	           ORDER BY pt.last_name, pt.first_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Patient
	for rows.Next() {
		var p model.Patient
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Age, &p.BloodGroup, &p.Status); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
