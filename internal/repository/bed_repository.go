package repository // repository defines data access for beds

import (
	"context"
	"database/sql"

	"github.com/medicore/hospital-occupancy/internal/model"
)

// BedRepo provides the bed-level mutations the occupancy service funnels all
// state changes through.  Each method touches exactly one bed; the status
// and patient fields always move in a single UPDATE so the occupancy
// invariant cannot be observed half-applied.
type BedRepo struct {
	db *sql.DB
}

// NewBedRepo constructs a BedRepo with the given DB handle.
func NewBedRepo(db *sql.DB) *BedRepo {
	return &BedRepo{db: db}
}

// AssignIfVacant admits a patient to the bed only when it is not already
// occupied.  The status check happens inside the UPDATE itself, so two
// concurrent assignments against the same bed cannot both succeed; the
// loser gets ErrBedOccupied.
func (r *BedRepo) AssignIfVacant(ctx context.Context, bedID int64, a model.Assignment) error {
	const q = `UPDATE beds
	           SET status = 'Occupied', patient_id = ?, patient_name = ?,
	               admission_date = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status <> 'Occupied'`
	res, err := r.db.ExecContext(ctx, q, a.PatientID, a.PatientName, a.AdmissionDate, a.Notes, bedID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows also happens when the bed row vanished underneath us,
		// e.g. its room was deleted after the caller resolved the bed.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM beds WHERE id = ?`, bedID).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return ErrBedNotFound
			}
			return err
		}
		return ErrBedOccupied
	}
	return nil
}

// Clear discharges the bed: status back to Available with every patient
// field nulled.  Clearing an already vacant bed is a harmless no-op.
func (r *BedRepo) Clear(ctx context.Context, bedID int64) error {
	const q = `UPDATE beds
	           SET status = 'Available', patient_id = NULL, patient_name = NULL,
	               admission_date = NULL, notes = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, bedID)
	return err
}

// SetStatus moves the bed to the given status.  A non-nil notes value
// overwrites the stored notes, a nil value leaves them unchanged.  Patient
// fields are cleared for every target status except Occupied, which keeps
// them intact.
func (r *BedRepo) SetStatus(ctx context.Context, bedID int64, status model.BedStatus, notes *string) error {
	const q = `UPDATE beds
	           SET status = ?,
	               notes = IF(? IS NULL, notes, ?),
	               patient_id = IF(? = 'Occupied', patient_id, NULL),
	               patient_name = IF(? = 'Occupied', patient_name, NULL),
	               admission_date = IF(? = 'Occupied', admission_date, NULL),
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	s := string(status)
	_, err := r.db.ExecContext(ctx, q, s, notes, notes, s, s, s, bedID)
	return err
}

// ListByStatus returns all beds currently in the given status, annotated
// with their owning room's attributes for flat display.
func (r *BedRepo) ListByStatus(ctx context.Context, status model.BedStatus) ([]model.BedPlacement, error) {
	const q = `SELECT ` + bedColumns + `,
	               rm.room_number, rm.ward, rm.floor, rm.room_type
	           FROM beds b
	           JOIN rooms rm ON rm.id = b.room_id
	           LEFT JOIN patients p ON p.id = b.patient_id
	           WHERE b.status = ?
	           ORDER BY rm.room_number, b.bed_number`
	rows, err := r.db.QueryContext(ctx, q, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.BedPlacement
	for rows.Next() {
		var (
			pl            model.BedPlacement
			st            string
			patientID     sql.NullInt64
			firstName     sql.NullString
			lastName      sql.NullString
			denormName    sql.NullString
			admissionDate sql.NullTime
			notes         sql.NullString
		)
		if err := rows.Scan(
			&pl.ID, &pl.RoomID, &pl.BedNumber, &st,
			&patientID, &firstName, &lastName, &denormName,
			&admissionDate, &notes, &pl.CreatedAt, &pl.UpdatedAt,
			&pl.RoomNumber, &pl.Ward, &pl.Floor, &pl.RoomType,
		); err != nil {
			return nil, err
		}
		pl.Status = model.BedStatus(st)
		if patientID.Valid {
			ref := &model.PatientRef{ID: patientID.Int64}
			if firstName.Valid || lastName.Valid {
				p := model.Patient{FirstName: firstName.String, LastName: lastName.String}
				ref.DisplayName = p.DisplayName()
			}
			if ref.DisplayName == "" && denormName.Valid {
				ref.DisplayName = denormName.String
			}
			pl.Patient = ref
		}
		if admissionDate.Valid {
			t := admissionDate.Time
			pl.AdmissionDate = &t
		}
		if notes.Valid {
			n := notes.String
			pl.Notes = &n
		}
		result = append(result, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByPatient returns the bed the patient currently occupies, or
// ErrBedNotFound when the patient is not admitted anywhere.
func (r *BedRepo) FindByPatient(ctx context.Context, patientID int64) (*model.Bed, error) {
	const q = `SELECT id, room_id, bed_number, status, admission_date
	           FROM beds WHERE patient_id = ? LIMIT 1`
	var (
		b             model.Bed
		status        string
		admissionDate sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, patientID).
		Scan(&b.ID, &b.RoomID, &b.BedNumber, &status, &admissionDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBedNotFound
		}
		return nil, err
	}
	b.Status = model.BedStatus(status)
	b.Patient = &model.PatientRef{ID: patientID}
	if admissionDate.Valid {
		t := admissionDate.Time
		b.AdmissionDate = &t
	}
	return &b, nil
}
