package repository // repository defines data access for rooms and their beds

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/medicore/hospital-occupancy/internal/model"
)

// RoomRepo provides methods to work with rooms in the database.  Every room
// read embeds the full bed collection so callers always see a consistent
// room/bed snapshot.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// bedColumns is the shared select list for bed rows.  The LEFT JOIN against
// patients yields the expanded reference shape (id plus name); when the join
// produces no name the denormalized patient_name column on the bed is used
// instead, so both reference shapes the store can produce are handled.
const bedColumns = `b.id, b.room_id, b.bed_number, b.status,
	       b.patient_id, p.first_name, p.last_name, b.patient_name,
	       b.admission_date, b.notes, b.created_at, b.updated_at`

// List retrieves all rooms with their beds, ordered by room number.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	const q = `SELECT id, room_number, ward, floor, room_type, created_at, updated_at
	           FROM rooms
	           ORDER BY room_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Room
	index := map[int64]int{}
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.RoomNumber, &rm.Ward, &rm.Floor, &rm.RoomType, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		rm.Beds = []model.Bed{}
		index[rm.ID] = len(result)
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	const bq = `SELECT ` + bedColumns + `
	           FROM beds b
	           LEFT JOIN patients p ON p.id = b.patient_id
	           ORDER BY b.room_id, b.bed_number`
	brows, err := r.db.QueryContext(ctx, bq)
	if err != nil {
		return nil, err
	}
	defer brows.Close()
	for brows.Next() {
		bed, err := scanBed(brows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[bed.RoomID]; ok {
			result[i].Beds = append(result[i].Beds, bed)
		}
	}
	if err := brows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a single room with its bed collection.
func (r *RoomRepo) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	const q = `SELECT id, room_number, ward, floor, room_type, created_at, updated_at
	           FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&rm.ID, &rm.RoomNumber, &rm.Ward, &rm.Floor, &rm.RoomType, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	rm.Beds = []model.Bed{}

	const bq = `SELECT ` + bedColumns + `
	           FROM beds b
	           LEFT JOIN patients p ON p.id = b.patient_id
	           WHERE b.room_id = ?
	           ORDER BY b.bed_number`
	rows, err := r.db.QueryContext(ctx, bq, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		bed, err := scanBed(rows)
		if err != nil {
			return nil, err
		}
		rm.Beds = append(rm.Beds, bed)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rm, nil
}

// Create inserts a room together with its seed beds in one transaction.  On
// success the room's ID and each bed's ID are populated.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO rooms (room_number, ward, floor, room_type) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, room.RoomNumber, room.Ward, room.Floor, room.RoomType)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = id

	if len(room.Beds) > 0 {
		query := `INSERT INTO beds (room_id, bed_number, status) VALUES `
		args := make([]interface{}, 0, len(room.Beds)*3)
		for i := range room.Beds {
			if room.Beds[i].Status == "" {
				room.Beds[i].Status = model.BedAvailable
			}
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?)"
			args = append(args, id, room.Beds[i].BedNumber, string(room.Beds[i].Status))
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		for i := range room.Beds {
			room.Beds[i].RoomID = id
		}
	}
	return tx.Commit()
}

// Update changes a room's own attributes.  The bed collection is left
// untouched; bed state moves only through the bed store.
func (r *RoomRepo) Update(ctx context.Context, room *model.Room) error {
	const q = `UPDATE rooms
	           SET room_number = ?, ward = ?, floor = ?, room_type = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, room.RoomNumber, room.Ward, room.Floor, room.RoomType, room.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing" from "unchanged": MySQL reports zero
		// affected rows for both.
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ?`, room.ID).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return ErrRoomNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a room and all beds it owns.  Callers enforce the occupied
// bed guard before delegating here.
func (r *RoomRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM beds WHERE room_id = ?`, id); err != nil {
		return fmt.Errorf("delete beds: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return tx.Commit()
}

// scanBed reads one joined bed row and normalizes the patient reference.
func scanBed(rows *sql.Rows) (model.Bed, error) {
	var (
		b             model.Bed
		status        string
		patientID     sql.NullInt64
		firstName     sql.NullString
		lastName      sql.NullString
		denormName    sql.NullString
		admissionDate sql.NullTime
		notes         sql.NullString
	)
	if err := rows.Scan(
		&b.ID, &b.RoomID, &b.BedNumber, &status,
		&patientID, &firstName, &lastName, &denormName,
		&admissionDate, &notes, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return model.Bed{}, err
	}
	b.Status = model.BedStatus(status)
	if patientID.Valid {
		ref := &model.PatientRef{ID: patientID.Int64}
		if firstName.Valid || lastName.Valid {
			p := model.Patient{FirstName: firstName.String, LastName: lastName.String}
			ref.DisplayName = p.DisplayName()
		}
		if ref.DisplayName == "" && denormName.Valid {
			ref.DisplayName = denormName.String
		}
		b.Patient = ref
	}
	if admissionDate.Valid {
		t := admissionDate.Time
		b.AdmissionDate = &t
	}
	if notes.Valid {
		n := notes.String
		b.Notes = &n
	}
	return b, nil
}
