package postgres

import (
	"context"
	"database/sql"
	"time"

	"hotelops-backend/internal/domain"
	"hotelops-backend/internal/repository"

	"github.com/lib/pq"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetByIDs(ctx context.Context, hotelID int32, ids []int32) ([]domain.Room, error) {
	query := `SELECT id, hotel_id, room_number, category_id, status, price_per_night, created_on, updated_on
	          FROM rooms WHERE hotel_id = $1 AND id = ANY($2) ORDER BY room_number`
	rows, err := r.db.QueryContext(ctx, query, hotelID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.RoomNumber, &rm.CategoryID, &rm.Status, &rm.PricePerNight, &createdOn, &updatedOn); err != nil {
			return nil, err
		}
		rm.CreatedOn = createdOn.Format("2006-01-02")
		rm.UpdatedOn = updatedOn.Format("2006-01-02")
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) GetCategoriesByIDs(ctx context.Context, hotelID int32, ids []int32) ([]domain.RoomCategory, error) {
	query := `SELECT id, hotel_id, name, max_occupancy
	          FROM room_categories WHERE hotel_id = $1 AND id = ANY($2)`
	rows, err := r.db.QueryContext(ctx, query, hotelID, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.RoomCategory
	for rows.Next() {
		var c domain.RoomCategory
		if err := rows.Scan(&c.ID, &c.HotelID, &c.Name, &c.MaxOccupancy); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *roomRepository) UpdateStatus(ctx context.Context, hotelID int32, roomIDs []int32, status domain.RoomStatus) error {
	query := `UPDATE rooms SET status = $1, updated_on = $2 WHERE hotel_id = $3 AND id = ANY($4)`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), hotelID, pq.Array(roomIDs))
	return err
}
