package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/biletfinder/ticketing-service/internal/domain"
)

type pgTicketRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTicketRepository instantiates a pgx-backed ticket repository.
func NewPostgresTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &pgTicketRepository{pool: pool}
}

const ticketColumns = `id, trip_id, user_id, passenger_name, passenger_email, passenger_phone,
       seat_number, trip_type, purchase_date, travel_date, qr_code, status`

func (r *pgTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, trip_id, user_id, passenger_name, passenger_email, passenger_phone,
                             seat_number, trip_type, purchase_date, travel_date, qr_code, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.TripID,
		ticket.UserID,
		ticket.PassengerName,
		ticket.PassengerEmail,
		ticket.PassengerPhone,
		ticket.SeatNumber,
		ticket.TripType,
		ticket.PurchaseDate,
		ticket.TravelDate,
		ticket.QRCode,
		ticket.Status,
	)
	return err
}

func (r *pgTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET user_id=$1, passenger_name=$2, passenger_email=$3, passenger_phone=$4,
            seat_number=$5, trip_type=$6, travel_date=$7, qr_code=$8, status=$9
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.UserID,
		ticket.PassengerName,
		ticket.PassengerEmail,
		ticket.PassengerPhone,
		ticket.SeatNumber,
		ticket.TripType,
		ticket.TravelDate,
		ticket.QRCode,
		ticket.Status,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.TripID,
		&ticket.UserID,
		&ticket.PassengerName,
		&ticket.PassengerEmail,
		&ticket.PassengerPhone,
		&ticket.SeatNumber,
		&ticket.TripType,
		&ticket.PurchaseDate,
		&ticket.TravelDate,
		&ticket.QRCode,
		&ticket.Status,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *pgTicketRepository) ListByUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id=$1 ORDER BY seq`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *pgTicketRepository) ListByUserAndStatus(ctx context.Context, userID string, status domain.TicketStatus) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id=$1 AND status=$2 ORDER BY seq`
	rows, err := r.pool.Query(ctx, query, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *pgTicketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY seq`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := make([]domain.Ticket, 0)
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TripID,
			&ticket.UserID,
			&ticket.PassengerName,
			&ticket.PassengerEmail,
			&ticket.PassengerPhone,
			&ticket.SeatNumber,
			&ticket.TripType,
			&ticket.PurchaseDate,
			&ticket.TravelDate,
			&ticket.QRCode,
			&ticket.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
