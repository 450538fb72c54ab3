package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/dispatch"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

type ResponderRepository struct {
	db *pgxpool.Pool
}

func NewResponderRepository(db *pgxpool.Pool) dispatch.ResponderDirectory {
	return &ResponderRepository{db: db}
}

// FindCandidates находит активных исполнителей с нужной специализацией в радиусе
// от точки инцидента. Порядок детерминирован: ближайшие первыми, при равной
// дистанции - по id исполнителя.
func (r *ResponderRepository) FindCandidates(ctx context.Context, location models.Location, radiusMeters float64, capabilities []string) ([]models.Candidate, error) {
	query := `
		SELECT
			r.id,
			r.name,
			COALESCE(r.phone, '') as contact_handle,
			ST_Distance(
				r.location,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography
			) as distance_meters
		FROM responders r
		WHERE
			r.active
			AND r.capabilities && $3::text[]
			AND ST_DWithin(
				r.location,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
				$4
			)
		ORDER BY distance_meters ASC, r.id ASC;
	`
	rows, err := r.db.Query(ctx, query, location.Longitude, location.Latitude, capabilities, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to find responder candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]models.Candidate, 0)
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ResponderID, &c.Name, &c.ContactHandle, &c.DistanceMeters); err != nil {
			return nil, fmt.Errorf("failed to scan candidate row in FindCandidates: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error candidates iteration in FindCandidates: %w", err)
	}
	return candidates, nil
}

// GetResponder возвращает публичный профиль исполнителя
func (r *ResponderRepository) GetResponder(ctx context.Context, id uuid.UUID) (*models.ResponderProfile, error) {
	profile := &models.ResponderProfile{}
	query := `
		SELECT id, name, COALESCE(phone, '')
		FROM responders
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&profile.ID, &profile.Name, &profile.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("responder with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get responder by id: %w", err)
	}
	return profile, nil
}
