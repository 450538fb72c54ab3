package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/dispatch"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) dispatch.UserDirectory {
	return &UserRepository{db: db}
}

// GetEmergencyContacts возвращает экстренные контакты из профиля пользователя
func (r *UserRepository) GetEmergencyContacts(ctx context.Context, userID uuid.UUID) ([]models.EmergencyContact, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, COALESCE(relation, ''), phone
		FROM emergency_contacts
		WHERE user_id = $1
		ORDER BY id;
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get emergency contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]models.EmergencyContact, 0)
	for rows.Next() {
		var c models.EmergencyContact
		if err := rows.Scan(&c.Name, &c.Relation, &c.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan emergency contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error contacts iteration: %w", err)
	}
	return contacts, nil
}
