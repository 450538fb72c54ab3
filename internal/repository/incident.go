package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_dispatch_system/internal/dispatch"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

const incidentBaseColumns = `
		id,
		reporter_id,
		kind,
		ST_X(location::geometry) as longitude,
		ST_Y(location::geometry) as latitude,
		COALESCE(address, '') as address,
		state,
		assigned_responder_id,
		COALESCE(resolution_note, '') as resolution_note,
		resolved_at,
		created_at,
		updated_at`

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) dispatch.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает новую запись об инциденте в бд вместе с контактами и
// первой записью истории (одной транзакцией)
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin create incident tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO incidents (reporter_id, kind, location, address, state)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6)
		RETURNING id, created_at, updated_at;
	`
	err = tx.QueryRow(ctx, query,
		incident.ReporterID,
		incident.Kind,
		incident.Location.Longitude,
		incident.Location.Latitude,
		incident.Location.Address,
		incident.State,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}

	for i := range incident.NotifiedContacts {
		contact := &incident.NotifiedContacts[i]
		_, err = tx.Exec(ctx, `
			INSERT INTO incident_contacts (incident_id, name, relation, phone, delivery_status)
			VALUES ($1, $2, $3, $4, $5);
		`, incident.ID, contact.Name, contact.Relation, contact.Phone, contact.Status)
		if err != nil {
			return fmt.Errorf("failed to record notified contact: %w", err)
		}
	}

	// Первая запись истории: инцидент всегда имеет аудит-след с момента создания
	entry := models.HistoryEntry{
		ToState: incident.State,
		ActorID: incident.ReporterID.String(),
		Note:    "incident raised",
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO incident_history (incident_id, from_state, to_state, actor_id, note)
		VALUES ($1, NULL, $2, $3, $4)
		RETURNING id, created_at;
	`, incident.ID, entry.ToState, entry.ActorID, entry.Note).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record creation history entry: %w", err)
	}
	incident.History = append(incident.History, entry)

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit create incident tx: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID со всей историей, кандидатами и контактами
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	incident, err := r.getBase(ctx, r.db, id, false)
	if err != nil {
		return nil, err
	}

	if incident.History, err = r.loadHistory(ctx, id); err != nil {
		return nil, err
	}
	if incident.NotifiedCandidates, err = r.loadCandidates(ctx, id); err != nil {
		return nil, err
	}
	if incident.NotifiedContacts, err = r.loadContacts(ctx, id); err != nil {
		return nil, err
	}
	return incident, nil
}

// UpdateAtomic применяет мутацию, только если состояние инцидента на момент
// записи равно expected; блокировка строки удерживает инвариант "ровно одно
// назначение" даже при нескольких экземплярах сервиса над одной бд.
// Запись истории делается в той же транзакции и только при смене состояния.
func (r *IncidentRepository) UpdateAtomic(ctx context.Context, id uuid.UUID, expected models.IncidentState, entry models.HistoryEntry, mutate func(*models.Incident) error) (*models.Incident, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin atomic update tx: %w", err)
	}
	defer tx.Rollback(ctx)

	incident, err := r.getBase(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	if incident.State != expected {
		return nil, &dispatch.StateConflictError{Expected: expected, Current: incident.State}
	}

	previous := incident.State
	if err := mutate(incident); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE incidents SET
			state = $1,
			assigned_responder_id = $2,
			location = ST_SetSRID(ST_MakePoint($3, $4), 4326),
			address = $5,
			resolution_note = $6,
			resolved_at = $7,
			updated_at = NOW()
		WHERE id = $8;
	`,
		incident.State,
		incident.AssignedResponderID,
		incident.Location.Longitude,
		incident.Location.Latitude,
		incident.Location.Address,
		incident.ResolutionNote,
		incident.ResolvedAt,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to apply atomic update: %w", err)
	}

	if incident.State != previous {
		_, err = tx.Exec(ctx, `
			INSERT INTO incident_history (incident_id, from_state, to_state, actor_id, note)
			VALUES ($1, $2, $3, $4, $5);
		`, id, previous, incident.State, entry.ActorID, entry.Note)
		if err != nil {
			return nil, fmt.Errorf("failed to record transition history entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit atomic update tx: %w", err)
	}

	return r.GetByID(ctx, id)
}

// AppendHistory добавляет запись в аудит-журнал инцидента.
// Безопасна для повторов: журнал только пополняется.
func (r *IncidentRepository) AppendHistory(ctx context.Context, id uuid.UUID, entry models.HistoryEntry) error {
	cmdTag, err := r.db.Exec(ctx, `
		INSERT INTO incident_history (incident_id, from_state, to_state, actor_id, note)
		SELECT $1, NULLIF($2, ''), $3, $4, $5
		WHERE EXISTS (SELECT 1 FROM incidents WHERE id = $1);
	`, id, string(entry.FromState), entry.ToState, entry.ActorID, entry.Note)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident with id %s: %w", id, dispatch.ErrNotFound)
	}
	return nil
}

// AddCandidates фиксирует уведомленных кандидатов; список только пополняется,
// повторная вставка того же кандидата игнорируется
func (r *IncidentRepository) AddCandidates(ctx context.Context, id uuid.UUID, candidates []models.NotifiedCandidate) error {
	for _, c := range candidates {
		_, err := r.db.Exec(ctx, `
			INSERT INTO incident_candidates (incident_id, responder_id, name, contact_handle, distance_meters, round, delivery_status, notified_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (incident_id, responder_id) DO NOTHING;
		`, id, c.ResponderID, c.Name, c.ContactHandle, c.DistanceMeters, c.Round, c.Status, c.NotifiedAt)
		if err != nil {
			return fmt.Errorf("failed to add notified candidate: %w", err)
		}
	}
	return nil
}

// SetCandidateStatus обновляет статус доставки уведомления кандидату
func (r *IncidentRepository) SetCandidateStatus(ctx context.Context, id, responderID uuid.UUID, status models.DeliveryStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE incident_candidates SET delivery_status = $1
		WHERE incident_id = $2 AND responder_id = $3;
	`, status, id, responderID)
	if err != nil {
		return fmt.Errorf("failed to set candidate delivery status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("candidate %s for incident %s not found", responderID, id)
	}
	return nil
}

// SetContactStatus обновляет статус доставки уведомления экстренному контакту
func (r *IncidentRepository) SetContactStatus(ctx context.Context, id uuid.UUID, phone string, status models.DeliveryStatus) error {
	_, err := r.db.Exec(ctx, `
		UPDATE incident_contacts SET delivery_status = $1
		WHERE incident_id = $2 AND phone = $3;
	`, status, id, phone)
	if err != nil {
		return fmt.Errorf("failed to set contact delivery status: %w", err)
	}
	return nil
}

// ListIncidents возвращает список инцидентов с пагинацией (без истории и кандидатов)
func (r *IncidentRepository) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `
		SELECT ` + incidentBaseColumns + `
		FROM incidents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident := &models.Incident{}
		if err := scanIncident(rows, incident); err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// GetDispatchStats возвращает сводку по инцидентам за окно в минутах
func (r *IncidentRepository) GetDispatchStats(ctx context.Context, windowMinutes int) (*models.DispatchStats, error) {
	stats := &models.DispatchStats{WindowMinutes: windowMinutes}
	query := `
		SELECT
			COUNT(*) FILTER (WHERE state = 'active'),
			COUNT(*) FILTER (WHERE state = 'assigned'),
			COUNT(*) FILTER (WHERE state = 'resolved' AND resolved_at >= NOW() - ($1 * INTERVAL '1 minute'))
		FROM incidents;
	`
	err := r.db.QueryRow(ctx, query, windowMinutes).Scan(
		&stats.ActiveCount,
		&stats.AssignedCount,
		&stats.ResolvedInWindow,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch stats: %w", err)
	}
	return stats, nil
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	key := fmt.Sprintf("incident:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	key := fmt.Sprintf("incident:%s", incident.ID.String())
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	// Устанавливаем срок жизни кэша, например, 5 минут
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("incident:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}

// querier покрывает пул и транзакцию
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// getBase читает базовую строку инцидента; forUpdate блокирует строку до конца транзакции
func (r *IncidentRepository) getBase(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*models.Incident, error) {
	query := `
		SELECT ` + incidentBaseColumns + `
		FROM incidents
		WHERE id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	query += ";"

	incident := &models.Incident{}
	if err := scanIncident(q.QueryRow(ctx, query, id), incident); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, dispatch.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

func (r *IncidentRepository) loadHistory(ctx context.Context, id uuid.UUID) ([]models.HistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, COALESCE(from_state, ''), to_state, COALESCE(actor_id, ''), COALESCE(note, ''), created_at
		FROM incident_history
		WHERE incident_id = $1
		ORDER BY id;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load incident history: %w", err)
	}
	defer rows.Close()

	history := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var entry models.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.FromState, &entry.ToState, &entry.ActorID, &entry.Note, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error history iteration: %w", err)
	}
	return history, nil
}

func (r *IncidentRepository) loadCandidates(ctx context.Context, id uuid.UUID) ([]models.NotifiedCandidate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT responder_id, name, COALESCE(contact_handle, ''), distance_meters, round, delivery_status, notified_at
		FROM incident_candidates
		WHERE incident_id = $1
		ORDER BY round, distance_meters, responder_id;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load notified candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]models.NotifiedCandidate, 0)
	for rows.Next() {
		var c models.NotifiedCandidate
		if err := rows.Scan(&c.ResponderID, &c.Name, &c.ContactHandle, &c.DistanceMeters, &c.Round, &c.Status, &c.NotifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error candidates iteration: %w", err)
	}
	return candidates, nil
}

func (r *IncidentRepository) loadContacts(ctx context.Context, id uuid.UUID) ([]models.NotifiedContact, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, COALESCE(relation, ''), phone, delivery_status
		FROM incident_contacts
		WHERE incident_id = $1
		ORDER BY id;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load notified contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]models.NotifiedContact, 0)
	for rows.Next() {
		var c models.NotifiedContact
		if err := rows.Scan(&c.Name, &c.Relation, &c.Phone, &c.Status); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error contacts iteration: %w", err)
	}
	return contacts, nil
}

// scanIncident сканирует базовые колонки инцидента из строки или результата запроса
func scanIncident(row pgx.Row, incident *models.Incident) error {
	return row.Scan(
		&incident.ID,
		&incident.ReporterID,
		&incident.Kind,
		&incident.Location.Longitude,
		&incident.Location.Latitude,
		&incident.Location.Address,
		&incident.State,
		&incident.AssignedResponderID,
		&incident.ResolutionNote,
		&incident.ResolvedAt,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
}
