package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/alert"
	"github.com/shenikar/emergency_dispatch_system/internal/broadcast"
	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// IncidentRepository определяет контракт хранилища инцидентов.
// UpdateAtomic - единственный примитив, меняющий состояние: мутация применяется
// только если состояние инцидента в момент записи равно expected, иначе
// возвращается StateConflictError. Запись истории переходов выполняет само
// хранилище в той же транзакции (порядок назначается хранилищем).
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	UpdateAtomic(ctx context.Context, id uuid.UUID, expected models.IncidentState, entry models.HistoryEntry, mutate func(*models.Incident) error) (*models.Incident, error)
	AppendHistory(ctx context.Context, id uuid.UUID, entry models.HistoryEntry) error
	AddCandidates(ctx context.Context, id uuid.UUID, candidates []models.NotifiedCandidate) error
	SetCandidateStatus(ctx context.Context, id, responderID uuid.UUID, status models.DeliveryStatus) error
	SetContactStatus(ctx context.Context, id uuid.UUID, phone string, status models.DeliveryStatus) error
	ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error)
	GetDispatchStats(ctx context.Context, windowMinutes int) (*models.DispatchStats, error)
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	SetIncidentCache(ctx context.Context, incident *models.Incident) error
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// ResponderDirectory определяет контракт справочника исполнителей
type ResponderDirectory interface {
	FindCandidates(ctx context.Context, location models.Location, radiusMeters float64, capabilities []string) ([]models.Candidate, error)
	GetResponder(ctx context.Context, id uuid.UUID) (*models.ResponderProfile, error)
}

// UserDirectory определяет контракт справочника пользователей
type UserDirectory interface {
	GetEmergencyContacts(ctx context.Context, userID uuid.UUID) ([]models.EmergencyContact, error)
}

// Engine определяет контракт диспетчерского движка
type Engine interface {
	RaiseIncident(ctx context.Context, reporterID uuid.UUID, kind models.IncidentKind, location models.Location) (*models.Incident, error)
	AcceptIncident(ctx context.Context, incidentID, responderID uuid.UUID) (*models.Incident, error)
	ResolveIncident(ctx context.Context, incidentID, actorID uuid.UUID, note string) (*models.Incident, error)
	CancelIncident(ctx context.Context, incidentID, actorID uuid.UUID, note string) (*models.Incident, error)
	PostStatusUpdate(ctx context.Context, incidentID, actorID uuid.UUID, status, note string) error
	PostLocationUpdate(ctx context.Context, incidentID, actorID uuid.UUID, location models.Location) error
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error)
	GetStats(ctx context.Context) (*models.DispatchStats, error)
	Close()
}

type engine struct {
	repo      IncidentRepository
	directory ResponderDirectory
	users     UserDirectory
	events    broadcast.Publisher
	alerts    alert.Publisher
	logger    *logrus.Logger
	cfg       *config.Config

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewEngine создает диспетчерский движок. Движок не держит авторитетной копии
// состояния инцидентов в памяти: каждое решение перечитывает хранилище или
// пишет через условное обновление.
func NewEngine(
	repo IncidentRepository,
	directory ResponderDirectory,
	users UserDirectory,
	events broadcast.Publisher,
	alerts alert.Publisher,
	logger *logrus.Logger,
	cfg *config.Config,
) Engine {
	return &engine{
		repo:      repo,
		directory: directory,
		users:     users,
		events:    events,
		alerts:    alerts,
		logger:    logger,
		cfg:       cfg,
		done:      make(chan struct{}),
	}
}

// Close останавливает таймеры эскалации и фоновые повторы уведомлений
func (e *engine) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
	})
	e.wg.Wait()
}

// RaiseIncident регистрирует инцидент, уведомляет экстренные контакты и
// кандидатов-исполнителей, планирует эскалацию
func (e *engine) RaiseIncident(ctx context.Context, reporterID uuid.UUID, kind models.IncidentKind, location models.Location) (*models.Incident, error) {
	log := e.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "RaiseIncident",
		"reporter_id": reporterID,
	})

	if reporterID == uuid.Nil {
		return nil, fmt.Errorf("%w: reporter id is required", ErrValidation)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown incident kind %q", ErrValidation, kind)
	}
	if !location.ValidCoordinates() {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}

	// Контакты из профиля пользователя; их отсутствие не блокирует регистрацию
	contacts, err := e.users.GetEmergencyContacts(ctx, reporterID)
	if err != nil {
		log.WithError(err).Warn("Failed to load emergency contacts, proceeding without them")
		contacts = nil
	}

	incident := &models.Incident{
		ReporterID: reporterID,
		Kind:       kind,
		Location:   location,
		State:      models.StateActive,
	}
	for _, c := range contacts {
		incident.NotifiedContacts = append(incident.NotifiedContacts, models.NotifiedContact{
			Name:     c.Name,
			Relation: c.Relation,
			Phone:    c.Phone,
			Status:   models.DeliveryPending,
		})
	}

	// Если запись не прошла, кандидаты не уведомляются
	if err := e.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to persist incident")
		return nil, fmt.Errorf("dispatch: could not create incident: %w", err)
	}
	log = log.WithField("incident_id", incident.ID)
	log.Info("Incident raised")

	e.notifyContacts(ctx, incident)
	e.dispatchRound(ctx, incident, 0, e.cfg.SearchRadiusMeters)
	e.scheduleEscalation(incident.ID, 1)

	return incident, nil
}

// AcceptIncident - принятие инцидента исполнителем. Победителя определяет
// условная запись хранилища: ровно один вызов проходит переход active -> assigned,
// остальные получают отказ already_assigned.
func (e *engine) AcceptIncident(ctx context.Context, incidentID, responderID uuid.UUID) (*models.Incident, error) {
	log := e.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "AcceptIncident",
		"incident_id":  incidentID,
		"responder_id": responderID,
	})

	if responderID == uuid.Nil {
		return nil, fmt.Errorf("%w: responder id is required", ErrValidation)
	}

	entry := models.HistoryEntry{ActorID: responderID.String(), Note: "responder accepted"}
	updated, err := e.repo.UpdateAtomic(ctx, incidentID, models.StateActive, entry, func(inc *models.Incident) error {
		rid := responderID
		inc.State = models.StateAssigned
		inc.AssignedResponderID = &rid
		return nil
	})
	if err != nil {
		var conflict *StateConflictError
		switch {
		case errors.As(err, &conflict):
			if conflict.Current == models.StateAssigned {
				// Гонка за принятие проиграна - это не ошибка сервера
				e.publish(ctx, broadcast.Event{
					Room: broadcast.ResponderRoom(responderID),
					Name: broadcast.EventIncidentRejected,
					Payload: broadcast.IncidentRejectedPayload{
						IncidentID: incidentID,
						Reason:     "already_assigned",
					},
				})
				log.Info("Acceptance rejected, incident already assigned")
				return nil, fmt.Errorf("incident %s: %w", incidentID, ErrAlreadyAssigned)
			}
			return nil, fmt.Errorf("%w: cannot accept incident in state %q", ErrInvalidTransition, conflict.Current)
		case errors.Is(err, ErrNotFound):
			return nil, err
		default:
			log.WithError(err).Error("Failed to assign incident")
			return nil, fmt.Errorf("dispatch: could not assign incident: %w", err)
		}
	}

	if err := e.repo.InvalidateIncidentCache(ctx, incidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	// Публичные поля исполнителя для заявителя; внутренние поля не раскрываются
	profile, err := e.directory.GetResponder(ctx, responderID)
	if err != nil || profile == nil {
		log.WithError(err).Warn("Failed to load responder profile for assignment event")
		profile = &models.ResponderProfile{ID: responderID}
	}

	payload := broadcast.IncidentAssignedPayload{
		IncidentID:  incidentID,
		ResponderID: responderID,
		Responder:   *profile,
	}
	e.publish(ctx, broadcast.Event{Room: broadcast.IncidentRoom(incidentID), Name: broadcast.EventIncidentAssigned, Payload: payload})
	// Освобождаем остальных уведомленных кандидатов
	for _, cand := range updated.NotifiedCandidates {
		if cand.ResponderID == responderID {
			continue
		}
		e.publish(ctx, broadcast.Event{Room: broadcast.ResponderRoom(cand.ResponderID), Name: broadcast.EventIncidentAssigned, Payload: payload})
	}

	log.Info("Incident assigned")
	return updated, nil
}

// ResolveIncident закрывает назначенный инцидент
func (e *engine) ResolveIncident(ctx context.Context, incidentID, actorID uuid.UUID, note string) (*models.Incident, error) {
	log := e.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "ResolveIncident",
		"incident_id": incidentID,
	})

	entry := models.HistoryEntry{ActorID: actorID.String(), Note: note}
	updated, err := e.repo.UpdateAtomic(ctx, incidentID, models.StateAssigned, entry, func(inc *models.Incident) error {
		if inc.AssignedResponderID == nil {
			return fmt.Errorf("%w: incident has no assigned responder", ErrInvalidTransition)
		}
		now := time.Now()
		inc.State = models.StateResolved
		inc.ResolutionNote = note
		inc.ResolvedAt = &now
		return nil
	})
	if err != nil {
		var conflict *StateConflictError
		switch {
		case errors.As(err, &conflict):
			return nil, fmt.Errorf("%w: cannot resolve incident in state %q", ErrInvalidTransition, conflict.Current)
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidTransition):
			return nil, err
		default:
			log.WithError(err).Error("Failed to resolve incident")
			return nil, fmt.Errorf("dispatch: could not resolve incident: %w", err)
		}
	}

	if err := e.repo.InvalidateIncidentCache(ctx, incidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	e.publish(ctx, broadcast.Event{
		Room:    broadcast.IncidentRoom(incidentID),
		Name:    broadcast.EventIncidentResolved,
		Payload: broadcast.IncidentClosedPayload{IncidentID: incidentID, Note: note},
	})

	log.Info("Incident resolved")
	return updated, nil
}

// CancelIncident отменяет незакрытый инцидент (заявителем или оператором).
// Состояние может смениться между чтением и условной записью (active -> assigned),
// отмена при этом остается допустимой, поэтому делается вторая попытка.
func (e *engine) CancelIncident(ctx context.Context, incidentID, actorID uuid.UUID, note string) (*models.Incident, error) {
	log := e.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "CancelIncident",
		"incident_id": incidentID,
	})

	entry := models.HistoryEntry{ActorID: actorID.String(), Note: note}
	var updated *models.Incident
	for attempt := 0; ; attempt++ {
		current, err := e.repo.GetByID(ctx, incidentID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, err
			}
			log.WithError(err).Error("Failed to read incident for cancellation")
			return nil, fmt.Errorf("dispatch: could not cancel incident: %w", err)
		}
		if err := ValidateTransition(current.State, models.StateCancelled); err != nil {
			return nil, err
		}

		updated, err = e.repo.UpdateAtomic(ctx, incidentID, current.State, entry, func(inc *models.Incident) error {
			now := time.Now()
			inc.State = models.StateCancelled
			inc.ResolutionNote = note
			inc.ResolvedAt = &now
			return nil
		})
		if err == nil {
			break
		}
		var conflict *StateConflictError
		if errors.As(err, &conflict) && attempt == 0 {
			continue
		}
		if errors.As(err, &conflict) {
			return nil, fmt.Errorf("%w: cannot cancel incident in state %q", ErrInvalidTransition, conflict.Current)
		}
		log.WithError(err).Error("Failed to cancel incident")
		return nil, fmt.Errorf("dispatch: could not cancel incident: %w", err)
	}

	if err := e.repo.InvalidateIncidentCache(ctx, incidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	payload := broadcast.IncidentClosedPayload{IncidentID: incidentID, Note: note}
	e.publish(ctx, broadcast.Event{Room: broadcast.IncidentRoom(incidentID), Name: broadcast.EventIncidentCancelled, Payload: payload})
	// Освобождаем еще ожидающих кандидатов
	for _, cand := range updated.NotifiedCandidates {
		e.publish(ctx, broadcast.Event{Room: broadcast.ResponderRoom(cand.ResponderID), Name: broadcast.EventIncidentCancelled, Payload: payload})
	}

	log.Info("Incident cancelled")
	return updated, nil
}

// PostStatusUpdate добавляет текстовое обновление статуса назначенного инцидента
// в историю и транслирует его в комнату инцидента
func (e *engine) PostStatusUpdate(ctx context.Context, incidentID, actorID uuid.UUID, status, note string) error {
	log := e.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "PostStatusUpdate",
		"incident_id": incidentID,
	})

	if status == "" {
		return fmt.Errorf("%w: status is required", ErrValidation)
	}

	incident, err := e.repo.GetByID(ctx, incidentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		log.WithError(err).Error("Failed to read incident for status update")
		return fmt.Errorf("dispatch: could not post status update: %w", err)
	}
	if incident.State != models.StateAssigned {
		return fmt.Errorf("%w: status updates allowed only in state %q, current %q", ErrInvalidTransition, models.StateAssigned, incident.State)
	}

	historyNote := status
	if note != "" {
		historyNote = fmt.Sprintf("%s: %s", status, note)
	}
	entry := models.HistoryEntry{
		FromState: models.StateAssigned,
		ToState:   models.StateAssigned,
		ActorID:   actorID.String(),
		Note:      historyNote,
	}
	if err := e.repo.AppendHistory(ctx, incidentID, entry); err != nil {
		log.WithError(err).Error("Failed to append status update to history")
		return fmt.Errorf("dispatch: could not post status update: %w", err)
	}
	if err := e.repo.InvalidateIncidentCache(ctx, incidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	e.publish(ctx, broadcast.Event{
		Room:    broadcast.IncidentRoom(incidentID),
		Name:    broadcast.EventIncidentStatus,
		Payload: broadcast.IncidentStatusPayload{IncidentID: incidentID, Status: status, Note: note},
	})
	return nil
}

// PostLocationUpdate обновляет текущую геопозицию назначенного инцидента и
// транслирует ее в комнату. Запись в историю не делается: пинги геопозиции
// высокочастотны и по отдельности не аудитозначимы.
func (e *engine) PostLocationUpdate(ctx context.Context, incidentID, actorID uuid.UUID, location models.Location) error {
	log := e.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "PostLocationUpdate",
		"incident_id": incidentID,
	})

	if !location.ValidCoordinates() {
		return fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}

	_, err := e.repo.UpdateAtomic(ctx, incidentID, models.StateAssigned, models.HistoryEntry{ActorID: actorID.String()}, func(inc *models.Incident) error {
		inc.Location = location
		return nil
	})
	if err != nil {
		var conflict *StateConflictError
		switch {
		case errors.As(err, &conflict):
			return fmt.Errorf("%w: location updates allowed only in state %q, current %q", ErrInvalidTransition, models.StateAssigned, conflict.Current)
		case errors.Is(err, ErrNotFound):
			return err
		default:
			log.WithError(err).Error("Failed to update incident location")
			return fmt.Errorf("dispatch: could not update location: %w", err)
		}
	}
	if err := e.repo.InvalidateIncidentCache(ctx, incidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	e.publish(ctx, broadcast.Event{
		Room:    broadcast.IncidentRoom(incidentID),
		Name:    broadcast.EventIncidentLocation,
		Payload: broadcast.IncidentLocationPayload{IncidentID: incidentID, Location: location},
	})
	return nil
}

// GetIncident получает инцидент по ID (сначала кеш, затем бд)
func (e *engine) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	log := e.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "GetIncident",
		"incident_id": id,
	})

	cached, err := e.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident from cache")
	}
	if cached != nil {
		return cached, nil
	}

	incident, err := e.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Failed to get incident from repository")
		return nil, fmt.Errorf("dispatch: could not get incident: %w", err)
	}

	if err := e.repo.SetIncidentCache(ctx, incident); err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	}
	return incident, nil
}

// ListIncidents возвращает список инцидентов с пагинацией
func (e *engine) ListIncidents(ctx context.Context, page, pageSize int) ([]*models.Incident, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	incidents, err := e.repo.ListIncidents(ctx, page, pageSize)
	if err != nil {
		e.logger.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("dispatch: could not list incidents: %w", err)
	}
	return incidents, nil
}

// GetStats возвращает сводку по инцидентам за окно статистики
func (e *engine) GetStats(ctx context.Context) (*models.DispatchStats, error) {
	stats, err := e.repo.GetDispatchStats(ctx, e.cfg.StatsTimeWindowMinutes)
	if err != nil {
		e.logger.WithError(err).Error("Failed to get dispatch stats from repository")
		return nil, fmt.Errorf("dispatch: could not get stats: %w", err)
	}
	return stats, nil
}

// notifyContacts ставит уведомления экстренных контактов в очередь оповещений
// и фиксирует статус доставки на инциденте
func (e *engine) notifyContacts(ctx context.Context, incident *models.Incident) {
	log := e.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "notifyContacts",
		"incident_id": incident.ID,
	})

	for i := range incident.NotifiedContacts {
		contact := &incident.NotifiedContacts[i]
		a := alert.Alert{
			Type:       alert.TypeEmergencyContact,
			IncidentID: incident.ID,
			Kind:       incident.Kind,
			Location:   &incident.Location,
			Contact: &models.EmergencyContact{
				Name:     contact.Name,
				Relation: contact.Relation,
				Phone:    contact.Phone,
			},
			Timestamp: time.Now(),
		}
		status := models.DeliverySent
		if err := e.alerts.Publish(ctx, a); err != nil {
			log.WithError(err).WithField("contact_phone", contact.Phone).Warn("Failed to enqueue emergency contact notification")
			status = models.DeliveryFailed
		}
		contact.Status = status
		if err := e.repo.SetContactStatus(ctx, incident.ID, contact.Phone, status); err != nil {
			log.WithError(err).Warn("Failed to record contact delivery status")
		}
	}
}

// dispatchRound подбирает кандидатов в радиусе поиска и уведомляет их.
// Кандидаты сначала фиксируются в хранилище со статусом pending, затем
// уведомляются конкурентно; сбой доставки одному не блокирует остальных.
// Возвращает число новых кандидатов.
func (e *engine) dispatchRound(ctx context.Context, incident *models.Incident, round int, radiusMeters float64) int {
	log := e.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "dispatchRound",
		"incident_id": incident.ID,
		"round":       round,
	})

	capabilities := models.CapabilitiesForKind(incident.Kind)
	found, err := e.directory.FindCandidates(ctx, incident.Location, radiusMeters, capabilities)
	if err != nil {
		log.WithError(err).Error("Failed to query responder directory")
		return 0
	}

	known := make(map[uuid.UUID]struct{}, len(incident.NotifiedCandidates))
	for _, c := range incident.NotifiedCandidates {
		known[c.ResponderID] = struct{}{}
	}

	fresh := make([]models.NotifiedCandidate, 0, len(found))
	for _, c := range found {
		if _, ok := known[c.ResponderID]; ok {
			continue
		}
		fresh = append(fresh, models.NotifiedCandidate{
			ResponderID:    c.ResponderID,
			Name:           c.Name,
			ContactHandle:  c.ContactHandle,
			DistanceMeters: c.DistanceMeters,
			Round:          round,
			Status:         models.DeliveryPending,
			NotifiedAt:     time.Now(),
		})
	}
	if len(fresh) == 0 {
		log.Info("No new candidates found in search radius")
		return 0
	}

	if err := e.repo.AddCandidates(ctx, incident.ID, fresh); err != nil {
		log.WithError(err).Error("Failed to record notified candidates")
		return 0
	}
	if err := e.repo.InvalidateIncidentCache(ctx, incident.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
	incident.NotifiedCandidates = append(incident.NotifiedCandidates, fresh...)

	payload := broadcast.IncidentRaisedPayload{
		IncidentID: incident.ID,
		ReporterID: incident.ReporterID,
		Kind:       incident.Kind,
		Location:   incident.Location,
	}

	var wg sync.WaitGroup
	for _, cand := range fresh {
		wg.Add(1)
		go func(cand models.NotifiedCandidate) {
			defer wg.Done()
			e.notifyCandidate(ctx, incident.ID, cand, payload)
		}(cand)
	}
	wg.Wait()

	// Событие видят также операторы-наблюдатели; глобальной рассылки нет
	e.publish(ctx, broadcast.Event{Room: broadcast.OperatorsRoom, Name: broadcast.EventIncidentRaised, Payload: payload})

	log.WithField("candidates", len(fresh)).Info("Candidates notified")
	return len(fresh)
}

// notifyCandidate доставляет событие одному кандидату. Неудача повторяется
// ровно один раз с задержкой; повтор отменяется, если инцидент покинул active.
func (e *engine) notifyCandidate(ctx context.Context, incidentID uuid.UUID, cand models.NotifiedCandidate, payload broadcast.IncidentRaisedPayload) {
	log := e.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"incident_id":  incidentID,
		"responder_id": cand.ResponderID,
	})

	event := broadcast.Event{
		Room:    broadcast.ResponderRoom(cand.ResponderID),
		Name:    broadcast.EventIncidentRaised,
		Payload: payload,
	}

	err := e.events.Publish(ctx, event)
	if err == nil {
		if serr := e.repo.SetCandidateStatus(ctx, incidentID, cand.ResponderID, models.DeliverySent); serr != nil {
			log.WithError(serr).Warn("Failed to record candidate delivery status")
		}
		return
	}
	log.WithError(err).Warn("Candidate notification failed, scheduling one retry")

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		timer := time.NewTimer(e.cfg.NotifyRetryDelay)
		defer timer.Stop()
		select {
		case <-e.done:
			return
		case <-timer.C:
		}

		rctx := context.Background()
		current, err := e.repo.GetByID(rctx, incidentID)
		if err != nil || current.State != models.StateActive {
			// Инцидент уже назначен или закрыт, повтор не нужен
			return
		}

		status := models.DeliverySent
		if err := e.events.Publish(rctx, event); err != nil {
			log.WithError(err).Error("Candidate notification failed after retry")
			status = models.DeliveryFailed
		}
		if err := e.repo.SetCandidateStatus(rctx, incidentID, cand.ResponderID, status); err != nil {
			log.WithError(err).Warn("Failed to record candidate delivery status")
		}
	}()
}

// scheduleEscalation запускает таймер следующего раунда эскалации.
// Это отложенная перепроверка, а не блокирующее ожидание: по срабатыванию
// состояние перечитывается из хранилища.
func (e *engine) scheduleEscalation(incidentID uuid.UUID, round int) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		timer := time.NewTimer(e.cfg.AcceptWindow)
		defer timer.Stop()
		select {
		case <-e.done:
			return
		case <-timer.C:
		}
		e.runEscalation(context.Background(), incidentID, round)
	}()
}

// runEscalation выполняет один раунд эскалации: если инцидент все еще active,
// радиус поиска расширяется и уведомляются новые кандидаты. После исчерпания
// раундов инцидент остается active и передается операторам через оповещение.
func (e *engine) runEscalation(ctx context.Context, incidentID uuid.UUID, round int) {
	log := e.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "runEscalation",
		"incident_id": incidentID,
		"round":       round,
	})

	incident, err := e.repo.GetByID(ctx, incidentID)
	if err != nil {
		log.WithError(err).Error("Failed to re-read incident before escalation")
		return
	}
	if incident.State != models.StateActive {
		// Инцидент назначен или закрыт - раунд тихо пропускается
		return
	}

	if round > e.cfg.MaxEscalationRounds {
		log.Warn("Escalation rounds exhausted, alerting operators")
		a := alert.Alert{
			Type:       alert.TypeEscalationExhausted,
			IncidentID: incidentID,
			Kind:       incident.Kind,
			Location:   &incident.Location,
			Rounds:     round - 1,
			Message:    "no responder accepted the incident",
			Timestamp:  time.Now(),
		}
		if err := e.alerts.Publish(ctx, a); err != nil {
			log.WithError(err).Error("Failed to publish escalation alert")
		}
		return
	}

	radius := e.cfg.SearchRadiusMeters * math.Pow(e.cfg.RadiusGrowthFactor, float64(round))
	entry := models.HistoryEntry{
		FromState: models.StateActive,
		ToState:   models.StateActive,
		ActorID:   "system",
		Note:      fmt.Sprintf("escalation round %d, search radius %.0fm", round, radius),
	}
	if err := e.repo.AppendHistory(ctx, incidentID, entry); err != nil {
		log.WithError(err).Error("Failed to record escalation round")
	}
	if err := e.repo.InvalidateIncidentCache(ctx, incidentID); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}

	e.dispatchRound(ctx, incident, round, radius)
	e.scheduleEscalation(incidentID, round+1)
}

// publish отправляет событие в канал уведомлений; сбой логируется и не
// прерывает операцию
func (e *engine) publish(ctx context.Context, event broadcast.Event) {
	if err := e.events.Publish(ctx, event); err != nil {
		e.logger.WithError(err).WithFields(logrus.Fields{
			"event": event.Name,
			"room":  event.Room,
		}).Warn("Failed to publish broadcast event")
	}
}
