package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/Pawandasila/ai-image-editor/internal/model"
)

type EventPublisher interface {
	PublishProjectCreated(project *model.Project) error
	PublishProjectDeleted(projectID, userID uuid.UUID) error
	PublishPlanUpdated(userID uuid.UUID, plan string) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type ProjectCreatedEvent struct {
	EventType string    `json:"event_type"`
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ProjectDeletedEvent struct {
	EventType string    `json:"event_type"`
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

type PlanUpdatedEvent struct {
	EventType string    `json:"event_type"`
	UserID    uuid.UUID `json:"user_id"`
	Plan      string    `json:"plan"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal event", "subject", subject, "error", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.Error("Failed to publish to NATS", "subject", subject, "error", err)
		return err
	}

	slog.Info("Published event to NATS", "subject", subject)

	return nil
}

func (p *NatsPublisher) PublishProjectCreated(project *model.Project) error {
	return p.publish("project.created", ProjectCreatedEvent{
		EventType: "project.created",
		ProjectID: project.ID,
		UserID:    project.UserID,
		Title:     project.Title,
		CreatedAt: time.Now(),
	})
}

func (p *NatsPublisher) PublishProjectDeleted(projectID, userID uuid.UUID) error {
	return p.publish("project.deleted", ProjectDeletedEvent{
		EventType: "project.deleted",
		ProjectID: projectID,
		UserID:    userID,
		DeletedAt: time.Now(),
	})
}

func (p *NatsPublisher) PublishPlanUpdated(userID uuid.UUID, plan string) error {
	return p.publish("user.plan_updated", PlanUpdatedEvent{
		EventType: "user.plan_updated",
		UserID:    userID,
		Plan:      plan,
		UpdatedAt: time.Now(),
	})
}
