package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/stationops/roster-service/internal/entity"
)

type Mailer interface {
	SendMessage(message entity.Message) error
}

type EventHandler struct {
	m Mailer
}

func NewEventHandler(m Mailer) *EventHandler {
	return &EventHandler{m: m}
}

type SendEmailEvent struct {
	Type        string   `json:"type"`
	Subject     string   `json:"subject"`
	Message     string   `json:"message"`
	Recipients  []string `json:"recipients"`
	ContentType string   `json:"content_type"`
}

// SendNotification handles messages from the notifications topic.
func (h *EventHandler) SendNotification(_ context.Context, msg kafka.Message) error {
	var event SendEmailEvent

	err := json.Unmarshal(msg.Value, &event)
	if err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	err = h.m.SendMessage(entity.Message{
		Type:        event.Type,
		Subject:     event.Subject,
		Message:     event.Message,
		Recipients:  event.Recipients,
		ContentType: event.ContentType,
	})
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	return nil
}
