package mailer

import (
	"fmt"

	"github.com/stationops/roster-service/internal/clients/gomail"
	"github.com/stationops/roster-service/internal/entity"
)

type Mailer struct {
	gomailClient *gomail.Client
}

func New(gomailClient *gomail.Client) *Mailer {
	return &Mailer{
		gomailClient: gomailClient,
	}
}

func (m *Mailer) SendMessage(message entity.Message) error {
	switch message.Type {
	case "email":
		err := m.gomailClient.SendMessage(
			message.Subject,
			message.Message,
			message.Recipients,
			message.ContentType,
		)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", entity.ErrUnknownMessageType, message.Type)
	}

	return nil
}
