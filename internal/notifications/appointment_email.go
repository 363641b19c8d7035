package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"

	"djazair-backend/internal/models"
)

const appointmentRequestTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>Nouvelle demande de rendez-vous</h3>
  <p><strong>Patient :</strong> {{.FirstName}} {{.LastName}}</p>
  <p><strong>Date de naissance :</strong> {{.BirthDate}}</p>
  <p><strong>Date souhaitee :</strong> {{.AppointmentDate}}</p>
  <p><strong>Premiere visite :</strong> {{.FirstTime}}</p>
  <p><strong>Telephone :</strong> {{.Phone}}</p>
  <p><strong>Numero de demande :</strong> {{.ID}}</p>
</body>
</html>`

var appointmentRequestTmpl = template.Must(template.New("appointment_request").Parse(appointmentRequestTemplate))

type appointmentRequestData struct {
	ID              string
	FirstName       string
	LastName        string
	BirthDate       string
	AppointmentDate string
	FirstTime       string
	Phone           string
}

func buildAppointmentRequestHTML(a models.Appointment) (string, error) {
	firstTime := "non"
	if a.FirstTime {
		firstTime = "oui"
	}
	data := appointmentRequestData{
		ID:              strconv.FormatUint(uint64(a.ID), 10),
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		BirthDate:       a.BirthDate.Format("2006-01-02"),
		AppointmentDate: a.AppointmentDate.Format("2006-01-02"),
		FirstTime:       firstTime,
		Phone:           a.Phone,
	}
	var buf bytes.Buffer
	if err := appointmentRequestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StaffNotifier e-mails the clinic whenever a booking request comes in.
type StaffNotifier struct {
	client *BrevoClient
	to     string
}

// NewStaffNotifier returns nil when mail is not configured or no recipient
// is set.
func NewStaffNotifier(client *BrevoClient, to string) *StaffNotifier {
	if client == nil || to == "" {
		return nil
	}
	return &StaffNotifier{client: client, to: to}
}

func (n *StaffNotifier) NotifyNewAppointment(ctx context.Context, a models.Appointment) error {
	body, err := buildAppointmentRequestHTML(a)
	if err != nil {
		return fmt.Errorf("render appointment notice: %w", err)
	}
	subject := fmt.Sprintf("Nouveau rendez-vous - %s %s (%s)", a.FirstName, a.LastName, a.AppointmentDate.Format("2006-01-02"))
	_, err = n.client.Send(ctx, Message{To: n.to, Subject: subject, HTML: body})
	return err
}
