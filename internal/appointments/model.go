package appointments

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"djazair-backend/internal/models"
)

var ErrInvalidFirstTime = errors.New(`firstTime must be a boolean, "oui" or "non"`)

// FirstTime is the first-visit flag as the booking form sends it: a JSON
// boolean or the words "oui"/"non" in any case. Absent means false.
type FirstTime bool

func (f *FirstTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*f = true
		return nil
	case "false", "null":
		*f = false
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidFirstTime
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oui":
		*f = true
	case "non":
		*f = false
	default:
		return ErrInvalidFirstTime
	}
	return nil
}

type CreateRequest struct {
	FirstName       string    `json:"firstName" validate:"required,max=120"`
	LastName        string    `json:"lastName" validate:"required,max=120"`
	BirthDate       string    `json:"birthDate" validate:"required,date"`
	AppointmentDate string    `json:"appointmentDate" validate:"required,date"`
	FirstTime       FirstTime `json:"firstTime"`
	Phone           string    `json:"phone" validate:"required,max=64"`
}

// Normalize trims the text fields so blank values fail the required rule.
func (r *CreateRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.AppointmentDate = strings.TrimSpace(r.AppointmentDate)
	r.Phone = strings.TrimSpace(r.Phone)
}

type StatusRequest struct {
	Status string `json:"status"`
}

type CreateResponse struct {
	ID uint `json:"id"`
}

// View is the admin representation of an appointment, with calendar dates
// rendered as YYYY-MM-DD.
type View struct {
	ID              uint      `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	BirthDate       string    `json:"birthDate"`
	AppointmentDate string    `json:"appointmentDate"`
	FirstTime       bool      `json:"firstTime"`
	Phone           string    `json:"phone"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

const dateLayout = "2006-01-02"

func NewView(a models.Appointment) View {
	return View{
		ID:              a.ID,
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		BirthDate:       a.BirthDate.Format(dateLayout),
		AppointmentDate: a.AppointmentDate.Format(dateLayout),
		FirstTime:       a.FirstTime,
		Phone:           a.Phone,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}
}
