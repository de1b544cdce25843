package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"online-health-consultation/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// Mailer is satisfied by infrastructure/mail.SMTPMailer.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Notifier sends best-effort messages. Callers log failures and carry on;
// a notification never decides the outcome of the write that triggered it.
type Notifier interface {
	EmergencyReceived(ctx context.Context, contact *entity.EmergencyContact) error
	AppointmentBooked(ctx context.Context, appointment *entity.Appointment, patient *entity.User, doctor *entity.Doctor) error
}

type mailNotifier struct {
	mailer  Mailer
	onCall  string
	timeout time.Duration
	log     *logrus.Logger
}

func NewMailNotifier(mailer Mailer, onCall string, timeout time.Duration, log *logrus.Logger) Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &mailNotifier{mailer: mailer, onCall: onCall, timeout: timeout, log: log}
}

func (n *mailNotifier) EmergencyReceived(ctx context.Context, contact *entity.EmergencyContact) error {
	if strings.TrimSpace(n.onCall) == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	subject := fmt.Sprintf("[Emergency] %s reported by %s", contact.EmergencyType, contact.Name)
	body := fmt.Sprintf(
		"Name: %s\nContact: %s\nLocation: %s\nType: %s\nReceived: %s\n\n%s\n",
		contact.Name, contact.ContactNumber, contact.Location, contact.EmergencyType,
		contact.CreatedAt.UTC().Format(time.RFC3339), contact.Description,
	)
	return n.mailer.Send(ctx, []string{n.onCall}, subject, body)
}

func (n *mailNotifier) AppointmentBooked(ctx context.Context, appointment *entity.Appointment, patient *entity.User, doctor *entity.Doctor) error {
	if patient == nil || patient.Email == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	doctorName := "your doctor"
	if doctor != nil && doctor.User != nil {
		doctorName = "Dr. " + doctor.User.FullName()
	}
	subject := "Appointment booked"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour %s appointment with %s is booked for %s (UTC).\nReference: %s\n",
		patient.FullName(), strings.ReplaceAll(string(appointment.Type), "_", " "), doctorName,
		appointment.ScheduledAt.UTC().Format("Mon, 02 Jan 2006 15:04"), appointment.ID,
	)
	return n.mailer.Send(ctx, []string{patient.Email}, subject, body)
}

type noopNotifier struct{}

// NewNoopNotifier is used when mail delivery is disabled.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) EmergencyReceived(context.Context, *entity.EmergencyContact) error {
	return nil
}

func (noopNotifier) AppointmentBooked(context.Context, *entity.Appointment, *entity.User, *entity.Doctor) error {
	return nil
}
