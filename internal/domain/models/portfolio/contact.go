package portfolio

import "time"

// ContactCategory is a selectable contact subject with an optional routing address.
type ContactCategory struct {
	ID                string    `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	NotificationEmail string    `json:"notification_email" db:"notification_email"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// ContactMessage is a stored contact form submission.
type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DefaultContactSubject is used when the form is submitted without a subject.
const DefaultContactSubject = "Commissions"
