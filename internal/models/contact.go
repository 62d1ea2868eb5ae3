package models

import "time"

// ContactForm is the data submitted through the contact section
type ContactForm struct {
	Name    string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email,max=254"`
	Message string `json:"message" form:"message" validate:"required,min=10,max=5000"`
}

// ContactMessage is a stored contact form submission
type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	RemoteAddr string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
