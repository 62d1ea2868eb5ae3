package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"mukesh.dev/internal/contact"
	"mukesh.dev/internal/models"
)

// ValidationError lists the contact form fields that failed validation
type ValidationError struct {
	Fields map[string]string // form field -> message
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ContactService validates and stores contact form submissions
type ContactService struct {
	store    contact.Store
	validate *validator.Validate
	now      func() time.Time
}

// NewContactService creates a ContactService backed by store
func NewContactService(store contact.Store) *ContactService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return &ContactService{store: store, validate: v, now: time.Now}
}

// Submit validates form and stores it as a new message
func (s *ContactService) Submit(ctx context.Context, form models.ContactForm, remoteAddr string) (*models.ContactMessage, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Message = strings.TrimSpace(form.Message)

	if err := s.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, toValidationError(verrs)
		}
		return nil, fmt.Errorf("validating contact form: %w", err)
	}

	msg := models.ContactMessage{
		ID:         uuid.NewString(),
		Name:       form.Name,
		Email:      form.Email,
		Message:    form.Message,
		RemoteAddr: remoteAddr,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.store.Save(ctx, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Recent returns up to limit messages, newest first
func (s *ContactService) Recent(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	return s.store.List(ctx, limit)
}

func toValidationError(verrs validator.ValidationErrors) *ValidationError {
	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		ve.Fields[fe.Field()] = fieldMessage(fe)
	}
	return ve
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	}
	return "is invalid"
}
