package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"eventmanager/utils"
)

// EventInput is the submitted event form. Fields are declared in the order
// their validation messages are reported.
type EventInput struct {
	Name      string `form:"name" json:"name" validate:"required"`
	Location  string `form:"location" json:"location" validate:"required"`
	StartDate string `form:"startDate" json:"startDate" validate:"required,timestamp"`
	EndDate   string `form:"endDate" json:"endDate" validate:"required,timestamp"`
}

// ValidationError carries one human readable message per rejected field.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

var messages = map[string]map[string]string{
	"Name":      {"required": "Please add event name"},
	"Location":  {"required": "Please add event location"},
	"StartDate": {"required": "Please add event start date", "timestamp": "Please enter a valid event start date"},
	"EndDate":   {"required": "Please add event end date", "timestamp": "Please enter a valid event end date"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registering a fixed tag on a fresh validator cannot fail
	_ = v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseTimestamp(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks every field and returns a *ValidationError listing all
// failures, or nil.
func (in EventInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate event input")
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Messages = append(verr.Messages, messages[fe.StructField()][fe.Tag()])
	}
	return verr
}

// applyTo overwrites all four business fields of e. Empty dates become the
// zero time; dates that do not parse are reported as a *ValidationError.
func (in EventInput) applyTo(e *Event) error {
	verr := &ValidationError{}
	start, ok := parseOptional(in.StartDate)
	if !ok {
		verr.Messages = append(verr.Messages, messages["StartDate"]["timestamp"])
	}
	end, ok := parseOptional(in.EndDate)
	if !ok {
		verr.Messages = append(verr.Messages, messages["EndDate"]["timestamp"])
	}
	if len(verr.Messages) > 0 {
		return verr
	}
	e.Name = in.Name
	e.Location = in.Location
	e.StartDateAndTime = start
	e.EndDateAndTime = end
	return nil
}

func parseOptional(s string) (t time.Time, ok bool) {
	if strings.TrimSpace(s) == "" {
		return t, true
	}
	t, err := utils.ParseTimestamp(s)
	return t, err == nil
}
