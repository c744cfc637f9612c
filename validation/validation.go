// Package validation checks raw request payloads and turns them into normalized
// model values.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"taskboard/models"
	"taskboard/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the list of problems found in one payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns the first field message, or a generic one.
func (e Errors) Message() string {
	if len(e) == 0 {
		return "Validation error"
	}
	return e[0].Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("notblank", validators.NotBlank))
	must(v.RegisterValidation("id", func(fl validator.FieldLevel) bool {
		return uuid.Validate(fl.Field().String()) == nil
	}))
	must(v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, _, err := ParseDate(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return models.TaskStatus(fl.Field().String()).Valid()
	}))
	return v
}

// scopes maps payload types onto the message table below.
var scopes = map[string]string{
	"TeamMemberInput":      "teamMember",
	"TeamMemberPatchInput": "teamMember",
	"ProjectInput":         "project",
	"ProjectPatchInput":    "project",
	"TaskInput":            "task",
	"TaskPatchInput":       "task",
	"TaskQueryInput":       "taskQuery",
	"SignupInput":          "signup",
	"LoginInput":           "login",
}

// messages is keyed by scope.field, optionally suffixed with the failing tag.
// Array elements use field[].
var messages = map[string]string{
	"teamMember.name":           "Name is required",
	"teamMember.email":          "Invalid email address",
	"teamMember.email.notblank": "Email is required",
	"teamMember.designation":    "Designation is required",
	"project.name":              "Project name is required",
	"project.description":       "Project description is required",
	"project.teamMembers":       "At least one team member is required",
	"project.teamMembers[]":     "Invalid ID format",
	"task.title":                "Task title is required",
	"task.description":          "Task description is required",
	"task.deadline":             "Invalid date format",
	"task.deadline.notblank":    "Deadline is required",
	"task.project":              "Invalid ID format",
	"task.project.notblank":     "Project is required",
	"task.assignedMembers":      "At least one assigned member is required",
	"task.assignedMembers[]":    "Invalid ID format",
	"task.status":               "Invalid status",
	"taskQuery.project":         "Invalid ID format",
	"taskQuery.member":          "Invalid ID format",
	"taskQuery.status":          "Invalid status",
	"taskQuery.startDate":       "Invalid date format",
	"taskQuery.endDate":         "Invalid date format",
	"signup.name":               "Name is required",
	"signup.email":              "Invalid email address",
	"signup.email.notblank":     "Email is required",
	"signup.password":           "Password must be at least 6 characters",
	"signup.password.required":  "Password is required",
	"login.email":               "Invalid email address",
	"login.email.notblank":      "Email is required",
	"login.password":            "Password is required",
}

// check runs the struct rules and converts failures into Errors.
func check(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	typeName, _, _ := strings.Cut(fe.StructNamespace(), ".")
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i] + "[]"
	}
	key := scopes[typeName] + "." + field

	if msg, ok := messages[key+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[key]; ok {
		return msg
	}
	return "Invalid value"
}

// ID parses a path or query identifier.
func ID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, Errors{{Field: "id", Message: "Invalid ID format"}}
	}
	return id, nil
}

func trim(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

func trimAll(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// parseIDs converts already validated ids, dropping repeats.
func parseIDs(ss []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		ids = append(ids, uuid.MustParse(s))
	}
	return utils.UniqueIDs(ids)
}
