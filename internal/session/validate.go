package session

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Local validation mirrors the backend's rules so obviously invalid input
// never costs a round-trip. The backend remains the final authority.

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 8-16 chars, at least one uppercase ASCII letter and one digit.
	_ = v.RegisterValidation("userpassword", func(fl validator.FieldLevel) bool {
		return isValidPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

var (
	upperRe = regexp.MustCompile(`[A-Z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
	phoneRe = regexp.MustCompile(`^[0-9+\-\s]{7,15}$`)
)

func isValidPassword(pw string) bool {
	if n := len([]rune(pw)); n < 8 || n > 16 {
		return false
	}
	return upperRe.MatchString(pw) && digitRe.MatchString(pw)
}

// Validation messages, in the backend's wording.
const (
	msgNameLength     = "El nombre debe tener entre 2 y 50 caracteres"
	msgInvalidEmail   = "El email no es válido"
	msgPasswordRules  = "La contraseña debe tener entre 8 y 16 caracteres, al menos una mayúscula y un número"
	msgPasswordsDiff  = "Las contraseñas no coinciden"
	msgProvinceLength = "La provincia debe tener entre 2 y 50 caracteres"
	msgLocalityLength = "La localidad debe tener entre 2 y 50 caracteres"
	msgPhoneLength    = "El teléfono debe tener entre 7 y 15 dígitos"
	msgDescriptionMin = "La descripción debe tener al menos 100 caracteres"
	msgDescriptionUpd = "La descripción debe tener al menos 50 caracteres"
	msgTitleRequired  = "El título es obligatorio"
	msgCategoryReq    = "La categoría es obligatoria"
	msgPriceInvalid   = "El precio debe ser mayor a cero"
	msgZonesRequired  = "Debes indicar al menos una zona de cobertura"
	msgRatingRange    = "La calificación debe estar entre 1 y 5"
)

type registrationInput struct {
	Name     string `validate:"required,min=2,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,userpassword"`
	Phone    string `validate:"omitempty,phonedigits"`
	Province string `validate:"required,min=2,max=50"`
	Locality string `validate:"required,min=2,max=50"`
}

// validateRegistration returns the first rule violation as a user-facing
// message, in form order like the original registration page reports them.
func validateRegistration(in registrationInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Province = strings.TrimSpace(in.Province)
	in.Locality = strings.TrimSpace(in.Locality)

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.New(msgInvalidEmail)
	}

	switch verrs[0].Field() {
	case "Name":
		return errors.New(msgNameLength)
	case "Email":
		return errors.New(msgInvalidEmail)
	case "Password":
		return errors.New(msgPasswordRules)
	case "Phone":
		return errors.New(msgPhoneLength)
	case "Province":
		return errors.New(msgProvinceLength)
	case "Locality":
		return errors.New(msgLocalityLength)
	}
	return errors.New(msgInvalidEmail)
}

// validateNewPassword guards the reset-password form. Same composition rule
// as registration; the two code paths must never drift apart.
func validateNewPassword(password, confirm string) error {
	if !isValidPassword(password) {
		return errors.New(msgPasswordRules)
	}
	if password != confirm {
		return errors.New(msgPasswordsDiff)
	}
	return nil
}

// validateServiceInput guards service creation and edition. Creation demands
// the full 100-character description; updates tolerate 50.
func validateServiceInput(title, description, category string, price float64, zones int, creating bool) error {
	if strings.TrimSpace(title) == "" {
		return errors.New(msgTitleRequired)
	}
	min := 50
	msg := msgDescriptionUpd
	if creating {
		min = 100
		msg = msgDescriptionMin
	}
	if len([]rune(strings.TrimSpace(description))) < min {
		return errors.New(msg)
	}
	if strings.TrimSpace(category) == "" {
		return errors.New(msgCategoryReq)
	}
	if price <= 0 {
		return errors.New(msgPriceInvalid)
	}
	if zones == 0 {
		return errors.New(msgZonesRequired)
	}
	return nil
}
