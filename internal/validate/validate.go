// Package validate checks command inputs against their struct tags and
// reports failures as domain validation errors.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/alexanderramin/aula/internal/domain"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	requiredTag  = "required"
	requiredText = "this field is required"

	roleTag  = "role"
	roleText = "{0} must be a known role"

	progressStatusTag  = "progress_status"
	progressStatusText = "{0} must be a known progress status"

	advanceStateTag  = "advance_state"
	advanceStateText = "{0} must be a known advance state"
)

// Validator wraps a configured validator and its English translator.
// It is safe for concurrent use once constructed.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator with field names taken from `field` tags and the
// domain enum validators registered.
func New() *Validator {
	locale := en.New()
	uni := ut.New(locale, locale)
	translator, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("field"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation(roleTag, func(fl validator.FieldLevel) bool {
		return domain.ValidRoles[domain.Role(fl.Field().String())]
	})
	_ = v.RegisterValidation(progressStatusTag, func(fl validator.FieldLevel) bool {
		return domain.ValidProgressStatuses[domain.ProgressStatus(fl.Field().String())]
	})
	_ = v.RegisterValidation(advanceStateTag, func(fl validator.FieldLevel) bool {
		return domain.ValidAdvanceStates[domain.AdvanceState(fl.Field().String())]
	})

	registerTranslation(v, translator, requiredTag, requiredText, true)
	registerTranslation(v, translator, roleTag, roleText, false)
	registerTranslation(v, translator, progressStatusTag, progressStatusText, false)
	registerTranslation(v, translator, advanceStateTag, advanceStateText, false)

	return &Validator{validate: v, translator: translator}
}

func registerTranslation(v *validator.Validate, translator ut.Translator, tag, text string, override bool) {
	_ = v.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates s and returns domain.ErrInvalidInput carrying one
// FieldError per failing field, or nil.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ErrInvalidInput.Wrap(err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.translator),
		})
	}
	return &domain.Error{
		Kind:    domain.ErrInvalidInput.Kind,
		Code:    domain.ErrInvalidInput.Code,
		Message: domain.ErrInvalidInput.Message,
		Fields:  fields,
	}
}
