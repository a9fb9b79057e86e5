package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	enrollmentTokenTag   = "enrollment_token"
	enrollmentTokenText  = "{0} must be a valid enrollment token"
	enrollmentTokenRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{4,64}$`)

	requiredTag  = "required"
	requiredText = "{0} is required"

	translator ut.Translator
	initOnce   sync.Once
	initErr    error
)

// InitValidators configures gin's validator: JSON field names in errors, English messages
// and the custom tags used by request models. Safe to call more than once.
func InitValidators() error {
	initOnce.Do(func() {
		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			initErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}

		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")
		if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
			initErr = fmt.Errorf("registering translations: %w", err)
			return
		}

		// Use JSON tag names for errors instead of Go struct names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		if err := validate.RegisterValidation(enrollmentTokenTag, enrollmentTokenValidation); err != nil {
			initErr = fmt.Errorf("registering %s: %w", enrollmentTokenTag, err)
			return
		}
		registerTranslation(validate, enrollmentTokenTag, enrollmentTokenText, false)
		registerTranslation(validate, requiredTag, requiredText, true)
	})
	return initErr
}

func registerTranslation(validate *validator.Validate, tag, text string, override bool) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// enrollmentTokenValidation accepts the characters the token generator and staff-typed codes use
func enrollmentTokenValidation(fl validator.FieldLevel) bool {
	return enrollmentTokenRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

// fieldErrors turns validation errors into a field → message map. ok is false for other errors.
func fieldErrors(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if translator != nil {
			out[fe.Field()] = fe.Translate(translator)
		} else {
			out[fe.Field()] = fe.Error()
		}
	}
	return out, true
}
