// Package validation configures the request validator used by gin binding:
// json field names in messages, custom tags and English translations.
package validation

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
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	roomNameRegex  = regexp.MustCompile(`^[A-Z][0-9]{3}$`)
	hhmmRegex      = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	eventNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
	phoneRegex     = regexp.MustCompile(`^\d{10}$`)
)

type customTag struct {
	tag  string
	text string
	fn   validator.Func
}

var customTags = []customTag{
	{"roomname", "{0} must be in the format A000 (e.g., A401)", matchString(roomNameRegex)},
	{"hhmm", "{0} must be in HH:MM format", matchString(hhmmRegex)},
	{"eventname", "{0} can only include letters, numbers, and spaces", matchString(eventNameRegex)},
	{"phone10", "{0} must be 10 digits", matchString(phoneRegex)},
}

var (
	translator ut.Translator
	once       sync.Once
	initErr    error
)

// Register installs tags and translations on gin's default validator engine.
// It is safe to call more than once.
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			initErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		translator, initErr = Init(v)
	})
	return initErr
}

// Init configures v and returns the English translator bound to it.
func Init(v *validator.Validate) (ut.Translator, error) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("register default translations: %w", err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	for _, ct := range customTags {
		if err := v.RegisterValidation(ct.tag, ct.fn); err != nil {
			return nil, fmt.Errorf("register %s: %w", ct.tag, err)
		}
		if err := registerTranslation(v, trans, ct.tag, ct.text); err != nil {
			return nil, err
		}
	}

	return trans, nil
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, text string) error {
	return v.RegisterTranslation(
		tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Translate renders a binding error as a single readable line. Validation
// errors are translated per field; anything else (malformed JSON) is returned
// as is.
func Translate(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || translator == nil {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(translator))
	}
	return strings.Join(msgs, "; ")
}
