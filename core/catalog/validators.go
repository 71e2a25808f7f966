package catalog

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/mnogodumalon/kurs96/core"
)

const isoDateFormat = "2006-01-02"

var (
	isoDateTag  = "isodate"
	isoDateText = "must be a date of the form YYYY-MM-DD"
)

// RegisterValidators adds the catalog's custom validation tags.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(isoDateTag, isoDateValidation)
	core.RegisterCustomTranslation(validate, translator, isoDateTag, isoDateText)
}

// isoDateValidation accepts ISO-8601 calendar dates only.
func isoDateValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(isoDateFormat, fl.Field().String())
	return err == nil
}

// ParseDate parses an ISO-8601 date field value. Malformed or empty input
// degrades to ok=false rather than an error; date fields are advisory in
// records the backend already accepted.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(isoDateFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
