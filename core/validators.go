package core

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Day-granularity formats used across the app.
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

var (
	// custom validation tags & texts
	mobileTag   = "mobile"
	mobileText  = "must be a valid mobile number"
	mobileRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	dateOnlyTag  = "dateonly"
	dateOnlyText = "must be a date in YYYY-MM-DD format"

	yearMonthTag  = "yearmonth"
	yearMonthText = "must be a month in YYYY-MM format"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// CleanString strips surrounding whitespace from user input, lowering it
// when asked (emails). Input structs call it before validation.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(mobileTag, mobileValidation)
	RegisterCustomTranslation(validate, translator, mobileTag, mobileText)

	_ = validate.RegisterValidation(dateOnlyTag, dateOnlyValidation)
	RegisterCustomTranslation(validate, translator, dateOnlyTag, dateOnlyText)

	_ = validate.RegisterValidation(yearMonthTag, yearMonthValidation)
	RegisterCustomTranslation(validate, translator, yearMonthTag, yearMonthText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// mobileValidation allows international mobile numbers with an optional leading "+".
func mobileValidation(fl validator.FieldLevel) bool {
	return mobileRegex.MatchString(fl.Field().String())
}

// dateOnlyValidation checks for a YYYY-MM-DD calendar date.
func dateOnlyValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateFormat, fl.Field().String())
	return err == nil
}

// yearMonthValidation checks for a YYYY-MM calendar month.
func yearMonthValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(MonthFormat, fl.Field().String())
	return err == nil
}
