package services

import (
	"errors"
	"log"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jared-cannon/app-registry/internal/models"
)

// FieldErrors maps a form field name to the message shown next to it.
// An empty map means the candidate was accepted.
type FieldErrors map[string]string

// Field error messages shown on the registration form
const (
	MsgName    = "يجب إدخال اسم التطبيق بأحرف إنجليزية فقط ولا يحتوي فراغات."
	MsgCompany = "اسم الشركة يجب أن يكون أحرفًا هجائية عربية فقط."
	MsgWebsite = "أدخل رابطًا صحيحًا يبدأ بـ http:// أو https://"
	MsgFree    = "اختر إذا كان التطبيق مجانيًا أم لا."
	MsgDomain  = "اختر مجالًا من القائمة المحددة."
	MsgSummary = "الشرح المختصر يجب أن لا يقل عن 10 أحرف."
)

var fieldMessages = map[string]string{
	"name":    MsgName,
	"company": MsgCompany,
	"website": MsgWebsite,
	"free":    MsgFree,
	"domain":  MsgDomain,
	"summary": MsgSummary,
}

var (
	englishLettersRegex = regexp.MustCompile(`^[A-Za-z]+$`)
	arabicLettersRegex  = regexp.MustCompile(`^[\p{Arabic}\s]+$`)

	appValidator = newAppValidator()
)

func newAppValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so they line up with the form inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "english_letters", func(fl validator.FieldLevel) bool {
		return IsEnglishLetters(fl.Field().String())
	})
	mustRegister(v, "arabic_letters", func(fl validator.FieldLevel) bool {
		return IsArabicLetters(fl.Field().String())
	})
	mustRegister(v, "http_url", func(fl validator.FieldLevel) bool {
		return IsHTTPURL(fl.Field().String())
	})
	mustRegister(v, "min_trimmed", func(fl validator.FieldLevel) bool {
		minLen, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= minLen
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// IsEnglishLetters reports whether s is non-empty and made only of ASCII letters
func IsEnglishLetters(s string) bool {
	return englishLettersRegex.MatchString(s)
}

// IsArabicLetters reports whether s is non-empty and made only of Arabic script and spaces
func IsArabicLetters(s string) bool {
	return arabicLettersRegex.MatchString(s)
}

// IsHTTPURL reports whether s is an absolute http or https URL
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// ValidateApp checks every rule of the registration form and returns the
// message for each failing field. logo and media are never checked.
func ValidateApp(candidate models.AppRecord) FieldErrors {
	errs := FieldErrors{}

	err := appValidator.Struct(candidate)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only reachable with a broken validator setup
		log.Printf("[Validation Error] %v", err)
		return errs
	}

	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.Field()]; ok {
			errs[fe.Field()] = msg
		}
	}
	return errs
}
