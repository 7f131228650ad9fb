package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gamestore-zarzis/backend/pkg/email"
)

var phoneNumberRegexp = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("phonenumber", phoneNumberValidator); err != nil {
			log.Fatal("register phonenumber validator failed")
		}
		if err := v.RegisterValidation("identifier", identifierValidator); err != nil {
			log.Fatal("register identifier validator failed")
		}
	}
}

func IsPhoneNumber(s string) bool {
	return phoneNumberRegexp.MatchString(normalizePhone(s))
}

// IsIdentifier reports whether s is an email address or a phone number.
func IsIdentifier(s string) bool {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "@") {
		return email.IsEmailValid(s)
	}
	return IsPhoneNumber(s)
}

// NormalizeIdentifier returns the form codes are stored and looked up under:
// trimmed, and for phone numbers without separators.
func NormalizeIdentifier(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "@") {
		return s
	}
	return normalizePhone(s)
}

// normalizePhone drops the separators people usually type: "+216 23 290 065".
func normalizePhone(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(s)
}

var phoneNumberValidator validator.Func = func(fl validator.FieldLevel) bool {
	return IsPhoneNumber(fl.Field().String())
}

var identifierValidator validator.Func = func(fl validator.FieldLevel) bool {
	return IsIdentifier(fl.Field().String())
}
