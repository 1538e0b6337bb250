package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
)

// Minimal reflection-based validator for request structs. Supported rules:
// - required
// - phone8 (Indonesian local number: starts with '8', 8-13 digits total)
// - nameok (letters, numbers, space, hyphen, apostrophe, 1-100 chars)
// - pwdmin (min length 6)
// - eqfield=OtherField

var (
	rePhone8 = regexp.MustCompile(`^8[0-9]{7,12}$`)
	reNameOK = regexp.MustCompile(`^[A-Za-z0-9 \-']{1,100}$`)
)

// ValidateStruct inspects `validate:"..."` tags and returns the first
// violation found.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.New("ValidateStruct expects a struct or pointer to struct")
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		fv := v.Field(i)
		var sval string
		if fv.IsValid() && fv.Kind() == reflect.String {
			sval = fv.String()
		}
		for _, rule := range strings.Split(tag, ",") {
			rule = strings.TrimSpace(rule)
			switch {
			case rule == "required":
				if sval == "" {
					return errors.New(field.Name + " is required")
				}
			case rule == "phone8":
				if sval != "" && !rePhone8.MatchString(sval) {
					return errors.New(field.Name + " must be an Indonesian local phone number starting with 8")
				}
			case rule == "nameok":
				if sval != "" && !reNameOK.MatchString(sval) {
					return errors.New(field.Name + " contains invalid characters")
				}
			case rule == "pwdmin":
				if len(sval) < 6 {
					return errors.New(field.Name + " must be at least 6 characters")
				}
			case strings.HasPrefix(rule, "eqfield="):
				other := strings.TrimPrefix(rule, "eqfield=")
				of := v.FieldByName(other)
				if of.IsValid() && of.Kind() == reflect.String && sval != of.String() {
					return errors.New(field.Name + " must equal " + other)
				}
			}
		}
	}
	return nil
}
