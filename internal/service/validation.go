package service

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// Course code: 2-4 uppercase letters followed by 3-4 digits, e.g. CS101.
	courseCodePattern = regexp.MustCompile(`^[A-Z]{2,4}\d{3,4}$`)
	// UNI: 2-3 lowercase letters followed by 1-4 digits, e.g. abc1234.
	uniPattern = regexp.MustCompile(`^[a-z]{2,3}\d{1,4}$`)
	// Grade: letter grade with optional +/- or a numeric score.
	gradePattern = regexp.MustCompile(`^[A-F][+-]?$|^\d{1,3}(\.\d{1,2})?$`)
)

// NewValidator builds a validator with the domain formats registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("coursecode", func(fl validator.FieldLevel) bool {
		return courseCodePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("uni", func(fl validator.FieldLevel) bool {
		return uniPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
		return gradePattern.MatchString(fl.Field().String())
	})
	return v
}
