package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nfrund/enroll/internal/password"
	"github.com/nfrund/enroll/internal/validation"
	"github.com/nfrund/enroll/internal/wizard"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator. Field errors are reported under the
// form name of the field, and the password_policy tag checks the password rules.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		return password.Evaluate(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("registering password_policy: %v", err))
	}
	return &CustomValidator{validator: v}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// IdentityRequest is the identity step form.
type IdentityRequest struct {
	FirstName    string `form:"firstName"`
	LastName     string `form:"lastName"`
	BirthDate    string `form:"birthDate"`
	Zip          string `form:"zip"`
	IDType       string `form:"idType" validate:"omitempty,oneof=code subID ssn"`
	SubscriberID string `form:"subscriberId"`
	SSN          string `form:"ssn"`
	Code         string `form:"code"`
}

// Form converts the request for the wizard.
func (r IdentityRequest) Form() wizard.IdentityForm {
	return wizard.IdentityForm{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		BirthDate:    r.BirthDate,
		Zip:          r.Zip,
		IDType:       validation.ParseIDType(r.IDType),
		SubscriberID: r.SubscriberID,
		SSN:          r.SSN,
		Code:         r.Code,
	}
}

// AccountRequest is the account setup form.
type AccountRequest struct {
	Username        string `form:"desiredUsername"`
	Email           string `form:"email"`
	VerifiedEmail   string `form:"verifiedEmail"`
	MobilePhone     string `form:"mobileNumber"`
	HomePhone       string `form:"homeNumber"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
	Question1       string `form:"question1"`
	Question2       string `form:"question2"`
	Question3       string `form:"question3"`
	Answer1         string `form:"answer1"`
	Answer2         string `form:"answer2"`
	Answer3         string `form:"answer3"`
	Terms           string `form:"terms"`
}

// Form converts the request for the wizard.
func (r AccountRequest) Form() wizard.AccountForm {
	return wizard.AccountForm{
		Username:        strings.TrimSpace(r.Username),
		Email:           strings.TrimSpace(r.Email),
		VerifiedEmail:   strings.TrimSpace(r.VerifiedEmail),
		MobilePhone:     r.MobilePhone,
		HomePhone:       r.HomePhone,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		Questions:       [3]string{r.Question1, r.Question2, r.Question3},
		Answers:         [3]string{r.Answer1, r.Answer2, r.Answer3},
		Terms:           validation.IsChecked(r.Terms),
	}
}

// PasswordMeterRequest carries the two password inputs.
type PasswordMeterRequest struct {
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

// SharingRequest is the account sharing form.
type SharingRequest struct {
	Allow string `form:"allow"`
	Deny  string `form:"deny"`
}

// Form converts the request for the wizard.
func (r SharingRequest) Form() wizard.SharingForm {
	return wizard.SharingForm{Allow: validation.IsChecked(r.Allow), Deny: validation.IsChecked(r.Deny)}
}

// SharingChoiceRequest is sent when one of the sharing checkboxes changes.
type SharingChoiceRequest struct {
	Box string `form:"box" validate:"required,oneof=allow deny"`
	SharingRequest
}

// Checked reports whether the box that changed is now checked.
func (r SharingChoiceRequest) Checked() bool {
	if r.Box == "allow" {
		return validation.IsChecked(r.Allow)
	}
	return validation.IsChecked(r.Deny)
}

// ChangePasswordRequest is the change-password form.
type ChangePasswordRequest struct {
	Token           string `form:"token" validate:"required"`
	CurrentPassword string `form:"currentPassword" validate:"required"`
	NewPassword     string `form:"newPassword" validate:"required,password_policy"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// fieldErrors turns validator errors into the messages shown next to each input.
// Failures without a field rule of their own fall back to a description of the failed tag.
func fieldErrors(err error, ctx validation.Context) (validation.Errors, error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	errs := validation.Errors{}
	for _, fe := range verrs {
		field := validation.Field(fe.Field())
		value, _ := fe.Value().(string)
		msg := validation.Validate(field, value, ctx)
		if msg == "" {
			switch fe.Tag() {
			case "password_policy":
				msg = password.Problem(value)
			case "required":
				msg = "This field is required."
			default:
				msg = fmt.Sprintf("Failed the %s check.", fe.Tag())
			}
		}
		errs.Set(field, msg)
	}
	return errs, nil
}
