package validation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func TestValidate_Names(t *testing.T) {
	ctx := Context{Now: fixedNow}

	assert.Empty(t, Validate(FieldFirstName, "Mary-Jo", ctx))
	assert.Empty(t, Validate(FieldLastName, "O'Neil Smith", ctx))
	assert.Equal(t, "First name is required.", Validate(FieldFirstName, "  ", ctx))
	assert.Equal(t, "Last name can only contain letters, spaces, dashes, and apostrophes.", Validate(FieldLastName, "Sm1th", ctx))
}

func TestValidate_BirthDate(t *testing.T) {
	ctx := Context{Now: fixedNow}

	t.Run("accepts every supported date", func(t *testing.T) {
		for _, year := range []int{1900, 1955, 2000, fixedNow.Year()} {
			for _, month := range []int{1, 6, 12} {
				for _, day := range []int{1, 15, 31} {
					value := fmt.Sprintf("%02d/%02d/%04d", month, day, year)
					assert.Empty(t, Validate(FieldBirthDate, value, ctx), value)
				}
			}
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		cases := map[string]string{
			"":           "Date of birth is required.",
			"01/01/99":   MsgBirthDateFormat,
			"13/01/1990": MsgBirthDateInvalid,
			"00/10/1990": MsgBirthDateInvalid,
			"01/32/1990": MsgBirthDateInvalid,
			"01/00/1990": MsgBirthDateInvalid,
			"00/00/2000": MsgBirthDateInvalid,
			"01/01/1899": MsgBirthDateInvalid,
			"01/01/2100": MsgBirthDateInvalid,
			"01/01/2027": MsgBirthDateInvalid,
			"01-01-1990": MsgBirthDateInvalid,
		}
		for value, want := range cases {
			assert.Equal(t, want, Validate(FieldBirthDate, value, ctx), value)
		}
	})
}

func TestValidate_SubscriberID(t *testing.T) {
	ctx := Context{IDType: IDTypeSubscriberID}

	assert.Empty(t, Validate(FieldSubscriberID, "123456789M", ctx))
	assert.Empty(t, Validate(FieldSubscriberID, "123456789m", ctx))
	assert.Empty(t, Validate(FieldSubscriberID, "R123456789", ctx))

	assert.Equal(t, MsgSubscriberIDLength, Validate(FieldSubscriberID, "R1234567", ctx))
	assert.Equal(t, MsgSubscriberIDFormat, Validate(FieldSubscriberID, "123456789", ctx))
	assert.Equal(t, MsgSubscriberIDLength, Validate(FieldSubscriberID, "12345M", ctx))
	assert.Equal(t, MsgSubscriberIDFormat, Validate(FieldSubscriberID, "RAB1234567", ctx))
	assert.Equal(t, "Subscriber ID can only contain letters and numbers.", Validate(FieldSubscriberID, "12345-789M", ctx))
	assert.Equal(t, "Subscriber ID is required.", Validate(FieldSubscriberID, "", ctx))
}

func TestValidate_IdentifierOnlyForActiveType(t *testing.T) {
	ctx := Context{IDType: IDTypeCode}

	assert.Empty(t, Validate(FieldSubscriberID, "", ctx))
	assert.Empty(t, Validate(FieldSSN, "", ctx))
	assert.Equal(t, "Unique Code is required.", Validate(FieldCode, "", ctx))
	assert.Equal(t, "Unique Code must be 7 characters.", Validate(FieldCode, "12345", ctx))
	assert.Equal(t, "Unique Code can only contain numbers.", Validate(FieldCode, "12a4567", ctx))
	assert.Empty(t, Validate(FieldCode, "1234567", ctx))

	ctx.IDType = IDTypeSSN
	assert.Empty(t, Validate(FieldCode, "", ctx))
	assert.Empty(t, Validate(FieldSSN, "1234", ctx))
	assert.Equal(t, "The last 4 digits of your SSN can only contain numbers.", Validate(FieldSSN, "12a4", ctx))
	assert.Equal(t, "Please enter the last 4 digits of your SSN.", Validate(FieldSSN, "123", ctx))
}

func TestValidate_Zip(t *testing.T) {
	assert.Empty(t, Validate(FieldZip, "39201", Context{}))
	assert.Equal(t, "Zip code must be 5 digits.", Validate(FieldZip, "3920", Context{}))
	assert.Equal(t, "Zip code must be 5 digits.", Validate(FieldZip, "3920a", Context{}))
	assert.Equal(t, "Zip code is required.", Validate(FieldZip, "", Context{}))
}

func TestValidate_AccountFields(t *testing.T) {
	ctx := Context{Email: "member@example.com"}

	assert.Equal(t, "Username should be at least 8 characters.", Validate(FieldUsername, "short", ctx))
	assert.Equal(t, "Username should only contains numbers and letters.", Validate(FieldUsername, "member_01", ctx))
	assert.Empty(t, Validate(FieldUsername, "member01", ctx))

	assert.Empty(t, Validate(FieldEmail, "member@example.com", ctx))
	assert.Equal(t, "Please enter a valid email address.", Validate(FieldEmail, "member@example", ctx))
	assert.Contains(t, Validate(FieldEmail, "member+1@example.com", ctx), "Email can only contain")

	assert.Empty(t, Validate(FieldVerifiedEmail, "member@example.com", ctx))
	assert.Equal(t, "Your emails must match", Validate(FieldVerifiedEmail, "other@example.com", ctx))
	assert.Equal(t, "You must verify your email", Validate(FieldVerifiedEmail, "", ctx))

	assert.Empty(t, Validate(FieldMobilePhone, "601-555-0100", ctx))
	assert.Equal(t, "Mobile phone number must be 10 characters.", Validate(FieldMobilePhone, "601-555", ctx))
	assert.Empty(t, Validate(FieldHomePhone, "", ctx))
	assert.Equal(t, "Home number must be 10 characters.", Validate(FieldHomePhone, "555", ctx))

	assert.Equal(t, "You must provide an answer.", Validate(FieldAnswer2, " ", ctx))
	assert.Equal(t, "Disclaimer must be accepted.", Validate(FieldTerms, "", ctx))
	assert.Empty(t, Validate(FieldTerms, "on", ctx))
}

func TestValidate_ConfirmPassword(t *testing.T) {
	ctx := Context{Password: "Secret1!x"}

	assert.Empty(t, Validate(FieldConfirmPassword, "Secret1!x", ctx))
	assert.Equal(t, "Passwords do not match.", Validate(FieldConfirmPassword, "Secret1!y", ctx))
}

func TestErrors_ChangeAndBlurAgree(t *testing.T) {
	ctx := Context{Now: fixedNow}
	inputs := []string{"", "0", "01/0", "01/01/1990", "13/13/1990"}

	for _, in := range inputs {
		msg := Validate(FieldBirthDate, in, ctx)

		blurred := Errors{}
		blurred.Blur(FieldBirthDate, msg)

		// Start from a stale error so change-time validation has something to update.
		changed := Errors{string(FieldBirthDate): "stale"}
		changed.Change(FieldBirthDate, Validate(FieldBirthDate, in, ctx))

		assert.Equal(t, blurred.Get(FieldBirthDate), changed.Get(FieldBirthDate), in)
	}
}

func TestErrors_ChangeDoesNotRaiseNewErrors(t *testing.T) {
	errs := Errors{}
	errs.Change(FieldZip, "Zip code must be 5 digits.")
	assert.True(t, errs.Empty())

	errs.Blur(FieldZip, "Zip code must be 5 digits.")
	assert.True(t, errs.Has(FieldZip))

	errs.Change(FieldZip, "")
	assert.False(t, errs.Has(FieldZip))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "0", FormatDate("0"))
	assert.Equal(t, "01/", FormatDate("01"))
	assert.Equal(t, "01/2", FormatDate("012"))
	assert.Equal(t, "01/23", FormatDate("0123"))
	assert.Equal(t, "01/23/1990", FormatDate("01231990"))
	assert.Equal(t, "01/23/1990", FormatDate("01/23/19901"))

	assert.Equal(t, "39201", FormatZip("39201-1234"))
	assert.Equal(t, "601-555-0100", FormatPhone("(601) 555 0100"))
	assert.Equal(t, "601-55", FormatPhone("60155"))
	assert.Equal(t, "60", FormatPhone("60"))
}
