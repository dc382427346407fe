package components

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/nfrund/enroll/internal/validation"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func TestDefinition(t *testing.T) {
	def, ok := Definition(validation.FieldZip)
	require.True(t, ok)
	assert.Equal(t, validation.FieldZip, def.Field)
	assert.True(t, def.Live)

	_, ok = Definition(validation.FieldNewPassword)
	assert.False(t, ok)
}

func TestFieldGroup_LiveInput(t *testing.T) {
	html := render(t, FieldGroup(MustDefinition(validation.FieldBirthDate), "01/02/1990", "Please enter a valid date."))

	assert.Contains(t, html, `id="group-birthDate"`)
	assert.Contains(t, html, `value="01/02/1990"`)
	assert.Contains(t, html, `hx-post="/register/validate/birthDate"`)
	assert.Contains(t, html, `hx-trigger="blur"`)
	assert.Contains(t, html, `hx-post="/register/validate/birthDate?mode=change"`)
	assert.Contains(t, html, `aria-invalid="true"`)
	assert.Contains(t, html, "Please enter a valid date.")
}

func TestFieldGroup_StaticInput(t *testing.T) {
	def := FieldDef{Field: validation.FieldNewPassword, Label: "New Password", Type: "password"}
	html := render(t, FieldGroup(def, "", ""))

	assert.NotContains(t, html, "hx-post")
	assert.NotContains(t, html, "aria-invalid")
}

func TestFieldGroup_Checkbox(t *testing.T) {
	html := render(t, FieldGroup(MustDefinition(validation.FieldTerms), "true", ""))

	assert.Contains(t, html, `type="checkbox"`)
	assert.Contains(t, html, "checked")
	assert.Contains(t, html, `hx-trigger="change"`)
}

func TestFieldErrorOOB(t *testing.T) {
	html := render(t, FieldErrorOOB(MustDefinition(validation.FieldVerifiedEmail), "Your emails must match"))

	assert.Contains(t, html, `id="error-verifiedEmail"`)
	assert.Contains(t, html, `hx-swap-oob="true"`)
	assert.NotContains(t, html, "hx-post")
}
