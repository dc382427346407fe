package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "enroll-cli v"+version+"\n", out)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", "birthDate", "01/02/1990")
	require.NoError(t, err)
	assert.Contains(t, out, "valid birthDate")

	out, err = run(t, "validate", "subscriberId", "R123456789", "--id-type", "subID")
	require.NoError(t, err, "the example in the help text validates")
	assert.Contains(t, out, "valid subscriberId")

	out, err = run(t, "validate", "subscriberId", "R1234567", "--id-type", "subID")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "invalid subscriberId")

	out, err = run(t, "validate", "verifiedEmail", "a@b.com", "--email", "c@d.com")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "Your emails must match")

	_, err = run(t, "validate", "zip")
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	out, err := run(t, "password", "Ab1!abcdabcd")
	require.NoError(t, err)
	assert.Contains(t, out, "strength: Strong")
	assert.Contains(t, out, "accepted")

	out, err = run(t, "password", "abcdefgh")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "strength: Weak")
	assert.Contains(t, out, "Password must contain an uppercase letter.")

	out, err = run(t, "password", "Test1!ab", "Test1!ax")
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "Passwords must match")
}

func TestConfig(t *testing.T) {
	t.Setenv("SESSION_SECRET", "shh")
	t.Setenv("ACCOUNT_API_PROVIDER", "mock")

	out, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "account api:          mock")
	assert.Contains(t, out, "session secret:       (set)")
	assert.NotContains(t, out, "shh")
}
