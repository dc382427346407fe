package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	c := Evaluate("Ab1!abcd")
	assert.Equal(t, Criteria{MinLength: true, HasLower: true, HasUpper: true, HasDigit: true, HasSpecial: true}, c)
	assert.True(t, c.Valid())

	c = Evaluate("abcdefgh")
	assert.True(t, c.MinLength)
	assert.True(t, c.HasLower)
	assert.False(t, c.HasUpper)
	assert.False(t, c.HasDigit)
	assert.False(t, c.HasSpecial)
}

func TestStrengthOf(t *testing.T) {
	tests := []struct {
		pw   string
		want Strength
	}{
		{"", Weak},
		{"abcdefgh", Weak},
		{"Ab1!abc", Weak},
		{"Ab1!abcd", Moderate},
		{"Ab1!abcdabc", Moderate},
		{"Ab1!abcdabcd", Strong},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StrengthOf(tt.pw), tt.pw)
	}
}

func TestAccepted(t *testing.T) {
	assert.Equal(t, "Test1!ab", Accepted("Test1!ab", "Test1!ab"))
	assert.Equal(t, "", Accepted("Test1!ab", "Test1!ax"))
	assert.Equal(t, "", Accepted("testtest", "testtest"))
}

func TestProblem(t *testing.T) {
	assert.Equal(t, "Password must be at least 8 characters long.", Problem("Ab1!"))
	assert.Equal(t, "Password must contain a lowercase letter.", Problem("AB1!ABCD"))
	assert.Equal(t, "Password must contain an uppercase letter.", Problem("ab1!abcd"))
	assert.Equal(t, "Password must contain a number.", Problem("Abc!abcd"))
	assert.Equal(t, "Password must contain a special character.", Problem("Ab1aabcd"))
	assert.Empty(t, Problem("Ab1!abcd"))
}

func TestTracker_EmitsOnEveryChange(t *testing.T) {
	var emitted []string
	tr := NewTracker(func(pw string) { emitted = append(emitted, pw) })

	tr.SetPassword("Test1!ab")
	tr.SetConfirm("Test1!a")
	tr.SetConfirm("Test1!ab")
	tr.SetPassword("Test1!ax")

	assert.Equal(t, []string{"", "", "Test1!ab", ""}, emitted)
	assert.Equal(t, MsgMismatch, tr.ConfirmError())
	assert.Equal(t, Moderate, tr.Strength())
}

func TestTracker_ConfirmError(t *testing.T) {
	tr := NewTracker(nil)
	tr.SetPassword("Test1!ab")
	assert.Empty(t, tr.ConfirmError())

	tr.SetConfirm("Test1!ab")
	assert.Empty(t, tr.ConfirmError())
	assert.Equal(t, "Test1!ab", tr.Accepted())
}
