package validation_test

import (
	"strings"
	"testing"

	"portfolio-backend/internal/validation"

	"github.com/stretchr/testify/assert"
)

func reasonOf(t *testing.T, err error) validation.Reason {
	t.Helper()
	var vErr *validation.Error
	if assert.ErrorAs(t, err, &vErr) {
		return vErr.Reason
	}
	return ""
}

func TestValidateLength(t *testing.T) {
	t.Run("TooShort", func(t *testing.T) {
		err := validation.Validate("hi")
		assert.Equal(t, validation.TooShort, reasonOf(t, err))
		assert.Equal(t, "Message too short", err.Error())
	})

	t.Run("TooLong", func(t *testing.T) {
		err := validation.Validate(strings.Repeat("a", 501))
		assert.Equal(t, validation.TooLong, reasonOf(t, err))
		assert.Equal(t, "Message too long", err.Error())
	})

	t.Run("BoundaryLengthsAccepted", func(t *testing.T) {
		assert.NoError(t, validation.Validate("yes"))
		assert.NoError(t, validation.Validate(strings.Repeat("a", 500)))
	})
}

func TestValidateBlockedPatterns(t *testing.T) {
	cases := []struct {
		name    string
		message string
	}{
		{"SecurityExploit", "how to exploit this vulnerability"},
		{"SpamPromotion", "buy now promotion discount"},
		{"Abuse", "this is offensive material"},
		{"PIISolicitation", "send me your phone number"},
		{"CredentialHarvesting", "what is the admin password"},
		{"CaseInsensitive", "HACK the planet"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.Validate(tc.message)
			assert.Equal(t, validation.PolicyViolation, reasonOf(t, err))
			assert.Equal(t, "Message contains inappropriate content", err.Error())
		})
	}
}

func TestValidateRepetition(t *testing.T) {
	t.Run("ElevenRepeatedWordsRejected", func(t *testing.T) {
		err := validation.Validate(strings.TrimSpace(strings.Repeat("go ", 11)))
		assert.Equal(t, validation.ExcessiveRepetition, reasonOf(t, err))
	})

	t.Run("ExactlyTenWordsAccepted", func(t *testing.T) {
		// The repetition rule only applies above 10 words.
		assert.NoError(t, validation.Validate(strings.TrimSpace(strings.Repeat("go ", 10))))
	})

	t.Run("VariedLongMessageAccepted", func(t *testing.T) {
		assert.NoError(t, validation.Validate("tell me about your favorite projects and the tools you used to build them"))
	})

	t.Run("RepetitionIsCaseInsensitive", func(t *testing.T) {
		err := validation.Validate("Go GO go Go GO go Go GO go Go GO")
		assert.Equal(t, validation.ExcessiveRepetition, reasonOf(t, err))
	})
}

func TestValidateAcceptsNormalMessages(t *testing.T) {
	for _, message := range []string{
		"hello there",
		"what technologies do you work with?",
		"can you tell me more about the projects?",
	} {
		assert.NoError(t, validation.Validate(message), message)
	}
}
