// Package validation checks incoming chat messages against length and
// content policy before they reach the completion gateway. The rules are
// pure and deterministic; the first failing rule wins.
package validation

import (
	"regexp"
	"strings"
)

const (
	MinMessageLength = 3
	MaxMessageLength = 500

	// Repetition is only judged on messages longer than this many words.
	repetitionWordFloor = 10
	repetitionMinRatio  = 0.3
)

type Reason string

const (
	TooShort            Reason = "too_short"
	TooLong             Reason = "too_long"
	PolicyViolation     Reason = "policy_violation"
	ExcessiveRepetition Reason = "excessive_repetition"
)

// Error carries the rejection reason. Its message is safe to return to
// the client verbatim; it describes the caller's own input.
type Error struct {
	Reason Reason
}

func (e *Error) Error() string {
	switch e.Reason {
	case TooShort:
		return "Message too short"
	case TooLong:
		return "Message too long"
	case PolicyViolation:
		return "Message contains inappropriate content"
	case ExcessiveRepetition:
		return "Message contains excessive repetition"
	}
	return "Invalid message content"
}

var blockedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)hack|exploit|vulnerability|attack|malicious`),
	regexp.MustCompile(`(?i)spam|advertisement|promotion|marketing`),
	regexp.MustCompile(`(?i)inappropriate|offensive|abusive|harassment`),
	regexp.MustCompile(`(?i)personal.*info|contact.*details|phone.*number|email.*address`),
	regexp.MustCompile(`(?i)password|login|credentials|authentication`),
}

// Validate returns nil when the message is acceptable, or an *Error
// naming the first rule it broke.
func Validate(message string) error {
	if len(message) < MinMessageLength {
		return &Error{Reason: TooShort}
	}
	if len(message) > MaxMessageLength {
		return &Error{Reason: TooLong}
	}

	for _, pattern := range blockedPatterns {
		if pattern.MatchString(message) {
			return &Error{Reason: PolicyViolation}
		}
	}

	words := strings.Fields(strings.ToLower(message))
	if len(words) > repetitionWordFloor {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if float64(len(unique))/float64(len(words)) < repetitionMinRatio {
			return &Error{Reason: ExcessiveRepetition}
		}
	}

	return nil
}
