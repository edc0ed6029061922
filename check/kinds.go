// Copyright © 2025 The pycheck authors

package check

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the class of a diagnostic.
type Kind int

const (
	KindMissingColon Kind = iota
	KindBadIndent
	KindMixedTabsSpaces
	KindUnclosedString
	KindUnclosedBracket
	KindInvalidNumber
	KindInvalidCharacter
	KindUnquotedDictKey
	KindMissingDictColon
	KindSingletonTuple
	KindInvalidIdentifier
	KindDanglingElse

	numKinds
)

func (k Kind) String() string {
	kindStrings := [numKinds]string{
		KindMissingColon:      "MISSING_COLON",
		KindBadIndent:         "BAD_INDENT",
		KindMixedTabsSpaces:   "MIXED_TABS_SPACES",
		KindUnclosedString:    "UNCLOSED_STRING",
		KindUnclosedBracket:   "UNCLOSED_BRACKET",
		KindInvalidNumber:     "INVALID_NUMBER",
		KindInvalidCharacter:  "INVALID_CHARACTER",
		KindUnquotedDictKey:   "UNQUOTED_DICT_KEY",
		KindMissingDictColon:  "MISSING_DICT_COLON",
		KindSingletonTuple:    "SINGLETON_TUPLE_MISSING_COMMA",
		KindInvalidIdentifier: "INVALID_IDENTIFIER",
		KindDanglingElse:      "DANGLING_ELSE",
	}
	if k < 0 || k >= numKinds {
		return "UNKNOWN"
	}
	return kindStrings[k]
}

// MarshalJSON serializes the kind as its name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON deserializes a kind from its name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	for i := Kind(0); i < numKinds; i++ {
		if i.String() == str {
			*k = i
			return nil
		}
	}
	return fmt.Errorf("unknown diagnostic kind: %q", str)
}

// Severity indicates whether a diagnostic is a structural error or an
// advisory finding.
type Severity int

const (
	severityUnset Severity = iota // unexported zero sentinel for default detection
	SeverityError
	SeverityAdvisory
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityAdvisory:
		return "advisory"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as a JSON string.
// An unset severity (zero value) is marshaled as "error".
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		return json.Marshal("error")
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "error":
		*s = SeverityError
	case "advisory":
		*s = SeverityAdvisory
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}
