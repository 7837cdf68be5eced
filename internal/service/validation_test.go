package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainFormats(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		tag   string
		value string
		valid bool
	}{
		{"coursecode", "CS101", true},
		{"coursecode", "MATH2010", true},
		{"coursecode", "C101", false},
		{"coursecode", "cs101", false},
		{"coursecode", "COMPS101", false},
		{"coursecode", "CS10", false},

		{"uni", "ab1", true},
		{"uni", "abc1234", true},
		{"uni", "ABC1234", false},
		{"uni", "a1234", false},
		{"uni", "abcd123", false},
		{"uni", "abc12345", false},

		{"grade", "A", true},
		{"grade", "B+", true},
		{"grade", "F-", true},
		{"grade", "95", true},
		{"grade", "87.5", true},
		{"grade", "100.25", true},
		{"grade", "G", false},
		{"grade", "A++", false},
		{"grade", "87.555", false},
	}

	for _, tc := range cases {
		err := v.Var(tc.value, tc.tag)
		if tc.valid {
			assert.NoError(t, err, "%s %q should be valid", tc.tag, tc.value)
		} else {
			assert.Error(t, err, "%s %q should be invalid", tc.tag, tc.value)
		}
	}
}
