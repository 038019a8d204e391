package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Customer Master", "customer master"},
		{"trim and collapse", "  Customer   Master  ", "customer master"},
		{"ascii parenthetical", "Client Info (legacy)", "client info"},
		{"cjk parenthetical", "客户信息（历史）", "客户信息"},
		{"mixed bracket pair", "客户信息（历史)", "客户信息"},
		{"mixed", "  Job  Info (v2)  ", "job info"},
		{"empty", "", ""},
		{"only parenthetical", "(deprecated)", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeName(tc.input))
		})
	}
}

func TestNormalizeNameCaseSpaceVariantsCollapse(t *testing.T) {
	// Variants that differ only in case, spacing or qualifiers must share a key.
	assert.Equal(t, NormalizeName("Customer Master"), NormalizeName("customer   MASTER"))
	assert.Equal(t, NormalizeName("Client Info"), NormalizeName("Client Info (legacy)"))
}

func TestNormalizeNameIdempotent(t *testing.T) {
	for _, s := range []string{"Employee Record", "职位信息（主）", "  A  B  "} {
		once := NormalizeName(s)
		assert.Equal(t, once, NormalizeName(once))
	}
}

func TestNormalizeAll(t *testing.T) {
	out := NormalizeAll([]string{"Job Info", "EMPLOYEE  Record"})
	assert.Equal(t, []string{"job info", "employee record"}, out)
}
