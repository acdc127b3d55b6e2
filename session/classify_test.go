package session

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlesren/netcli/driver"
)

func TestClassifyHuaweiSyntaxError(t *testing.T) {
	p := testProfile(t, driver.PlatformHuaweiVRP)
	output := "          ^\nError:Unrecognized command found at '^' position.\n" +
		"% Unrecognized command found at '^' position."

	se := classify(p, "display verson", output)
	require.NotNil(t, se)
	assert.Equal(t, ErrCodeSyntax, se.Code)
	assert.Equal(t, "display verson", se.Details["command"])
}

func TestClassifyRuijiePrivilegeError(t *testing.T) {
	p := testProfile(t, driver.PlatformRuijieOS)
	se := classify(p, "show running-config",
		"% User doesn't have sufficient privilege to execute this command.")
	require.NotNil(t, se)
	assert.Equal(t, ErrCodePermissionDenied, se.Code)
}

func TestClassifyHuaweiPasswordIncorrect(t *testing.T) {
	p := testProfile(t, driver.PlatformHuaweiVRP)
	se := classify(p, "super", "Error: Password incorrect.")
	require.NotNil(t, se)
	assert.Equal(t, ErrCodePermissionDenied, se.Code)
}

func TestClassifySignatureAnywhereInOutput(t *testing.T) {
	p := testProfile(t, driver.PlatformH3CComware)
	// the signature may sit between echo residue and blank lines
	output := "\n   some leading noise\n  % Unrecognized command found at '^' position.\n\n"
	se := classify(p, "dis ver", output)
	require.NotNil(t, se)
	assert.Equal(t, ErrCodeSyntax, se.Code)
}

func TestClassifyCleanOutputIsSuccess(t *testing.T) {
	p := testProfile(t, driver.PlatformCiscoIOS)
	assert.Nil(t, classify(p, "show version", "Cisco IOS Software, Version 15.0(2)SE11"))
	assert.Nil(t, classify(p, "show version", ""))
}

// Signatures are evaluated in declaration order and the first match wins,
// even when a later signature also matches.
func TestClassifyFirstSignatureWins(t *testing.T) {
	p := &driver.Profile{
		Platform: "test",
		ErrorSignatures: []driver.ErrorSignature{
			{Pattern: regexp.MustCompile(`Error: broad`), Kind: driver.ErrorKindSyntax},
			{Pattern: regexp.MustCompile(`Error: broad and specific`), Kind: driver.ErrorKindPermissionDenied},
		},
	}
	se := classify(p, "cmd", "Error: broad and specific failure")
	require.NotNil(t, se)
	assert.Equal(t, ErrCodeSyntax, se.Code)
}

func TestCommandErrorPredicates(t *testing.T) {
	p := testProfile(t, driver.PlatformCiscoIOS)
	se := classify(p, "show verson", "% Invalid input detected at '^' marker.")
	require.NotNil(t, se)
	assert.True(t, IsCommandError(se))
	assert.False(t, IsFatal(se))

	timeout := NewSessionError(ErrCodeTimeout, "timeout waiting for prompt")
	assert.True(t, IsFatal(timeout))
	assert.False(t, IsCommandError(timeout))
}
