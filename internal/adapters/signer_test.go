package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Feng94/lighthouse/internal/application/domain"
)

func TestLocalSignerDeterministic(t *testing.T) {
	signer := NewLocalSigner()
	pk := pubkeyOf("validator-1")
	signer.AddKey(pk, []byte("secret"))
	bound := signer.ForPubkey(pk)

	sig1, err := bound.Sign(rootOf("signing root"))
	require.NoError(t, err)
	sig2, err := bound.Sign(rootOf("signing root"))
	require.NoError(t, err)
	assert.Equal(t, sig1, sig2)

	other, err := bound.Sign(rootOf("another signing root"))
	require.NoError(t, err)
	assert.NotEqual(t, sig1, other)
}

func TestLocalSignerDeclinesUnknownKey(t *testing.T) {
	signer := NewLocalSigner()
	bound := signer.ForPubkey(pubkeyOf("nobody"))

	_, err := bound.Sign(rootOf("signing root"))
	require.Error(t, err)
}

func TestLocalSignerDeclinesDisabledKey(t *testing.T) {
	signer := NewLocalSigner()
	pk := pubkeyOf("validator-1")
	signer.AddKey(pk, []byte("secret"))
	signer.SetDisabled(pk, true)
	bound := signer.ForPubkey(pk)

	_, err := bound.Sign(rootOf("signing root"))
	require.Error(t, err)

	signer.SetDisabled(pk, false)
	_, err = bound.Sign(rootOf("signing root"))
	require.NoError(t, err)
}
