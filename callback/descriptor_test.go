package callback

import (
	"testing"

	"github.com/algorand/go-algorand-sdk/crypto"
	"github.com/stretchr/testify/require"
)

func TestSettleDescriptorRoundTrip(t *testing.T) {
	programID := crypto.GenerateAccount().Address
	user := crypto.GenerateAccount().Address
	job := crypto.GenerateAccount().Address
	instance := crypto.GenerateAccount().Address
	signer := crypto.GenerateAccount().Address

	d := EncodeSettle(programID, 12345, user, job, instance, signer)
	require.Equal(t, programID, d.ProgramID)
	require.Len(t, d.Data, 12)

	call, err := DecodeSettle(d)
	require.NoError(t, err)
	require.Equal(t, uint32(12345), call.Raw)
	require.Equal(t, user, call.User)
	require.Equal(t, job, call.Job)
	require.Equal(t, instance, call.Instance)
	require.Equal(t, signer, call.Signer)
}

func TestDecodeSettleRejectsUnknownTag(t *testing.T) {
	d := EncodeSettle(crypto.GenerateAccount().Address, 1,
		crypto.GenerateAccount().Address, crypto.GenerateAccount().Address,
		crypto.GenerateAccount().Address, crypto.GenerateAccount().Address)

	other := Discriminator("close")
	copy(d.Data[:8], other[:])

	_, err := DecodeSettle(d)
	require.ErrorIs(t, err, ErrUnknownDiscriminator)
}

func TestDecodeSettleRejectsMalformedData(t *testing.T) {
	d := EncodeSettle(crypto.GenerateAccount().Address, 1,
		crypto.GenerateAccount().Address, crypto.GenerateAccount().Address,
		crypto.GenerateAccount().Address, crypto.GenerateAccount().Address)

	short := d
	short.Data = d.Data[:10]
	_, err := DecodeSettle(short)
	require.ErrorIs(t, err, ErrMalformedDescriptor)

	noSigner := EncodeSettle(d.ProgramID, 1, d.Accounts[0].Address,
		d.Accounts[1].Address, d.Accounts[2].Address, d.Accounts[3].Address)
	noSigner.Accounts[3].Signer = false
	_, err = DecodeSettle(noSigner)
	require.ErrorIs(t, err, ErrMalformedDescriptor)

	missing := d
	missing.Accounts = d.Accounts[:3]
	_, err = DecodeSettle(missing)
	require.ErrorIs(t, err, ErrMalformedDescriptor)
}

func TestDiscriminatorIsStablePerName(t *testing.T) {
	require.Equal(t, Discriminator("settle"), SettleDiscriminator)
	require.NotEqual(t, Discriminator("settle"), Discriminator("guess"))
}
