package models

import (
	"testing"

	"github.com/algorand/go-algorand-sdk/crypto"
	"github.com/stretchr/testify/require"
)

func TestContainerParamsRoundTrip(t *testing.T) {
	params := ContainerParams{
		ProgramID: crypto.GenerateAccount().Address,
		MinResult: MinResult,
		MaxResult: MaxResult,
		User:      crypto.GenerateAccount().Address,
	}

	decoded, err := DecodeContainerParams(params.Encode())
	require.NoError(t, err)
	require.Equal(t, params, decoded)
}

func TestContainerParamsIgnoresUnknownKeys(t *testing.T) {
	params := ContainerParams{
		ProgramID: crypto.GenerateAccount().Address,
		MinResult: 1,
		MaxResult: 10,
		User:      crypto.GenerateAccount().Address,
	}
	raw := append(params.Encode(), []byte(",EXTRA=1")...)

	decoded, err := DecodeContainerParams(raw)
	require.NoError(t, err)
	require.Equal(t, params, decoded)
}

func TestContainerParamsRequiredKeys(t *testing.T) {
	user := crypto.GenerateAccount().Address
	pid := crypto.GenerateAccount().Address

	_, err := DecodeContainerParams([]byte("MIN_RESULT=1,MAX_RESULT=10,USER=" + user.String()))
	require.EqualError(t, err, "PID cannot be undefined")

	_, err = DecodeContainerParams([]byte("PID=" + pid.String() + ",MIN_RESULT=1,MAX_RESULT=10"))
	require.EqualError(t, err, "USER cannot be undefined")

	_, err = DecodeContainerParams([]byte("PID=" + pid.String() + ",USER=" + user.String()))
	require.Error(t, err)
}

func TestContainerParamsBadAddress(t *testing.T) {
	_, err := DecodeContainerParams([]byte("PID=not-an-address,MIN_RESULT=1,MAX_RESULT=10,USER=also-bad"))
	require.Error(t, err)
}
