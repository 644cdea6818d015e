package attestation

import (
	"testing"

	"github.com/algorand/go-algorand-sdk/crypto"
	"github.com/algorand/go-algorand-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestRegisterJobGeneratesEnclaveSigner(t *testing.T) {
	s := New()
	authority := crypto.GenerateAccount().Address

	job, err := s.RegisterJob(authority, "demo/container:latest")
	require.NoError(t, err)
	require.NotEqual(t, types.ZeroAddress, job.ID)
	require.NotEqual(t, types.ZeroAddress, job.EnclaveSigner)
	require.NotEqual(t, job.ID, job.EnclaveSigner)

	signer, ok := s.EnclaveSigner(job.ID)
	require.True(t, ok)
	require.Equal(t, job.EnclaveSigner, signer)

	got, ok := s.Job(job.ID)
	require.True(t, ok)
	require.Equal(t, job, got)
}

func TestTriggerQueuesEvent(t *testing.T) {
	s := New()
	job, err := s.RegisterJob(crypto.GenerateAccount().Address, "demo/container:latest")
	require.NoError(t, err)

	user := crypto.GenerateAccount().Address
	inst, err := s.CreateInstance(job.ID, user, []byte("PARAMS"))
	require.NoError(t, err)
	require.False(t, inst.SingleUse)

	ev, err := s.Trigger(inst.ID, TriggerOptions{ValidAfterRound: 5})
	require.NoError(t, err)

	queued := <-s.Triggers()
	require.Equal(t, ev.ID, queued.ID)
	require.Equal(t, job.ID, queued.Job)
	require.Equal(t, inst.ID, queued.Instance)
	require.Equal(t, []byte("PARAMS"), queued.Params)
	require.Equal(t, uint64(5), queued.ValidAfterRound)
}

func TestInitAndTriggerCreatesSingleUseInstance(t *testing.T) {
	s := New()
	job, err := s.RegisterJob(crypto.GenerateAccount().Address, "demo/container:latest")
	require.NoError(t, err)

	inst, ev, err := s.InitAndTrigger(job.ID, crypto.GenerateAccount().Address, []byte("P=1"), TriggerOptions{})
	require.NoError(t, err)
	require.True(t, inst.SingleUse)
	require.Equal(t, inst.ID, ev.Instance)

	queued := <-s.Triggers()
	require.Equal(t, ev.ID, queued.ID)
}

func TestCreateInstanceChecksJob(t *testing.T) {
	s := New()
	_, err := s.CreateInstance(crypto.GenerateAccount().Address, crypto.GenerateAccount().Address, nil)
	require.ErrorIs(t, err, ErrUnknownJob)

	job, err := s.RegisterJob(crypto.GenerateAccount().Address, "demo/container:latest")
	require.NoError(t, err)
	require.NoError(t, s.SetRequestsDisabled(job.ID, true))

	_, err = s.CreateInstance(job.ID, crypto.GenerateAccount().Address, nil)
	require.ErrorIs(t, err, ErrRequestsDisabled)
}

func TestTriggerUnknownInstance(t *testing.T) {
	s := New()
	_, err := s.Trigger(crypto.GenerateAccount().Address, TriggerOptions{})
	require.ErrorIs(t, err, ErrUnknownInstance)
}

func TestVerifyRequestSigner(t *testing.T) {
	s := New()
	job, err := s.RegisterJob(crypto.GenerateAccount().Address, "demo/container:latest")
	require.NoError(t, err)
	otherJob, err := s.RegisterJob(crypto.GenerateAccount().Address, "demo/other:latest")
	require.NoError(t, err)

	inst, err := s.CreateInstance(job.ID, crypto.GenerateAccount().Address, nil)
	require.NoError(t, err)

	require.True(t, s.VerifyRequestSigner(job.ID, inst.ID, job.EnclaveSigner))

	// wrong signer
	require.False(t, s.VerifyRequestSigner(job.ID, inst.ID, otherJob.EnclaveSigner))
	require.False(t, s.VerifyRequestSigner(job.ID, inst.ID, crypto.GenerateAccount().Address))
	// instance not owned by the presented job
	require.False(t, s.VerifyRequestSigner(otherJob.ID, inst.ID, otherJob.EnclaveSigner))
	// unknown instance
	require.False(t, s.VerifyRequestSigner(job.ID, crypto.GenerateAccount().Address, job.EnclaveSigner))
}
