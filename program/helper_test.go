package program

import (
	"testing"
	"time"

	"github.com/algorand/go-algorand-sdk/crypto"
	"github.com/algorand/go-algorand-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/oracle-demos/randomness-demo/attestation"
	"github.com/oracle-demos/randomness-demo/ledger"
)

// testEnv wires a ledger with a fixed clock, the attestation stub and one
// registered job, so each test drives the full request/settle round trip
// without the worker goroutine.
type testEnv struct {
	ledger    *ledger.Ledger
	service   *attestation.Service
	job       attestation.Job
	operator  types.Address
	authority types.Address
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		ledger:    ledger.New(),
		service:   attestation.New(),
		operator:  crypto.GenerateAccount().Address,
		authority: crypto.GenerateAccount().Address,
		now:       time.Unix(1700000000, 0),
	}
	env.ledger.SetClock(func() time.Time { return env.now })

	job, err := env.service.RegisterJob(env.operator, "demo/container:latest")
	require.NoError(t, err)
	env.job = job
	return env
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

// lastTrigger pops the next queued trigger, failing when none is pending.
func (e *testEnv) lastTrigger(t *testing.T) attestation.TriggerEvent {
	t.Helper()
	select {
	case ev := <-e.service.Triggers():
		return ev
	default:
		t.Fatal("no trigger queued")
		return attestation.TriggerEvent{}
	}
}

func (e *testEnv) requireNoTrigger(t *testing.T) {
	t.Helper()
	select {
	case ev := <-e.service.Triggers():
		t.Fatalf("unexpected trigger %s", ev.ID)
	default:
	}
}
