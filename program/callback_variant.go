package program

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/crypto"
	"github.com/algorand/go-algorand-sdk/types"

	"github.com/oracle-demos/randomness-demo/attestation"
	"github.com/oracle-demos/randomness-demo/callback"
	"github.com/oracle-demos/randomness-demo/ledger"
	"github.com/oracle-demos/randomness-demo/models"
)

// Callback is the persistent variant: the authorized job is pinned in a
// program-state singleton, and each user gets one durable job-instance at
// account creation that every subsequent guess re-triggers.
type Callback struct {
	id      types.Address
	ledger  *ledger.Ledger
	service *attestation.Service
	events  *eventSink
}

func NewCallback(l *ledger.Ledger, svc *attestation.Service) *Callback {
	return &Callback{
		id:      crypto.GenerateAccount().Address,
		ledger:  l,
		service: svc,
		events:  newEventSink(),
	}
}

func (p *Callback) ID() types.Address { return p.id }

// Events delivers one GuessSettled per committed settlement.
func (p *Callback) Events() <-chan models.GuessSettled { return p.events.ch }

// StateAddress is the program-state singleton address.
func (p *Callback) StateAddress() types.Address {
	return ledger.DeriveAddress(ProgramSeed, types.ZeroAddress)
}

// UserAddress derives the user record address for an authority.
func (p *Callback) UserAddress(authority types.Address) types.Address {
	return ledger.DeriveAddress(UserSeed, authority)
}

// User reads the current user record outside of any transaction.
func (p *Callback) User(authority types.Address) (models.UserState, bool, error) {
	var user models.UserState
	var found bool
	err := p.ledger.View(func(t *ledger.Txn) error {
		var err error
		found, err = t.Get(p.UserAddress(authority), &user)
		return err
	})
	return user, found, err
}

// Initialize binds the authority and the authorized job into the singleton.
// It fails if the singleton already exists, making it create-once.
func (p *Callback) Initialize(authority, jobID types.Address) error {
	return p.ledger.Exec([]types.Address{authority}, func(t *ledger.Txn) error {
		if !t.HasSigner(authority) {
			return ErrUnauthorized
		}
		var state models.ProgramState
		found, err := t.Get(p.StateAddress(), &state)
		if err != nil {
			return err
		}
		if found {
			return ErrAlreadyInitialized
		}
		if job, ok := p.service.Job(jobID); !ok || job.RequestsDisabled {
			return ErrInvalidJob
		}
		t.Put(p.StateAddress(), models.ProgramState{Authority: authority, Job: jobID})
		return nil
	})
}

// CreateUser creates the user record and the durable job-instance bound to
// it. The instance carries the callback parameters for every later trigger.
func (p *Callback) CreateUser(authority types.Address) error {
	return p.ledger.Exec([]types.Address{authority}, func(t *ledger.Txn) error {
		if !t.HasSigner(authority) {
			return ErrUnauthorized
		}
		var state models.ProgramState
		found, err := t.Get(p.StateAddress(), &state)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotInitialized
		}
		addr := p.UserAddress(authority)
		var existing models.UserState
		if found, err := t.Get(addr, &existing); err != nil {
			return err
		} else if found {
			return ErrUserExists
		}

		params := models.ContainerParams{
			ProgramID: p.id,
			MinResult: models.MinResult,
			MaxResult: models.MaxResult,
			User:      addr,
		}
		inst, err := p.service.CreateInstance(state.Job, addr, params.Encode())
		if err != nil {
			return fmt.Errorf("failed creating job-instance: %w", err)
		}
		t.Put(addr, models.UserState{Authority: authority, Instance: inst.ID})
		return nil
	})
}

// Guess records a new guess and re-triggers the user's bound job-instance.
// While a recent request is still pending the guess is rejected until the
// request timeout elapses.
func (p *Callback) Guess(authority types.Address, guess uint32) error {
	if guess < models.MinResult || guess > models.MaxResult {
		return ErrInvalidGuess
	}
	return p.ledger.Exec([]types.Address{authority}, func(t *ledger.Txn) error {
		var state models.ProgramState
		found, err := t.Get(p.StateAddress(), &state)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotInitialized
		}
		addr := p.UserAddress(authority)
		var user models.UserState
		found, err = t.Get(addr, &user)
		if err != nil {
			return err
		}
		if !found {
			return ErrUnknownUser
		}
		if !t.HasSigner(authority) || user.Authority != authority {
			return ErrUnauthorized
		}
		if user.Pending() && t.Now().Unix()-user.RequestedAt < models.RequestTimeoutSeconds {
			return ErrRequestNotReady
		}

		if _, err := p.service.Trigger(user.Instance, attestation.TriggerOptions{}); err != nil {
			return fmt.Errorf("failed triggering job-instance: %w", err)
		}

		user.Guess = guess
		user.Result = 0
		user.Won = false
		user.RequestedAt = t.Now().Unix()
		user.SettledAt = 0
		t.Put(addr, user)
		return nil
	})
}

// Settle finalizes the pending guess. The presented job must be the one
// pinned in program state, the instance must be the user's bound instance,
// and the signer must hold the enclave-signer capability for both.
func (p *Callback) Settle(user, job, instance, signer types.Address, raw uint32) error {
	var ev models.GuessSettled
	err := p.ledger.Exec([]types.Address{signer}, func(t *ledger.Txn) error {
		if !t.HasSigner(signer) || !p.service.VerifyRequestSigner(job, instance, signer) {
			return ErrUnauthorized
		}
		var state models.ProgramState
		found, err := t.Get(p.StateAddress(), &state)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotInitialized
		}
		if job != state.Job {
			return ErrUnauthorized
		}
		var u models.UserState
		found, err = t.Get(user, &u)
		if err != nil {
			return err
		}
		if !found {
			return ErrUnknownUser
		}
		if u.Instance != instance {
			return ErrUnauthorized
		}
		if !u.Pending() {
			return ErrAlreadySettled
		}

		result := models.BoundedResult(raw, models.MinResult, models.MaxResult)
		u.Result = result
		u.Won = result == u.Guess
		u.SettledAt = t.Now().Unix()
		t.Put(user, u)

		ev = models.GuessSettled{
			User:        user,
			Guess:       u.Guess,
			Result:      result,
			Won:         u.Won,
			RequestedAt: u.RequestedAt,
			SettledAt:   u.SettledAt,
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.events.emit(ev)
	return nil
}

// Invoke dispatches a callback instruction descriptor on its tag.
func (p *Callback) Invoke(d callback.Descriptor) error {
	call, err := callback.DecodeSettle(d)
	if err != nil {
		return err
	}
	return p.Settle(call.User, call.Job, call.Instance, call.Signer, call.Raw)
}
