// Package program holds the two on-chain program variants. Both track a
// user's pending guess, hand the randomness work to an attested off-chain
// job, and resolve the win/lose outcome exactly once when the job's enclave
// signer calls back in.
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

const (
	// ProgramSeed tags the program-state singleton of the callback variant.
	ProgramSeed = "SIMPLE_RANDOMNESS"
	// UserSeed tags per-authority user records.
	UserSeed = "RANDOMNESS_USER"
)

// Simple is the fire-and-forget variant: every guess creates and triggers a
// fresh single-use job-instance, nothing is bound across rounds.
type Simple struct {
	id      types.Address
	ledger  *ledger.Ledger
	service *attestation.Service
	job     types.Address
	events  *eventSink
}

func NewSimple(l *ledger.Ledger, svc *attestation.Service, job types.Address) *Simple {
	return &Simple{
		id:      crypto.GenerateAccount().Address,
		ledger:  l,
		service: svc,
		job:     job,
		events:  newEventSink(),
	}
}

func (p *Simple) ID() types.Address { return p.id }

// Events delivers one GuessSettled per committed settlement.
func (p *Simple) Events() <-chan models.GuessSettled { return p.events.ch }

// UserAddress derives the user record address for an authority.
func (p *Simple) UserAddress(authority types.Address) types.Address {
	return ledger.DeriveAddress(UserSeed, authority)
}

// User reads the current user record outside of any transaction.
func (p *Simple) User(authority types.Address) (models.UserState, bool, error) {
	var user models.UserState
	var found bool
	err := p.ledger.View(func(t *ledger.Txn) error {
		var err error
		found, err = t.Get(p.UserAddress(authority), &user)
		return err
	})
	return user, found, err
}

// Guess records a new guess for the authority, creating the user record on
// first use, and triggers a fresh job-instance carrying the program id,
// bounds and user address as callback parameters.
func (p *Simple) Guess(authority types.Address, guess uint32) error {
	if guess < models.MinResult || guess > models.MaxResult {
		return ErrInvalidGuess
	}
	return p.ledger.Exec([]types.Address{authority}, func(t *ledger.Txn) error {
		if !t.HasSigner(authority) {
			return ErrUnauthorized
		}
		addr := p.UserAddress(authority)
		var user models.UserState
		found, err := t.Get(addr, &user)
		if err != nil {
			return err
		}
		if found && user.Pending() &&
			t.Now().Unix()-user.RequestedAt < models.RequestTimeoutSeconds {
			return ErrRequestNotReady
		}
		if !found {
			user = models.UserState{Authority: authority}
		}

		params := models.ContainerParams{
			ProgramID: p.id,
			MinResult: models.MinResult,
			MaxResult: models.MaxResult,
			User:      addr,
		}
		inst, _, err := p.service.InitAndTrigger(p.job, addr, params.Encode(), attestation.TriggerOptions{})
		if err != nil {
			return fmt.Errorf("failed triggering job-instance: %w", err)
		}

		user.Instance = inst.ID
		user.Guess = guess
		user.Result = 0
		user.Won = false
		user.RequestedAt = t.Now().Unix()
		user.SettledAt = 0
		t.Put(addr, user)
		return nil
	})
}

// Settle finalizes the pending guess with the raw off-chain result. The
// caller must be the enclave signer of the job-instance recorded at guess
// time; the raw value is reduced into the guess range before comparison.
func (p *Simple) Settle(user, job, instance, signer types.Address, raw uint32) error {
	var ev models.GuessSettled
	err := p.ledger.Exec([]types.Address{signer}, func(t *ledger.Txn) error {
		if !t.HasSigner(signer) || !p.service.VerifyRequestSigner(job, instance, signer) {
			return ErrUnauthorized
		}
		var u models.UserState
		found, err := t.Get(user, &u)
		if err != nil {
			return err
		}
		if !found {
			return ErrUnknownUser
		}
		if job != p.job || u.Instance != instance {
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
func (p *Simple) Invoke(d callback.Descriptor) error {
	call, err := callback.DecodeSettle(d)
	if err != nil {
		return err
	}
	return p.Settle(call.User, call.Job, call.Instance, call.Signer, call.Raw)
}
