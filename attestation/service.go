// Package attestation models the external attestation/queue service the
// programs collaborate with. Jobs are registered computation definitions,
// instances are billable invocation contexts, and each job owns an enclave
// signer whose identity is the capability settlement callers must present.
// Measurement verification, queue bootstrapping and escrow accounting are
// out of scope; this stub only reproduces the interface the programs consume.
package attestation

import (
	"errors"
	"sync"

	"github.com/algorand/go-algorand-sdk/crypto"
	"github.com/algorand/go-algorand-sdk/types"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUnknownJob       = errors.New("unknown job")
	ErrUnknownInstance  = errors.New("unknown job-instance")
	ErrRequestsDisabled = errors.New("job does not accept requests")
	ErrQueueFull        = errors.New("trigger queue is full")
)

// Job is a registered off-chain computation definition.
type Job struct {
	ID        types.Address
	Authority types.Address
	Container string
	// EnclaveSigner is the attested identity the job's workers settle with.
	EnclaveSigner    types.Address
	RequestsDisabled bool
}

// Instance is one parameterized invocation context of a job, optionally
// bound long-term to one user.
type Instance struct {
	ID        types.Address
	Job       types.Address
	Authority types.Address
	Params    []byte
	SingleUse bool
}

// TriggerOptions mirror the optional knobs of a trigger call. Rounds are
// absolute ledger rounds; zero means unset.
type TriggerOptions struct {
	Bounty          uint64
	ValidAfterRound uint64
	ExpiresAtRound  uint64
}

// TriggerEvent is one queued invocation of a job-instance.
type TriggerEvent struct {
	ID              uuid.UUID
	Job             types.Address
	Instance        types.Address
	Params          []byte
	ValidAfterRound uint64
	ExpiresAtRound  uint64
}

type Service struct {
	mu        sync.Mutex
	jobs      map[types.Address]Job
	instances map[types.Address]Instance
	queue     chan TriggerEvent
}

func New() *Service {
	return &Service{
		jobs:      make(map[types.Address]Job),
		instances: make(map[types.Address]Instance),
		queue:     make(chan TriggerEvent, 64),
	}
}

// RegisterJob records a job definition and generates its enclave signer.
func (s *Service) RegisterJob(authority types.Address, container string) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job := Job{
		ID:            crypto.GenerateAccount().Address,
		Authority:     authority,
		Container:     container,
		EnclaveSigner: crypto.GenerateAccount().Address,
	}
	s.jobs[job.ID] = job
	log.Debugf("registered job %s (container %s)", job.ID, container)
	return job, nil
}

// Job returns a copy of the job definition.
func (s *Service) Job(id types.Address) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	return job, ok
}

// Instance returns a copy of the instance record.
func (s *Service) Instance(id types.Address) (Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[id]
	return inst, ok
}

// SetRequestsDisabled toggles whether new instances of the job are allowed.
func (s *Service) SetRequestsDisabled(jobID types.Address, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return ErrUnknownJob
	}
	job.RequestsDisabled = disabled
	s.jobs[jobID] = job
	return nil
}

// EnclaveSigner returns the attested signer identity of a job.
func (s *Service) EnclaveSigner(jobID types.Address) (types.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	return job.EnclaveSigner, ok
}

// CreateInstance creates a durable instance of a job bound to authority.
func (s *Service) CreateInstance(jobID, authority types.Address, params []byte) (Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createInstanceLocked(jobID, authority, params, false)
}

func (s *Service) createInstanceLocked(jobID, authority types.Address, params []byte, singleUse bool) (Instance, error) {
	job, ok := s.jobs[jobID]
	if !ok {
		return Instance{}, ErrUnknownJob
	}
	if job.RequestsDisabled {
		return Instance{}, ErrRequestsDisabled
	}
	inst := Instance{
		ID:        crypto.GenerateAccount().Address,
		Job:       jobID,
		Authority: authority,
		Params:    params,
		SingleUse: singleUse,
	}
	s.instances[inst.ID] = inst
	return inst, nil
}

// Trigger queues one invocation of an existing instance.
func (s *Service) Trigger(instanceID types.Address, opts TriggerOptions) (TriggerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[instanceID]
	if !ok {
		return TriggerEvent{}, ErrUnknownInstance
	}
	return s.triggerLocked(inst, opts)
}

// InitAndTrigger creates a single-use instance and queues it in one call,
// for callers that keep no durable instance binding.
func (s *Service) InitAndTrigger(jobID, authority types.Address, params []byte, opts TriggerOptions) (Instance, TriggerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, err := s.createInstanceLocked(jobID, authority, params, true)
	if err != nil {
		return Instance{}, TriggerEvent{}, err
	}
	ev, err := s.triggerLocked(inst, opts)
	if err != nil {
		return Instance{}, TriggerEvent{}, err
	}
	return inst, ev, nil
}

func (s *Service) triggerLocked(inst Instance, opts TriggerOptions) (TriggerEvent, error) {
	ev := TriggerEvent{
		ID:              uuid.New(),
		Job:             inst.Job,
		Instance:        inst.ID,
		Params:          inst.Params,
		ValidAfterRound: opts.ValidAfterRound,
		ExpiresAtRound:  opts.ExpiresAtRound,
	}
	select {
	case s.queue <- ev:
	default:
		return TriggerEvent{}, ErrQueueFull
	}
	log.Debugf("queued trigger %s for instance %s", ev.ID, inst.ID)
	return ev, nil
}

// Triggers is the worker-facing queue. Single consumer.
func (s *Service) Triggers() <-chan TriggerEvent {
	return s.queue
}

// VerifyRequestSigner is the capability check settlement relies on: true iff
// signer is the enclave signer of the job that owns the given instance.
func (s *Service) VerifyRequestSigner(jobID, instanceID, signer types.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[instanceID]
	if !ok || inst.Job != jobID {
		return false
	}
	job, ok := s.jobs[inst.Job]
	return ok && job.EnclaveSigner == signer
}
