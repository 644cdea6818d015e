// Package worker is the off-chain side of the demo: the attested function
// runner that consumes job triggers, derives the raw random value inside the
// enclave, and calls the program's settle instruction back with it.
package worker

import (
	"container/heap"
	"context"
	"encoding/binary"
	"time"

	"github.com/algorand/go-algorand-sdk/crypto"
	log "github.com/sirupsen/logrus"

	"github.com/oracle-demos/randomness-demo/attestation"
	"github.com/oracle-demos/randomness-demo/callback"
	"github.com/oracle-demos/randomness-demo/ledger"
	"github.com/oracle-demos/randomness-demo/models"
	"github.com/oracle-demos/randomness-demo/tools"
)

// Program is the settlement target of processed triggers.
type Program interface {
	Invoke(callback.Descriptor) error
}

type Worker struct {
	service *attestation.Service
	ledger  *ledger.Ledger
	program Program
	poll    time.Duration
}

func New(svc *attestation.Service, l *ledger.Ledger, p Program) *Worker {
	return &Worker{
		service: svc,
		ledger:  l,
		program: p,
		poll:    250 * time.Millisecond,
	}
}

// Run consumes the trigger queue until ctx is cancelled. Triggers scheduled
// for a future round are parked in a heap and re-dispatched once the ledger
// reaches their round.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()
	scheduled := &tools.TriggerHeap{}
	heap.Init(scheduled)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.service.Triggers():
			if !ok {
				return
			}
			if ev.ValidAfterRound > w.ledger.Round() {
				log.Debugf("parking trigger %s until round %d", ev.ID, ev.ValidAfterRound)
				heap.Push(scheduled, ev)
				continue
			}
			w.handle(ev)
		case <-ticker.C:
			for scheduled.Len() > 0 && (*scheduled)[0].ValidAfterRound <= w.ledger.Round() {
				w.handle(heap.Pop(scheduled).(attestation.TriggerEvent))
			}
		}
	}
}

// handle executes one trigger: derive the raw random value and submit the
// settle callback built from the trigger's container params.
func (w *Worker) handle(ev attestation.TriggerEvent) {
	if ev.ExpiresAtRound > 0 && w.ledger.Round() > ev.ExpiresAtRound {
		log.Warnf("trigger %s expired at round %d, skipping...", ev.ID, ev.ExpiresAtRound)
		return
	}
	params, err := models.DecodeContainerParams(ev.Params)
	if err != nil {
		log.Warnf("failed decoding params of trigger %s: %v. skipping...", ev.ID, err)
		return
	}
	signer, ok := w.service.EnclaveSigner(ev.Job)
	if !ok {
		log.Warnf("no enclave signer for job %s. skipping...", ev.Job)
		return
	}
	raw := RandomUint32()
	d := callback.EncodeSettle(params.ProgramID, raw, params.User, ev.Job, ev.Instance, signer)
	err = tools.Retry(500*time.Millisecond, 3,
		func() error {
			return w.program.Invoke(d)
		},
		func(err error) {
			log.Warnf("failed settling trigger %s, trying again...: %v", ev.ID, err)
		},
	)
	if err != nil {
		log.Warnf("giving up on trigger %s: %v", ev.ID, err)
		return
	}
	log.Infof("settled trigger %s for user %s (raw result %d)", ev.ID, params.User, raw)
}

// RandomUint32 reads 4 bytes from the randomness source, standing in for the
// enclave's hardware randomness.
func RandomUint32() uint32 {
	b := make([]byte, 4)
	crypto.RandomBytes(b)
	return binary.LittleEndian.Uint32(b)
}
