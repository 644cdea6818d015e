// Package ledger is an in-process stand-in for serialized-by-consensus
// transaction processing: one operation executes at a time against the
// account store, and its writes become visible only if it returns nil.
package ledger

import (
	"sync"
	"time"

	"github.com/algorand/go-algorand-sdk/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/types"
)

type Ledger struct {
	mu       sync.Mutex
	accounts map[types.Address][]byte
	round    uint64
	now      func() time.Time
}

func New() *Ledger {
	return &Ledger{
		accounts: make(map[types.Address][]byte),
		now:      time.Now,
	}
}

// SetClock replaces the wall clock, for deterministic timestamps in tests.
func (l *Ledger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Round returns the round of the last executed transaction.
func (l *Ledger) Round() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.round
}

// Txn is the execution context of a single operation. Reads see committed
// state plus this operation's own staged writes.
type Txn struct {
	l       *Ledger
	staged  map[types.Address][]byte
	signers map[types.Address]bool
	round   uint64
	now     time.Time
}

// Exec runs op as one atomic transaction signed by the given accounts.
// A non-nil error from op discards every staged write.
func (l *Ledger) Exec(signers []types.Address, op func(*Txn) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.round++
	t := l.newTxn(signers)
	if err := op(t); err != nil {
		return err
	}
	for addr, blob := range t.staged {
		l.accounts[addr] = blob
	}
	return nil
}

// View runs op read-only: staged writes are discarded and no round is
// consumed.
func (l *Ledger) View(op func(*Txn) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return op(l.newTxn(nil))
}

func (l *Ledger) newTxn(signers []types.Address) *Txn {
	set := make(map[types.Address]bool, len(signers))
	for _, s := range signers {
		set[s] = true
	}
	return &Txn{
		l:       l,
		staged:  make(map[types.Address][]byte),
		signers: set,
		round:   l.round,
		now:     l.now(),
	}
}

func (t *Txn) Round() uint64 { return t.round }

func (t *Txn) Now() time.Time { return t.now }

// HasSigner reports whether addr signed the enclosing transaction.
func (t *Txn) HasSigner(addr types.Address) bool { return t.signers[addr] }

// Get decodes the account state at addr into out. It returns false when the
// account does not exist, leaving out untouched.
func (t *Txn) Get(addr types.Address, out interface{}) (bool, error) {
	if blob, ok := t.staged[addr]; ok {
		return true, msgpack.Decode(blob, out)
	}
	if blob, ok := t.l.accounts[addr]; ok {
		return true, msgpack.Decode(blob, out)
	}
	return false, nil
}

// Put stages the account state at addr. The value is committed only when the
// enclosing operation succeeds.
func (t *Txn) Put(addr types.Address, v interface{}) {
	t.staged[addr] = msgpack.Encode(v)
}
