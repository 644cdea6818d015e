// Package callback defines the instruction descriptor the off-chain worker
// hands back to the program: a plain serializable value carrying a tag, the
// raw result and the account list, never executable code.
package callback

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"
	"errors"

	"github.com/algorand/go-algorand-sdk/types"
)

var (
	ErrUnknownDiscriminator = errors.New("unknown instruction discriminator")
	ErrMalformedDescriptor  = errors.New("malformed instruction descriptor")
)

// Discriminator derives the 8-byte instruction tag for a method name.
func Discriminator(name string) [8]byte {
	h := sha512.Sum512_256([]byte("ixn:" + name))
	var d [8]byte
	copy(d[:], h[:8])
	return d
}

var SettleDiscriminator = Discriminator("settle")

type AccountMeta struct {
	Address  types.Address
	Writable bool
	Signer   bool
}

// Descriptor is one callback instruction: 8-byte discriminator followed by
// instruction-specific data, plus the accounts the instruction touches.
type Descriptor struct {
	ProgramID types.Address
	Data      []byte
	Accounts  []AccountMeta
}

// SettleCall is the decoded form of a settle descriptor.
type SettleCall struct {
	Raw      uint32
	User     types.Address
	Job      types.Address
	Instance types.Address
	Signer   types.Address
}

// EncodeSettle builds the settle descriptor.
//
// DATA (12 bytes): [0-8) discriminator, [8-12) raw result as LE u32.
// ACCOUNTS: user (writable), job, instance, enclave signer (signer).
func EncodeSettle(programID types.Address, raw uint32, user, job, instance, signer types.Address) Descriptor {
	data := make([]byte, 12)
	copy(data[:8], SettleDiscriminator[:])
	binary.LittleEndian.PutUint32(data[8:], raw)
	return Descriptor{
		ProgramID: programID,
		Data:      data,
		Accounts: []AccountMeta{
			{Address: user, Writable: true},
			{Address: job},
			{Address: instance},
			{Address: signer, Signer: true},
		},
	}
}

// DecodeSettle validates the tag, data length and account layout.
func DecodeSettle(d Descriptor) (SettleCall, error) {
	if len(d.Data) < 8 {
		return SettleCall{}, ErrMalformedDescriptor
	}
	if !bytes.Equal(d.Data[:8], SettleDiscriminator[:]) {
		return SettleCall{}, ErrUnknownDiscriminator
	}
	if len(d.Data) != 12 || len(d.Accounts) != 4 {
		return SettleCall{}, ErrMalformedDescriptor
	}
	if !d.Accounts[0].Writable || !d.Accounts[3].Signer {
		return SettleCall{}, ErrMalformedDescriptor
	}
	return SettleCall{
		Raw:      binary.LittleEndian.Uint32(d.Data[8:]),
		User:     d.Accounts[0].Address,
		Job:      d.Accounts[1].Address,
		Instance: d.Accounts[2].Address,
		Signer:   d.Accounts[3].Address,
	}, nil
}
