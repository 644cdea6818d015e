package ledger

import (
	"crypto/sha512"

	"github.com/algorand/go-algorand-sdk/types"
)

// addressDomainPrefix keeps derived account addresses out of the regular
// keypair address space.
const addressDomainPrefix = "RandomnessAccount"

// DeriveAddress maps a namespace tag plus a party identity to a deterministic
// account address. Pass the zero address as identity for singleton records.
func DeriveAddress(namespace string, identity types.Address) types.Address {
	buf := make([]byte, 0, len(addressDomainPrefix)+len(namespace)+len(identity))
	buf = append(buf, addressDomainPrefix...)
	buf = append(buf, namespace...)
	buf = append(buf, identity[:]...)
	return types.Address(sha512.Sum512_256(buf))
}
