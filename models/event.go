package models

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/types"
)

// GuessSettled is emitted once per settlement for off-chain observers.
type GuessSettled struct {
	User        types.Address
	Guess       uint32
	Result      uint32
	Won         bool
	RequestedAt int64
	SettledAt   int64
}

func (e GuessSettled) String() string {
	outcome := "lost"
	if e.Won {
		outcome = "won"
	}
	return fmt.Sprintf("user %s guessed %d, result %d, %s", e.User, e.Guess, e.Result, outcome)
}
