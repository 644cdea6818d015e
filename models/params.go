package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/algorand/go-algorand-sdk/types"
)

// ContainerParams are the callback parameters handed to the off-chain job on
// every trigger. They travel as a flat KEY=VALUE,... byte string so the
// enclave side can parse them without any program-specific codec.
type ContainerParams struct {
	ProgramID types.Address
	MinResult uint32
	MaxResult uint32
	User      types.Address
}

func (c ContainerParams) Encode() []byte {
	s := fmt.Sprintf(
		"PID=%s,MIN_RESULT=%d,MAX_RESULT=%d,USER=%s",
		c.ProgramID, c.MinResult, c.MaxResult, c.User,
	)
	return []byte(s)
}

// DecodeContainerParams parses the KEY=VALUE pairs, ignoring unknown keys.
// All four known keys are required.
func DecodeContainerParams(raw []byte) (ContainerParams, error) {
	var result ContainerParams
	var seenMin, seenMax bool
	for _, pair := range strings.Split(string(raw), ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "PID":
			addr, err := types.DecodeAddress(kv[1])
			if err != nil {
				return ContainerParams{}, fmt.Errorf("invalid PID: %v", err)
			}
			result.ProgramID = addr
		case "MIN_RESULT":
			v, err := strconv.ParseUint(kv[1], 10, 32)
			if err != nil {
				return ContainerParams{}, fmt.Errorf("invalid MIN_RESULT: %v", err)
			}
			result.MinResult = uint32(v)
			seenMin = true
		case "MAX_RESULT":
			v, err := strconv.ParseUint(kv[1], 10, 32)
			if err != nil {
				return ContainerParams{}, fmt.Errorf("invalid MAX_RESULT: %v", err)
			}
			result.MaxResult = uint32(v)
			seenMax = true
		case "USER":
			addr, err := types.DecodeAddress(kv[1])
			if err != nil {
				return ContainerParams{}, fmt.Errorf("invalid USER: %v", err)
			}
			result.User = addr
		}
	}
	if result.ProgramID == types.ZeroAddress {
		return ContainerParams{}, fmt.Errorf("PID cannot be undefined")
	}
	if result.User == types.ZeroAddress {
		return ContainerParams{}, fmt.Errorf("USER cannot be undefined")
	}
	if !seenMin || !seenMax {
		return ContainerParams{}, fmt.Errorf("MIN_RESULT and MAX_RESULT cannot be undefined")
	}
	return result, nil
}
