package tools

import (
	"fmt"
	"time"
)

type ActionFunc = func() error
type LogFunc = func(error)

// Retry implements an exponential backoff retry mechanism where:
// `initWait` is the initial wait duration (recommended = time.Second)
// `retries` is the maximum number of executions
// `action` is the function to execute
// `log` is the function to log errors occurred in each retry
func Retry(initWait time.Duration, retries int, action ActionFunc, log LogFunc) error {
	var err error
	timeToSleep := initWait
	for i := 0; i < retries; i++ {
		if timeToSleep <= 0 {
			return fmt.Errorf(
				"wait duration has become non-positive (%v) in try %d"+
					" (most likely a bug in arguments of Retry(%v, %d, ...))",
				timeToSleep, i,
				initWait, retries,
			)
		}
		err = action()
		if err == nil {
			return nil
		}
		log(err)
		time.Sleep(timeToSleep)
		timeToSleep *= 2
	}
	return err
}
