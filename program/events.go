package program

import (
	log "github.com/sirupsen/logrus"

	"github.com/oracle-demos/randomness-demo/models"
)

// eventSink buffers settlement events for off-chain observers. Events are
// emitted only after the settling transaction commits; a full buffer drops
// the event rather than blocking settlement.
type eventSink struct {
	ch chan models.GuessSettled
}

func newEventSink() *eventSink {
	return &eventSink{ch: make(chan models.GuessSettled, 16)}
}

func (s *eventSink) emit(e models.GuessSettled) {
	select {
	case s.ch <- e:
	default:
		log.Warnf("event buffer full, dropping settlement event for %s", e.User)
	}
}
