// File: bollywood/process.go
package bollywood

import (
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor.
type process struct {
	engine   *Engine
	pid      *PID
	props    *Props
	actor    Actor
	mailbox  chan *messageEnvelope
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	size := props.mailboxSize
	if size <= 0 {
		size = defaultMailboxSize
	}
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, size),
		stopCh:  make(chan struct{}),
	}
}

func (p *process) signalStop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// deliver enqueues without blocking and reports whether it succeeded.
func (p *process) deliver(envelope *messageEnvelope) bool {
	if p.stopped.Load() && !isSystemMessage(envelope.Message) {
		return false
	}
	select {
	case p.mailbox <- envelope:
		return true
	default:
		log.Printf("WARN: bollywood: actor %s mailbox full, dropping %T", p.pid, envelope.Message)
		return false
	}
}

func (p *process) run() {
	defer func() {
		p.stopped.Store(true)
		if p.actor != nil {
			p.invokeReceive(&messageEnvelope{Message: Stopped{}})
		}
		p.engine.remove(p.pid)
	}()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: bollywood: actor %s panicked: %v\n%s", p.pid, r, debug.Stack())
			p.signalStop()
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		log.Printf("ERROR: bollywood: producer for %s returned nil", p.pid)
		return
	}

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) {
				p.invokeReceive(&messageEnvelope{Message: Stopping{}})
			}
			return

		case envelope := <-p.mailbox:
			switch envelope.Message.(type) {
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					p.invokeReceive(envelope)
				}
				p.signalStop()
			case Stopped:
			default:
				if p.stopped.Load() && !isSystemMessage(envelope.Message) {
					continue
				}
				p.invokeReceive(envelope)
			}
		}
	}
}

// invokeReceive calls the actor, containing panics to the single message.
func (p *process) invokeReceive(envelope *messageEnvelope) {
	ctx := &context{
		engine:  p.engine,
		self:    p.pid,
		sender:  envelope.Sender,
		message: envelope.Message,
		replyTo: envelope.replyTo,
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: bollywood: actor %s panicked during Receive(%T): %v\n%s", p.pid, envelope.Message, r, debug.Stack())
		}
	}()
	p.actor.Receive(ctx)
}
