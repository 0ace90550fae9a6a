// File: bollywood/actor.go
package bollywood

// Actor processes the messages delivered to its mailbox one at a time.
type Actor interface {
	Receive(ctx Context)
}

// Producer creates a fresh Actor instance.
type Producer func() Actor

// Props describes how to build an actor.
type Props struct {
	producer    Producer
	mailboxSize int
}

// NewProps creates Props with the default mailbox size.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("bollywood: producer cannot be nil")
	}
	return &Props{producer: producer, mailboxSize: defaultMailboxSize}
}

// WithMailboxSize overrides the mailbox capacity.
func (p *Props) WithMailboxSize(size int) *Props {
	if size > 0 {
		p.mailboxSize = size
	}
	return p
}

func (p *Props) Produce() Actor {
	return p.producer()
}
