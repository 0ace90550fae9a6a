// File: bollywood/context.go
package bollywood

// Context gives an Actor access to the engine and the message being processed.
type Context interface {
	Engine() *Engine
	Self() *PID
	Sender() *PID
	Message() interface{}
	// Respond answers an Ask. It is a no-op for messages sent with Send.
	Respond(response interface{})
}

type context struct {
	engine  *Engine
	self    *PID
	sender  *PID
	message interface{}
	replyTo chan interface{}
}

func (c *context) Engine() *Engine      { return c.engine }
func (c *context) Self() *PID           { return c.self }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Message() interface{} { return c.message }

func (c *context) Respond(response interface{}) {
	if c.replyTo == nil {
		return
	}
	select {
	case c.replyTo <- response:
	default:
	}
}
