package jetpull

// Msg is a single message delivered for a consumer.
type Msg struct {
	Subject string
	Reply   string
	Data    []byte
	Headers *Headers

	ackPolicy AckPolicy
}

// AckPolicy reports the acknowledgment obligation attached to the
// message by the consumer it was fetched through. Enacting the
// obligation over Reply is up to the caller.
func (m *Msg) AckPolicy() AckPolicy {
	return m.ackPolicy
}

// NeedsAck reports whether the caller owes the server an explicit
// acknowledgment for this message.
func (m *Msg) NeedsAck() bool {
	return m.ackPolicy == AckExplicit
}

func (m Msg) String() string {
	return string(m.Data)
}
