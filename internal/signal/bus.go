// Package signal implements the named publish/subscribe dispatcher used to
// propagate output, view and plugin lifecycle events.
//
// A Bus is owned by the event-loop thread and is not safe for concurrent use.
package signal

// Well-known signal names.
const (
	AttachView    = "attach-view"
	DestroyView   = "destroy-view"
	OutputResized = "output-resized"
	ReloadContext = "reload-gl"
	Frame         = "frame"
	FocusOutput   = "focus-output"
)

// Listener receives the payload of an emission.
type Listener func(payload any)

// Token identifies one subscription. The zero Token is never issued.
type Token struct {
	name string
	id   uint64
}

// Name returns the signal name the token was issued for.
func (t Token) Name() string { return t.name }

type subscription struct {
	id       uint64
	listener Listener
}

// Bus is a named publish/subscribe dispatcher.
type Bus struct {
	nextID uint64
	subs   map[string][]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe appends listener to the listeners of name.
func (b *Bus) Subscribe(name string, listener Listener) Token {
	b.nextID++
	tok := Token{name: name, id: b.nextID}
	b.subs[name] = append(b.subs[name], subscription{id: tok.id, listener: listener})
	return tok
}

// Unsubscribe removes the subscription identified by tok. Unknown or already
// removed tokens are ignored.
func (b *Bus) Unsubscribe(tok Token) {
	list := b.subs[tok.name]
	for i, s := range list {
		if s.id != tok.id {
			continue
		}
		// Build a fresh slice so snapshots held by an in-flight Emit stay intact.
		next := make([]subscription, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(b.subs, tok.name)
		} else {
			b.subs[tok.name] = next
		}
		return
	}
}

// Emit invokes, in subscription order, every listener subscribed to name at
// the moment Emit is called.
func (b *Bus) Emit(name string, payload any) {
	list := b.subs[name]
	if len(list) == 0 {
		return
	}
	snapshot := make([]Listener, len(list))
	for i, s := range list {
		snapshot[i] = s.listener
	}
	for _, l := range snapshot {
		l(payload)
	}
}

// Count returns the number of listeners currently subscribed to name.
func (b *Bus) Count(name string) int {
	return len(b.subs[name])
}
