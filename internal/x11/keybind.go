package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/tilewm/internal/platform"
)

// KeyBinder grabs key sequences on the root window. Each sequence is
// grabbed once; its bindings run in registration order.
type KeyBinder struct {
	xu       *xgbutil.XUtil
	root     xproto.Window
	bindings bindingTable
}

var _ platform.KeyBinder = (*KeyBinder)(nil)

type binding struct {
	callback func()
	removed  bool
}

// Remove stops the callback from firing. The X grab is kept for the other
// bindings of the sequence.
func (b *binding) Remove() { b.removed = true }

// bindingTable maps a grabbed sequence to its callbacks.
type bindingTable map[string][]*binding

// grabbed reports whether sequence already has an X grab behind it.
func (t bindingTable) grabbed(sequence string) bool {
	_, ok := t[sequence]
	return ok
}

func (t bindingTable) add(sequence string, callback func()) *binding {
	b := &binding{callback: callback}
	t[sequence] = append(t[sequence], b)
	return b
}

// dispatch prunes removed bindings, then runs a snapshot of the rest.
func (t bindingTable) dispatch(sequence string) {
	list := t[sequence]
	live := list[:0]
	for _, b := range list {
		if !b.removed {
			live = append(live, b)
		}
	}
	t[sequence] = live
	for _, b := range append([]*binding(nil), live...) {
		b.callback()
	}
}

func NewKeyBinder(conn *Connection) *KeyBinder {
	return &KeyBinder{
		xu:       conn.XUtil,
		root:     conn.Root,
		bindings: make(bindingTable),
	}
}

// BindKey registers callback for an xgbutil key sequence such as "Mod4-q".
func (k *KeyBinder) BindKey(sequence string, callback func()) (platform.Binding, error) {
	if !k.bindings.grabbed(sequence) {
		err := keybind.KeyPressFun(func(*xgbutil.XUtil, xevent.KeyPressEvent) {
			k.bindings.dispatch(sequence)
		}).Connect(k.xu, k.root, sequence, true)
		if err != nil {
			return nil, fmt.Errorf("bind %q: %w", sequence, err)
		}
	}
	return k.bindings.add(sequence, callback), nil
}

// configureIgnoreMods makes bindings fire regardless of CapsLock, NumLock and
// ScrollLock.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for _, mask := range maskSubsets(base) {
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

// maskSubsets returns the OR of every non-empty subset of base.
func maskSubsets(base []uint16) []uint16 {
	var out []uint16
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		out = append(out, mask)
	}
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
