package config

import (
	"strconv"
	"strings"
)

// Section is one plugin's option table with typed accessors. Every accessor
// returns its default when the option is absent.
type Section struct {
	Name        string
	RefreshRate int
	Options     map[string]string
}

// Key is a key binding in xgbutil keybind notation.
type Key struct {
	Mods []string
	Key  string
}

// String renders the binding as "Mod4-Shift-e". A zero key renders empty.
func (k Key) String() string {
	if k.Key == "" {
		return ""
	}
	return strings.Join(append(append([]string{}, k.Mods...), k.Key), "-")
}

func (k Key) IsZero() bool { return k.Key == "" }

// Button is a pointer binding in xgbutil mousebind notation.
type Button struct {
	Mods   []string
	Button int
}

// String renders the binding as "Mod1-1". A zero button renders empty.
func (b Button) String() string {
	if b.Button == 0 {
		return ""
	}
	return strings.Join(append(append([]string{}, b.Mods...), strconv.Itoa(b.Button)), "-")
}

func (b Button) IsZero() bool { return b.Button == 0 }

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

var modifierNames = map[string]string{
	"<alt>":   "Mod1",
	"<ctrl>":  "Control",
	"<shift>": "Shift",
	"<super>": "Mod4",
}

var keyNames = map[string]string{
	"ENTER":     "Return",
	"ESC":       "Escape",
	"TAB":       "Tab",
	"SPACE":     "space",
	"BACKSPACE": "BackSpace",
	"DELETE":    "Delete",
	"LEFT":      "Left",
	"RIGHT":     "Right",
	"UP":        "Up",
	"DOWN":      "Down",
	"HOME":      "Home",
	"END":       "End",
	"PAGEUP":    "Prior",
	"PAGEDOWN":  "Next",
	"MINUS":     "minus",
	"EQUAL":     "equal",
}

func (s *Section) lookup(name string) (string, bool) {
	if s == nil || s.Options == nil {
		return "", false
	}
	v, ok := s.Options[name]
	return v, ok
}

func (s *Section) String(name, def string) string {
	if v, ok := s.lookup(name); ok {
		return v
	}
	return def
}

// Int parses a leading integer; unparsable values read as 0.
func (s *Section) Int(name string, def int) int {
	v, ok := s.lookup(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

func (s *Section) Double(name string, def float64) float64 {
	v, ok := s.lookup(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// Duration reads a value in milliseconds and returns it in frames at the
// section's refresh rate. def is in frames.
func (s *Section) Duration(name string, def int) int {
	frame := 1000 / s.refreshRate()
	if frame <= 0 {
		frame = 1
	}
	return s.Int(name, def*frame) / frame
}

func (s *Section) refreshRate() int {
	if s == nil || s.RefreshRate <= 0 {
		return DefaultRefreshRate
	}
	return s.RefreshRate
}

// Key parses either "<super> <shift> KEY_E" or native "Mod4-Shift-e".
// The value "none" disables the binding.
func (s *Section) Key(name string, def Key) Key {
	v, ok := s.lookup(name)
	if !ok {
		return def
	}
	return ParseKey(v)
}

func ParseKey(v string) Key {
	items := strings.Fields(v)
	if len(items) == 0 || v == "none" {
		return Key{}
	}
	if len(items) == 1 && !strings.HasPrefix(items[0], "KEY_") {
		parts := strings.Split(items[0], "-")
		return Key{Mods: parts[:len(parts)-1], Key: parts[len(parts)-1]}
	}

	var k Key
	for _, item := range items[:len(items)-1] {
		if mod, ok := modifierNames[item]; ok {
			k.Mods = append(k.Mods, mod)
		}
	}
	k.Key = keysym(items[len(items)-1])
	return k
}

func keysym(code string) string {
	name := strings.TrimPrefix(code, "KEY_")
	if mapped, ok := keyNames[name]; ok {
		return mapped
	}
	if len(name) == 1 {
		return strings.ToLower(name)
	}
	if name[0] == 'F' {
		if _, err := strconv.Atoi(name[1:]); err == nil {
			return name
		}
	}
	return name
}

// Button parses "<alt> left". Unknown button names yield button 0.
func (s *Section) Button(name string, def Button) Button {
	v, ok := s.lookup(name)
	if !ok {
		return def
	}
	if v == "none" {
		return Button{}
	}
	items := strings.Fields(v)
	if len(items) == 0 {
		return def
	}

	var b Button
	for _, item := range items[:len(items)-1] {
		if mod, ok := modifierNames[item]; ok {
			b.Mods = append(b.Mods, mod)
		}
	}
	switch items[len(items)-1] {
	case "left":
		b.Button = 1
	case "middle":
		b.Button = 2
	case "right":
		b.Button = 3
	}
	return b
}

// Color parses "r g b a". Missing components read as 0.
func (s *Section) Color(name string, def Color) Color {
	v, ok := s.lookup(name)
	if !ok {
		return def
	}
	var vals [4]float64
	for i, f := range strings.Fields(v) {
		if i >= len(vals) {
			break
		}
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			break
		}
		vals[i] = n
	}
	return Color{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}
}
