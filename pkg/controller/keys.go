package controller

import "github.com/gdamore/tcell/v2"

// Key identifies a keypress: printable characters by rune, everything else by
// tcell.Key shifted past the rune range.
type Key int32

const specialKeyBase = 0x200000

// These constants refer to the keys bound to actions.
const (
	KeyN Key = 'n'
	KeyE Key = 'e'
	KeyD Key = 'd'
	KeyM Key = 'm'
	KeyF Key = 'f'
	KeyC Key = 'c'
	KeyQ Key = 'q'

	KeyEnter = Key(specialKeyBase + int32(tcell.KeyEnter))
	KeyEsc   = Key(specialKeyBase + int32(tcell.KeyEsc))
)

// AsKey converts a tcell event into a Key.
func AsKey(evt *tcell.EventKey) Key {
	if evt.Key() == tcell.KeyRune {
		return Key(evt.Rune())
	}

	return Key(specialKeyBase + int32(evt.Key()))
}

func (k Key) String() string {
	if k >= specialKeyBase {
		if name, ok := tcell.KeyNames[tcell.Key(k-specialKeyBase)]; ok {
			return name
		}

		return "?"
	}

	return string(rune(k))
}
