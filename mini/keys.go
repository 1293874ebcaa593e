package mini

import "github.com/poolsuite-cli/poolsuite/session"

const (
	keyEsc       = 0x1b
	keyInterrupt = 0x03
	keyEOT       = 0x04
)

// decode translates raw terminal bytes to session key names.
// Arrow keys arrive as ESC [ C and ESC [ D.
func decode(p []byte) []string {
	var keys []string

	for i := 0; i < len(p); i++ {
		switch c := p[i]; {
		case c == keyEsc:
			if i+2 < len(p) && p[i+1] == '[' {
				switch p[i+2] {
				case 'C':
					keys = append(keys, session.KeySeekForward)
				case 'D':
					keys = append(keys, session.KeySeekBack)
				}
				i += 2
				continue
			}
			keys = append(keys, session.KeyQuitAlt)
		case c == keyInterrupt, c == keyEOT:
			keys = append(keys, session.KeyInterrupt)
		case c == ' ':
			keys = append(keys, session.KeyPause)
		case c == '\t':
			keys = append(keys, session.KeySwitch)
		case c > ' ' && c < 0x7f:
			keys = append(keys, string(rune(c)))
		}
	}

	return keys
}
