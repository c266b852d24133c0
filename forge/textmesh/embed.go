package textmesh

import "golang.org/x/image/font/gofont/goregular"

// DefaultTTF returns the Go Regular true type font file, used when no font
// blob is supplied by the caller.
func DefaultTTF() []byte {
	return append([]byte{}, goregular.TTF...) // copy contents.
}
