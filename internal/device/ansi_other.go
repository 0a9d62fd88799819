//go:build !unix

package device

import (
	"golang.org/x/term"
)

func makeRaw(int) (*term.State, error) {
	return nil, ErrUnsupported
}

func readAvailable(int) ([]byte, error) {
	return nil, ErrUnsupported
}
