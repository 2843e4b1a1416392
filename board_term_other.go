//go:build ios || android || js

package main

import "errors"

func termBoard(b *soundboard) error {
	return errors.New("no terminal on this platform")
}
