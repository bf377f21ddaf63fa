//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The window build of snake requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/snake`, or try ./cmd/snake-web or ./cmd/snake-term.")
	os.Exit(2)
}
