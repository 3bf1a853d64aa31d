// Command chessengine is the UCI entry point: it wires internal/uci's
// protocol loop to stdin/stdout, exactly as Oliverans-GooseEngine's own
// uci.go does at the package-main level (a bare bufio.Scanner-driven loop
// with no flags), adapted to construct the engine through internal/uci's
// Protocol type instead of inlining the dispatch switch in main.
package main

import (
	"log"
	"os"

	"github.com/oliverans/chessengine/internal/uci"
)

func main() {
	errLog := log.New(os.Stderr, "", log.LstdFlags)
	p := uci.New(os.Stdin, os.Stdout, errLog)
	os.Exit(p.Run())
}
