package uci

import (
	"strconv"
	"strings"
	"time"

	"github.com/oliverans/chessengine/internal/search"
)

// parseGoParams decodes a `go` command's subcommands into search.GoParams,
// grounded on the teacher's uci.go token-by-token scanning idiom (scan a
// keyword, then scan its value), adapted to the fuller `go` vocabulary
// spec.md §6 lists (movetime, infinite, ponder, depth alongside wtime/
// btime/winc/binc). Unrecognized tokens are ignored rather than aborting
// the whole command, matching spec.md §7's "malformed input: log, ignore".
func parseGoParams(args []string) (search.GoParams, bool) {
	var params search.GoParams
	ponder := false

	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "infinite":
			params.Infinite = true
		case "ponder":
			ponder = true
		case "movetime":
			if v, ok := nextInt(args, &i); ok {
				params.MoveTime = time.Duration(v) * time.Millisecond
			}
		case "depth":
			if v, ok := nextInt(args, &i); ok {
				params.Depth = v
			}
		case "wtime":
			if v, ok := nextInt(args, &i); ok {
				params.WTime = time.Duration(v) * time.Millisecond
			}
		case "btime":
			if v, ok := nextInt(args, &i); ok {
				params.BTime = time.Duration(v) * time.Millisecond
			}
		case "winc":
			if v, ok := nextInt(args, &i); ok {
				params.WInc = time.Duration(v) * time.Millisecond
			}
		case "binc":
			if v, ok := nextInt(args, &i); ok {
				params.BInc = time.Duration(v) * time.Millisecond
			}
		case "movestogo", "nodes", "mate":
			// Accepted and ignored: spec.md's time formula doesn't use
			// movestogo, and nodes/mate limits aren't part of this engine.
			nextInt(args, &i)
		}
	}
	return params, ponder
}

// nextInt consumes the token after args[*i] as an integer, advancing *i
// past it. Returns false (without advancing) if there is no next token or
// it doesn't parse, leaving the malformed tail for the next loop iteration
// to skip over one token at a time.
func nextInt(args []string, i *int) (int, bool) {
	if *i+1 >= len(args) {
		return 0, false
	}
	v, err := strconv.Atoi(args[*i+1])
	if err != nil {
		return 0, false
	}
	*i++
	return v, true
}

// parseSetOption decodes `setoption name <N> value <V>` into a name/value
// pair. Names and values may each contain spaces per the UCI spec, so this
// splits on the literal "value" token rather than treating every field as
// a single word.
func parseSetOption(args []string) (name, value string, ok bool) {
	joined := strings.Join(args, " ")
	const namePrefix = "name "
	if !strings.HasPrefix(strings.ToLower(joined), namePrefix) {
		return "", "", false
	}
	rest := joined[len(namePrefix):]
	lower := strings.ToLower(rest)
	valueIdx := strings.Index(lower, " value ")
	if valueIdx < 0 {
		return strings.TrimSpace(rest), "", true
	}
	name = strings.TrimSpace(rest[:valueIdx])
	value = strings.TrimSpace(rest[valueIdx+len(" value "):])
	return name, value, true
}
