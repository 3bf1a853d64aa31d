package uci

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseGoParamsDecodesTimeControls(t *testing.T) {
	params, ponder := parseGoParams(strings.Fields("wtime 300000 btime 290000 winc 2000 binc 2000"))
	require.False(t, ponder)
	require.Equal(t, 300000*time.Millisecond, params.WTime)
	require.Equal(t, 2000*time.Millisecond, params.WInc)
}

func TestParseGoParamsRecognizesMoveTimeAndInfinite(t *testing.T) {
	params, _ := parseGoParams(strings.Fields("movetime 500"))
	require.Equal(t, 500*time.Millisecond, params.MoveTime)

	params, _ = parseGoParams(strings.Fields("infinite"))
	require.True(t, params.Infinite)
}

func TestParseGoParamsRecognizesPonder(t *testing.T) {
	_, ponder := parseGoParams(strings.Fields("ponder wtime 100000 btime 100000"))
	require.True(t, ponder)
}

func TestParseGoParamsIgnoresUnknownTokensWithoutAborting(t *testing.T) {
	params, _ := parseGoParams(strings.Fields("movestogo 40 depth 6"))
	require.Equal(t, 6, params.Depth)
}

func TestParseSetOptionSplitsNameAndValue(t *testing.T) {
	name, value, ok := parseSetOption(strings.Fields("name Hash value 128"))
	require.True(t, ok)
	require.Equal(t, "Hash", name)
	require.Equal(t, "128", value)
}

func TestParseSetOptionHandlesMultiWordNames(t *testing.T) {
	name, value, ok := parseSetOption(strings.Fields("name Clear Hash"))
	require.True(t, ok)
	require.Equal(t, "Clear Hash", name)
	require.Empty(t, value)
}

// newTestProtocol wires a Protocol to in-memory buffers so a UCI session can
// be driven end to end without touching stdin/stdout (spec.md §8's
// end-to-end scenario tests).
func newTestProtocol(input string) (*Protocol, *bytes.Buffer) {
	var out bytes.Buffer
	errLog := log.New(&out, "", 0)
	p := New(strings.NewReader(input), &out, errLog)
	return p, &out
}

func TestUCIHandshakeRespondsWithUciokAndReadyok(t *testing.T) {
	p, out := newTestProtocol("uci\nisready\nquit\n")
	code := p.Run()
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "uciok")
	require.Contains(t, out.String(), "readyok")
}

func TestGoMoveTimeFromStartPositionEmitsBestmove(t *testing.T) {
	p, out := newTestProtocol("position startpos\ngo movetime 100\nquit\n")
	p.useBook = false
	code := p.Run()
	require.Equal(t, 0, code)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "bestmove")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDCommandEmitsFenAndBoard(t *testing.T) {
	p, out := newTestProtocol("d\nquit\n")
	code := p.Run()
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "Fen:")
	require.Contains(t, out.String(), "Side to move: white")
}
