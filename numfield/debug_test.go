package numfield

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	logging "github.com/ipfs/go-log/v2"

	"anf-kernel/prof"
)

func TestEnableDebugLog(t *testing.T) {
	if err := enableDebugLog(); err != nil {
		t.Fatalf("enableDebugLog: %v", err)
	}
	t.Cleanup(func() { _ = logging.SetLogLevel("numfield", "error") })
	if err := logging.SetLogLevel("numfield-missing", "debug"); !errors.Is(err, logging.ErrNoSuchLogger) {
		t.Fatalf("unknown subsystem: err = %v", err)
	}
}

func TestProfilingOffByDefault(t *testing.T) {
	if prof.Enabled() {
		t.Skip("NUMFIELD_PROF is set")
	}
	r := mustRing(t, 1, 0, 1)
	for i := 0; i < 50; i++ {
		if _, err := r.EulerPhi(principal(r, 30)); err != nil {
			t.Fatalf("EulerPhi: %v", err)
		}
	}
	if sums := prof.SnapshotAndReset(); len(sums) != 0 {
		t.Fatalf("timings recorded with profiling off: %v", sums)
	}
}

func TestWriteTimings(t *testing.T) {
	prof.Enable(true)
	t.Cleanup(func() { prof.Enable(profOn) })
	r := mustRing(t, -2, 0, 0, 1)
	if _, err := r.SplitPrime(big.NewInt(17)); err != nil {
		t.Fatalf("SplitPrime: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteTimings(&buf); err != nil {
		t.Fatalf("WriteTimings: %v", err)
	}
	if !strings.Contains(buf.String(), "numfield.SplitPrime") {
		t.Fatalf("timings:\n%s", buf.String())
	}
	prof.Enable(false)
	buf.Reset()
	if err := WriteTimings(&buf); err != nil || buf.Len() != 0 {
		t.Fatalf("disabled: %q, %v", buf.String(), err)
	}
}
