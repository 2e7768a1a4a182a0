package prof

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func withRecording(t *testing.T) {
	t.Helper()
	prev := Enabled()
	Enable(true)
	SnapshotAndReset()
	t.Cleanup(func() {
		Enable(prev)
		SnapshotAndReset()
	})
}

func TestStartAndSnapshot(t *testing.T) {
	withRecording(t)
	stop := Start("phase")
	stop()
	Track(time.Now(), "other")
	Track(time.Now(), "other")
	sums := SnapshotAndReset()
	if len(sums) != 2 {
		t.Fatalf("summaries = %v", sums)
	}
	counts := map[string]int{}
	for _, s := range sums {
		counts[s.Label] = s.Count
	}
	if counts["phase"] != 1 || counts["other"] != 2 {
		t.Fatalf("counts = %v", counts)
	}
	if len(SnapshotAndReset()) != 0 {
		t.Fatalf("totals not cleared")
	}
	var buf bytes.Buffer
	if err := Write(&buf, sums); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Count(buf.String(), "[timing]") != 2 {
		t.Fatalf("output:\n%s", buf.String())
	}
}

func TestSnapshotOrdersByTotal(t *testing.T) {
	withRecording(t)
	now := time.Now()
	Track(now.Add(-time.Millisecond), "a")
	Track(now.Add(-5*time.Millisecond), "b")
	Track(now.Add(-2*time.Millisecond), "a")
	sums := SnapshotAndReset()
	if len(sums) != 2 || sums[0].Label != "b" || sums[1].Label != "a" || sums[1].Count != 2 {
		t.Fatalf("summaries = %+v", sums)
	}
	if sums[1].Total < 3*time.Millisecond {
		t.Fatalf("total for a = %s", sums[1].Total)
	}
}

func TestRepeatedTrackKeepsOneSummary(t *testing.T) {
	withRecording(t)
	for i := 0; i < 20000; i++ {
		Track(time.Now(), "hot")
	}
	mu.Lock()
	size := len(totals)
	mu.Unlock()
	if size != 1 {
		t.Fatalf("%d labels held after one repeated label", size)
	}
	sums := SnapshotAndReset()
	if len(sums) != 1 || sums[0].Count != 20000 {
		t.Fatalf("summaries = %+v", sums)
	}
}

func TestDisabledRecordsNothing(t *testing.T) {
	withRecording(t)
	Enable(false)
	Track(time.Now(), "off")
	Start("off")()
	if sums := SnapshotAndReset(); len(sums) != 0 {
		t.Fatalf("recorded while disabled: %v", sums)
	}
}
