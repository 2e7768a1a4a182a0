package numfield

import (
	"io"
	"os"

	logging "github.com/ipfs/go-log/v2"

	"anf-kernel/prof"
)

var log = logging.Logger("numfield")

var (
	debugOn  = os.Getenv("NUMFIELD_DEBUG") == "1"
	checksOn = os.Getenv("NUMFIELD_CHECKS") == "1"
	profOn   = os.Getenv("NUMFIELD_PROF") == "1"
)

func init() {
	if debugOn {
		if err := enableDebugLog(); err != nil {
			log.Warnf("NUMFIELD_DEBUG set but debug logging unavailable: %v", err)
		}
	}
	if profOn {
		prof.Enable(true)
	}
}

func enableDebugLog() error {
	return logging.SetLogLevel("numfield", "debug")
}

func dbg(f string, a ...any) {
	if debugOn {
		log.Debugf(f, a...)
	}
}

// WriteTimings writes the per-phase timings collected since the last call.
// Timings are only collected when NUMFIELD_PROF=1.
func WriteTimings(w io.Writer) error {
	if !prof.Enabled() {
		return nil
	}
	return prof.Write(w, prof.SnapshotAndReset())
}
