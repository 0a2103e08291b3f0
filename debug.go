package rigging

import (
	"fmt"
	"os"
)

// globalDebug enables extra validation and stderr diagnostics.
var globalDebug bool

// SetDebug toggles debug diagnostics for the whole package.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugWarnDepthExceeded reports a reference chain that hit the composition
// depth guard. Assignment-time cycle filtering should make this unreachable;
// seeing it means cyclic or absurdly deep data reached disk by other means.
func debugWarnDepthExceeded(def *Definition) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[rigging] warning: reference chain below %q exceeds depth %d, truncating\n",
		def.Name, MaxComposeDepth)
}
