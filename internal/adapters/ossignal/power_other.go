//go:build !unix

package ossignal

import "os"

var powerOffSignals []os.Signal
