//go:build unix && !linux

package ossignal

import (
	"os"

	"golang.org/x/sys/unix"
)

var powerOffSignals = []os.Signal{unix.SIGUSR2}
