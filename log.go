// log.go
package redcore

import (
	"io"
	"log"
)

// NewLoggers builds the four loggers the engine uses: journald-style
// stdout, access, error, and debug. Mirrors the teacher's setupLogging
// (log.go), but takes writers instead of hardcoded file paths since
// redcore is a library and can't assume a filesystem layout.
func NewLoggers(journald, access, errw, debug io.Writer) (j, a, e, d *log.Logger) {
	j = log.New(journald, "", log.LstdFlags)
	a = log.New(access, "ACCESS: ", log.LstdFlags)
	e = log.New(errw, "ERROR: ", log.LstdFlags)
	d = log.New(debug, "DEBUG: ", log.LstdFlags)
	return
}
