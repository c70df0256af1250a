package logging

import (
	"log/slog"
	"time"
)

// Timer logs the elapsed time of name at debug level when the returned func is called.
//
//	defer logging.Timer("pull")()
func Timer(name string) func() {
	start := time.Now()
	return func() {
		Debug(name+" finished", slog.Duration(KeyDuration, time.Since(start)))
	}
}
