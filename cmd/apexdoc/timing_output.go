package main

import (
	"encoding/json"
	"fmt"
	"io"

	"apexdoc/internal/driver"
	"apexdoc/internal/observ"
)

// phaseTimer feeds driver phase events into an observ.Timer. It returns a
// nil observer and timer when timings are off.
func phaseTimer(enabled bool) (driver.PhaseObserver, *observ.Timer) {
	if !enabled {
		return nil, nil
	}
	timer := observ.NewTimer()
	return func(ev driver.PhaseEvent) {
		switch ev.Status {
		case driver.PhaseStart:
			timer.Begin(ev.Name)
		case driver.PhaseEnd:
			timer.EndNamed(ev.Name, "")
		}
	}, timer
}

func printTimings(out io.Writer, timer *observ.Timer, asJSON bool) error {
	if timer == nil {
		return nil
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(timer.Report())
	}
	_, err := fmt.Fprint(out, timer.Summary())
	return err
}
