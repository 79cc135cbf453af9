package cron

import (
	"log"
	"time"

	"googletrans-local/channel"
)

// StartTimer runs f every t until a quit signal arrives.
func StartTimer(t time.Duration, f func()) {
	go func() {
		ticker := time.NewTicker(t)
		defer ticker.Stop()
		for {
			select {
			case <-channel.Quit:
				log.Println("periodic host check stopped")
				return
			case <-ticker.C:
				f()
			}
		}
	}()
}
