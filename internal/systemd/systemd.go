// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package systemd tells systemd when the documentation server is ready and
// keeps its watchdog fed.
package systemd

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.astrophena.name/tagdoc/internal/logger"
)

// State is a sd_notify protocol state.
// See https://www.freedesktop.org/software/systemd/man/sd_notify.html.
type State string

const (
	// Ready means the service finished starting up.
	Ready State = "READY=1"
	// Watchdog updates the watchdog timestamp.
	Watchdog State = "WATCHDOG=1"
)

// Notifier sends states to systemd. It does nothing when the process isn't
// run by systemd.
type Notifier struct {
	// Getenv looks up NOTIFY_SOCKET and WATCHDOG_USEC.
	Getenv func(string) string
	// Logf receives errors. They are never fatal.
	Logf logger.Logf
}

// Notify sends state to systemd.
func (n *Notifier) Notify(state State) {
	sock := n.Getenv("NOTIFY_SOCKET")
	if sock == "" {
		return
	}

	conn, err := net.DialUnix("unixgram", nil, &net.UnixAddr{Net: "unixgram", Name: sock})
	if err != nil {
		n.Logf.OrDiscard()("systemd: failed when notifying: %v", err)
		return
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(state)); err != nil {
		n.Logf.OrDiscard()("systemd: failed when notifying: %v", err)
	}
}

// WatchdogLoop sends [Watchdog] at the interval systemd asked for until ctx is
// canceled. It returns at once when the watchdog is off.
func (n *Notifier) WatchdogLoop(ctx context.Context) {
	usec := n.Getenv("WATCHDOG_USEC")
	if usec == "" {
		return
	}
	interval, err := watchdogInterval(usec)
	if err != nil {
		n.Logf.OrDiscard()("%v", err)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.Notify(Watchdog)
		case <-ctx.Done():
			return
		}
	}
}

func watchdogInterval(usec string) (time.Duration, error) {
	s, err := strconv.Atoi(usec)
	if err != nil {
		return 0, fmt.Errorf("systemd: invalid WATCHDOG_USEC: %w", err)
	}
	if s <= 0 {
		return 0, fmt.Errorf("systemd: WATCHDOG_USEC must be positive, got %d", s)
	}
	return time.Duration(s) * time.Microsecond, nil
}
