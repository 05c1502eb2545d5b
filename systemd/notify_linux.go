// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build linux

package systemd

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"time"

	"go.astrophena.name/credit/cli"
	"go.astrophena.name/credit/logger"
)

// Notify sends a message to systemd using the sd_notify protocol. It does
// nothing when NOTIFY_SOCKET is not set.
// See https://www.freedesktop.org/software/systemd/man/sd_notify.html.
func Notify(ctx context.Context, state State) {
	addr := &net.UnixAddr{
		Net:  "unixgram",
		Name: cli.GetEnv(ctx).Getenv("NOTIFY_SOCKET"),
	}
	if addr.Name == "" {
		return
	}

	conn, err := net.DialUnix(addr.Net, nil, addr)
	if err != nil {
		logger.Error(ctx, "sdnotify failed", slog.String("state", string(state)), logger.Err(err))
		return
	}
	defer conn.Close()

	if _, err = conn.Write([]byte(state)); err != nil {
		logger.Error(ctx, "sdnotify failed", slog.String("state", string(state)), logger.Err(err))
	}
}

// Watchdog pings the systemd watchdog at half the configured interval until
// ctx is canceled. It returns immediately when the watchdog is not enabled
// for the service.
func Watchdog(ctx context.Context) {
	interval := watchdogInterval(ctx)
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval / 2)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				Notify(ctx, watchdog)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// watchdogInterval returns the watchdog interval configured in the unit file.
func watchdogInterval(ctx context.Context) time.Duration {
	s, err := strconv.Atoi(cli.GetEnv(ctx).Getenv("WATCHDOG_USEC"))
	if err != nil || s <= 0 {
		return 0
	}
	return time.Duration(s) * time.Microsecond
}
