// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build !linux

package systemd

import "context"

// Notify does nothing: there is no systemd to report watch mode progress to.
func Notify(context.Context, State) {}

// Watchdog does nothing and returns immediately.
func Watchdog(context.Context) {}
