// Copyright (C) 2023  Afnan Enayet

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var termRestore unix.Termios

// enterRawTerm puts stdin into raw mode so the machine sees keystrokes
// without line buffering or local echo. Piped input is left alone.
func enterRawTerm() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}

	if err := termios.Tcgetattr(os.Stdin.Fd(), &termRestore); err != nil {
		panic(err)
	}

	termstate := termRestore
	termstate.Lflag &^= unix.ICANON | unix.ECHO

	if err := termios.Tcsetattr(
		os.Stdin.Fd(), termios.TCSANOW, &termstate,
	); err != nil {
		panic(err)
	}
}

func exitRawTerm() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}

	if err := termios.Tcsetattr(
		os.Stdin.Fd(), termios.TCSANOW, &termRestore,
	); err != nil {
		panic(err)
	}
}
