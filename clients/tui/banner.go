package tui

import (
	"fmt"
	"io"
)

const logo = `
     _                          _              _
 ___(_)_ __ ___  _ __  ___  ___| |__   ___  __| |
/ __| | '_ ` + "`" + ` _ \| '_ \/ __|/ __| '_ \ / _ \/ _` + "`" + ` |
\__ \ | | | | | | |_) \__ \ (__| | | |  __/ (_| |
|___/_|_| |_| |_| .__/|___/\___|_| |_|\___|\__,_|
                |_|
`

// Banner returns the styled logo.
func Banner() string {
	return LogoStyle.Render(logo)
}

// Message writes a single informational line.
func Message(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, MessageStyle.Render(msg))
	return err
}

// ErrorMessage writes err on a single line.
func ErrorMessage(w io.Writer, err error) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: "+err.Error()))
}
