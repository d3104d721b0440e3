//go:build windows

package external

import (
	"os/exec"
	"syscall"
)

// hideWindow keeps a console window from flashing up for the child.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
