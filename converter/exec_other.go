//go:build !windows

package converter

import "os/exec"

func hideWindow(cmd *exec.Cmd) {}
