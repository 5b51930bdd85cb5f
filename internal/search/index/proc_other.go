//go:build !(darwin || linux || freebsd || netbsd || openbsd)

package index

import "os/exec"

func configureProcess(_ *exec.Cmd) {}
