//go:build !windows

package transport

import "golang.org/x/sys/unix"

func writeFD(fd int, msg []byte) (int, error) {
	return unix.Write(fd, msg)
}
