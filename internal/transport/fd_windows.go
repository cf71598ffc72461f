//go:build windows

package transport

import "errors"

func writeFD(int, []byte) (int, error) {
	return 0, errors.New("descriptor channel is not available on windows")
}
