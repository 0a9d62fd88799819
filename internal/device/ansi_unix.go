//go:build unix

package device

import (
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func makeRaw(fd int) (*term.State, error) {
	return term.MakeRaw(fd)
}

// readAvailable returns whatever input is ready on fd without blocking.
func readAvailable(fd int) ([]byte, error) {
	var out []byte
	buf := make([]byte, 256)

	for {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, 0)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return out, err
		}
		if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			return out, nil
		}

		rn, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return out, err
		}
		if rn == 0 {
			return out, nil
		}
		out = append(out, buf[:rn]...)
	}
}
