//go:build linux

package web

import (
	"net"

	"golang.org/x/sys/unix"
)

// roundTrip returns the smoothed round trip time of conn, in
// milliseconds.
func roundTrip(conn net.Conn) (uint16, error) {
	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		return 0, errNotTCP
	}
	raw, err := tcp.SyscallConn()
	if err != nil {
		return 0, err
	}

	var info *unix.TCPInfo
	ctrlErr := raw.Control(func(fd uintptr) {
		info, err = unix.GetsockoptTCPInfo(int(fd), unix.IPPROTO_TCP, unix.TCP_INFO)
	})
	switch {
	case ctrlErr != nil:
		return 0, ctrlErr
	case err != nil:
		return 0, err
	}

	return uint16(info.Rtt / 1000), nil
}
