//go:build !linux

package web

import "net"

func roundTrip(net.Conn) (uint16, error) {
	return 0, errNotTCP
}
