//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package ssdp

import "syscall"

var reuseControl func(network, address string, c syscall.RawConn) error
