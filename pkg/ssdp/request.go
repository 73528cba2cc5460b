package ssdp

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// MethodSearch is the SSDP search method.
const MethodSearch = "M-SEARCH"

// Request is a parsed SSDP request datagram.
type Request struct {
	Method string
	ST     string
	MAN    string
	MX     int
	Host   string
}

// ParseRequest parses an SSDP datagram. SSDP requests use HTTP/1.1
// request syntax over UDP.
func ParseRequest(data []byte) (*Request, error) {
	hr, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("ssdp: malformed request: %w", err)
	}
	req := &Request{
		Method: hr.Method,
		ST:     strings.TrimSpace(hr.Header.Get("ST")),
		MAN:    strings.Trim(strings.TrimSpace(hr.Header.Get("MAN")), `"`),
		Host:   hr.Host,
	}
	if mx := strings.TrimSpace(hr.Header.Get("MX")); mx != "" {
		if n, err := strconv.Atoi(mx); err == nil {
			req.MX = n
		}
	}
	return req, nil
}

// IsSearch reports whether the request is an M-SEARCH.
func (r *Request) IsSearch() bool {
	return r.Method == MethodSearch
}
