// Package ssdp answers SSDP M-SEARCH requests on behalf of the mock gateway.
//
// The responder listens on a UDP socket, optionally joined to the SSDP
// multicast group, and replies to searches for ssdp:all, upnp:rootdevice,
// the InternetGatewayDevice type and the WANIPConnection service type with
// a LOCATION pointing at the gateway's root description. Each answered
// search is recorded in the request log as a discovery entry.
package ssdp
