// Package uhppote implements a host-side client for UHPPOTE access
// control controllers. Controllers speak a fixed 64-byte binary frame
// over UDP (broadcast discovery, unicast request/reply, a long-lived
// event listener) and, on recent firmware, over unicast TCP.
//
// Construct a Client with Connect, then call one method per controller
// operation (GetController, GetStatus, GetCards, PutCard, and so on).
// Callers that never configure a controller's address can still reach
// it over UDP broadcast; TCP requires a known address.
package uhppote
