package uhppote

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/uhppoted/uhppote-go/logging"
)

// udpTransport implements broadcast discovery, unicast request/reply,
// and the bound listen loop, all over datagram sockets. Every call
// opens, uses, and closes its own socket — sockets are never shared
// between concurrent calls or with the listener.
type udpTransport struct {
	bind      string
	broadcast string
	listen    string
}

func newUDPTransport(bind, broadcast, listen string) *udpTransport {
	return &udpTransport{bind: bind, broadcast: broadcast, listen: listen}
}

func (t *udpTransport) dial() (*net.UDPConn, error) {
	bindAddr, err := resolveAddress(t.bind, 0)
	if err != nil {
		return nil, &TransportError{Transport: "udp", Address: t.bind, Err: err}
	}

	conn, err := net.ListenUDP("udp4", bindAddr)
	if err != nil {
		return nil, &TransportError{Transport: "udp", Address: t.bind, Err: err}
	}

	if err := enableBroadcast(conn); err != nil {
		conn.Close()
		return nil, &TransportError{Transport: "udp", Address: t.bind, Err: err}
	}

	return conn, nil
}

// enableBroadcast sets SO_BROADCAST on conn's underlying socket. Without
// it, a send to a broadcast address such as 255.255.255.255 fails with
// EACCES rather than going out on the wire.
func enableBroadcast(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var sockErr error
	if ctrlErr := raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	}); ctrlErr != nil {
		return ctrlErr
	}
	return sockErr
}

// broadcastRequest sends frame to the configured broadcast endpoint and
// collects every 64-byte reply that arrives within timeout. An empty
// result is not an error — it means no controller answered in time.
func (t *udpTransport) broadcastRequest(frame []byte, timeout time.Duration) ([][]byte, error) {
	conn, err := t.dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	dest, err := resolveAddress(t.broadcast, defaultDestinationPort)
	if err != nil {
		return nil, &TransportError{Transport: "udp", Address: t.broadcast, Err: err}
	}

	logging.DebugTX("udp", frame)
	if _, err := conn.WriteToUDP(frame, dest); err != nil {
		return nil, &TransportError{Transport: "udp", Address: t.broadcast, Err: err}
	}

	deadline := time.Now().Add(clampTimeout(timeout))

	var replies [][]byte
	buf := make([]byte, 2048)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		conn.SetReadDeadline(time.Now().Add(remaining))

		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			break // deadline exceeded or socket error; stop collecting
		}
		if n != frameSize {
			continue
		}

		reply := make([]byte, frameSize)
		copy(reply, buf[:n])
		logging.DebugRX("udp", reply)
		replies = append(replies, reply)
	}

	return replies, nil
}

// sendRequest sends frame to address (or the broadcast endpoint if
// address is empty) and waits up to timeout for a single 64-byte
// reply. SetIP requests return (nil, nil) immediately: the controller
// never acknowledges them.
func (t *udpTransport) sendRequest(frame []byte, address string, timeout time.Duration) ([]byte, error) {
	conn, err := t.dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	destAddr := t.broadcast
	if address != "" {
		destAddr = address
	}

	dest, err := resolveAddress(destAddr, defaultDestinationPort)
	if err != nil {
		return nil, &TransportError{Transport: "udp", Address: destAddr, Err: err}
	}

	logging.DebugTX("udp", frame)
	if _, err := conn.WriteToUDP(frame, dest); err != nil {
		return nil, &TransportError{Transport: "udp", Address: destAddr, Err: err}
	}

	if frame[1] == funcSetIP {
		return nil, nil
	}

	effective := clampTimeout(timeout)
	conn.SetReadDeadline(time.Now().Add(effective))

	buf := make([]byte, 2048)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return nil, &TimeoutError{Op: "udp send", Timeout: effective.Seconds()}
			}
			return nil, &TransportError{Transport: "udp", Address: destAddr, Err: err}
		}
		if n != frameSize {
			continue
		}

		reply := make([]byte, frameSize)
		copy(reply, buf[:n])
		logging.DebugRX("udp", reply)
		return reply, nil
	}
}

// listenLoop binds to the configured listen endpoint with no receive
// timeout and invokes consumer for every 64-byte datagram received,
// until the socket is closed (by cancel, or externally). Datagrams of
// any other length are silently dropped.
func (t *udpTransport) listenLoop(consumer func(frame []byte), onError func(error)) (cancel func() error, bound *net.UDPAddr, err error) {
	listenAddr, err := resolveAddress(t.listen, defaultListenerPort)
	if err != nil {
		return nil, nil, &TransportError{Transport: "udp", Address: t.listen, Err: err}
	}

	conn, err := net.ListenUDP("udp4", listenAddr)
	if err != nil {
		return nil, nil, &TransportError{Transport: "udp", Address: t.listen, Err: err}
	}

	go func() {
		buf := make([]byte, 2048)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				return // socket closed: listener cancelled
			}
			if n != frameSize {
				continue
			}

			frame := make([]byte, frameSize)
			copy(frame, buf[:n])
			logging.DebugRX("listen", frame)

			func() {
				defer func() {
					if r := recover(); r != nil && onError != nil {
						onError(fmt.Errorf("event consumer panicked: %v", r))
					}
				}()
				consumer(frame)
			}()
		}
	}()

	return conn.Close, conn.LocalAddr().(*net.UDPAddr), nil
}
