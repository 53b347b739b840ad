package uhppote

import (
	"io"
	"net"
	"time"

	"github.com/uhppoted/uhppote-go/logging"
)

// tcpTransport implements unicast request/reply over a stream socket.
// Unlike UDP, TCP has no broadcast form — every call requires an
// explicit destination address.
type tcpTransport struct {
	bind string
}

func newTCPTransport(bind string) *tcpTransport {
	return &tcpTransport{bind: bind}
}

// sendRequest dials address, writes the 64-byte frame, and (unless the
// frame is SetIP) reads until a 64-byte reply arrives or timeout
// elapses. The socket is closed on every exit path.
func (t *tcpTransport) sendRequest(frame []byte, address string, timeout time.Duration) ([]byte, error) {
	dest, err := resolveAddress(address, defaultDestinationPort)
	if err != nil {
		return nil, &TransportError{Transport: "tcp", Address: address, Err: err}
	}

	var localAddr *net.TCPAddr
	if !isUnspecified(t.bind) {
		bindAddr, err := resolveAddress(t.bind, 0)
		if err != nil {
			return nil, &TransportError{Transport: "tcp", Address: t.bind, Err: err}
		}
		localAddr = &net.TCPAddr{IP: bindAddr.IP, Port: bindAddr.Port}
	}

	dialer := net.Dialer{LocalAddr: localAddr, Timeout: clampTimeout(timeout)}

	conn, err := dialer.Dial("tcp4", (&net.TCPAddr{IP: dest.IP, Port: dest.Port}).String())
	if err != nil {
		return nil, &TransportError{Transport: "tcp", Address: address, Err: err}
	}
	defer conn.Close()

	effective := clampTimeout(timeout)
	conn.SetDeadline(time.Now().Add(effective))

	logging.DebugTX("tcp", frame)
	if _, err := conn.Write(frame); err != nil {
		return nil, &TransportError{Transport: "tcp", Address: address, Err: err}
	}

	if frame[1] == funcSetIP {
		return nil, nil
	}

	reply := make([]byte, frameSize)
	if _, err := io.ReadFull(conn, reply); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, &TimeoutError{Op: "tcp send", Timeout: effective.Seconds()}
		}
		return nil, &TransportError{Transport: "tcp", Address: address, Err: err}
	}

	logging.DebugRX("tcp", reply)
	return reply, nil
}
