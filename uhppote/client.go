package uhppote

import (
	"net"
	"time"

	"github.com/uhppoted/uhppote-go/logging"
)

// Controller identifies a target controller: its serial number, and
// optionally the network address and transport to reach it by. An
// absent Address means "discover by broadcast" for UDP calls; TCP
// always requires an Address.
type Controller struct {
	Serial   uint32
	Address  string // host:port; empty means broadcast (UDP only)
	Protocol string // "udp" (default) or "tcp"
}

// C builds a Controller descriptor that reaches serial by UDP
// broadcast — the normalized form of what the wire protocol calls a
// "bare serial" controller reference.
func C(serial uint32) Controller {
	return Controller{Serial: serial, Protocol: "udp"}
}

// At returns a copy of the controller descriptor addressed to a
// specific endpoint, keeping its current protocol (or defaulting to
// udp).
func (c Controller) At(address string) Controller {
	c.Address = address
	if c.Protocol == "" {
		c.Protocol = "udp"
	}
	return c
}

// Via returns a copy of the controller descriptor using the given
// transport ("udp" or "tcp").
func (c Controller) Via(protocol string) Controller {
	c.Protocol = protocol
	return c
}

func (c Controller) protocol() string {
	if c.Protocol == "" {
		return "udp"
	}
	return c.Protocol
}

// CallOption configures a single operation call, overriding the
// client's default timeout.
type CallOption func(*callConfig)

type callConfig struct {
	timeout time.Duration
}

// WithCallTimeout overrides the client's default timeout for a single
// call. The effective value is clamped to [50ms, 30s]; anything
// outside that range falls back to the 2.5s default.
func WithCallTimeout(d time.Duration) CallOption {
	return func(cfg *callConfig) {
		cfg.timeout = d
	}
}

// Client is the operation facade: one method per controller function,
// each encoding a request, dispatching it over UDP or TCP, and
// decoding the reply.
type Client struct {
	udp     *udpTransport
	tcp     *tcpTransport
	timeout time.Duration
	debug   bool
	logger  *logging.DebugLogger
	metrics *metricsCollector
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithBind sets the local address request sockets bind to. Default
// 0.0.0.0 (an ephemeral port on any interface).
func WithBind(addr string) Option {
	return func(c *Client) { c.udp.bind = addr; c.tcp.bind = addr }
}

// WithBroadcast sets the broadcast endpoint used for discovery and for
// unicast sends with no explicit destination. Default
// 255.255.255.255:60000.
func WithBroadcast(addr string) Option {
	return func(c *Client) { c.udp.broadcast = addr }
}

// WithListen sets the endpoint the event listener binds to. Default
// 0.0.0.0:60001.
func WithListen(addr string) Option {
	return func(c *Client) { c.udp.listen = addr }
}

// WithTimeout sets the client's default per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithDebug sets whether Connect installs the logger opened by
// WithDebugLog as the process-wide debug logger. The transports
// hex-dump every transmitted and received frame to whichever
// process-wide debug logger is installed (logging.SetGlobalDebugLogger):
// WithDebug(false) does not silence a logger installed elsewhere, and
// WithDebug(true) with no logger installed dumps nothing.
func WithDebug(enabled bool) Option {
	return func(c *Client) { c.debug = enabled }
}

// WithDebugLog installs a file-backed debug logger and enables frame
// dumping through it.
func WithDebugLog(path string) Option {
	return func(c *Client) {
		logger, err := logging.NewDebugLogger(path)
		if err != nil {
			return
		}
		c.logger = logger
		c.debug = true
	}
}

// WithMetrics registers Prometheus counters for calls, timeouts and
// other send/receive failures against reg, and enables their
// collection. A reply that arrives but fails to decode is counted as a
// call only.
// Metrics are entirely optional — a Client constructed without this
// option never touches the prometheus package at call time.
func WithMetrics(reg Registerer) Option {
	return func(c *Client) {
		c.metrics = newMetricsCollector(reg)
	}
}

// Connect builds a Client. There is no persistent connection to
// establish — every call opens, uses, and releases its own socket —
// so Connect's job is purely to resolve configuration defaults and
// apply options.
func Connect(opts ...Option) (*Client, error) {
	c := &Client{
		udp:     newUDPTransport("0.0.0.0", "255.255.255.255:60000", "0.0.0.0:60001"),
		tcp:     newTCPTransport("0.0.0.0"),
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.debug && c.logger != nil {
		logging.SetGlobalDebugLogger(c.logger)
	}

	return c, nil
}

// Close releases resources held by the client (currently, just its
// debug logger, if one was installed via WithDebugLog).
func (c *Client) Close() error {
	if c.logger != nil {
		return c.logger.Close()
	}
	return nil
}

func (c *Client) effectiveTimeout(opts []CallOption) time.Duration {
	cfg := callConfig{timeout: c.timeout}
	for _, opt := range opts {
		opt(&cfg)
	}
	return clampTimeout(cfg.timeout)
}

// call dispatches a single request/reply cycle for ctrl, choosing TCP
// when the controller's protocol is tcp and it has a known address,
// UDP otherwise (falling back to broadcast if ctrl has no address).
func (c *Client) call(ctrl Controller, frame []byte, opts ...CallOption) ([]byte, error) {
	timeout := c.effectiveTimeout(opts)

	var reply []byte
	var err error

	if ctrl.protocol() == "tcp" && ctrl.Address != "" {
		reply, err = c.tcp.sendRequest(frame, ctrl.Address, timeout)
	} else {
		reply, err = c.udp.sendRequest(frame, ctrl.Address, timeout)
	}

	c.metrics.observe(frame[1], err)
	return reply, err
}

func (c *Client) GetController(ctrl Controller, opts ...CallOption) (GetControllerResponse, error) {
	reply, err := c.call(ctrl, encodeGetController(ctrl.Serial), opts...)
	if err != nil {
		return GetControllerResponse{}, err
	}
	return decodeGetController(reply)
}

// GetAllControllers broadcasts a GetController request with serial=0
// and returns one record per reply observed before timeout elapses.
// Replies that fail to decode are skipped; an empty result is not an
// error.
func (c *Client) GetAllControllers(opts ...CallOption) ([]GetControllerResponse, error) {
	timeout := c.effectiveTimeout(opts)

	replies, err := c.udp.broadcastRequest(encodeGetController(0), timeout)
	if err != nil {
		return nil, err
	}

	controllers := make([]GetControllerResponse, 0, len(replies))
	for _, reply := range replies {
		if ctrl, err := decodeGetController(reply); err == nil {
			controllers = append(controllers, ctrl)
		}
	}
	return controllers, nil
}

// SetIP is fire-and-forget: the controller never replies to it, so
// this returns as soon as the request is on the wire.
func (c *Client) SetIP(ctrl Controller, address, netmask, gateway net.IP, opts ...CallOption) error {
	frame, err := encodeSetIP(ctrl.Serial, address, netmask, gateway)
	if err != nil {
		return err
	}
	_, err = c.call(ctrl, frame, opts...)
	return err
}

func (c *Client) GetTime(ctrl Controller, opts ...CallOption) (GetTimeResponse, error) {
	reply, err := c.call(ctrl, encodeGetTime(ctrl.Serial), opts...)
	if err != nil {
		return GetTimeResponse{}, err
	}
	return decodeGetTime(reply)
}

func (c *Client) SetTime(ctrl Controller, datetime time.Time, opts ...CallOption) (SetTimeResponse, error) {
	frame, err := encodeSetTime(ctrl.Serial, datetime)
	if err != nil {
		return SetTimeResponse{}, err
	}
	reply, err := c.call(ctrl, frame, opts...)
	if err != nil {
		return SetTimeResponse{}, err
	}
	return decodeSetTime(reply)
}

func (c *Client) GetStatus(ctrl Controller, opts ...CallOption) (GetStatusResponse, error) {
	reply, err := c.call(ctrl, encodeGetStatus(ctrl.Serial), opts...)
	if err != nil {
		return GetStatusResponse{}, err
	}
	return decodeGetStatus(reply)
}

func (c *Client) GetListener(ctrl Controller, opts ...CallOption) (GetListenerResponse, error) {
	reply, err := c.call(ctrl, encodeGetListener(ctrl.Serial), opts...)
	if err != nil {
		return GetListenerResponse{}, err
	}
	return decodeGetListener(reply)
}

func (c *Client) SetListener(ctrl Controller, address net.IP, port uint16, autosend uint8, opts ...CallOption) (SetListenerResponse, error) {
	frame, err := encodeSetListener(ctrl.Serial, address, port, autosend)
	if err != nil {
		return SetListenerResponse{}, err
	}
	reply, err := c.call(ctrl, frame, opts...)
	if err != nil {
		return SetListenerResponse{}, err
	}
	return decodeSetListener(reply)
}

func (c *Client) GetDoorControl(ctrl Controller, door uint8, opts ...CallOption) (GetDoorControlResponse, error) {
	frame, err := encodeGetDoorControl(ctrl.Serial, door)
	if err != nil {
		return GetDoorControlResponse{}, err
	}
	reply, err := c.call(ctrl, frame, opts...)
	if err != nil {
		return GetDoorControlResponse{}, err
	}
	return decodeGetDoorControl(reply)
}

func (c *Client) SetDoorControl(ctrl Controller, door, mode, delay uint8, opts ...CallOption) (SetDoorControlResponse, error) {
	frame, err := encodeSetDoorControl(ctrl.Serial, door, mode, delay)
	if err != nil {
		return SetDoorControlResponse{}, err
	}
	reply, err := c.call(ctrl, frame, opts...)
	if err != nil {
		return SetDoorControlResponse{}, err
	}
	return decodeSetDoorControl(reply)
}

func (c *Client) OpenDoor(ctrl Controller, door uint8, opts ...CallOption) (OpenDoorResponse, error) {
	frame, err := encodeOpenDoor(ctrl.Serial, door)
	if err != nil {
		return OpenDoorResponse{}, err
	}
	reply, err := c.call(ctrl, frame, opts...)
	if err != nil {
		return OpenDoorResponse{}, err
	}
	return decodeOpenDoor(reply)
}

func (c *Client) GetCards(ctrl Controller, opts ...CallOption) (GetCardsResponse, error) {
	reply, err := c.call(ctrl, encodeGetCards(ctrl.Serial), opts...)
	if err != nil {
		return GetCardsResponse{}, err
	}
	return decodeGetCards(reply)
}

func (c *Client) GetCard(ctrl Controller, cardNumber uint32, opts ...CallOption) (CardRecord, error) {
	reply, err := c.call(ctrl, encodeGetCard(ctrl.Serial, cardNumber), opts...)
	if err != nil {
		return CardRecord{}, err
	}
	return decodeGetCard(reply)
}

func (c *Client) GetCardByIndex(ctrl Controller, index uint32, opts ...CallOption) (CardRecord, error) {
	reply, err := c.call(ctrl, encodeGetCardByIndex(ctrl.Serial, index), opts...)
	if err != nil {
		return CardRecord{}, err
	}
	return decodeGetCardByIndex(reply)
}

func (c *Client) PutCard(ctrl Controller, req PutCardRequest, opts ...CallOption) (PutCardResponse, error) {
	frame, err := encodePutCard(ctrl.Serial, req)
	if err != nil {
		return PutCardResponse{}, err
	}
	reply, err := c.call(ctrl, frame, opts...)
	if err != nil {
		return PutCardResponse{}, err
	}
	return decodePutCard(reply)
}

func (c *Client) DeleteCard(ctrl Controller, cardNumber uint32, opts ...CallOption) (DeleteCardResponse, error) {
	reply, err := c.call(ctrl, encodeDeleteCard(ctrl.Serial, cardNumber), opts...)
	if err != nil {
		return DeleteCardResponse{}, err
	}
	return decodeDeleteCard(reply)
}

func (c *Client) DeleteAllCards(ctrl Controller, opts ...CallOption) (DeleteAllCardsResponse, error) {
	reply, err := c.call(ctrl, encodeDeleteAllCards(ctrl.Serial), opts...)
	if err != nil {
		return DeleteAllCardsResponse{}, err
	}
	return decodeDeleteAllCards(reply)
}

func (c *Client) GetEvent(ctrl Controller, eventIndex uint32, opts ...CallOption) (GetEventResponse, error) {
	reply, err := c.call(ctrl, encodeGetEvent(ctrl.Serial, eventIndex), opts...)
	if err != nil {
		return GetEventResponse{}, err
	}
	return decodeGetEvent(reply)
}

func (c *Client) GetEventIndex(ctrl Controller, opts ...CallOption) (GetEventIndexResponse, error) {
	reply, err := c.call(ctrl, encodeGetEventIndex(ctrl.Serial), opts...)
	if err != nil {
		return GetEventIndexResponse{}, err
	}
	return decodeGetEventIndex(reply)
}

func (c *Client) SetEventIndex(ctrl Controller, eventIndex uint32, opts ...CallOption) (SetEventIndexResponse, error) {
	reply, err := c.call(ctrl, encodeSetEventIndex(ctrl.Serial, eventIndex), opts...)
	if err != nil {
		return SetEventIndexResponse{}, err
	}
	return decodeSetEventIndex(reply)
}

func (c *Client) RecordSpecialEvents(ctrl Controller, enable bool, opts ...CallOption) (RecordSpecialEventsResponse, error) {
	reply, err := c.call(ctrl, encodeRecordSpecialEvents(ctrl.Serial, enable), opts...)
	if err != nil {
		return RecordSpecialEventsResponse{}, err
	}
	return decodeRecordSpecialEvents(reply)
}

func (c *Client) GetTimeProfile(ctrl Controller, profileID uint8, opts ...CallOption) (TimeProfileRecord, error) {
	reply, err := c.call(ctrl, encodeGetTimeProfile(ctrl.Serial, profileID), opts...)
	if err != nil {
		return TimeProfileRecord{}, err
	}
	return decodeGetTimeProfile(reply)
}

func (c *Client) SetTimeProfile(ctrl Controller, req TimeProfileRequest, opts ...CallOption) (SetTimeProfileResponse, error) {
	frame, err := encodeSetTimeProfile(ctrl.Serial, req)
	if err != nil {
		return SetTimeProfileResponse{}, err
	}
	reply, err := c.call(ctrl, frame, opts...)
	if err != nil {
		return SetTimeProfileResponse{}, err
	}
	return decodeSetTimeProfile(reply)
}

func (c *Client) DeleteAllTimeProfiles(ctrl Controller, opts ...CallOption) (DeleteAllTimeProfilesResponse, error) {
	reply, err := c.call(ctrl, encodeDeleteAllTimeProfiles(ctrl.Serial), opts...)
	if err != nil {
		return DeleteAllTimeProfilesResponse{}, err
	}
	return decodeDeleteAllTimeProfiles(reply)
}

func (c *Client) AddTask(ctrl Controller, req TaskRequest, opts ...CallOption) (AddTaskResponse, error) {
	frame, err := encodeAddTask(ctrl.Serial, req)
	if err != nil {
		return AddTaskResponse{}, err
	}
	reply, err := c.call(ctrl, frame, opts...)
	if err != nil {
		return AddTaskResponse{}, err
	}
	return decodeAddTask(reply)
}

func (c *Client) RefreshTasklist(ctrl Controller, opts ...CallOption) (RefreshTasklistResponse, error) {
	reply, err := c.call(ctrl, encodeRefreshTasklist(ctrl.Serial), opts...)
	if err != nil {
		return RefreshTasklistResponse{}, err
	}
	return decodeRefreshTasklist(reply)
}

func (c *Client) ClearTasklist(ctrl Controller, opts ...CallOption) (ClearTasklistResponse, error) {
	reply, err := c.call(ctrl, encodeClearTasklist(ctrl.Serial), opts...)
	if err != nil {
		return ClearTasklistResponse{}, err
	}
	return decodeClearTasklist(reply)
}

func (c *Client) SetPcControl(ctrl Controller, enable bool, opts ...CallOption) (SetPcControlResponse, error) {
	reply, err := c.call(ctrl, encodeSetPcControl(ctrl.Serial, enable), opts...)
	if err != nil {
		return SetPcControlResponse{}, err
	}
	return decodeSetPcControl(reply)
}

func (c *Client) SetInterlock(ctrl Controller, mode uint8, opts ...CallOption) (SetInterlockResponse, error) {
	frame, err := encodeSetInterlock(ctrl.Serial, mode)
	if err != nil {
		return SetInterlockResponse{}, err
	}
	reply, err := c.call(ctrl, frame, opts...)
	if err != nil {
		return SetInterlockResponse{}, err
	}
	return decodeSetInterlock(reply)
}

func (c *Client) ActivateKeypads(ctrl Controller, reader1, reader2, reader3, reader4 bool, opts ...CallOption) (ActivateKeypadsResponse, error) {
	reply, err := c.call(ctrl, encodeActivateKeypads(ctrl.Serial, reader1, reader2, reader3, reader4), opts...)
	if err != nil {
		return ActivateKeypadsResponse{}, err
	}
	return decodeActivateKeypads(reply)
}

func (c *Client) SetDoorPasscodes(ctrl Controller, door uint8, passcodes [4]uint32, opts ...CallOption) (SetDoorPasscodesResponse, error) {
	frame, err := encodeSetDoorPasscodes(ctrl.Serial, door, passcodes)
	if err != nil {
		return SetDoorPasscodesResponse{}, err
	}
	reply, err := c.call(ctrl, frame, opts...)
	if err != nil {
		return SetDoorPasscodesResponse{}, err
	}
	return decodeSetDoorPasscodes(reply)
}

func (c *Client) RestoreDefaultParameters(ctrl Controller, opts ...CallOption) (RestoreDefaultParametersResponse, error) {
	reply, err := c.call(ctrl, encodeRestoreDefaultParameters(ctrl.Serial), opts...)
	if err != nil {
		return RestoreDefaultParametersResponse{}, err
	}
	return decodeRestoreDefaultParameters(reply)
}

// Listen registers consumer for every decoded event frame and starts
// the listener loop in the background. onError, if non-nil, is called
// for frames that fail to decode or for a panicking consumer; the loop
// itself is never stopped by such errors. The returned cancel function
// stops the listener by closing its socket; addr reports the socket's
// bound local address, useful when WithListen names an ephemeral port.
func (c *Client) Listen(consumer func(Event), onError func(error)) (cancel func() error, addr *net.UDPAddr, err error) {
	return c.udp.listenLoop(func(frame []byte) {
		event, err := decodeEvent(frame)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		consumer(event)
	}, onError)
}
