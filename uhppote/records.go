package uhppote

import (
	"net"
	"time"
)

// GetControllerResponse is the decoded reply to a GetController request,
// and the per-controller element of a GetAllControllers broadcast.
type GetControllerResponse struct {
	Serial     uint32
	IPAddress  net.IP
	SubnetMask net.IP
	Gateway    net.IP
	MAC        net.HardwareAddr
	Version    string
	Date       Option[time.Time]
}

// GetTimeResponse and SetTimeResponse both echo the controller's clock.
type GetTimeResponse struct {
	Serial   uint32
	DateTime Option[time.Time]
}

type SetTimeResponse struct {
	Serial   uint32
	DateTime Option[time.Time]
}

// GetStatusResponse is the 24-field status snapshot. If EventIndex is
// zero, the Event* fields are forced absent regardless of their raw
// bytes (the controller reuses those bytes when there is no event to
// report).
type GetStatusResponse struct {
	Serial uint32

	EventIndex         uint32
	EventType          uint8
	EventAccessGranted bool
	EventDoor          uint8
	EventDirection     uint8
	EventCard          uint32
	EventTimestamp     Option[time.Time]
	EventReason        uint8

	Door1Open, Door2Open, Door3Open, Door4Open         bool
	Door1Button, Door2Button, Door3Button, Door4Button bool

	SystemError uint8
	SystemTime  Option[ClockTime]
	SequenceNo  uint32
	SpecialInfo uint8
	Relays      uint8
	Inputs      uint8
	SystemDate  Option[time.Time]
}

// Event is the unsolicited frame a controller sends to its configured
// listener endpoint. It shares GetStatusResponse's field layout, but
// unlike GetStatus, event_index == 0 does not force the event fields
// absent here.
type Event struct {
	Serial uint32

	EventIndex         uint32
	EventType          uint8
	EventAccessGranted bool
	EventDoor          uint8
	EventDirection     uint8
	EventCard          uint32
	EventTimestamp     Option[time.Time]
	EventReason        uint8

	Door1Open, Door2Open, Door3Open, Door4Open         bool
	Door1Button, Door2Button, Door3Button, Door4Button bool

	SystemError uint8
	SystemTime  Option[ClockTime]
	SequenceNo  uint32
	SpecialInfo uint8
	Relays      uint8
	Inputs      uint8
	SystemDate  Option[time.Time]
}

type GetListenerResponse struct {
	Serial  uint32
	Address net.IP
	Port    uint16
}

type SetListenerResponse struct {
	Serial uint32
	OK     bool
}

type GetDoorControlResponse struct {
	Serial uint32
	Door   uint8
	Mode   uint8
	Delay  uint8
}

type SetDoorControlResponse struct {
	Serial uint32
	Door   uint8
	Mode   uint8
	Delay  uint8
}

type OpenDoorResponse struct {
	Serial uint32
	Opened bool
}

type GetCardsResponse struct {
	Serial uint32
	Count  uint32
}

// CardRecord is the decoded reply to both GetCard and GetCardByIndex —
// the two operations differ only in how the record is looked up, not in
// its shape.
type CardRecord struct {
	Serial                         uint32
	CardNumber                     uint32
	StartDate                      Option[time.Time]
	EndDate                        Option[time.Time]
	Door1, Door2, Door3, Door4     uint8
	PIN                            uint32
}

type PutCardRequest struct {
	CardNumber                 uint32
	StartDate                  time.Time
	EndDate                    time.Time
	Door1, Door2, Door3, Door4 uint8
	PIN                        uint32
}

type PutCardResponse struct {
	Serial uint32
	Stored bool
}

type DeleteCardResponse struct {
	Serial  uint32
	Deleted bool
}

type DeleteAllCardsResponse struct {
	Serial  uint32
	Deleted bool
}

type GetEventResponse struct {
	Serial        uint32
	Index         uint32
	EventType     uint8
	AccessGranted bool
	Door          uint8
	Direction     uint8
	Card          uint32
	Timestamp     Option[time.Time]
	Reason        uint8
}

type GetEventIndexResponse struct {
	Serial     uint32
	EventIndex uint32
}

type SetEventIndexResponse struct {
	Serial  uint32
	Updated bool
}

type RecordSpecialEventsResponse struct {
	Serial  uint32
	Updated bool
}

// TimeProfileRequest describes a weekly schedule with up to three
// disjoint time-of-day segments. A segment left as its zero value
// encodes as the null marker 00:00 on the wire.
type TimeProfileRequest struct {
	ProfileID                                             uint8
	StartDate, EndDate                                    time.Time
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday bool
	Segment1Start, Segment1End                            ClockTime
	Segment2Start, Segment2End                            ClockTime
	Segment3Start, Segment3End                            ClockTime
	LinkedProfileID                                       uint8
}

type TimeProfileRecord struct {
	Serial                                                         uint32
	ProfileID                                                      uint8
	StartDate, EndDate                                             Option[time.Time]
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday bool
	Segment1Start, Segment1End                                     Option[ClockTime]
	Segment2Start, Segment2End                                     Option[ClockTime]
	Segment3Start, Segment3End                                     Option[ClockTime]
	LinkedProfileID                                                uint8
}

type SetTimeProfileResponse struct {
	Serial uint32
	Stored bool
}

type DeleteAllTimeProfilesResponse struct {
	Serial  uint32
	Deleted bool
}

// TaskRequest describes a scheduled door action.
type TaskRequest struct {
	StartDate, EndDate                                             time.Time
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday bool
	StartTime                                                      ClockTime
	Door                                                            uint8
	TaskType                                                        uint8
	MoreCards                                                       uint8
}

type AddTaskResponse struct {
	Serial uint32
	Added  bool
}

type RefreshTasklistResponse struct {
	Serial     uint32
	Refreshed bool
}

type ClearTasklistResponse struct {
	Serial  uint32
	Cleared bool
}

type SetPcControlResponse struct {
	Serial uint32
	OK     bool
}

type SetInterlockResponse struct {
	Serial uint32
	OK     bool
}

type ActivateKeypadsResponse struct {
	Serial uint32
	OK     bool
}

type SetDoorPasscodesResponse struct {
	Serial uint32
	OK     bool
}

type RestoreDefaultParametersResponse struct {
	Serial uint32
	OK     bool
}
