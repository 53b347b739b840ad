package uhppote

const frameSize = 64

const (
	somNormal = 0x17
	somEvent  = 0x19 // firmware v6.62 variant, valid only paired with funcGetStatus
)

// Function codes, per the wire protocol's operation catalog.
const (
	funcGetController           = 0x94
	funcSetIP                   = 0x96
	funcGetTime                 = 0x32
	funcSetTime                 = 0x30
	funcGetStatus               = 0x20 // also used for the unsolicited event frame
	funcGetListener             = 0x92
	funcSetListener             = 0x90
	funcGetDoorControl          = 0x82
	funcSetDoorControl          = 0x80
	funcOpenDoor                = 0x40
	funcGetCards                = 0x58
	funcGetCard                 = 0x5a
	funcGetCardByIndex          = 0x5c
	funcPutCard                 = 0x50
	funcDeleteCard              = 0x52
	funcDeleteAllCards          = 0x54
	funcGetEvent                = 0xb0
	funcGetEventIndex           = 0xb4
	funcSetEventIndex           = 0xb2
	funcRecordSpecialEvents     = 0x8e
	funcGetTimeProfile          = 0x98
	funcSetTimeProfile          = 0x88
	funcDeleteAllTimeProfiles   = 0x8a
	funcAddTask                 = 0xa8
	funcRefreshTasklist         = 0xac
	funcClearTasklist           = 0xa6
	funcSetPcControl            = 0xa0
	funcSetInterlock            = 0xa2
	funcActivateKeypads         = 0xa4
	funcSetDoorPasscodes        = 0x8c
	funcRestoreDefaultParameters = 0xc8
)

// magic is the literal payload marker required on selected state-changing
// operations; omitting it causes the controller to silently drop the
// request.
const magic uint32 = 0x55aaaa55

// newRequest allocates a 64-byte zeroed request frame with the SOM,
// function code and controller serial already written.
func newRequest(function byte, serial uint32) []byte {
	frame := make([]byte, frameSize)
	frame[0] = somNormal
	frame[1] = function
	packUint32(frame, 4, serial)
	return frame
}

// validateReply checks a received frame's length, SOM and function code
// against the code expected for the operation that produced it.
func validateReply(frame []byte, expected byte) error {
	if len(frame) != frameSize {
		return &BadFrameError{Offset: -1, Reason: "reply is not 64 bytes"}
	}

	som := frame[0]
	fn := frame[1]

	if som != somNormal && !(som == somEvent && fn == funcGetStatus) {
		return &BadFrameError{Offset: 0, Byte: som, Reason: "unrecognized start-of-message byte"}
	}

	if fn != expected {
		return &BadFrameError{Offset: 1, Byte: fn, Reason: "unexpected function code"}
	}

	return nil
}

// isEventFrame reports whether a validated function-0x20 frame is the
// spontaneous event variant (SOM 0x19) rather than a GetStatus reply
// (SOM 0x17). Both share SOM 0x17 in the common case, so callers that
// need to distinguish (the listener does not) are the exception rather
// than the rule.
func isEventFrame(frame []byte) bool {
	return frame[0] == somEvent
}
