package uhppote

import (
	"net"
	"time"
)

func encodeGetController(serial uint32) []byte {
	return newRequest(funcGetController, serial)
}

func encodeSetIP(serial uint32, address, netmask, gateway net.IP) ([]byte, error) {
	frame := newRequest(funcSetIP, serial)
	if err := packIPv4(frame, 8, address); err != nil {
		return nil, err
	}
	if err := packIPv4(frame, 12, netmask); err != nil {
		return nil, err
	}
	if err := packIPv4(frame, 16, gateway); err != nil {
		return nil, err
	}
	packUint32(frame, 20, magic)
	return frame, nil
}

func encodeGetTime(serial uint32) []byte {
	return newRequest(funcGetTime, serial)
}

func encodeSetTime(serial uint32, datetime time.Time) ([]byte, error) {
	frame := newRequest(funcSetTime, serial)
	if err := packDateTime(frame, 8, datetime); err != nil {
		return nil, err
	}
	return frame, nil
}

func encodeGetStatus(serial uint32) []byte {
	return newRequest(funcGetStatus, serial)
}

func encodeGetListener(serial uint32) []byte {
	return newRequest(funcGetListener, serial)
}

func encodeSetListener(serial uint32, address net.IP, port uint16, autosend uint8) ([]byte, error) {
	frame := newRequest(funcSetListener, serial)
	if err := packIPv4(frame, 8, address); err != nil {
		return nil, err
	}
	packUint16(frame, 12, port)
	packUint8(frame, 14, autosend)
	return frame, nil
}

func encodeGetDoorControl(serial uint32, door uint8) ([]byte, error) {
	if err := validateDoor(door); err != nil {
		return nil, err
	}
	frame := newRequest(funcGetDoorControl, serial)
	packUint8(frame, 8, door)
	return frame, nil
}

func encodeSetDoorControl(serial uint32, door, mode, delay uint8) ([]byte, error) {
	if err := validateDoor(door); err != nil {
		return nil, err
	}
	frame := newRequest(funcSetDoorControl, serial)
	packUint8(frame, 8, door)
	packUint8(frame, 9, mode)
	packUint8(frame, 10, delay)
	return frame, nil
}

func encodeOpenDoor(serial uint32, door uint8) ([]byte, error) {
	if err := validateDoor(door); err != nil {
		return nil, err
	}
	frame := newRequest(funcOpenDoor, serial)
	packUint8(frame, 8, door)
	return frame, nil
}

func encodeGetCards(serial uint32) []byte {
	return newRequest(funcGetCards, serial)
}

func encodeGetCard(serial, cardNumber uint32) []byte {
	frame := newRequest(funcGetCard, serial)
	packUint32(frame, 8, cardNumber)
	return frame
}

func encodeGetCardByIndex(serial, index uint32) []byte {
	frame := newRequest(funcGetCardByIndex, serial)
	packUint32(frame, 8, index)
	return frame
}

func encodePutCard(serial uint32, req PutCardRequest) ([]byte, error) {
	frame := newRequest(funcPutCard, serial)
	packUint32(frame, 8, req.CardNumber)
	if err := packDate(frame, 12, req.StartDate); err != nil {
		return nil, err
	}
	if err := packDate(frame, 16, req.EndDate); err != nil {
		return nil, err
	}
	packUint8(frame, 20, req.Door1)
	packUint8(frame, 21, req.Door2)
	packUint8(frame, 22, req.Door3)
	packUint8(frame, 23, req.Door4)
	if err := packPIN(frame, 24, req.PIN); err != nil {
		return nil, err
	}
	return frame, nil
}

func encodeDeleteCard(serial, cardNumber uint32) []byte {
	frame := newRequest(funcDeleteCard, serial)
	packUint32(frame, 8, cardNumber)
	return frame
}

func encodeDeleteAllCards(serial uint32) []byte {
	frame := newRequest(funcDeleteAllCards, serial)
	packUint32(frame, 8, magic)
	return frame
}

func encodeGetEvent(serial, eventIndex uint32) []byte {
	frame := newRequest(funcGetEvent, serial)
	packUint32(frame, 8, eventIndex)
	return frame
}

func encodeGetEventIndex(serial uint32) []byte {
	return newRequest(funcGetEventIndex, serial)
}

func encodeSetEventIndex(serial, eventIndex uint32) []byte {
	frame := newRequest(funcSetEventIndex, serial)
	packUint32(frame, 8, eventIndex)
	packUint32(frame, 12, magic)
	return frame
}

func encodeRecordSpecialEvents(serial uint32, enable bool) []byte {
	frame := newRequest(funcRecordSpecialEvents, serial)
	packBool(frame, 8, enable)
	return frame
}

func encodeGetTimeProfile(serial uint32, profileID uint8) []byte {
	frame := newRequest(funcGetTimeProfile, serial)
	packUint8(frame, 8, profileID)
	return frame
}

func encodeSetTimeProfile(serial uint32, req TimeProfileRequest) ([]byte, error) {
	frame := newRequest(funcSetTimeProfile, serial)
	packUint8(frame, 8, req.ProfileID)
	if err := packDate(frame, 9, req.StartDate); err != nil {
		return nil, err
	}
	if err := packDate(frame, 13, req.EndDate); err != nil {
		return nil, err
	}
	packBool(frame, 17, req.Monday)
	packBool(frame, 18, req.Tuesday)
	packBool(frame, 19, req.Wednesday)
	packBool(frame, 20, req.Thursday)
	packBool(frame, 21, req.Friday)
	packBool(frame, 22, req.Saturday)
	packBool(frame, 23, req.Sunday)

	segments := []struct {
		offset int
		t      ClockTime
	}{
		{24, req.Segment1Start}, {26, req.Segment1End},
		{28, req.Segment2Start}, {30, req.Segment2End},
		{32, req.Segment3Start}, {34, req.Segment3End},
	}
	for _, seg := range segments {
		if err := packHHmm(frame, seg.offset, seg.t.Hour, seg.t.Minute); err != nil {
			return nil, err
		}
	}

	packUint8(frame, 36, req.LinkedProfileID)
	return frame, nil
}

func encodeDeleteAllTimeProfiles(serial uint32) []byte {
	frame := newRequest(funcDeleteAllTimeProfiles, serial)
	packUint32(frame, 8, magic)
	return frame
}

func encodeAddTask(serial uint32, req TaskRequest) ([]byte, error) {
	frame := newRequest(funcAddTask, serial)
	if err := packDate(frame, 8, req.StartDate); err != nil {
		return nil, err
	}
	if err := packDate(frame, 12, req.EndDate); err != nil {
		return nil, err
	}
	packBool(frame, 16, req.Monday)
	packBool(frame, 17, req.Tuesday)
	packBool(frame, 18, req.Wednesday)
	packBool(frame, 19, req.Thursday)
	packBool(frame, 20, req.Friday)
	packBool(frame, 21, req.Saturday)
	packBool(frame, 22, req.Sunday)
	if err := packHHmm(frame, 23, req.StartTime.Hour, req.StartTime.Minute); err != nil {
		return nil, err
	}
	packUint8(frame, 25, req.Door)
	packUint8(frame, 26, req.TaskType)
	packUint8(frame, 27, req.MoreCards)
	return frame, nil
}

func encodeRefreshTasklist(serial uint32) []byte {
	frame := newRequest(funcRefreshTasklist, serial)
	packUint32(frame, 8, magic)
	return frame
}

func encodeClearTasklist(serial uint32) []byte {
	frame := newRequest(funcClearTasklist, serial)
	packUint32(frame, 8, magic)
	return frame
}

func encodeSetPcControl(serial uint32, enable bool) []byte {
	frame := newRequest(funcSetPcControl, serial)
	packUint32(frame, 8, magic)
	packBool(frame, 12, enable)
	return frame
}

var validInterlockModes = map[uint8]bool{0: true, 1: true, 2: true, 3: true, 4: true, 8: true}

func encodeSetInterlock(serial uint32, mode uint8) ([]byte, error) {
	if !validInterlockModes[mode] {
		return nil, &InvalidArgumentError{Arg: "mode", Value: mode, Reason: "must be one of 0,1,2,3,4,8"}
	}
	frame := newRequest(funcSetInterlock, serial)
	packUint8(frame, 8, mode)
	return frame, nil
}

func encodeActivateKeypads(serial uint32, reader1, reader2, reader3, reader4 bool) []byte {
	frame := newRequest(funcActivateKeypads, serial)
	packBool(frame, 8, reader1)
	packBool(frame, 9, reader2)
	packBool(frame, 10, reader3)
	packBool(frame, 11, reader4)
	return frame
}

func encodeSetDoorPasscodes(serial uint32, door uint8, passcodes [4]uint32) ([]byte, error) {
	if err := validateDoor(door); err != nil {
		return nil, err
	}
	for _, p := range passcodes {
		if p > 999999 {
			return nil, &InvalidArgumentError{Arg: "passcode", Value: p, Reason: "must be in range 0..999999"}
		}
	}
	frame := newRequest(funcSetDoorPasscodes, serial)
	packUint8(frame, 8, door)
	packUint32(frame, 12, passcodes[0])
	packUint32(frame, 16, passcodes[1])
	packUint32(frame, 20, passcodes[2])
	packUint32(frame, 24, passcodes[3])
	return frame, nil
}

func encodeRestoreDefaultParameters(serial uint32) []byte {
	frame := newRequest(funcRestoreDefaultParameters, serial)
	packUint32(frame, 8, magic)
	return frame
}

func validateDoor(door uint8) error {
	if door < 1 || door > 4 {
		return &InvalidArgumentError{Arg: "door", Value: door, Reason: "must be in range 1..4"}
	}
	return nil
}
