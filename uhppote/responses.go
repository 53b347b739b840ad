package uhppote

import "time"

func decodeGetController(frame []byte) (GetControllerResponse, error) {
	if err := validateReply(frame, funcGetController); err != nil {
		return GetControllerResponse{}, err
	}
	return GetControllerResponse{
		Serial:     unpackUint32(frame, 4),
		IPAddress:  unpackIPv4(frame, 8),
		SubnetMask: unpackIPv4(frame, 12),
		Gateway:    unpackIPv4(frame, 16),
		MAC:        unpackMAC(frame, 20),
		Version:    unpackVersion(frame, 26),
		Date:       unpackDate(frame, 28),
	}, nil
}

func decodeGetTime(frame []byte) (GetTimeResponse, error) {
	if err := validateReply(frame, funcGetTime); err != nil {
		return GetTimeResponse{}, err
	}
	return GetTimeResponse{
		Serial:   unpackUint32(frame, 4),
		DateTime: unpackDateTime(frame, 8),
	}, nil
}

func decodeSetTime(frame []byte) (SetTimeResponse, error) {
	if err := validateReply(frame, funcSetTime); err != nil {
		return SetTimeResponse{}, err
	}
	return SetTimeResponse{
		Serial:   unpackUint32(frame, 4),
		DateTime: unpackDateTime(frame, 8),
	}, nil
}

// decodeStatusFields extracts the 24-field payload shared by GetStatus
// replies and unsolicited event frames.
func decodeStatusFields(frame []byte) GetStatusResponse {
	return GetStatusResponse{
		Serial: unpackUint32(frame, 4),

		EventIndex:         unpackUint32(frame, 8),
		EventType:          unpackUint8(frame, 12),
		EventAccessGranted: unpackBool(frame, 13),
		EventDoor:          unpackUint8(frame, 14),
		EventDirection:     unpackUint8(frame, 15),
		EventCard:          unpackUint32(frame, 16),
		EventTimestamp:     unpackDateTime(frame, 20),
		EventReason:        unpackUint8(frame, 27),

		Door1Open: unpackBool(frame, 28), Door2Open: unpackBool(frame, 29),
		Door3Open: unpackBool(frame, 30), Door4Open: unpackBool(frame, 31),
		Door1Button: unpackBool(frame, 32), Door2Button: unpackBool(frame, 33),
		Door3Button: unpackBool(frame, 34), Door4Button: unpackBool(frame, 35),

		SystemError: unpackUint8(frame, 36),
		SystemTime:  unpackTime(frame, 37),
		SequenceNo:  unpackUint32(frame, 40),
		SpecialInfo: unpackUint8(frame, 48),
		Relays:      unpackUint8(frame, 49),
		Inputs:      unpackUint8(frame, 50),
		SystemDate:  unpackShortDate(frame, 51),
	}
}

func decodeGetStatus(frame []byte) (GetStatusResponse, error) {
	if err := validateReply(frame, funcGetStatus); err != nil {
		return GetStatusResponse{}, err
	}

	status := decodeStatusFields(frame)

	if status.EventIndex == 0 {
		status.EventType = 0
		status.EventAccessGranted = false
		status.EventDoor = 0
		status.EventDirection = 0
		status.EventCard = 0
		status.EventTimestamp = None[time.Time]()
		status.EventReason = 0
	}

	return status, nil
}

// decodeEvent decodes an unsolicited event frame. Function code 0x20 is
// shared with GetStatus; unlike GetStatus, event_index == 0 does not
// force the event fields absent — the listener reports exactly what the
// controller sent.
func decodeEvent(frame []byte) (Event, error) {
	if err := validateReply(frame, funcGetStatus); err != nil {
		return Event{}, err
	}

	status := decodeStatusFields(frame)

	return Event{
		Serial:             status.Serial,
		EventIndex:         status.EventIndex,
		EventType:          status.EventType,
		EventAccessGranted: status.EventAccessGranted,
		EventDoor:          status.EventDoor,
		EventDirection:     status.EventDirection,
		EventCard:          status.EventCard,
		EventTimestamp:     status.EventTimestamp,
		EventReason:        status.EventReason,
		Door1Open:          status.Door1Open, Door2Open: status.Door2Open,
		Door3Open: status.Door3Open, Door4Open: status.Door4Open,
		Door1Button: status.Door1Button, Door2Button: status.Door2Button,
		Door3Button: status.Door3Button, Door4Button: status.Door4Button,
		SystemError: status.SystemError,
		SystemTime:  status.SystemTime,
		SequenceNo:  status.SequenceNo,
		SpecialInfo: status.SpecialInfo,
		Relays:      status.Relays,
		Inputs:      status.Inputs,
		SystemDate:  status.SystemDate,
	}, nil
}

func decodeGetListener(frame []byte) (GetListenerResponse, error) {
	if err := validateReply(frame, funcGetListener); err != nil {
		return GetListenerResponse{}, err
	}
	return GetListenerResponse{
		Serial:  unpackUint32(frame, 4),
		Address: unpackIPv4(frame, 8),
		Port:    unpackUint16(frame, 12),
	}, nil
}

func decodeSetListener(frame []byte) (SetListenerResponse, error) {
	if err := validateReply(frame, funcSetListener); err != nil {
		return SetListenerResponse{}, err
	}
	return SetListenerResponse{Serial: unpackUint32(frame, 4), OK: unpackBool(frame, 8)}, nil
}

func decodeGetDoorControl(frame []byte) (GetDoorControlResponse, error) {
	if err := validateReply(frame, funcGetDoorControl); err != nil {
		return GetDoorControlResponse{}, err
	}
	return GetDoorControlResponse{
		Serial: unpackUint32(frame, 4),
		Door:   unpackUint8(frame, 8),
		Mode:   unpackUint8(frame, 9),
		Delay:  unpackUint8(frame, 10),
	}, nil
}

func decodeSetDoorControl(frame []byte) (SetDoorControlResponse, error) {
	if err := validateReply(frame, funcSetDoorControl); err != nil {
		return SetDoorControlResponse{}, err
	}
	return SetDoorControlResponse{
		Serial: unpackUint32(frame, 4),
		Door:   unpackUint8(frame, 8),
		Mode:   unpackUint8(frame, 9),
		Delay:  unpackUint8(frame, 10),
	}, nil
}

func decodeOpenDoor(frame []byte) (OpenDoorResponse, error) {
	if err := validateReply(frame, funcOpenDoor); err != nil {
		return OpenDoorResponse{}, err
	}
	return OpenDoorResponse{Serial: unpackUint32(frame, 4), Opened: unpackBool(frame, 8)}, nil
}

func decodeGetCards(frame []byte) (GetCardsResponse, error) {
	if err := validateReply(frame, funcGetCards); err != nil {
		return GetCardsResponse{}, err
	}
	return GetCardsResponse{Serial: unpackUint32(frame, 4), Count: unpackUint32(frame, 8)}, nil
}

func decodeCardRecord(frame []byte, expected byte) (CardRecord, error) {
	if err := validateReply(frame, expected); err != nil {
		return CardRecord{}, err
	}
	return CardRecord{
		Serial:     unpackUint32(frame, 4),
		CardNumber: unpackUint32(frame, 8),
		StartDate:  unpackDate(frame, 12),
		EndDate:    unpackDate(frame, 16),
		Door1:      unpackUint8(frame, 20),
		Door2:      unpackUint8(frame, 21),
		Door3:      unpackUint8(frame, 22),
		Door4:      unpackUint8(frame, 23),
		PIN:        unpackPIN(frame, 24),
	}, nil
}

func decodeGetCard(frame []byte) (CardRecord, error) {
	return decodeCardRecord(frame, funcGetCard)
}

func decodeGetCardByIndex(frame []byte) (CardRecord, error) {
	return decodeCardRecord(frame, funcGetCardByIndex)
}

func decodePutCard(frame []byte) (PutCardResponse, error) {
	if err := validateReply(frame, funcPutCard); err != nil {
		return PutCardResponse{}, err
	}
	return PutCardResponse{Serial: unpackUint32(frame, 4), Stored: unpackBool(frame, 8)}, nil
}

func decodeDeleteCard(frame []byte) (DeleteCardResponse, error) {
	if err := validateReply(frame, funcDeleteCard); err != nil {
		return DeleteCardResponse{}, err
	}
	return DeleteCardResponse{Serial: unpackUint32(frame, 4), Deleted: unpackBool(frame, 8)}, nil
}

func decodeDeleteAllCards(frame []byte) (DeleteAllCardsResponse, error) {
	if err := validateReply(frame, funcDeleteAllCards); err != nil {
		return DeleteAllCardsResponse{}, err
	}
	return DeleteAllCardsResponse{Serial: unpackUint32(frame, 4), Deleted: unpackBool(frame, 8)}, nil
}

func decodeGetEvent(frame []byte) (GetEventResponse, error) {
	if err := validateReply(frame, funcGetEvent); err != nil {
		return GetEventResponse{}, err
	}
	return GetEventResponse{
		Serial:        unpackUint32(frame, 4),
		Index:         unpackUint32(frame, 8),
		EventType:     unpackUint8(frame, 12),
		AccessGranted: unpackBool(frame, 13),
		Door:          unpackUint8(frame, 14),
		Direction:     unpackUint8(frame, 15),
		Card:          unpackUint32(frame, 16),
		Timestamp:     unpackDateTime(frame, 20),
		Reason:        unpackUint8(frame, 27),
	}, nil
}

func decodeGetEventIndex(frame []byte) (GetEventIndexResponse, error) {
	if err := validateReply(frame, funcGetEventIndex); err != nil {
		return GetEventIndexResponse{}, err
	}
	return GetEventIndexResponse{Serial: unpackUint32(frame, 4), EventIndex: unpackUint32(frame, 8)}, nil
}

func decodeSetEventIndex(frame []byte) (SetEventIndexResponse, error) {
	if err := validateReply(frame, funcSetEventIndex); err != nil {
		return SetEventIndexResponse{}, err
	}
	return SetEventIndexResponse{Serial: unpackUint32(frame, 4), Updated: unpackBool(frame, 8)}, nil
}

func decodeRecordSpecialEvents(frame []byte) (RecordSpecialEventsResponse, error) {
	if err := validateReply(frame, funcRecordSpecialEvents); err != nil {
		return RecordSpecialEventsResponse{}, err
	}
	return RecordSpecialEventsResponse{Serial: unpackUint32(frame, 4), Updated: unpackBool(frame, 8)}, nil
}

func decodeGetTimeProfile(frame []byte) (TimeProfileRecord, error) {
	if err := validateReply(frame, funcGetTimeProfile); err != nil {
		return TimeProfileRecord{}, err
	}
	return TimeProfileRecord{
		Serial:          unpackUint32(frame, 4),
		ProfileID:       unpackUint8(frame, 8),
		StartDate:       unpackDate(frame, 9),
		EndDate:         unpackDate(frame, 13),
		Monday:          unpackBool(frame, 17),
		Tuesday:         unpackBool(frame, 18),
		Wednesday:       unpackBool(frame, 19),
		Thursday:        unpackBool(frame, 20),
		Friday:          unpackBool(frame, 21),
		Saturday:        unpackBool(frame, 22),
		Sunday:          unpackBool(frame, 23),
		Segment1Start:   unpackHHmm(frame, 24),
		Segment1End:     unpackHHmm(frame, 26),
		Segment2Start:   unpackHHmm(frame, 28),
		Segment2End:     unpackHHmm(frame, 30),
		Segment3Start:   unpackHHmm(frame, 32),
		Segment3End:     unpackHHmm(frame, 34),
		LinkedProfileID: unpackUint8(frame, 36),
	}, nil
}

func decodeSetTimeProfile(frame []byte) (SetTimeProfileResponse, error) {
	if err := validateReply(frame, funcSetTimeProfile); err != nil {
		return SetTimeProfileResponse{}, err
	}
	return SetTimeProfileResponse{Serial: unpackUint32(frame, 4), Stored: unpackBool(frame, 8)}, nil
}

func decodeDeleteAllTimeProfiles(frame []byte) (DeleteAllTimeProfilesResponse, error) {
	if err := validateReply(frame, funcDeleteAllTimeProfiles); err != nil {
		return DeleteAllTimeProfilesResponse{}, err
	}
	return DeleteAllTimeProfilesResponse{Serial: unpackUint32(frame, 4), Deleted: unpackBool(frame, 8)}, nil
}

func decodeAddTask(frame []byte) (AddTaskResponse, error) {
	if err := validateReply(frame, funcAddTask); err != nil {
		return AddTaskResponse{}, err
	}
	return AddTaskResponse{Serial: unpackUint32(frame, 4), Added: unpackBool(frame, 8)}, nil
}

func decodeRefreshTasklist(frame []byte) (RefreshTasklistResponse, error) {
	if err := validateReply(frame, funcRefreshTasklist); err != nil {
		return RefreshTasklistResponse{}, err
	}
	return RefreshTasklistResponse{Serial: unpackUint32(frame, 4), Refreshed: unpackBool(frame, 8)}, nil
}

func decodeClearTasklist(frame []byte) (ClearTasklistResponse, error) {
	if err := validateReply(frame, funcClearTasklist); err != nil {
		return ClearTasklistResponse{}, err
	}
	return ClearTasklistResponse{Serial: unpackUint32(frame, 4), Cleared: unpackBool(frame, 8)}, nil
}

func decodeSetPcControl(frame []byte) (SetPcControlResponse, error) {
	if err := validateReply(frame, funcSetPcControl); err != nil {
		return SetPcControlResponse{}, err
	}
	return SetPcControlResponse{Serial: unpackUint32(frame, 4), OK: unpackBool(frame, 8)}, nil
}

func decodeSetInterlock(frame []byte) (SetInterlockResponse, error) {
	if err := validateReply(frame, funcSetInterlock); err != nil {
		return SetInterlockResponse{}, err
	}
	return SetInterlockResponse{Serial: unpackUint32(frame, 4), OK: unpackBool(frame, 8)}, nil
}

func decodeActivateKeypads(frame []byte) (ActivateKeypadsResponse, error) {
	if err := validateReply(frame, funcActivateKeypads); err != nil {
		return ActivateKeypadsResponse{}, err
	}
	return ActivateKeypadsResponse{Serial: unpackUint32(frame, 4), OK: unpackBool(frame, 8)}, nil
}

func decodeSetDoorPasscodes(frame []byte) (SetDoorPasscodesResponse, error) {
	if err := validateReply(frame, funcSetDoorPasscodes); err != nil {
		return SetDoorPasscodesResponse{}, err
	}
	return SetDoorPasscodesResponse{Serial: unpackUint32(frame, 4), OK: unpackBool(frame, 8)}, nil
}

func decodeRestoreDefaultParameters(frame []byte) (RestoreDefaultParametersResponse, error) {
	if err := validateReply(frame, funcRestoreDefaultParameters); err != nil {
		return RestoreDefaultParametersResponse{}, err
	}
	return RestoreDefaultParametersResponse{Serial: unpackUint32(frame, 4), OK: unpackBool(frame, 8)}, nil
}
