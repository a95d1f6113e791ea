// Package protocol encodes and decodes GoCube BLE frames.
package protocol

import (
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // write
)

// Message types sent by the cube
const (
	MsgTypeRotation    byte = 0x01
	MsgTypeState       byte = 0x02
	MsgTypeOrientation byte = 0x03
	MsgTypeBattery     byte = 0x05
	MsgTypeCubeType    byte = 0x08
)

// Commands written to the RX characteristic
const (
	CmdRequestBattery     byte = 0x32
	CmdRequestState       byte = 0x33
	CmdResetSolved        byte = 0x35
	CmdDisableOrientation byte = 0x37
	CmdFlashBacklight     byte = 0x41
)

const (
	framePrefix byte = 0x2A // '*'
	frameCR     byte = 0x0D
	frameLF     byte = 0x0A
)

var (
	ErrMessageTooShort = errors.New("protocol: message too short")
	ErrInvalidPrefix   = errors.New("protocol: invalid message prefix")
	ErrInvalidSuffix   = errors.New("protocol: invalid message suffix")
	ErrInvalidLength   = errors.New("protocol: invalid message length")
	ErrInvalidChecksum = errors.New("protocol: invalid checksum")
)

// Message is one decoded frame.
type Message struct {
	Type    byte
	Payload []byte
}

// ParseMessage decodes a raw notification.
//
// Frame layout: [0x2A] [len] [type] [payload...] [checksum] [0x0D 0x0A], where
// len counts every byte after itself and the checksum is the byte sum of
// everything before it.
func ParseMessage(data []byte) (*Message, error) {
	if len(data) < 6 {
		return nil, ErrMessageTooShort
	}
	if data[0] != framePrefix {
		return nil, ErrInvalidPrefix
	}

	end := 2 + int(data[1])
	if len(data) < end || end < 6 {
		return nil, fmt.Errorf("%w: header says %d bytes, got %d", ErrInvalidLength, end, len(data))
	}
	if data[end-2] != frameCR || data[end-1] != frameLF {
		return nil, ErrInvalidSuffix
	}

	sumAt := end - 3
	if got := checksum(data[:sumAt]); got != data[sumAt] {
		return nil, fmt.Errorf("%w: frame has 0x%02X, computed 0x%02X", ErrInvalidChecksum, data[sumAt], got)
	}

	return &Message{
		Type:    data[2],
		Payload: data[3:sumAt],
	}, nil
}

// BuildCommand frames a command with no payload. Commands carry a length
// byte of 1 regardless of the frame size.
func BuildCommand(cmd byte) []byte {
	frame := []byte{framePrefix, 0x01, cmd}
	return append(frame, checksum(frame), frameCR, frameLF)
}

// BuildMessage frames a message of the given type. The cube never receives
// these; they exist for tests and replay tools.
func BuildMessage(msgType byte, payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+6)
	frame = append(frame, framePrefix, byte(len(payload)+4), msgType)
	frame = append(frame, payload...)
	return append(frame, checksum(frame), frameCR, frameLF)
}

func checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}

// MessageTypeName returns a human-readable name for the message type.
func MessageTypeName(msgType byte) string {
	switch msgType {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", msgType)
	}
}
