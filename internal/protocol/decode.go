package protocol

import "fmt"

// Rotation is one face turn reported by the cube.
type Rotation struct {
	Code      byte   // raw face and direction code, 0x00 to 0x0B
	Center    byte   // center cap orientation after the turn
	Color     string // center color of the turned face
	Clockwise bool
}

// Face returns the face letter the rotation turned, assuming white on top
// and green in front.
func (r Rotation) Face() string {
	return colorFace[r.Color]
}

// The cube reports faces by center color; code/2 indexes this list.
var colorOrder = [6]string{"blue", "green", "white", "yellow", "red", "orange"}

var colorFace = map[string]string{
	"white":  "U",
	"yellow": "D",
	"green":  "F",
	"blue":   "B",
	"red":    "R",
	"orange": "L",
}

// DecodeRotation decodes a rotation payload made of [code][center] pairs.
// Even codes are clockwise turns, odd codes counter-clockwise.
func DecodeRotation(payload []byte) ([]Rotation, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("protocol: rotation payload must have even length, got %d", len(payload))
	}

	out := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(colorOrder) {
			return nil, fmt.Errorf("protocol: unknown face code 0x%02X", code)
		}
		out = append(out, Rotation{
			Code:      code,
			Center:    payload[i+1],
			Color:     colorOrder[idx],
			Clockwise: code%2 == 0,
		})
	}
	return out, nil
}

// DecodeBattery returns the battery level in percent.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("protocol: battery payload too short")
	}
	return int(payload[0]), nil
}
