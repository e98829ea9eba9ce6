// Package protocol implements the fixed 32-byte wire record shared by the
// aviator server and client.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"net"
)

// FrameSize is the exact on-wire size of every message. All fields are
// little-endian; floats are IEEE-754 single precision.
const FrameSize = 32

// typeLen is the width of the NUL-padded type field at offset 8.
const typeLen = 11

// BroadcastID is the player_id used by server broadcasts. Player ids start
// at 1, so 0 never addresses a slot.
const BroadcastID int32 = 0

// Tag identifies a message type on the wire
type Tag string

const (
	// Server -> client broadcasts
	TagStart      Tag = "start"
	TagClosed     Tag = "closed"
	TagMultiplier Tag = "multiplier"
	TagExplode    Tag = "explode"

	// Server -> client, addressed to one player
	TagPayout Tag = "payout"
	TagProfit Tag = "profit"

	// Client -> server
	TagBet     Tag = "bet"
	TagCashout Tag = "cashout"

	// Either direction; terminates the connection
	TagBye Tag = "bye"
)

var knownTags = map[Tag]bool{
	TagStart:      true,
	TagClosed:     true,
	TagMultiplier: true,
	TagExplode:    true,
	TagPayout:     true,
	TagProfit:     true,
	TagBet:        true,
	TagCashout:    true,
	TagBye:        true,
}

// Frame is the decoded form of one wire record.
//
// Layout:
//
//	offset 0  int32   player_id (BroadcastID for broadcasts)
//	offset 4  float32 value (semantics depend on Type)
//	offset 8  [11]byte type, ASCII, NUL-padded
//	offset 19 byte    pad, must be zero
//	offset 20 float32 player_profit
//	offset 24 float32 house_profit
//	offset 28 [4]byte reserved, zero
type Frame struct {
	PlayerID     int32
	Value        float32
	Type         Tag
	PlayerProfit float32
	HouseProfit  float32
}

// Encode serializes the frame into its 32-byte wire form
func Encode(f Frame) ([]byte, error) {
	if !knownTags[f.Type] {
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformed, f.Type)
	}

	buf := make([]byte, FrameSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(f.PlayerID))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(f.Value))
	copy(buf[8:8+typeLen], f.Type)
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(f.PlayerProfit))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(f.HouseProfit))
	return buf, nil
}

// Decode parses a 32-byte wire record. It fails with ErrMalformed on a bad
// size, a non-zero pad byte, or an unrecognized type tag.
func Decode(buf []byte) (Frame, error) {
	if len(buf) != FrameSize {
		return Frame{}, fmt.Errorf("%w: frame is %d bytes, want %d", ErrMalformed, len(buf), FrameSize)
	}
	if buf[19] != 0 {
		return Frame{}, fmt.Errorf("%w: non-zero pad byte", ErrMalformed)
	}

	raw := buf[8 : 8+typeLen]
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	tag := Tag(raw[:end])
	if !knownTags[tag] {
		return Frame{}, fmt.Errorf("%w: unknown type %q", ErrMalformed, tag)
	}

	return Frame{
		PlayerID:     int32(binary.LittleEndian.Uint32(buf[0:4])),
		Value:        math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])),
		Type:         tag,
		PlayerProfit: math.Float32frombits(binary.LittleEndian.Uint32(buf[20:24])),
		HouseProfit:  math.Float32frombits(binary.LittleEndian.Uint32(buf[24:28])),
	}, nil
}

// Send encodes the frame and writes all 32 bytes, looping over partial
// writes. It fails with ErrPeerGone when the peer has closed the connection.
func Send(conn net.Conn, f Frame) error {
	buf, err := Encode(f)
	if err != nil {
		return err
	}

	for written := 0; written < len(buf); {
		n, err := conn.Write(buf[written:])
		if err != nil {
			return classifyIOErr(err)
		}
		written += n
	}
	return nil
}

// Recv reads exactly 32 bytes, looping over short reads, and decodes them.
// EOF, clean or mid-frame, is ErrPeerGone.
func Recv(conn net.Conn) (Frame, error) {
	buf := make([]byte, FrameSize)
	if _, err := io.ReadFull(conn, buf); err != nil {
		return Frame{}, classifyIOErr(err)
	}
	return Decode(buf)
}
