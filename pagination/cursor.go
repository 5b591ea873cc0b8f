// Package pagination encodes the opaque continuation tokens handed out with
// keyset paginated listings.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

const (
	keyVersionNumber = "version_number"
	keyDirection     = "direction"
)

var ErrTokenInvalid = errors.New("pagination: token invalid")

func (d Direction) Valid() bool {
	return d == DirectionNext || d == DirectionPrevious
}

// Cursor is the anchor a page continues from and the direction to travel.
type Cursor struct {
	VersionNumber string
	Direction     Direction
}

// Encode returns nil for a nil cursor so "no further page" stays absent on the wire.
func Encode(c *Cursor) *string {
	if c == nil {
		return nil
	}

	pairs := [][2]string{
		{keyVersionNumber, c.VersionNumber},
		{keyDirection, string(c.Direction)},
	}
	raw, err := json.Marshal(pairs)
	if err != nil {
		// [][2]string always marshals
		panic(err)
	}

	token := base64.RawURLEncoding.EncodeToString(raw)
	return &token
}

func Decode(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrTokenInvalid
	}

	var pairs [][2]string
	if err := json.Unmarshal(raw, &pairs); err != nil || len(pairs) != 2 {
		return Cursor{}, ErrTokenInvalid
	}

	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		values[p[0]] = p[1]
	}

	number, ok := values[keyVersionNumber]
	if !ok {
		return Cursor{}, ErrTokenInvalid
	}
	direction, ok := values[keyDirection]
	if !ok || !Direction(direction).Valid() {
		return Cursor{}, ErrTokenInvalid
	}

	return Cursor{VersionNumber: number, Direction: Direction(direction)}, nil
}
