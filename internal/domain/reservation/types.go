package reservation

import "strings"

type RoomType string

const (
	RoomJunior       RoomType = "junior"
	RoomKing         RoomType = "king"
	RoomPresidential RoomType = "presidential"
)

// RoomTypes lists the bookable room types in catalogue order.
var RoomTypes = []RoomType{RoomJunior, RoomKing, RoomPresidential}

func ParseRoomType(s string) (RoomType, error) {
	rt := RoomType(strings.ToLower(strings.TrimSpace(s)))
	if !rt.IsValid() {
		return "", ErrInvalidRoomType
	}
	return rt, nil
}

func (r RoomType) String() string {
	return string(r)
}

func (r RoomType) IsValid() bool {
	switch r {
	case RoomJunior, RoomKing, RoomPresidential:
		return true
	default:
		return false
	}
}
