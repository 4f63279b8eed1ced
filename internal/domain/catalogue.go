package domain

// RoomKind classifies a room for icon selection only; it never affects
// engine behavior.
type RoomKind string

const (
	RoomBedroom    RoomKind = "bedroom"
	RoomKitchen    RoomKind = "kitchen"
	RoomBathroom   RoomKind = "bathroom"
	RoomLivingRoom RoomKind = "living_room"
	RoomDiningRoom RoomKind = "dining_room"
	RoomGarage     RoomKind = "garage"
	RoomBasement   RoomKind = "basement"
	RoomAttic      RoomKind = "attic"
	RoomLaundry    RoomKind = "laundry"
	RoomOffice     RoomKind = "office"
	RoomOther      RoomKind = "other"
)

// Catalogue is the fixed set of room kinds a user can create, each usable
// once per claim.
var Catalogue = []RoomKind{
	RoomBedroom,
	RoomKitchen,
	RoomBathroom,
	RoomLivingRoom,
	RoomDiningRoom,
	RoomGarage,
	RoomBasement,
	RoomAttic,
	RoomLaundry,
	RoomOffice,
	RoomOther,
}

// Valid reports whether k is a catalogue entry.
func (k RoomKind) Valid() bool {
	for _, c := range Catalogue {
		if k == c {
			return true
		}
	}
	return false
}

// Icon returns the display emoji for a room kind.
func (k RoomKind) Icon() string {
	switch k {
	case RoomBedroom:
		return "🛏️"
	case RoomKitchen:
		return "🍳"
	case RoomBathroom:
		return "🛁"
	case RoomLivingRoom:
		return "🛋️"
	case RoomDiningRoom:
		return "🍽️"
	case RoomGarage:
		return "🚗"
	case RoomBasement:
		return "📦"
	case RoomAttic:
		return "🪜"
	case RoomLaundry:
		return "🧺"
	case RoomOffice:
		return "💼"
	default:
		return "🏠"
	}
}

// DefaultName returns the display name used when the user does not rename
// the room at creation time.
func (k RoomKind) DefaultName() string {
	switch k {
	case RoomBedroom:
		return "Bedroom"
	case RoomKitchen:
		return "Kitchen"
	case RoomBathroom:
		return "Bathroom"
	case RoomLivingRoom:
		return "Living Room"
	case RoomDiningRoom:
		return "Dining Room"
	case RoomGarage:
		return "Garage"
	case RoomBasement:
		return "Basement"
	case RoomAttic:
		return "Attic"
	case RoomLaundry:
		return "Laundry"
	case RoomOffice:
		return "Office"
	default:
		return "Other"
	}
}
