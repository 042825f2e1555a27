package reservation

// RoomListing is the advertised offer for a room type. Listed prices are
// marketing rates and differ from the nightly base rates used for billing.
type RoomListing struct {
	Type             RoomType
	BasePriceDollars float64
	Description      string
	Features         []string
}

var catalogue = []RoomListing{
	{
		Type:             RoomJunior,
		BasePriceDollars: 150,
		Description:      "Comfortable suite with city view, perfect for business travelers",
		Features:         []string{"City view", "Work desk", "Mini bar", "WiFi"},
	},
	{
		Type:             RoomKing,
		BasePriceDollars: 250,
		Description:      "Spacious suite with king bed and premium amenities",
		Features:         []string{"King bed", "Living area", "Premium amenities", "Room service"},
	},
	{
		Type:             RoomPresidential,
		BasePriceDollars: 500,
		Description:      "Luxury suite with panoramic views and exclusive services",
		Features:         []string{"Panoramic views", "Butler service", "Private dining", "Spa access"},
	},
}

// Catalogue returns a copy of all listings.
func Catalogue() []RoomListing {
	out := make([]RoomListing, len(catalogue))
	for i, l := range catalogue {
		l.Features = append([]string(nil), l.Features...)
		out[i] = l
	}
	return out
}
