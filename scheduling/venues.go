package scheduling

import "github.com/Danthemainman1/debate-scheduler/models"

// AssignVenues distributes available venues over each round's matches
// cyclically: match i takes venue i mod V. With no available venues every
// match is left unassigned, which is not an error since venues are optional.
func AssignVenues(rounds []models.Round, venues []models.Venue) {
	available := make([]models.Venue, 0, len(venues))
	for _, v := range venues {
		if v.Available {
			available = append(available, v)
		}
	}
	if len(available) == 0 {
		return
	}

	for r := range rounds {
		for i := range rounds[r].Matches {
			venueID := available[i%len(available)].ID
			rounds[r].Matches[i].VenueID = &venueID
		}
	}
}
