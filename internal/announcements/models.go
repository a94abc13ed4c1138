package announcements

import (
	"streakconnect/internal/lives"
	"streakconnect/internal/tickets"
	"streakconnect/internal/votes"
)

// Digest is the member's portal home screen: the next show, anything
// currently accepting reservations and polls still waiting on an answer.
type Digest struct {
	NextLive          *lives.LiveResponse     `json:"next_live"`
	DaysUntilNextLive *int                    `json:"days_until_next_live"`
	MyNextTicket      *tickets.TicketResponse `json:"my_next_ticket"`
	AcceptingLives    []lives.LiveResponse    `json:"accepting_lives"`
	OpenVotes         []votes.VoteResponse    `json:"open_votes"`
}
