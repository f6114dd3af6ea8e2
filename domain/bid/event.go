package bid

// Event is the payload fanned out to live subscribers when a bid is accepted
type Event struct {
	Type string `json:"type"`
	Bid  *Bid   `json:"bid"`
}

const (
	EventTypeBidAccepted    = "bid.accepted"
	EventTypeWinnerDeclared = "winner.declared"
)
