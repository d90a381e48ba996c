package event

import (
	"encoding/json"
	"time"
)

// Type identifies an event kind.
type Type string

const (
	AuctionStarted   Type = "auction.started"
	BiddingOpened    Type = "auction.bidding_opened"
	BidPlaced        Type = "auction.bid_placed"
	PlayerSold       Type = "auction.player_sold"
	PlayerUnsold     Type = "auction.player_unsold"
	AuctionCompleted Type = "auction.completed"
)

// Event represents a single domain event.
type Event struct {
	ID          string          `json:"id" db:"id"`
	AggregateID string          `json:"aggregate_id" db:"aggregate_id"`
	Type        Type            `json:"type" db:"type"`
	Data        json.RawMessage `json:"data" db:"data"`
	Version     int             `json:"version" db:"version"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// AuctionStartedData is the payload for AuctionStarted events.
type AuctionStartedData struct {
	TeamCount   int `json:"team_count"`
	PlayerCount int `json:"player_count"`
}

// BiddingOpenedData is the payload for BiddingOpened events.
type BiddingOpenedData struct {
	PlayerID  string `json:"player_id"`
	BasePrice int    `json:"base_price"`
}

// BidPlacedData is the payload for BidPlaced events.
type BidPlacedData struct {
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Amount   int    `json:"amount"`
}

// PlayerSoldData is the payload for PlayerSold events.
type PlayerSoldData struct {
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Price    int    `json:"price"`
}

// PlayerUnsoldData is the payload for PlayerUnsold events.
type PlayerUnsoldData struct {
	PlayerID string `json:"player_id"`
}

// AuctionCompletedData is the payload for AuctionCompleted events.
type AuctionCompletedData struct {
	SoldCount   int `json:"sold_count"`
	UnsoldCount int `json:"unsold_count"`
}
