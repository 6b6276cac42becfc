package events

import (
	"encoding/json"
	"time"
)

// Kind names what changed.
type Kind string

const (
	KindMealUpserted    Kind = "meal_upserted"
	KindDepositAppended Kind = "deposit_appended"
	KindCostAppended    Kind = "cost_appended"
	KindMemberJoined    Kind = "member_joined"
	KindMemberRemoved   Kind = "member_removed"
)

// LedgerEvent is a lightweight change notification. It carries identifiers only;
// consumers read the entry itself from storage.
type LedgerEvent struct {
	Kind    Kind      `json:"kind"`
	MessID  string    `json:"messId"`
	UserID  string    `json:"userId"`
	EntryID string    `json:"entryId,omitempty"`
	Date    string    `json:"date,omitempty"`
	At      time.Time `json:"at"`
}

// NewLedgerEvent stamps an event with the current time.
func NewLedgerEvent(kind Kind, messID, userID, entryID, date string) LedgerEvent {
	return LedgerEvent{
		Kind:    kind,
		MessID:  messID,
		UserID:  userID,
		EntryID: entryID,
		Date:    date,
		At:      time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON decodes an event from JSON bytes.
func LedgerEventFromJSON(data []byte) (LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return LedgerEvent{}, err
	}
	return e, nil
}
