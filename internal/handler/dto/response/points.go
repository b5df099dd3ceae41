package response

import (
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type PointsEntryResponse struct {
	EntryID      uuid.UUID `json:"entry_id"`
	Applied      int64     `json:"applied"`
	Direction    string    `json:"direction"`
	BalanceAfter int64     `json:"balance_after"`
}

type PointsEntriesResponse struct {
	Items      []*queries.PointsEntryView `json:"items"`
	NextCursor *queries.Cursor            `json:"next_cursor,omitempty"`
}

type GrantPointsResponse struct {
	Granted bool                 `json:"granted"`
	Entry   *PointsEntryResponse `json:"entry,omitempty"`
}

func FromPointsEntryResult(r *commands.PointsEntryResult) *PointsEntryResponse {
	if r == nil {
		return nil
	}
	return &PointsEntryResponse{
		EntryID:      r.EntryID,
		Applied:      r.Applied,
		Direction:    string(r.Direction),
		BalanceAfter: r.BalanceAfter,
	}
}
