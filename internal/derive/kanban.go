package derive

import (
	"github.com/fyrsmithlabs/casebook/internal/api"
)

// Columns are the five fixed board columns, in display order.
var Columns = []api.CaseStatus{
	api.StatusEnquiry,
	api.StatusMIAM,
	api.StatusOpen,
	api.StatusPaused,
	api.StatusClosed,
}

// Board is a case list partitioned by status. Cases keep their original
// relative order within each column. Cases with a status outside the five
// known columns land in Unknown rather than being silently dropped.
type Board struct {
	ByStatus map[api.CaseStatus][]api.Case
	Unknown  []api.Case
}

// Group partitions cases into the fixed board columns.
func Group(cases []api.Case) Board {
	board := Board{ByStatus: make(map[api.CaseStatus][]api.Case, len(Columns))}
	for _, col := range Columns {
		board.ByStatus[col] = nil
	}
	for _, c := range cases {
		if c.Status.Known() {
			board.ByStatus[c.Status] = append(board.ByStatus[c.Status], c)
		} else {
			board.Unknown = append(board.Unknown, c)
		}
	}
	return board
}

// Column returns the cases in one column.
func (b Board) Column(status api.CaseStatus) []api.Case {
	return b.ByStatus[status]
}
