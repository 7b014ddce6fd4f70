package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dgbarclay/elevator-algorithm/src/types"
)

// BoardRow is the latest known status of one run.
type BoardRow struct {
	RunID     string
	Policy    string
	Floor     int
	Delivered int // delivered at the latest stop
	Lift      types.LiftSnapshot
	Done      bool
}

// BoardCmd is executed by the board goroutine.
type BoardCmd struct {
	Exec func(rows map[string]*BoardRow)
}

// Board owns the status of all runs and serializes access to it, so several
// runs can report concurrently. Every update redraws the status line.
type Board struct {
	Cmds  chan BoardCmd
	order []string
	out   io.Writer
	done  chan struct{}
}

// StartBoard starts the board goroutine. out may be nil to keep the board silent.
func StartBoard(out io.Writer) *Board {
	board := &Board{
		Cmds: make(chan BoardCmd),
		out:  out,
		done: make(chan struct{}),
	}
	rows := make(map[string]*BoardRow)
	go func() {
		defer close(board.done)
		for cmd := range board.Cmds {
			cmd.Exec(rows)
		}
	}()
	return board
}

func (board *Board) Moved(ev types.MoveEvent) {
	board.Cmds <- BoardCmd{
		Exec: func(rows map[string]*BoardRow) {
			row := board.row(rows, ev.RunID, ev.Policy)
			row.Floor = ev.Floor
			row.Delivered = ev.Delivered
			row.Lift = ev.Lift
			board.draw(rows, false)
		},
	}
}

func (board *Board) Finished(res types.Result) {
	board.Cmds <- BoardCmd{
		Exec: func(rows map[string]*BoardRow) {
			row := board.row(rows, res.RunID, res.Policy)
			row.Lift = res.Lift
			row.Floor = res.Lift.Position
			row.Done = res.Completed
			board.draw(rows, true)
		},
	}
}

// Rows returns a copy of all rows in the order runs first reported.
func (board *Board) Rows() []BoardRow {
	reply := make(chan []BoardRow)
	board.Cmds <- BoardCmd{
		Exec: func(rows map[string]*BoardRow) {
			out := make([]BoardRow, 0, len(board.order))
			for _, id := range board.order {
				out = append(out, *rows[id])
			}
			reply <- out
		},
	}
	return <-reply
}

// Close stops the board goroutine. The board must not be used afterwards.
func (board *Board) Close() {
	close(board.Cmds)
	<-board.done
}

func (board *Board) row(rows map[string]*BoardRow, runID, policy string) *BoardRow {
	row, ok := rows[runID]
	if !ok {
		row = &BoardRow{RunID: runID, Policy: policy}
		rows[runID] = row
		board.order = append(board.order, runID)
	}
	return row
}

func (board *Board) draw(rows map[string]*BoardRow, newline bool) {
	if board.out == nil {
		return
	}
	parts := make([]string, 0, len(board.order))
	for _, id := range board.order {
		parts = append(parts, FormatRow(*rows[id]))
	}
	end := "\r"
	if newline && board.allDone(rows) {
		end = "\n"
	}
	fmt.Fprint(board.out, "\r"+strings.Join(parts, " | ")+end)
}

func (board *Board) allDone(rows map[string]*BoardRow) bool {
	return !slices.ContainsFunc(board.order, func(id string) bool { return !rows[id].Done })
}

// FormatRow renders one run as a compact status cell.
func FormatRow(row BoardRow) string {
	if row.Done {
		return fmt.Sprintf("%-8s moves %4d | all passengers delivered", row.Policy, row.Lift.TotalMoves)
	}
	return fmt.Sprintf("%-8s floor %3d | moves %4d | remaining %3d | delivered here %2d",
		row.Policy, row.Floor, row.Lift.TotalMoves, row.Lift.PassengersRemaining, row.Delivered)
}
