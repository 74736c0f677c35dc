package record

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknownFood    = errors.New("food does not exist")
)

type Repository interface {
	Add(ctx context.Context, rec *Record) error
	ListByDate(ctx context.Context, userID int64, date time.Time) ([]Entry, error)
	// Delete removes the record only when it belongs to userID.
	Delete(ctx context.Context, userID, id int64) error
	Summary(ctx context.Context, userID int64, date time.Time) (Summary, error)
	// DailyTotals sums calories per day from since onwards, ascending, rounded
	// to 2 decimals.
	DailyTotals(ctx context.Context, userID int64, since time.Time) ([]DailyTotal, error)
}
