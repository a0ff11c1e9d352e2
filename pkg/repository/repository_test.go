package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/JaimeStill/boletin/pkg/repository"
)

var errNotFound = errors.New("not found")

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), errNotFound},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.MapError(tt.err, errNotFound); got != tt.want {
				t.Errorf("MapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type fakeResult int64

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return int64(r), nil }

type fakeExecutor struct {
	affected int64
	err      error
	query    string
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	f.query = query
	if f.err != nil {
		return nil, f.err
	}
	return fakeResult(f.affected), nil
}

func TestExecExpectOne(t *testing.T) {
	execErr := errors.New("exec failed")

	tests := []struct {
		name string
		exec *fakeExecutor
		want error
	}{
		{"one row", &fakeExecutor{affected: 1}, nil},
		{"no rows", &fakeExecutor{affected: 0}, sql.ErrNoRows},
		{"exec error", &fakeExecutor{err: execErr}, execErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repository.ExecExpectOne(context.Background(), tt.exec, "DELETE FROM documents WHERE id = $1", "BOE-A-2024-1")
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Errorf("ExecExpectOne = %v, want %v", err, tt.want)
			}
			if tt.exec.query == "" {
				t.Error("statement not executed")
			}
		})
	}
}
