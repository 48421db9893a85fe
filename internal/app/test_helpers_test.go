package app

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/andyballingall/fmtcommit/internal/formatter"
	"github.com/andyballingall/fmtcommit/internal/repo"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) FormatAndCommit(ctx context.Context, message string, opts RunOptions) error {
	args := m.Called(ctx, message, opts)
	return args.Error(0)
}

// MockFormatter is a test mock for the formatter.Formatter interface.
type MockFormatter struct {
	mock.Mock
}

func (m *MockFormatter) Format(ctx context.Context) (*formatter.Result, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*formatter.Result)
	return res, args.Error(1)
}

func (m *MockFormatter) String() string {
	return "cargo fmt"
}

// MockGitter is a test mock for the repo.Gitter interface.
type MockGitter struct {
	mock.Mock
}

func (m *MockGitter) Root(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitter) GitDir(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitter) Commit(ctx context.Context, message string) (repo.Revision, error) {
	args := m.Called(ctx, message)
	rev, _ := args.Get(0).(repo.Revision)
	return rev, args.Error(1)
}

func okFormat() *formatter.Result {
	return &formatter.Result{CommandLine: []string{"cargo", "fmt"}, Duration: 40 * time.Millisecond}
}
