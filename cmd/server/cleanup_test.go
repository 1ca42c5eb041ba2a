package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey string

type fakeShutdowner struct {
	name        string
	calls       *[]string
	err         error
	receivedCtx context.Context
}

func (f *fakeShutdowner) Shutdown(ctx context.Context) error {
	f.receivedCtx = ctx
	*f.calls = append(*f.calls, f.name)
	return f.err
}

type fakeStore struct {
	calls *[]string
}

func (s *fakeStore) Close() error {
	*s.calls = append(*s.calls, "storeClose")
	return nil
}

func TestNewCleanup_Order(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey("test"), "marker")
	var callOrder []string

	server := &fakeShutdowner{name: "serverShutdown", calls: &callOrder}
	authenticator := &fakeShutdowner{name: "authShutdown", calls: &callOrder}
	store := &fakeStore{calls: &callOrder}

	require.NoError(t, newCleanup(ctx, server, authenticator, store)())

	assert.Equal(t, []string{"serverShutdown", "authShutdown", "storeClose"}, callOrder)
	assert.Equal(t, "marker", authenticator.receivedCtx.Value(ctxKey("test")))
}

func TestNewCleanup_ContinuesAfterFailure(t *testing.T) {
	var callOrder []string
	boom := errors.New("deadline exceeded")

	server := &fakeShutdowner{name: "serverShutdown", calls: &callOrder, err: boom}
	authenticator := &fakeShutdowner{name: "authShutdown", calls: &callOrder}
	store := &fakeStore{calls: &callOrder}

	err := newCleanup(context.Background(), server, authenticator, store)()

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"serverShutdown", "authShutdown", "storeClose"}, callOrder)
}

func TestNewCleanup_NilParts(t *testing.T) {
	assert.NoError(t, newCleanup(context.Background(), nil, nil, nil)())
}
