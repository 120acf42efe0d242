package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr error
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	return nil
}

type fakeBeginner struct {
	commitErrs []error // ошибка Commit на каждую попытку
	begun      int
}

func (b *fakeBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	if b.begun < len(b.commitErrs) {
		tx.commitErr = b.commitErrs[b.begun]
	}
	b.begun++
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{serializationFailure(), serializationFailure(), nil}}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, beginner.begun)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	beginner := &fakeBeginner{commitErrs: []error{
		serializationFailure(), serializationFailure(), serializationFailure(), serializationFailure(),
	}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.True(t, isSerializationFailure(err))
	assert.Equal(t, maxSerializationRetries, beginner.begun)
}

func TestDoSerializable_BusinessErrorNotRetried(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	sentinel := errors.New("slot conflict")
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, beginner.begun)
}
