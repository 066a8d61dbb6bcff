package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:storagetest?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS storage (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM storage`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(setupDB(t))

	require.NoError(t, s.Set(ctx, KeyAuthToken, []byte("tok-1")))

	got, err := s.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), got)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(setupDB(t))

	require.NoError(t, s.Set(ctx, KeyAuthToken, []byte("old")))
	require.NoError(t, s.Set(ctx, KeyAuthToken, []byte("new")))

	got, err := s.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got)
}

func TestSQLiteStore_GetMissingKeyReturnsNilNil(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(setupDB(t))

	got, err := s.Get(ctx, KeyUserData)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(setupDB(t))

	require.NoError(t, s.Set(ctx, KeyUserData, []byte(`{"id":"u1"}`)))
	require.NoError(t, s.Delete(ctx, KeyUserData))

	got, err := s.Get(ctx, KeyUserData)
	require.NoError(t, err)
	require.Nil(t, got)

	// Deleting again is a no-op.
	require.NoError(t, s.Delete(ctx, KeyUserData))
}

func TestSQLiteStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(setupDB(t))

	require.NoError(t, s.Set(ctx, KeyAuthToken, []byte("t")))
	require.NoError(t, s.Set(ctx, KeyUserData, []byte("u")))
	require.NoError(t, s.Clear(ctx))

	for _, key := range []string{KeyAuthToken, KeyUserData} {
		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, got)
	}
}

func TestSQLiteStore_Update_AbsentKeyGetsNil(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(setupDB(t))

	err := s.Update(ctx, KeyUsers, func(old []byte) ([]byte, error) {
		require.Nil(t, old)
		return []byte(`[]`), nil
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, KeyUsers)
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), got)
}

func TestSQLiteStore_Update_FnErrorAbortsWrite(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(setupDB(t))

	require.NoError(t, s.Set(ctx, KeyUsers, []byte(`["a"]`)))

	wantErr := errors.New("reject")
	err := s.Update(ctx, KeyUsers, func(old []byte) ([]byte, error) {
		return []byte(`["a","b"]`), wantErr
	})
	require.ErrorIs(t, err, wantErr)

	got, err := s.Get(ctx, KeyUsers)
	require.NoError(t, err)
	require.Equal(t, []byte(`["a"]`), got)
}

func TestSQLiteStore_Update_ModifiesExistingValue(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteStore(setupDB(t))

	require.NoError(t, s.Set(ctx, KeyUsers, []byte(`["a"]`)))

	err := s.Update(ctx, KeyUsers, func(old []byte) ([]byte, error) {
		require.Equal(t, []byte(`["a"]`), old)
		return []byte(`["a","b"]`), nil
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, KeyUsers)
	require.NoError(t, err)
	require.Equal(t, []byte(`["a","b"]`), got)
}
