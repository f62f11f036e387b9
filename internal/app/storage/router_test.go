package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketlegal/pocketlegal/internal/app/models"
	"github.com/pocketlegal/pocketlegal/internal/app/report"
	"github.com/pocketlegal/pocketlegal/internal/common"
	"github.com/pocketlegal/pocketlegal/internal/cryptox"
)

type fakeBlobStore struct {
	uploads   int
	unpins    []string
	uploadErr error
	lastMeta  map[string]string
}

func (f *fakeBlobStore) Upload(ctx context.Context, userID string, data []byte, meta map[string]string) (*models.RecordingRef, error) {
	f.uploads++
	f.lastMeta = meta
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	key := StorageKey(userID, data)
	return &models.RecordingRef{
		Kind:       models.RefDurable,
		URI:        fmt.Sprintf("s3://bucket/%s", key),
		StorageKey: key,
	}, nil
}

func (f *fakeBlobStore) Unpin(ctx context.Context, storageKey string) error {
	f.unpins = append(f.unpins, storageKey)
	return nil
}

func (f *fakeBlobStore) DurableURL(ctx context.Context, storageKey string) (string, error) {
	return "https://example.com/" + storageKey, nil
}

func TestRouter_PremiumUploadsDurably(t *testing.T) {
	durable := &fakeBlobStore{}
	r := NewRouter(RouterOptions{Durable: durable})

	meta := map[string]string{"encounter-type": "traffic-stop"}
	ref, err := r.Store(context.Background(), "user-1", []byte("audio"), true, meta)
	require.NoError(t, err)
	require.NotNil(t, ref)

	assert.True(t, ref.Durable())
	assert.Equal(t, 1, durable.uploads)
	assert.Equal(t, meta, durable.lastMeta)
	assert.Equal(t, 0, r.Local().Len())
}

func TestRouter_FreeNeverTouchesDurableStore(t *testing.T) {
	durable := &fakeBlobStore{}
	r := NewRouter(RouterOptions{Durable: durable})

	ref, err := r.Store(context.Background(), "user-1", []byte("audio"), false, nil)
	require.NoError(t, err)
	require.NotNil(t, ref)

	assert.Equal(t, 0, durable.uploads)
	assert.Equal(t, models.RefLocal, ref.Kind)
	assert.True(t, strings.HasPrefix(ref.URI, "local://"))
}

func TestRouter_UploadFailureFallsBackLocally(t *testing.T) {
	durable := &fakeBlobStore{uploadErr: errors.New("bucket unreachable")}
	mon := report.NewMonitor(4)
	r := NewRouter(RouterOptions{Durable: durable, Reporter: mon})

	ref, err := r.Store(context.Background(), "user-1", []byte("audio"), true, nil)
	require.NoError(t, err)
	require.NotNil(t, ref)

	assert.Equal(t, models.RefLocal, ref.Kind)
	assert.Equal(t, 1, durable.uploads)

	events := mon.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, "recording.upload", events[0].Op)
	assert.ErrorIs(t, events[0].Err, common.ErrRemoteSync)

	data, err := r.Local().Open(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), data)
}

func TestRouter_NoDurableStoreConfigured(t *testing.T) {
	r := NewRouter(RouterOptions{})

	ref, err := r.Store(context.Background(), "user-1", []byte("audio"), true, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RefLocal, ref.Kind)
}

func TestRouter_EmptyBlobRejected(t *testing.T) {
	r := NewRouter(RouterOptions{})

	_, err := r.Store(context.Background(), "user-1", nil, false, nil)
	assert.ErrorIs(t, err, common.ErrInternal)
}

func TestRouter_SealerEncryptsBeforePlacement(t *testing.T) {
	key := cryptox.DeriveKey([]byte("passphrase"), []byte("salt1234"))
	sealer, err := cryptox.NewSealer(key)
	require.NoError(t, err)

	r := NewRouter(RouterOptions{Sealer: sealer})

	ref, err := r.Store(context.Background(), "user-1", []byte("audio"), false, nil)
	require.NoError(t, err)

	stored, err := r.Local().Open(ref)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("audio"), stored)

	plain, err := sealer.Open(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), plain)
}

func TestRouter_RemoveDurableUnpins(t *testing.T) {
	durable := &fakeBlobStore{}
	r := NewRouter(RouterOptions{Durable: durable})

	ref, err := r.Store(context.Background(), "user-1", []byte("audio"), true, nil)
	require.NoError(t, err)

	require.NoError(t, r.Remove(context.Background(), ref))
	require.Len(t, durable.unpins, 1)
	assert.Equal(t, ref.StorageKey, durable.unpins[0])
}

func TestRouter_RemoveLocalReleasesHandle(t *testing.T) {
	r := NewRouter(RouterOptions{})

	ref, err := r.Store(context.Background(), "user-1", []byte("audio"), false, nil)
	require.NoError(t, err)
	require.Equal(t, 1, r.Local().Len())

	require.NoError(t, r.Remove(context.Background(), ref))
	assert.Equal(t, 0, r.Local().Len())

	_, err = r.Local().Open(ref)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRouter_RemoveNilRefIsNoop(t *testing.T) {
	r := NewRouter(RouterOptions{})
	assert.NoError(t, r.Remove(context.Background(), nil))
}

func TestLocalStore_OpenUnknownHandle(t *testing.T) {
	s := NewLocalStore()
	_, err := s.Open(&models.RecordingRef{Kind: models.RefLocal, URI: "local://missing"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLocalStore_SaveCopiesData(t *testing.T) {
	s := NewLocalStore()
	data := []byte("audio")
	ref := s.Save(data)

	data[0] = 'x'

	stored, err := s.Open(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), stored)
}

func TestStorageKey_ContentAddressed(t *testing.T) {
	k1 := StorageKey("user-1", []byte("audio"))
	k2 := StorageKey("user-1", []byte("audio"))
	k3 := StorageKey("user-1", []byte("other"))

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.True(t, strings.HasPrefix(k1, "recordings/user-1/"))
}
