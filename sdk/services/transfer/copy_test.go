// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/blobmover/sdk/config"
	"github.com/scc-digitalhub/blobmover/sdk/utils"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) BlobURL(container, path string) string {
	return "https://acct.example/" + container + "/" + config.EncodePath(path)
}

func (m *mockStore) List(ctx context.Context, container, prefix string) ([]string, error) {
	args := m.Called(ctx, container, prefix)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *mockStore) Properties(ctx context.Context, ref config.BlobRef) (*config.BlobProperties, error) {
	args := m.Called(ctx, ref)
	props, _ := args.Get(0).(*config.BlobProperties)
	return props, args.Error(1)
}

func (m *mockStore) StartCopy(ctx context.Context, src config.CopySource, dst config.BlobRef) (config.CopyStatus, error) {
	args := m.Called(ctx, src, dst)
	return args.Get(0).(config.CopyStatus), args.Error(1)
}

func (m *mockStore) Read(ctx context.Context, ref config.BlobRef) ([]byte, error) {
	args := m.Called(ctx, ref)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type waitRecorder struct {
	calls []time.Duration
}

func (w *waitRecorder) wait(_ context.Context, d time.Duration) error {
	w.calls = append(w.calls, d)
	return nil
}

var (
	srcRef = config.BlobRef{Container: "media", Path: "fre-mczbv-78d/audio/1 a.mp3"}
	dstRef = config.BlobRef{Container: "archive", Path: "fre-mczbv-78d/images/1 a.mp3"}
)

func newTestService(t *testing.T, store config.ObjectStore, verify config.VerifyMode, maxAttempts int) (*TransferService, *waitRecorder, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	rec := &waitRecorder{}
	svc, err := NewTransferService(context.Background(), config.Config{
		Copy: config.CopyConfig{
			SourceContainer:      "media",
			DestinationContainer: "archive",
			MaxPollAttempts:      maxAttempts,
			Verify:               verify,
		},
	}, WithStore(store), WithConsole(utils.NewConsole(&out, false)), WithLogger(utils.DiscardLogger()), WithWait(rec.wait))
	require.NoError(t, err)
	return svc, rec, &out
}

func props(status config.CopyStatus) *config.BlobProperties {
	return &config.BlobProperties{CopyStatus: status}
}

func TestCopyPollsUntilTerminal(t *testing.T) {
	store := &mockStore{}
	store.On("StartCopy", mock.Anything, mock.MatchedBy(func(src config.CopySource) bool {
		return src.URL == "https://acct.example/media/fre-mczbv-78d/audio/1%20a.mp3" && src.BlobRef == srcRef
	}), dstRef).Return(config.CopyStatusPending, nil).Once()
	store.On("Properties", mock.Anything, dstRef).Return(props(config.CopyStatusInProgress), nil).Once()
	store.On("Properties", mock.Anything, dstRef).Return(props(config.CopyStatusSuccess), nil).Once()

	svc, rec, out := newTestService(t, store, config.VerifyNone, 0)
	res, err := svc.Copy(context.Background(), CopyRequest{SourcePath: srcRef.Path, DestinationPath: dstRef.Path})
	require.NoError(t, err)

	assert.True(t, res.Succeeded())
	assert.Equal(t, 2, res.Waits)
	assert.Equal(t, []time.Duration{config.DefaultPollInterval, config.DefaultPollInterval}, rec.calls)
	assert.Contains(t, out.String(), "[INFO] Copy in progress... Waiting... (2)")
	assert.Contains(t, out.String(), "[STATUS] Copy Operation: ✔ Success")
	assert.NotContains(t, out.String(), "[VERIFY]")
	store.AssertExpectations(t)
}

func TestCopyImmediateSuccessDoesNotWait(t *testing.T) {
	store := &mockStore{}
	store.On("StartCopy", mock.Anything, mock.Anything, dstRef).Return(config.CopyStatusSuccess, nil)

	svc, rec, _ := newTestService(t, store, config.VerifyNone, 0)
	res, err := svc.Copy(context.Background(), CopyRequest{SourcePath: srcRef.Path, DestinationPath: dstRef.Path})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Waits)
	assert.Empty(t, rec.calls)
	store.AssertNotCalled(t, "Properties", mock.Anything, mock.Anything)
}

func TestVerificationDoesNotChangeOutcome(t *testing.T) {
	store := &mockStore{}
	store.On("StartCopy", mock.Anything, mock.Anything, dstRef).Return(config.CopyStatusSuccess, nil)
	store.On("Properties", mock.Anything, srcRef).Return(nil, errors.New("connection reset"))
	store.On("Properties", mock.Anything, dstRef).Return(nil, config.ErrBlobNotFound)

	svc, _, out := newTestService(t, store, config.VerifyBoth, 0)
	res, err := svc.Copy(context.Background(), CopyRequest{SourcePath: srcRef.Path, DestinationPath: dstRef.Path})
	require.NoError(t, err)

	assert.True(t, res.Succeeded())
	assert.Equal(t, Verification{Checked: true, Found: false}, res.SourceCheck)
	assert.Equal(t, Verification{Checked: true, Found: false}, res.DestinationCheck)
	assert.Contains(t, out.String(), "[VERIFY] Source in 'media': ✖ Not Found")
	assert.Contains(t, out.String(), "  fre-mczbv-78d/images/1 a.mp3 - ✖ Not Found")
}

func TestVerifyDestinationOnly(t *testing.T) {
	store := &mockStore{}
	store.On("StartCopy", mock.Anything, mock.Anything, dstRef).Return(config.CopyStatusSuccess, nil)
	store.On("Properties", mock.Anything, dstRef).Return(props(config.CopyStatusSuccess), nil)

	svc, _, out := newTestService(t, store, config.VerifyDestination, 0)
	res, err := svc.Copy(context.Background(), CopyRequest{SourcePath: srcRef.Path, DestinationPath: dstRef.Path})
	require.NoError(t, err)

	assert.False(t, res.SourceCheck.Checked)
	assert.True(t, res.DestinationCheck.Found)
	assert.Contains(t, out.String(), "- ✔ Verified")
	store.AssertNotCalled(t, "Properties", mock.Anything, srcRef)
}

func TestCopyFailedStatus(t *testing.T) {
	store := &mockStore{}
	store.On("StartCopy", mock.Anything, mock.Anything, dstRef).Return(config.CopyStatusPending, nil)
	store.On("Properties", mock.Anything, dstRef).Return(props(config.CopyStatusFailed), nil).Once()
	store.On("Properties", mock.Anything, mock.Anything).Return(props(config.CopyStatusFailed), nil)

	svc, _, out := newTestService(t, store, config.VerifyBoth, 0)
	res, err := svc.Copy(context.Background(), CopyRequest{SourcePath: srcRef.Path, DestinationPath: dstRef.Path})

	var failed *CopyFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, config.CopyStatusFailed, failed.Status)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Waits)
	assert.Contains(t, out.String(), "[STATUS] Copy Operation: ✖ Failed")
	assert.True(t, res.DestinationCheck.Checked)
}

func TestCopyPollLimit(t *testing.T) {
	store := &mockStore{}
	store.On("StartCopy", mock.Anything, mock.Anything, dstRef).Return(config.CopyStatusPending, nil)
	store.On("Properties", mock.Anything, dstRef).Return(props(config.CopyStatusPending), nil)

	svc, rec, _ := newTestService(t, store, config.VerifyNone, 3)
	res, err := svc.Copy(context.Background(), CopyRequest{SourcePath: srcRef.Path, DestinationPath: dstRef.Path})

	require.ErrorIs(t, err, ErrPollLimit)
	assert.Equal(t, 3, res.Waits)
	assert.Len(t, rec.calls, 3)
	store.AssertNumberOfCalls(t, "Properties", 3)
}

func TestCopyStartError(t *testing.T) {
	store := &mockStore{}
	store.On("StartCopy", mock.Anything, mock.Anything, dstRef).Return(config.CopyStatus(""), errors.New("403 forbidden"))

	svc, _, out := newTestService(t, store, config.VerifyBoth, 0)
	res, err := svc.Copy(context.Background(), CopyRequest{SourcePath: srcRef.Path, DestinationPath: dstRef.Path})

	assert.Nil(t, res)
	assert.ErrorContains(t, err, "403 forbidden")
	assert.Contains(t, out.String(), "[ERROR] Error copying 'fre-mczbv-78d/audio/1 a.mp3' to 'fre-mczbv-78d/images/1 a.mp3'")
}

func TestCopyHonoursCancellation(t *testing.T) {
	store := &mockStore{}
	store.On("StartCopy", mock.Anything, mock.Anything, dstRef).Return(config.CopyStatusPending, nil)

	var out bytes.Buffer
	svc, err := NewTransferService(context.Background(), config.Config{
		Copy: config.CopyConfig{SourceContainer: "media", DestinationContainer: "archive", PollInterval: time.Hour},
	}, WithStore(store), WithConsole(utils.NewConsole(&out, false)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Copy(ctx, CopyRequest{SourcePath: srcRef.Path, DestinationPath: dstRef.Path})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCopyRequestDefaults(t *testing.T) {
	store := config.NewMemoryStore()
	store.Put("media", "fre/audio/1.mp3", []byte("x"))

	svc, err := NewTransferService(context.Background(), config.Config{
		Copy: config.CopyConfig{SourceContainer: "media", Verify: config.VerifyBoth},
	}, WithStore(store), WithConsole(utils.NewConsole(&bytes.Buffer{}, false)))
	require.NoError(t, err)

	res, err := svc.Copy(context.Background(), CopyRequest{SourcePath: "fre/audio/1.mp3", DestinationPath: "fre/images/1.mp3"})
	require.NoError(t, err)
	assert.Equal(t, "media", res.Destination.Container)
	assert.True(t, res.SourceCheck.Found)
	assert.True(t, res.DestinationCheck.Found)

	_, err = svc.Copy(context.Background(), CopyRequest{SourcePath: "fre/audio/1.mp3"})
	assert.Error(t, err)

	empty, err := NewTransferService(context.Background(), config.Config{}, WithStore(store))
	require.NoError(t, err)
	_, err = empty.Copy(context.Background(), CopyRequest{SourcePath: "a/b", DestinationPath: "c/d"})
	assert.ErrorContains(t, err, "source container is mandatory")
}
