package credential

import (
	"context"
	"errors"
	"sync"
	"testing"

	"user_admin/internal/domain"

	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeStore struct {
	mu      sync.Mutex
	digests map[uint64]string
	calls   int
	err     error
}

func (f *fakeStore) CompareAndSetPassword(_ context.Context, userID uint64, oldDigest, newDigest string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if f.digests[userID] != oldDigest {
		return 0, nil
	}
	f.digests[userID] = newDigest
	return 1, nil
}

type fakeSessions struct {
	mu          sync.Mutex
	invalidated []uint64
	err         error
}

func (f *fakeSessions) Invalidate(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, userID)
	return f.err
}

type fakeFlags bool

func (f fakeFlags) IsRestrictedEnvironment() bool { return bool(f) }

func newRotator(t *testing.T, restricted bool) (*Rotator, *fakeStore, *fakeSessions, Digester) {
	t.Helper()
	d, err := NewDigester(SHA256)
	require.NoError(t, err)
	store := &fakeStore{digests: map[uint64]string{7: d.Digest("old-secret")}}
	sessions := &fakeSessions{}
	return NewRotator(store, sessions, fakeFlags(restricted), d), store, sessions, d
}

func TestRotate_Success(t *testing.T) {
	r, store, sessions, d := newRotator(t, false)

	require.NoError(t, r.Rotate(context.Background(), 7, "old-secret", "new-secret"))
	require.Equal(t, d.Digest("new-secret"), store.digests[7])
	require.Equal(t, []uint64{7}, sessions.invalidated)
}

func TestRotate_WrongOldPassword(t *testing.T) {
	r, store, sessions, d := newRotator(t, false)

	err := r.Rotate(context.Background(), 7, "guess", "new-secret")
	require.ErrorIs(t, err, domain.ErrWrongOldPassword)
	require.Equal(t, d.Digest("old-secret"), store.digests[7])
	require.Empty(t, sessions.invalidated)
}

func TestRotate_EmptyNewPasswordSkipsStore(t *testing.T) {
	r, store, sessions, _ := newRotator(t, false)

	for _, blank := range []string{"", "   ", "\t\n"} {
		err := r.Rotate(context.Background(), 7, "old-secret", blank)
		require.ErrorIs(t, err, domain.ErrEmptyNewPassword)
	}
	require.Zero(t, store.calls)
	require.Empty(t, sessions.invalidated)
}

func TestRotate_RestrictedEnvironmentFirst(t *testing.T) {
	r, store, sessions, _ := newRotator(t, true)

	// blank new password would also fail, the lock is reported first
	err := r.Rotate(context.Background(), 7, "old-secret", "")
	require.ErrorIs(t, err, domain.ErrEnvironmentLocked)
	require.Zero(t, store.calls)
	require.Empty(t, sessions.invalidated)
}

func TestRotate_StoreErrorDoesNotInvalidate(t *testing.T) {
	r, store, sessions, _ := newRotator(t, false)
	store.err = errors.New("db down")

	err := r.Rotate(context.Background(), 7, "old-secret", "new-secret")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrWrongOldPassword)
	require.Empty(t, sessions.invalidated)
}

func TestRotate_InvalidationFailureIsReported(t *testing.T) {
	r, _, sessions, _ := newRotator(t, false)
	sessions.err = errors.New("redis down")

	err := r.Rotate(context.Background(), 7, "old-secret", "new-secret")
	require.ErrorContains(t, err, "invalidate session")
}

func TestRotate_ConcurrentSameStaleDigest(t *testing.T) {
	r, _, sessions, _ := newRotator(t, false)

	const workers = 2
	errs := make([]error, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs[i] = r.Rotate(context.Background(), 7, "old-secret", "new-secret")
		}()
	}
	close(start)
	wg.Wait()

	var ok, wrong int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrWrongOldPassword):
			wrong++
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, wrong)
	require.Equal(t, []uint64{7}, sessions.invalidated)
}

func TestNewDigester(t *testing.T) {
	sha, err := NewDigester("")
	require.NoError(t, err)
	// sha256("abc")
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sha.Digest("abc"))

	s3, err := NewDigester(SHA3_256)
	require.NoError(t, err)
	// sha3-256("abc")
	require.Equal(t, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532", s3.Digest("abc"))
	require.Len(t, s3.Digest("anything"), 64)

	_, err = NewDigester("md5")
	require.Error(t, err)
}
