package hunt_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vill-8/nursery-scout/internal/auth"
	"github.com/Vill-8/nursery-scout/internal/hunt"
	"github.com/Vill-8/nursery-scout/internal/model"
	"github.com/Vill-8/nursery-scout/internal/scout"
)

const huntID = "3b241101-e2bb-4255-8caf-4136c566a962"

// ─── Fakes ───────────────────────────────────────────────────────────────────

type fakeStore struct {
	hunt      *model.Hunt
	getErr    error
	toggleErr error
}

func (s *fakeStore) List(ctx context.Context, userID string) ([]model.Hunt, error) {
	return nil, nil
}

func (s *fakeStore) Get(ctx context.Context, userID, id string) (*model.Hunt, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.hunt, nil
}

func (s *fakeStore) Create(ctx context.Context, userID string, in hunt.CreateInput) (*model.Hunt, error) {
	return nil, nil
}

func (s *fakeStore) Toggle(ctx context.Context, userID, id string) (*model.Hunt, error) {
	if s.toggleErr != nil {
		return nil, s.toggleErr
	}
	return s.hunt, nil
}

func (s *fakeStore) Delete(ctx context.Context, userID, id string) error { return nil }

type fakeScouter struct {
	calls int
	resp  *scout.Response
	err   error
}

func (f *fakeScouter) Scout(ctx context.Context, req scout.Request) (*scout.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeLocker struct {
	acquired bool
	lockErr  error
	unlocks  int
}

func (l *fakeLocker) TryLock(ctx context.Context, id string) (bool, error) {
	return l.acquired, l.lockErr
}

func (l *fakeLocker) Unlock(ctx context.Context, id string) error {
	l.unlocks++
	return nil
}

func doRequest(t *testing.T, h *hunt.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(auth.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func activeHunt() *model.Hunt {
	return &model.Hunt{
		ID:       huntID,
		UserID:   "user-1",
		Brand:    model.BrandUPPAbaby,
		Category: model.CategoryStroller,
		MaxPrice: 500,
		IsActive: true,
	}
}

// ─── Scout trigger ───────────────────────────────────────────────────────────

func TestScoutNow_RelaysDealsFound(t *testing.T) {
	scouter := &fakeScouter{resp: &scout.Response{Success: true, DealsFound: 3}}
	locks := &fakeLocker{acquired: true}
	h := hunt.NewHandler(&fakeStore{hunt: activeHunt()}, scouter, locks)

	rec := doRequest(t, h, http.MethodPost, "/hunts/"+huntID+"/scout")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var got map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["deals_found"] != 3 {
		t.Errorf("deals_found = %d, want 3", got["deals_found"])
	}
	if locks.unlocks != 1 {
		t.Errorf("lock released %d times, want 1", locks.unlocks)
	}
}

func TestScoutNow_ConflictWhileRunInFlight(t *testing.T) {
	scouter := &fakeScouter{resp: &scout.Response{Success: true}}
	locks := &fakeLocker{acquired: false}
	h := hunt.NewHandler(&fakeStore{hunt: activeHunt()}, scouter, locks)

	rec := doRequest(t, h, http.MethodPost, "/hunts/"+huntID+"/scout")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body)
	}
	if scouter.calls != 0 {
		t.Errorf("worker called %d times while locked, want 0", scouter.calls)
	}
	// The other run still holds the lock; this request must not release it.
	if locks.unlocks != 0 {
		t.Errorf("lock released %d times by rejected request, want 0", locks.unlocks)
	}
}

func TestScoutNow_WorkerFailureIsBadGateway(t *testing.T) {
	scouter := &fakeScouter{err: errors.New("connection refused")}
	locks := &fakeLocker{acquired: true}
	h := hunt.NewHandler(&fakeStore{hunt: activeHunt()}, scouter, locks)

	rec := doRequest(t, h, http.MethodPost, "/hunts/"+huntID+"/scout")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502: %s", rec.Code, rec.Body)
	}
	if locks.unlocks != 1 {
		t.Errorf("lock released %d times after failure, want 1", locks.unlocks)
	}
}

func TestScoutNow_LockStoreDownSkipsUnlock(t *testing.T) {
	scouter := &fakeScouter{resp: &scout.Response{Success: true, DealsFound: 1}}
	locks := &fakeLocker{lockErr: errors.New("redis: connection refused")}
	h := hunt.NewHandler(&fakeStore{hunt: activeHunt()}, scouter, locks)

	rec := doRequest(t, h, http.MethodPost, "/hunts/"+huntID+"/scout")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (lock store down is non-fatal): %s", rec.Code, rec.Body)
	}
	if scouter.calls != 1 {
		t.Errorf("worker called %d times, want 1", scouter.calls)
	}
	// No lock was taken, so a release could delete a concurrent run's lock.
	if locks.unlocks != 0 {
		t.Errorf("lock released %d times without being held, want 0", locks.unlocks)
	}
}

func TestScoutNow_UnknownHunt(t *testing.T) {
	scouter := &fakeScouter{}
	h := hunt.NewHandler(&fakeStore{getErr: hunt.ErrNotFound}, scouter, &fakeLocker{acquired: true})

	rec := doRequest(t, h, http.MethodPost, "/hunts/"+huntID+"/scout")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body)
	}
	if scouter.calls != 0 {
		t.Errorf("worker called %d times for missing hunt, want 0", scouter.calls)
	}
}

func TestScoutNow_StoreFailureIsInternal(t *testing.T) {
	h := hunt.NewHandler(&fakeStore{getErr: errors.New("conn closed")}, &fakeScouter{}, &fakeLocker{acquired: true})

	rec := doRequest(t, h, http.MethodPost, "/hunts/"+huntID+"/scout")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500: %s", rec.Code, rec.Body)
	}
}

// ─── Toggle ──────────────────────────────────────────────────────────────────

func TestToggle_StatusByErrorKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"missing hunt", hunt.ErrNotFound, http.StatusNotFound},
		{"store failure", errors.New("conn closed"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := hunt.NewHandler(&fakeStore{toggleErr: tc.err}, &fakeScouter{}, &fakeLocker{})
			rec := doRequest(t, h, http.MethodPost, "/hunts/"+huntID+"/toggle")
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tc.want, rec.Body)
			}
		})
	}
}
