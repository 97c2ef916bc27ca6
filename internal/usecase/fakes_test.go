package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"siso/internal/domain/entity"
	"siso/internal/domain/service"
	"siso/pkg/errors"
)

type fakeStore struct {
	mu        sync.Mutex
	signErr   error
	signed    []string
	objects   map[string]service.ObjectInfo
	statErr   error
	listErr   error
	deleted   []string
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]service.ObjectInfo{}}
}

func (s *fakeStore) SignWrite(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signErr != nil {
		return "", s.signErr
	}
	s.signed = append(s.signed, key)
	return fmt.Sprintf("https://bucket.example.com/%s?X-Amz-Expires=%d", key, int(ttl.Seconds())), nil
}

func (s *fakeStore) Stat(ctx context.Context, key string) (*service.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statErr != nil {
		return nil, s.statErr
	}
	info, ok := s.objects[key]
	if !ok {
		return nil, service.ErrObjectNotFound
	}
	return &info, nil
}

func (s *fakeStore) List(ctx context.Context, prefix string) ([]service.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []service.ObjectInfo
	for key, info := range s.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStore) Close() error { return nil }

type fakeUploadRepo struct {
	mu        sync.Mutex
	records   []*entity.UploadRecord
	createErr error
}

func (r *fakeUploadRepo) Create(ctx context.Context, record *entity.UploadRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeUploadRepo) GetByID(ctx context.Context, id string) (*entity.UploadRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, errors.NotFound("Upload", nil)
}

func (r *fakeUploadRepo) GetByRequestID(ctx context.Context, ownerID, requestID string) (*entity.UploadRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.OwnerID == ownerID && rec.RequestID == requestID {
			return rec, nil
		}
	}
	return nil, errors.NotFound("Upload", nil)
}

func (r *fakeUploadRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.UploadRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.UploadRecord
	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUploadRepo) StoragePathsByOwner(ctx context.Context, ownerID string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := map[string]bool{}
	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			paths[rec.StoragePath] = true
		}
	}
	return paths, nil
}

type fakeIssuanceRepo struct {
	events    []*entity.IssuanceEvent
	appendErr error
	owners    []string
}

func (r *fakeIssuanceRepo) Append(ctx context.Context, event *entity.IssuanceEvent) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *fakeIssuanceRepo) OwnersSince(ctx context.Context, since time.Time) ([]string, error) {
	return r.owners, nil
}

type fakeDeduper struct {
	seen     map[string]bool
	released []string
	err      error
}

func newFakeDeduper() *fakeDeduper { return &fakeDeduper{seen: map[string]bool{}} }

func (d *fakeDeduper) Claim(ctx context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen[id] {
		return false, nil
	}
	d.seen[id] = true
	return true, nil
}

func (d *fakeDeduper) Release(ctx context.Context, id string) error {
	delete(d.seen, id)
	d.released = append(d.released, id)
	return nil
}

type fakeLimiter struct {
	deny bool
	wait time.Duration
}

func (l *fakeLimiter) Allow(userID, action string) (bool, time.Duration) {
	if l.deny {
		return false, l.wait
	}
	return true, 0
}

type published struct {
	userID, eventType string
	data              interface{}
}

type fakeNotifier struct{ events []published }

func (n *fakeNotifier) Publish(userID, eventType string, data interface{}) {
	n.events = append(n.events, published{userID, eventType, data})
}

type fakeIdentity struct {
	users        map[string]*entity.CurrentUser
	displayNames map[string]string
	updateErr    error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: map[string]*entity.CurrentUser{}, displayNames: map[string]string{}}
}

func (f *fakeIdentity) VerifyToken(ctx context.Context, token string) (string, error) {
	return token, nil
}

func (f *fakeIdentity) GetCurrentUser(ctx context.Context, uid string) (*entity.CurrentUser, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, fmt.Errorf("no user %s", uid)
	}
	return u, nil
}

func (f *fakeIdentity) UpdateDisplayName(ctx context.Context, uid, name string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.displayNames[uid] = name
	return nil
}

type fakeMusicianRepo struct {
	docs map[string]*entity.Musician
}

func newFakeMusicianRepo() *fakeMusicianRepo {
	return &fakeMusicianRepo{docs: map[string]*entity.Musician{}}
}

func (r *fakeMusicianRepo) GetByID(ctx context.Context, id string) (*entity.Musician, error) {
	m, ok := r.docs[id]
	if !ok {
		return nil, errors.NotFound("Musician", nil)
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMusicianRepo) Merge(ctx context.Context, m *entity.Musician) error {
	cur, ok := r.docs[m.ID]
	if !ok {
		cur = &entity.Musician{ID: m.ID}
		r.docs[m.ID] = cur
	}
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setStr(&cur.Email, m.Email)
	setStr(&cur.Username, m.Username)
	setStr(&cur.FullName, m.FullName)
	setStr(&cur.Location, m.Location)
	setStr(&cur.Bio, m.Bio)
	setStr(&cur.Experience, m.Experience)
	setStr(&cur.SpotifyLink, m.SpotifyLink)
	setStr(&cur.YoutubeLink, m.YoutubeLink)
	setStr(&cur.Role, m.Role)
	if len(m.Genres) > 0 {
		cur.Genres = m.Genres
	}
	if len(m.Skills) > 0 {
		cur.Skills = m.Skills
	}
	if len(m.Influences) > 0 {
		cur.Influences = m.Influences
	}
	if !m.CreatedAt.IsZero() {
		cur.CreatedAt = m.CreatedAt
	}
	cur.UpdatedAt = m.UpdatedAt
	return nil
}

type fakeMatcher struct {
	results []entity.MatchResult
	err     error
	calls   int
}

func (m *fakeMatcher) Match(ctx context.Context, needs, profile string) ([]entity.MatchResult, error) {
	m.calls++
	return m.results, m.err
}
