package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/music-catalog-service/internal/database"
	"github.com/helixir/music-catalog-service/internal/dedup"
	"github.com/helixir/music-catalog-service/internal/domain"
	"github.com/helixir/music-catalog-service/internal/importer"
	"github.com/helixir/music-catalog-service/internal/repository"
)

// In-memory fakes backing the handler tests.

type fakeDB struct {
	healthy  bool
	lockHeld bool
}

func (f *fakeDB) Health(context.Context) database.HealthStatus {
	if f.healthy {
		return database.HealthStatus{Status: "healthy"}
	}
	return database.HealthStatus{Status: "unhealthy", Error: "connection refused"}
}

func (f *fakeDB) TryAcquireImportLock(context.Context) (bool, error) {
	if f.lockHeld {
		return false, nil
	}
	f.lockHeld = true
	return true, nil
}

func (f *fakeDB) ReleaseImportLock(context.Context) error {
	f.lockHeld = false
	return nil
}

type fakePublisherRepo struct {
	mu         sync.Mutex
	nextID     int64
	publishers map[int64]*domain.Publisher
	renameErr  error
	deleteErr  error
}

func newFakePublisherRepo() *fakePublisherRepo {
	return &fakePublisherRepo{nextID: 1, publishers: map[int64]*domain.Publisher{}}
}

func (f *fakePublisherRepo) add(name string) *domain.Publisher {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &domain.Publisher{ID: f.nextID, Name: name, CreatedAt: time.Now()}
	f.nextID++
	f.publishers[p.ID] = p
	return p
}

func (f *fakePublisherRepo) sorted() []*domain.Publisher {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*domain.Publisher, 0, len(f.publishers))
	for _, p := range f.publishers {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

func (f *fakePublisherRepo) List(_ context.Context, filter repository.PublisherFilter) ([]*domain.Publisher, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	var matched []*domain.Publisher
	for _, p := range f.sorted() {
		if filter.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.NameContains)) {
			continue
		}
		matched = append(matched, p)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (f *fakePublisherRepo) GetByID(_ context.Context, id int64) (*domain.Publisher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.publishers[id]
	if !ok {
		return nil, domain.NewNotFoundError("publisher", "")
	}
	return p, nil
}

func (f *fakePublisherRepo) GetOrCreate(_ context.Context, name string) (*domain.Publisher, error) {
	for _, p := range f.sorted() {
		if p.Name == name {
			return p, nil
		}
	}
	return f.add(name), nil
}

func (f *fakePublisherRepo) UpdateName(_ context.Context, id int64, name string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.publishers[id]
	if !ok {
		return domain.NewNotFoundError("publisher", "")
	}
	p.Name = name
	return nil
}

func (f *fakePublisherRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.publishers[id]; !ok {
		return domain.NewNotFoundError("publisher", "")
	}
	delete(f.publishers, id)
	return nil
}

func (f *fakePublisherRepo) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.publishers)), nil
}

type fakePublicationRepo struct {
	mu           sync.Mutex
	nextID       int64
	publications []*domain.Publication
	repointErr   error
}

func (f *fakePublicationRepo) Repoint(_ context.Context, sourceID, targetID int64) (int64, error) {
	if f.repointErr != nil {
		return 0, f.repointErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var moved int64
	for _, p := range f.publications {
		if p.PublisherID != nil && *p.PublisherID == sourceID {
			id := targetID
			p.PublisherID = &id
			moved++
		}
	}
	return moved, nil
}

func (f *fakePublicationRepo) CreateBatch(_ context.Context, publications []*domain.Publication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range publications {
		f.nextID++
		p.ID = f.nextID
		f.publications = append(f.publications, p)
	}
	return nil
}

func (f *fakePublicationRepo) ListByWork(_ context.Context, workID int64) ([]*domain.Publication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*domain.Publication
	for _, p := range f.publications {
		if p.WorkID != nil && *p.WorkID == workID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (f *fakePublicationRepo) CountByPublisher(_ context.Context, publisherID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.publications {
		if p.PublisherID != nil && *p.PublisherID == publisherID {
			count++
		}
	}
	return count, nil
}

type fakeWorkRepo struct {
	mu           sync.Mutex
	nextID       int64
	works        map[int64]*domain.Work
	contributors []domain.WorkContributor
}

func newFakeWorkRepo() *fakeWorkRepo {
	return &fakeWorkRepo{nextID: 0, works: map[int64]*domain.Work{}}
}

func (f *fakeWorkRepo) Create(ctx context.Context, work *domain.Work) error {
	_, err := f.CreateBatch(ctx, []*domain.Work{work})
	return err
}

func (f *fakeWorkRepo) CreateBatch(_ context.Context, works []*domain.Work) ([]*domain.Work, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, w := range works {
		f.nextID++
		w.ID = f.nextID
		w.CreatedAt = now
		w.UpdatedAt = now
		f.works[w.ID] = w
	}
	return works, nil
}

func (f *fakeWorkRepo) GetByID(_ context.Context, id int64) (*domain.Work, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.works[id]
	if !ok {
		return nil, domain.NewNotFoundError("work", "")
	}
	return w, nil
}

func (f *fakeWorkRepo) List(_ context.Context, filter repository.WorkFilter) ([]*domain.Work, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*domain.Work
	for _, w := range f.works {
		if filter.TitleContains != "" && !strings.Contains(strings.ToLower(w.Title), strings.ToLower(filter.TitleContains)) {
			continue
		}
		if filter.CategoryID != nil && (w.CategoryID == nil || *w.CategoryID != *filter.CategoryID) {
			continue
		}
		matched = append(matched, w)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })
	return matched, int64(len(matched)), nil
}

func (f *fakeWorkRepo) ExistingTitleKeys(context.Context) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make(map[string]bool, len(f.works))
	for _, w := range f.works {
		keys[w.TitleKey()] = true
	}
	return keys, nil
}

func (f *fakeWorkRepo) AddContributors(_ context.Context, contributors []domain.WorkContributor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contributors = append(f.contributors, contributors...)
	return nil
}

func (f *fakeWorkRepo) ListContributors(_ context.Context, workID int64) ([]domain.WorkContributor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []domain.WorkContributor
	for _, c := range f.contributors {
		if c.WorkID == workID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

type fakePersonRepo struct {
	mu     sync.Mutex
	nextID int64
	people map[string]*domain.Person
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{people: map[string]*domain.Person{}}
}

func (f *fakePersonRepo) GetByID(context.Context, int64) (*domain.Person, error) {
	return nil, domain.NewNotFoundError("person", "")
}

func (f *fakePersonRepo) GetOrCreate(ctx context.Context, fullName string) (*domain.Person, error) {
	results, err := f.BulkGetOrCreate(ctx, []*domain.Person{{FullName: fullName}})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

func (f *fakePersonRepo) BulkGetOrCreate(_ context.Context, people []*domain.Person) ([]*domain.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	results := make([]*domain.Person, 0, len(people))
	for _, p := range people {
		existing, ok := f.people[p.FullName]
		if !ok {
			f.nextID++
			existing = &domain.Person{ID: f.nextID, FullName: p.FullName, BirthYear: p.BirthYear, DeathYear: p.DeathYear}
			f.people[p.FullName] = existing
		}
		results = append(results, existing)
	}
	return results, nil
}

func (f *fakePersonRepo) List(_ context.Context, filter repository.PersonFilter) ([]*domain.Person, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*domain.Person
	for _, p := range f.people {
		if filter.NameContains != "" && !strings.Contains(strings.ToLower(p.FullName), strings.ToLower(filter.NameContains)) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].FullName < matched[j].FullName })
	return matched, int64(len(matched)), nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	nextID     int64
	categories map[string]*domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*domain.Category{}}
}

func (f *fakeCategoryRepo) List(context.Context) ([]*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (f *fakeCategoryRepo) GetByID(context.Context, int64) (*domain.Category, error) {
	return nil, domain.NewNotFoundError("category", "")
}

func (f *fakeCategoryRepo) GetOrCreate(_ context.Context, name string) (*domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.categories[name]; ok {
		return c, nil
	}
	f.nextID++
	c := &domain.Category{ID: f.nextID, Name: name}
	f.categories[name] = c
	return c, nil
}

// fixture wires a Server over the in-memory fakes.
type fixture struct {
	server       *Server
	db           *fakeDB
	publishers   *fakePublisherRepo
	publications *fakePublicationRepo
	works        *fakeWorkRepo
	people       *fakePersonRepo
	categories   *fakeCategoryRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		db:           &fakeDB{healthy: true},
		publishers:   newFakePublisherRepo(),
		publications: &fakePublicationRepo{},
		works:        newFakeWorkRepo(),
		people:       newFakePersonRepo(),
		categories:   newFakeCategoryRepo(),
	}

	logger := zerolog.Nop()
	merger := dedup.NewMerger(dedup.NewPublisherStore(f.publishers, f.publications), logger)
	imp := importer.NewImporter(f.works, f.people, f.categories, f.publishers, f.publications, importer.Config{}, logger, nil)

	f.server = NewServer(Config{
		Address:             "127.0.0.1:0",
		SimilarityThreshold: dedup.DefaultThreshold,
		CSVDir:              t.TempDir(),
	}, f.publishers, f.publications, f.works, f.people, f.categories, merger, imp, f.db, logger, nil)

	return f
}

func (f *fixture) request(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	f.server.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	f.db.healthy = false
	rec = f.request(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadyz(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeResponse(t, rec, &body)
	assert.Equal(t, "ready", body["status"])
}
