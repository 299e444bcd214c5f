package ingest

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"workload-import-api/internal/models"
)

// fakeStore is an in-memory store.Store used by the ingest tests, with
// switchable failure injection for the degradation paths.
type fakeStore struct {
	users    map[string]*models.User
	nextID   int64
	inserted map[string][]map[string]interface{}
	audits   []fakeAudit
	touched  []int64

	lookups   int
	creations int

	failBatch bool
	failUser  bool
	failRow   func(row map[string]interface{}) bool
}

type fakeAudit struct {
	action  string
	actor   string
	details interface{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		inserted: make(map[string][]map[string]interface{}),
	}
}

func (f *fakeStore) FindUserByName(fullName string) (*models.User, error) {
	f.lookups++
	if u, ok := f.users[fullName]; ok {
		return u, nil
	}
	return nil, nil
}

func (f *fakeStore) InsertUser(u *models.User) (int64, error) {
	if f.failUser {
		return 0, errors.New("user insert failed")
	}
	f.creations++
	f.nextID++
	u.ID = f.nextID
	f.users[u.FullName] = u
	return u.ID, nil
}

func (f *fakeStore) InsertBatch(table string, rows []map[string]interface{}) error {
	if f.failBatch {
		return errors.New("bulk insert failed")
	}
	f.inserted[table] = append(f.inserted[table], rows...)
	return nil
}

func (f *fakeStore) InsertRow(table string, row map[string]interface{}) error {
	if f.failRow != nil && f.failRow(row) {
		return errors.New("row insert failed")
	}
	f.inserted[table] = append(f.inserted[table], row)
	return nil
}

func (f *fakeStore) AppendAuditLog(action, actor string, details interface{}) error {
	f.audits = append(f.audits, fakeAudit{action: action, actor: actor, details: details})
	return nil
}

func (f *fakeStore) TouchUser(id int64) error {
	f.touched = append(f.touched, id)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
