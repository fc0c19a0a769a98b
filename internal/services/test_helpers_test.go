package services

import (
	"sync"
	"testing"

	"github.com/99designs/keyring"
	"github.com/jared-cannon/app-registry/internal/models"
	"github.com/jared-cannon/app-registry/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSlot = "ai_apps_list_v1"

// setupTestStore creates a record store over an in-memory SQLite database
func setupTestStore(t *testing.T) (*RecordStore, storage.KeyValueStore) {
	db, err := storage.OpenSQLite(":memory:", &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open in-memory database")

	kv := storage.NewSQLiteStore(db)
	return NewRecordStore(kv, testSlot), kv
}

// setupKeyringStore creates a record store over an in-memory keyring
func setupKeyringStore(t *testing.T) (*RecordStore, storage.KeyValueStore) {
	kv := storage.NewKeyringStore(keyring.NewArrayKeyring(nil))
	return NewRecordStore(kv, testSlot), kv
}

// validApp returns a record that passes every registration rule
func validApp() models.AppRecord {
	return models.AppRecord{
		Name:    "MyApp",
		Company: "شركة الاختبار",
		Website: "https://test.com",
		Free:    "yes",
		Domain:  "Education",
		Summary: "A great learning tool",
	}
}

type broadcast struct {
	Channel string
	Event   string
	Data    interface{}
}

// recordingNotifier captures broadcasts for assertions
type recordingNotifier struct {
	mu     sync.Mutex
	events []broadcast
}

func (n *recordingNotifier) Broadcast(channel string, event string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, broadcast{Channel: channel, Event: event, Data: data})
}

func (n *recordingNotifier) Events() []broadcast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]broadcast(nil), n.events...)
}

// failingKV fails every write
type failingKV struct {
	storage.KeyValueStore
	err error
}

func (f *failingKV) Set(key, value string) error {
	return f.err
}
