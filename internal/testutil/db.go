// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"anoa.com/fedipost/internal/bootstrap"
	"anoa.com/fedipost/internal/entity"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory sqlite database with foreign keys on.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// a single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func CreateFile(t testing.TB, db *gorm.DB, mediaType, rawURL string) entity.File {
	t.Helper()
	file := entity.File{MediaType: mediaType, URL: rawURL}
	if err := db.Create(&file).Error; err != nil {
		t.Fatalf("create file: %v", err)
	}
	return file
}

func CreateUser(t testing.TB, db *gorm.DB, handle, host string) entity.User {
	t.Helper()
	user := entity.User{Handle: handle, Host: host}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CountRows(t testing.TB, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

// Announcement records one call made to a RecordingDispatcher.
type Announcement struct {
	Type     string
	Post     *entity.Post
	ReplyURI string
	Files    []entity.File
	URI      *url.URL
}

// RecordingDispatcher records announcements and fails them with Err when set.
type RecordingDispatcher struct {
	mu    sync.Mutex
	Err   error
	Calls []Announcement
}

func (d *RecordingDispatcher) AnnounceCreate(ctx context.Context, post *entity.Post, replyURI string, files []entity.File) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, Announcement{Type: "Create", Post: post, ReplyURI: replyURI, Files: files})
	return d.Err
}

func (d *RecordingDispatcher) AnnounceDelete(ctx context.Context, uri *url.URL) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, Announcement{Type: "Delete", URI: uri})
	return d.Err
}
