package testutils

import (
	"io"
	"log"
	"mime/multipart"
	"testing"

	"blog-backend/db"
	"blog-backend/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error creating the SQL mock connection: %s", err)
	}

	newLogger := logger.New(
		log.New(io.Discard, "", log.LstdFlags),
		logger.Config{
			LogLevel: logger.Silent,
		},
	)

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		t.Fatalf("error opening the GORM connection: %s", err)
	}

	originalDB := db.DB
	db.DB = gormDB

	cleanup := func() {
		db.DB = originalDB
		sqlDB.Close()
	}

	return gormDB, mock, cleanup
}

func SetupTestRouter() *gin.Engine {
	r := gin.New()
	return r
}

func InitTestMain() {
	gin.SetMode(gin.TestMode)
}

// StubImageStore stands in for Cloudinary in handler tests. It records
// uploads and deletions and can be told to fail.
type StubImageStore struct {
	UploadURL string
	UploadErr error
	DeleteErr error
	Uploads   []string
	Deletes   []string
}

func (s *StubImageStore) Upload(file *multipart.FileHeader, folder string) (string, error) {
	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	s.Uploads = append(s.Uploads, file.Filename)
	return s.UploadURL, nil
}

func (s *StubImageStore) Delete(imageURL string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.Deletes = append(s.Deletes, imageURL)
	return nil
}

func (s *StubImageStore) Exists(imageURL string) (bool, error) {
	for _, d := range s.Deletes {
		if d == imageURL {
			return false, nil
		}
	}
	return true, nil
}

// SetupStubImageStore installs a stub as the default image store and
// restores the previous one on cleanup.
func SetupStubImageStore(uploadURL string) (*StubImageStore, func()) {
	stub := &StubImageStore{UploadURL: uploadURL}
	original := storage.Default
	storage.Default = stub
	return stub, func() { storage.Default = original }
}
