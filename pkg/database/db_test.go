package database

import (
	"errors"
	"testing"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/RashmiFernando/study-sphere/pkg/errors"
)

func TestGormLogLevel(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"debug": gormlogger.Info,
		"warn":  gormlogger.Warn,
		"error": gormlogger.Error,
		"info":  gormlogger.Silent,
		"":      gormlogger.Silent,
	}
	for in, want := range tests {
		if got := gormLogLevel(in); got != want {
			t.Errorf("gormLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) < 2 {
		t.Errorf("expected up and down migrations, got %d files", len(entries))
	}
}

func TestWrapError(t *testing.T) {
	if err := WrapError(gorm.ErrDuplicatedKey); !errors.Is(err, apperrors.ErrDuplicateKey) {
		t.Errorf("duplicate key not mapped: %v", err)
	}
	if err := WrapError(gorm.ErrRecordNotFound); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("other errors must pass through: %v", err)
	}
	if WrapError(nil) != nil {
		t.Error("nil must stay nil")
	}
}
