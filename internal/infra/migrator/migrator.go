package migrator

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/smilehub/clinic-booking/migrations"
)

var (
	ErrOpen    = errors.New("migrator: failed to open database")
	ErrMigrate = errors.New("migrator: migration failed")
)

type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator применяет встроенные SQL миграции.
// Открывает собственное соединение: golang-migrate закрывает *sql.DB в Close
type Migrator struct {
	m      *migrate.Migrate
	logger Logger
}

// New подключается к БД по DSN lib/pq
func New(dsn string, logger Logger) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrOpen, err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: db driver: %v", ErrMigrate, err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: source driver: %v", ErrMigrate, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", dbDriver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create migrator: %v", ErrMigrate, err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up применяет все новые миграции
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("Migrations: schema is up to date")
			return nil
		}
		return fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}
	m.logVersion()
	return nil
}

// Down откатывает одну миграцию
func (m *Migrator) Down() error {
	if err := m.m.Steps(-1); err != nil {
		return fmt.Errorf("%w: down: %v", ErrMigrate, err)
	}
	m.logVersion()
	return nil
}

// Force выставляет версию схемы без применения миграций
func (m *Migrator) Force(version int) error {
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("%w: force %d: %v", ErrMigrate, version, err)
	}
	m.logVersion()
	return nil
}

func (m *Migrator) logVersion() {
	version, dirty, err := m.m.Version()
	if err != nil {
		return
	}
	m.logger.Info("Migrations: schema version=%d dirty=%t", version, dirty)
}

// Close закрывает соединение мигратора
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}
