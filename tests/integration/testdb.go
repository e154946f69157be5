// Package integration provides integration tests for the procurement
// backend. It uses testcontainers to run the full stack against a real
// PostgreSQL database.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	mpg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated PostgreSQL database running in a container
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB starts a fresh PostgreSQL container and applies all
// migrations. The container is terminated when the test finishes.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("wms_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, sqlDB := connectToDatabase(t, dsn)
	runMigrations(t, sqlDB)

	testDB := &TestDB{
		DB:        db,
		SqlDB:     sqlDB,
		Container: container,
		DSN:       dsn,
		t:         t,
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// Close closes the connection and terminates the container
func (tdb *TestDB) Close() {
	ctx := context.Background()

	if tdb.SqlDB != nil {
		tdb.SqlDB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(ctx); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}

// CleanTables truncates all tables except the migration bookkeeping
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			tdb.t.Logf("Warning: Failed to truncate table %s: %v", table, err)
		}
	}
}

// SeedUser inserts a user row and returns nothing; the password hash is
// not valid for login, which is fine for tests that bypass authentication
func (tdb *TestDB) SeedUser(userID fmt.Stringer, username, role string) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO users (id, username, password_hash, display_name, role, status, version)
		VALUES (?, ?, 'x', ?, ?, 'active', 1)
		ON CONFLICT (id) DO NOTHING
	`, userID.String(), username, username, role).Error
	require.NoError(tdb.t, err, "Failed to seed user")
}

// SeedVendor inserts an active vendor row
func (tdb *TestDB) SeedVendor(vendorID fmt.Stringer, name string) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO vendors (id, name, status, version)
		VALUES (?, ?, 'active', 1)
		ON CONFLICT (id) DO NOTHING
	`, vendorID.String(), name).Error
	require.NoError(tdb.t, err, "Failed to seed vendor")
}

// SeedFundingSource inserts an active funding source row
func (tdb *TestDB) SeedFundingSource(fundingID fmt.Stringer, name, code string) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO funding_sources (id, name, code, active, version)
		VALUES (?, ?, ?, true, 1)
		ON CONFLICT (id) DO NOTHING
	`, fundingID.String(), name, code).Error
	require.NoError(tdb.t, err, "Failed to seed funding source")
}

// SeedCatalogItem inserts a catalog item row
func (tdb *TestDB) SeedCatalogItem(itemID fmt.Stringer, name, sku string) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO catalog_items (id, name, sku, active, version)
		VALUES (?, ?, ?, true, 1)
		ON CONFLICT (id) DO NOTHING
	`, itemID.String(), name, sku).Error
	require.NoError(tdb.t, err, "Failed to seed catalog item")
}

// SeedDocumentSequence sets a numbering counter row, letting tests
// start a prefix/year sequence at an arbitrary point
func (tdb *TestDB) SeedDocumentSequence(prefix string, year int, lastNumber int64) {
	tdb.t.Helper()

	err := tdb.DB.Exec(`
		INSERT INTO document_sequences (prefix, year, last_number)
		VALUES (?, ?, ?)
		ON CONFLICT (prefix, year) DO UPDATE SET last_number = EXCLUDED.last_number
	`, prefix, year, lastNumber).Error
	require.NoError(tdb.t, err, "Failed to seed document sequence")
}

// connectToDatabase establishes a GORM connection to the database
func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, sqlDB
}

// runMigrations applies all database migrations
func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	migrationsPath := findMigrationsPath()
	require.NotEmpty(t, migrationsPath, "Could not find migrations directory")

	driver, err := mpg.WithInstance(sqlDB, &mpg.Config{})
	require.NoError(t, err, "Failed to create migration driver")

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to run migrations")
	}
}

// findMigrationsPath walks up from this file to locate migrations/
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}

	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		migrationsPath := filepath.Join(dir, "migrations")
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath
		}
		dir = filepath.Dir(dir)
	}

	return ""
}
