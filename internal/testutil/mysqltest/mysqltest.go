// Package mysqltest starts a throwaway MySQL container for integration tests
// and loads the schema and a small fixture catalogue into it.
package mysqltest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// Start runs MySQL 8 in Docker, waits until it answers and applies the
// migrations. The container is purged when the test ends.
func Start(t *testing.T) *sql.DB {
	t.Helper()

	// Let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=yoyo",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "yoyo")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// migrationsDir honours MIGRATIONS_DIR and otherwise finds the repo's
// migrations/ folder relative to this file.
func migrationsDir(t *testing.T) string {
	t.Helper()
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("MIGRATIONS_DIR not set and caller unknown")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// Fixture catalogue. Two cities 2 km apart near (40, -73) and one far away
// in Sydney. Hotel 3 sits in the far city.
const fixtures = `
INSERT INTO city (region_id, name, lat, lng) VALUES
  (1, 'Harbor', 40.000, -73.000),
  (2, 'Uptown', 40.018, -73.000),
  (3, 'Sydney', -33.870, 151.210);

INSERT INTO hotel (address_id, name, slug, main_phone, description, star_rating) VALUES
  (1, 'Harbor Inn',   'harbor-inn',   '555-0001', 'By the water', 3),
  (2, 'Uptown Suites','uptown-suites','555-0002', NULL,           5),
  (3, 'Bondi Stay',   'bondi-stay',   NULL,       'Beach',        4);

INSERT INTO room_type (hotel_id, code, name, description, max_adults, price_per_night) VALUES
  (1, 'SGL', 'Single',  'One bed',   1,  900),
  (1, 'DBL', 'Double',  'Two beds',  2, 1200),
  (1, 'FAM', 'Family',  NULL,        4, 1800),
  (2, 'STE', 'Suite',   'Top floor', 2, 9000),
  (2, 'PEN', 'Penthouse',NULL,       2, 20000),
  (3, 'DBL', 'Double',  NULL,        2, 1500);
`

// Seed inserts the fixture catalogue. The connection must allow multi
// statements, which Start's DSN does.
func Seed(t *testing.T, db *sql.DB) {
	t.Helper()
	if _, err := db.Exec(fixtures); err != nil {
		t.Fatalf("seed: %v", err)
	}
}
