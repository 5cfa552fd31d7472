package database

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"devhub/internal/config"
	"devhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		driver  string
		mode    string
		runSQL  bool
		runAuto bool
		wantErr bool
	}{
		{"hybrid dev postgres", "development", "postgres", "hybrid", true, true, false},
		{"hybrid prod postgres", "production", "postgres", "", true, false, false},
		{"hybrid sqlite", "development", "sqlite", "hybrid", false, true, false},
		{"sql postgres", "production", "postgres", "sql", true, false, false},
		{"sql sqlite rejected", "development", "sqlite", "sql", false, false, true},
		{"auto dev", "development", "postgres", "AUTO", false, true, false},
		{"auto prod rejected", "prod", "postgres", "auto", false, false, true},
		{"unknown mode", "development", "postgres", "magic", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Env: tt.env, DBDriver: tt.driver, DBSchemaMode: tt.mode}
			runSQL, runAuto, err := schemaPolicy(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, runSQL)
			assert.Equal(t, tt.runAuto, runAuto)
		})
	}
}

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, configurePool(db, &config.Config{DBDriver: "postgres"}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 25, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, configurePool(db, &config.Config{DBDriver: "postgres", DBMaxOpenConns: 7}))
	assert.Equal(t, 7, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, configurePool(db, &config.Config{DBDriver: "sqlite", DBMaxOpenConns: 50}))
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpenDialector_UnsupportedDriver(t *testing.T) {
	_, err := openDialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestConnectWithOptions_SQLiteBuildsSchema(t *testing.T) {
	cfg := &config.Config{
		Env:          "test",
		DBDriver:     "sqlite",
		DBSQLitePath: t.TempDir() + "/devhub.db",
		DBSchemaMode: SchemaModeHybrid,
	}

	db, err := ConnectWithOptions(cfg, ConnectOptions{ApplySchema: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	for _, model := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(model), "%T table missing", model)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Like{}, "idx_likes_post_user"))

	status, err := GetSchemaStatus(context.Background(), db, cfg)
	require.NoError(t, err)
	assert.False(t, status.WillRunSQL)
	assert.True(t, status.WillRunAutoMigrate)
	assert.Equal(t, "sqlite", status.Driver)
}

func TestPersistentModels_ParentsFirst(t *testing.T) {
	list := PersistentModels()
	require.Len(t, list, 7)
	assert.IsType(t, &models.User{}, list[0])
	assert.IsType(t, &models.Profile{}, list[1])
	assert.IsType(t, &models.Post{}, list[4])
}

func TestEmbeddedMigrations(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)
	assert.Equal(t, 1, all[0].Version)
	assert.Equal(t, "init_schema", all[0].Name)
	assert.Contains(t, all[0].UpScript, "CREATE TABLE IF NOT EXISTS likes")
	assert.Contains(t, all[0].DownScript, "DROP TABLE IF EXISTS users")
	assert.Equal(t, "000001_init_schema", all[0].String())

	assert.NotNil(t, GetMigrationByVersion(1))
	assert.Nil(t, GetMigrationByVersion(999))
}

func TestLoadMigrations(t *testing.T) {
	t.Run("sorted by version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"m/000002_second.up.sql":   {Data: []byte("B")},
			"m/000002_second.down.sql": {Data: []byte("b")},
			"m/000001_first.up.sql":    {Data: []byte("A")},
			"m/000001_first.down.sql":  {Data: []byte("a")},
		}
		got, err := LoadMigrations(fsys, "m")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Name)
		assert.Equal(t, "b", got[1].DownScript)
	})

	t.Run("missing down script", func(t *testing.T) {
		fsys := fstest.MapFS{"m/000001_first.up.sql": {Data: []byte("A")}}
		_, err := LoadMigrations(fsys, "m")
		assert.Error(t, err)
	})

	t.Run("bad version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"m/abc_first.up.sql":   {Data: []byte("A")},
			"m/abc_first.down.sql": {Data: []byte("a")},
		}
		_, err := LoadMigrations(fsys, "m")
		assert.Error(t, err)
	})
}

func TestValidateAppliedVersions(t *testing.T) {
	registered := []Migration{{Version: 1}, {Version: 2}}
	assert.NoError(t, validateAppliedVersions([]int{1, 2}, registered))

	err := validateAppliedVersions([]int{1, 7, 5}, registered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000005, 000007")
}

type fakeStore struct {
	applied  []int
	ran      []int
	reverted []int
}

func (f *fakeStore) GetAppliedMigrations(context.Context) ([]int, error) {
	return f.applied, nil
}

func (f *fakeStore) ApplyMigration(_ context.Context, m Migration) error {
	f.ran = append(f.ran, m.Version)
	return nil
}

func (f *fakeStore) RevertMigration(_ context.Context, m Migration) error {
	f.reverted = append(f.reverted, m.Version)
	return nil
}

func TestApplyPending_SkipsApplied(t *testing.T) {
	store := &fakeStore{applied: []int{1}}
	registered := []Migration{{Version: 1, Name: "a"}, {Version: 2, Name: "b"}, {Version: 3, Name: "c"}}

	require.NoError(t, applyPending(context.Background(), store, registered))
	assert.Equal(t, []int{2, 3}, store.ran)
}

func TestRollback(t *testing.T) {
	store := &fakeStore{applied: []int{1}}
	assert.Error(t, rollback(context.Background(), store, Migration{Version: 2}))
	require.NoError(t, rollback(context.Background(), store, Migration{Version: 1}))
	assert.Equal(t, []int{1}, store.reverted)
}

func TestMigrationStore_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := NewMigrationStore(db)
	ctx := context.Background()

	versions, err := store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, versions)

	require.NoError(t, db.AutoMigrate(&MigrationLog{}))
	m := Migration{Version: 1, Name: "widgets", UpScript: "CREATE TABLE widgets (id INTEGER)", DownScript: "DROP TABLE widgets"}
	require.NoError(t, store.ApplyMigration(ctx, m))
	assert.True(t, db.Migrator().HasTable("widgets"))

	versions, err = store.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, versions)

	require.NoError(t, store.RevertMigration(ctx, m))
	assert.False(t, db.Migrator().HasTable("widgets"))
}

// The production schema comes from SQL alone, so every column a model
// writes must exist in the embedded migrations.
func TestEmbeddedMigrations_CoverModelColumns(t *testing.T) {
	var up strings.Builder
	for _, m := range GetMigrations() {
		up.WriteString(m.UpScript)
		up.WriteString("\n")
	}
	script := up.String()

	cache := &sync.Map{}
	for _, model := range PersistentModels() {
		s, err := schema.Parse(model, cache, schema.NamingStrategy{})
		require.NoError(t, err)

		columns := tableColumns(script, s.Table)
		require.NotEmpty(t, columns, "table %s has no CREATE TABLE in migrations", s.Table)
		for _, name := range s.DBNames {
			assert.Contains(t, columns, name, "table %s: column %q missing from migrations", s.Table, name)
		}
	}
}

var (
	columnLine = regexp.MustCompile(`^\s*([a-z_][a-z0-9_]*)\s+[A-Z]`)
	addColumn  = regexp.MustCompile(`(?i)ALTER TABLE\s+(?:IF EXISTS\s+)?(\w+)\s+ADD COLUMN\s+(?:IF NOT EXISTS\s+)?(\w+)`)
)

// tableColumns collects the columns declared for table by CREATE TABLE and
// ALTER TABLE ... ADD COLUMN statements.
func tableColumns(script, table string) map[string]bool {
	out := map[string]bool{}

	header := "CREATE TABLE IF NOT EXISTS " + table + " ("
	if start := strings.Index(script, header); start >= 0 {
		body := script[start+len(header):]
		if end := strings.Index(body, "\n);"); end >= 0 {
			body = body[:end]
		}
		for _, line := range strings.Split(body, "\n") {
			if m := columnLine.FindStringSubmatch(line); m != nil && m[1] != "constraint" {
				out[m[1]] = true
			}
		}
	}

	for _, m := range addColumn.FindAllStringSubmatch(script, -1) {
		if strings.EqualFold(m[1], table) {
			out[strings.ToLower(m[2])] = true
		}
	}
	return out
}
