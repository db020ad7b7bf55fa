package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
)

// newBackupFixture prepares a SQLite-mode backup service with a fake
// database file on disk
func newBackupFixture(t *testing.T, dbContent string) (*BackupService, *config.Config) {
	t.Helper()

	cfg := testConfig(t)
	cfg.SQLitePath = filepath.Join(t.TempDir(), "barangay.db")
	require.NoError(t, os.WriteFile(cfg.SQLitePath, []byte(dbContent), 0644))

	svc := NewBackupService(setupTestDB(t), cfg).(*BackupService)
	return svc, cfg
}

func TestCreateBackupSQLite(t *testing.T) {
	svc, cfg := newBackupFixture(t, "database contents")

	info, err := svc.CreateBackup()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(info.Name, "backup_"))
	assert.True(t, strings.HasSuffix(info.Name, ".db"))
	assert.Equal(t, int64(len("database contents")), info.Size)
	assert.Equal(t, "17 B", info.SizeHuman)

	copied, err := os.ReadFile(filepath.Join(cfg.BackupDir, info.Name))
	require.NoError(t, err)
	assert.Equal(t, "database contents", string(copied))
}

func TestListBackups(t *testing.T) {
	svc, cfg := newBackupFixture(t, "db")
	require.NoError(t, os.MkdirAll(cfg.BackupDir, 0755))

	older := filepath.Join(cfg.BackupDir, "backup_20260101_080000.db")
	newer := filepath.Join(cfg.BackupDir, "backup_20260825_080000.db")
	stray := filepath.Join(cfg.BackupDir, "notes.txt")
	for _, path := range []string{older, newer, stray} {
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	oldTime := time.Now().AddDate(0, 0, -30)
	require.NoError(t, os.Chtimes(older, oldTime, oldTime))

	backups, err := svc.ListBackups("")
	require.NoError(t, err)
	require.Len(t, backups, 2)
	// Newest first, files without the backup prefix are skipped
	assert.Equal(t, "backup_20260825_080000.db", backups[0].Name)
	assert.Equal(t, "backup_20260101_080000.db", backups[1].Name)

	today, err := svc.ListBackups(time.Now().Format("2006-01-02"))
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "backup_20260825_080000.db", today[0].Name)

	none, err := svc.ListBackups("1999-01-01")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListBackupsMissingDir(t *testing.T) {
	svc, _ := newBackupFixture(t, "db")

	backups, err := svc.ListBackups("")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestResolveBackupPath(t *testing.T) {
	svc, cfg := newBackupFixture(t, "db")
	require.NoError(t, os.MkdirAll(cfg.BackupDir, 0755))
	name := "backup_20260825_080000.db"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.BackupDir, name), []byte("x"), 0644))

	path, err := svc.ResolveBackupPath(name)
	require.NoError(t, err)
	assert.Equal(t, name, filepath.Base(path))

	_, err = svc.ResolveBackupPath("../" + name)
	assert.ErrorIs(t, err, ErrUnsafePath)

	_, err = svc.ResolveBackupPath("backup_missing.db")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestRestoreBackupSQLite(t *testing.T) {
	svc, cfg := newBackupFixture(t, "original")

	info, err := svc.CreateBackup()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg.SQLitePath, []byte("corrupted"), 0644))

	require.NoError(t, svc.RestoreBackup(info.Name))
	restored, err := os.ReadFile(cfg.SQLitePath)
	require.NoError(t, err)
	assert.Equal(t, "original", string(restored))

	assert.ErrorIs(t, svc.RestoreBackup("backup_missing.db"), ErrBackupNotFound)
}

func TestDatabaseSizeSQLite(t *testing.T) {
	svc, _ := newBackupFixture(t, "1234567890")

	size, human, err := svc.DatabaseSize()
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)
	assert.Equal(t, "10 B", human)
}

func TestCleanupOldBackups(t *testing.T) {
	svc, cfg := newBackupFixture(t, "db")
	require.NoError(t, os.MkdirAll(cfg.BackupDir, 0755))

	old := filepath.Join(cfg.BackupDir, "backup_20260101_080000.db")
	recent := filepath.Join(cfg.BackupDir, "backup_20260825_080000.db")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(recent, []byte("x"), 0644))
	oldTime := time.Now().AddDate(0, 0, -60)
	require.NoError(t, os.Chtimes(old, oldTime, oldTime))

	removed, err := svc.CleanupOldBackups(30)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = os.Stat(old)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(recent)
	assert.NoError(t, err)

	// Retention below one day disables cleanup
	removed, err = svc.CleanupOldBackups(0)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KB", FormatBytes(1024))
	assert.Equal(t, "1.5 KB", FormatBytes(1536))
	assert.Equal(t, "1.0 MB", FormatBytes(1024*1024))
	assert.Equal(t, "2.5 GB", FormatBytes(int64(2.5*1024*1024*1024)))
}
