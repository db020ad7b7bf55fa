package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
)

// Backup service errors
var (
	ErrBackupNotFound = errors.New("backup not found")
	ErrUnsafePath     = errors.New("backup name resolves outside the backup directory")
)

// BackupInfo describes one backup file
type BackupInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	SizeHuman string    `json:"size_human"`
	CreatedAt time.Time `json:"created_at"`
}

// InterfaceBackupService defines the database backup interface
type InterfaceBackupService interface {
	CreateBackup() (*BackupInfo, error)
	ListBackups(date string) ([]BackupInfo, error)
	ResolveBackupPath(name string) (string, error)
	RestoreBackup(name string) error
	DatabaseSize() (int64, string, error)
	CleanupOldBackups(retentionDays int) (int, error)
}

// BackupService shells out to pg_dump/pg_restore for PostgreSQL and
// copies the database file for SQLite deployments
type BackupService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBackupService creates a new backup service
func NewBackupService(db *gorm.DB, cfg *config.Config) InterfaceBackupService {
	return &BackupService{
		DB:     db,
		Config: cfg,
	}
}

func (s *BackupService) usesPostgres() bool {
	return s.Config.DBDriver != "sqlite"
}

func (s *BackupService) pgEnv() []string {
	return append(os.Environ(), "PGPASSWORD="+s.Config.DBPassword)
}

// CreateBackup writes a new backup file into the backup directory
func (s *BackupService) CreateBackup() (*BackupInfo, error) {
	if err := os.MkdirAll(s.Config.BackupDir, 0755); err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("20060102_150405")

	if s.usesPostgres() {
		name := fmt.Sprintf("backup_%s.dump", timestamp)
		target := filepath.Join(s.Config.BackupDir, name)

		cmd := exec.Command("pg_dump",
			"-h", s.Config.DBHost,
			"-p", s.Config.DBPort,
			"-U", s.Config.DBUser,
			"-Fc",
			"-f", target,
			s.Config.DBName,
		)
		cmd.Env = s.pgEnv()
		if output, err := cmd.CombinedOutput(); err != nil {
			config.Error("pg_dump failed: %v: %s", err, string(output))
			return nil, fmt.Errorf("pg_dump failed: %w", err)
		}
		return s.statBackup(name)
	}

	name := fmt.Sprintf("backup_%s.db", timestamp)
	target := filepath.Join(s.Config.BackupDir, name)
	if err := copyFile(s.Config.SQLitePath, target); err != nil {
		return nil, err
	}
	return s.statBackup(name)
}

func (s *BackupService) statBackup(name string) (*BackupInfo, error) {
	info, err := os.Stat(filepath.Join(s.Config.BackupDir, name))
	if err != nil {
		return nil, err
	}
	return &BackupInfo{
		Name:      name,
		Size:      info.Size(),
		SizeHuman: FormatBytes(info.Size()),
		CreatedAt: info.ModTime(),
	}, nil
}

// ListBackups lists backup files newest first, optionally filtered by a
// YYYY-MM-DD date
func (s *BackupService) ListBackups(date string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.Config.BackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, err
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "backup_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if date != "" && info.ModTime().Format("2006-01-02") != date {
			continue
		}
		backups = append(backups, BackupInfo{
			Name:      entry.Name(),
			Size:      info.Size(),
			SizeHuman: FormatBytes(info.Size()),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// ResolveBackupPath validates a backup name and returns its absolute path.
// The resolved path must stay inside the backup directory.
func (s *BackupService) ResolveBackupPath(name string) (string, error) {
	baseDir, err := filepath.Abs(s.Config.BackupDir)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.Abs(filepath.Join(baseDir, name))
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(resolved, baseDir+string(os.PathSeparator)) {
		return "", ErrUnsafePath
	}
	if _, err := os.Stat(resolved); err != nil {
		return "", ErrBackupNotFound
	}
	return resolved, nil
}

// RestoreBackup restores the database from a named backup
func (s *BackupService) RestoreBackup(name string) error {
	path, err := s.ResolveBackupPath(name)
	if err != nil {
		return err
	}

	if s.usesPostgres() {
		cmd := exec.Command("pg_restore",
			"-h", s.Config.DBHost,
			"-p", s.Config.DBPort,
			"-U", s.Config.DBUser,
			"-d", s.Config.DBName,
			"--clean", "--if-exists",
			path,
		)
		cmd.Env = s.pgEnv()
		if output, err := cmd.CombinedOutput(); err != nil {
			config.Error("pg_restore failed: %v: %s", err, string(output))
			return fmt.Errorf("pg_restore failed: %w", err)
		}
		return nil
	}

	return copyFile(path, s.Config.SQLitePath)
}

// DatabaseSize returns the current database size in bytes
func (s *BackupService) DatabaseSize() (int64, string, error) {
	if s.usesPostgres() {
		var size int64
		err := s.DB.Raw("SELECT pg_database_size(?)", s.Config.DBName).Scan(&size).Error
		if err != nil {
			return 0, "", err
		}
		return size, FormatBytes(size), nil
	}

	info, err := os.Stat(s.Config.SQLitePath)
	if err != nil {
		return 0, "", err
	}
	return info.Size(), FormatBytes(info.Size()), nil
}

// CleanupOldBackups removes backups older than retentionDays and returns
// the number removed
func (s *BackupService) CleanupOldBackups(retentionDays int) (int, error) {
	if retentionDays < 1 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	backups, err := s.ListBackups("")
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, b := range backups {
		if b.CreatedAt.After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.Config.BackupDir, b.Name)); err != nil {
			config.Warning("failed to remove old backup %s: %v", b.Name, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		config.Info("removed %d backups past the %d day retention window", removed, retentionDays)
	}
	return removed, nil
}

// FormatBytes renders a byte count as a human-readable size
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
