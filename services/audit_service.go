package services

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/models"
)

// InterfaceAuditService defines the audit trail service interface
type InterfaceAuditService interface {
	LogAction(userID *uint, action, entityType string, entityID uint, ip, userAgent string, meta map[string]interface{})
	GetLogs(search string, page, pageSize int) ([]models.TransactionLog, int64, error)
	GetEntityHistory(entityType string, entityID uint, page, pageSize int) ([]models.TransactionLog, int64, error)
}

// AuditService records and queries the audit trail
type AuditService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB, cfg *config.Config) InterfaceAuditService {
	return &AuditService{
		DB:     db,
		Config: cfg,
	}
}

// LogAction writes one audit row. Logging must never fail the request,
// errors are reported to the application log only.
func (s *AuditService) LogAction(userID *uint, action, entityType string, entityID uint, ip, userAgent string, meta map[string]interface{}) {
	if len(userAgent) > 255 {
		userAgent = userAgent[:255]
	}

	metaJSON := ""
	if len(meta) > 0 {
		if raw, err := json.Marshal(meta); err == nil {
			metaJSON = string(raw)
		}
	}

	entry := models.TransactionLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IPAddress:  ip,
		UserAgent:  userAgent,
		Meta:       metaJSON,
		Timestamp:  time.Now(),
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		config.Error("failed to write audit log for action %s: %v", action, err)
	}
}

// GetLogs lists audit rows, optionally filtered by action or username
func (s *AuditService) GetLogs(search string, page, pageSize int) ([]models.TransactionLog, int64, error) {
	var logs []models.TransactionLog
	var total int64

	query := s.DB.Model(&models.TransactionLog{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Joins("LEFT JOIN users ON users.id = transaction_logs.user_id").
			Where("LOWER(transaction_logs.action) LIKE ? OR LOWER(users.username) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("User").
		Order("transaction_logs.timestamp DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// GetEntityHistory lists audit rows for one entity
func (s *AuditService) GetEntityHistory(entityType string, entityID uint, page, pageSize int) ([]models.TransactionLog, int64, error) {
	var logs []models.TransactionLog
	var total int64

	query := s.DB.Model(&models.TransactionLog{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("User").
		Order("timestamp DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
