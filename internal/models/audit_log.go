package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin actions kept in the audit trail. Every change to a figure that ends
// up in a published report is recorded with the admin who made it.
const (
	AuditActionLogin           = "login"
	AuditActionLogout          = "logout"
	AuditActionDonationConfirm = "donation_confirmed"
	AuditActionDonationReject  = "donation_rejected"
	AuditActionExpenseCreated  = "expense_created"
	AuditActionExpenseUpdated  = "expense_updated"
	AuditActionExpenseDeleted  = "expense_deleted"
	AuditActionActivityCreated = "activity_created"
	AuditActionActivityUpdated = "activity_updated"
	AuditActionActivityDeleted = "activity_deleted"
	AuditActionReportExported  = "report_exported"
)

const (
	AuditResourceAuth     = "auth"
	AuditResourceDonation = "donation"
	AuditResourceExpense  = "expense"
	AuditResourceActivity = "activity"
	AuditResourceReport   = "report"
)

const MaxAuditUserAgentLength = 512

var auditActions = map[string]struct{}{
	AuditActionLogin:           {},
	AuditActionLogout:          {},
	AuditActionDonationConfirm: {},
	AuditActionDonationReject:  {},
	AuditActionExpenseCreated:  {},
	AuditActionExpenseUpdated:  {},
	AuditActionExpenseDeleted:  {},
	AuditActionActivityCreated: {},
	AuditActionActivityUpdated: {},
	AuditActionActivityDeleted: {},
	AuditActionReportExported:  {},
}

// IsValidAuditAction reports whether action is one of the recorded admin actions
func IsValidAuditAction(action string) bool {
	_, ok := auditActions[action]
	return ok
}

// AuditLog is one entry of the admin audit trail
type AuditLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	AdminUserID *uuid.UUID `gorm:"type:uuid;index" json:"admin_user_id,omitempty"`
	Action      string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Resource    string     `gorm:"type:varchar(100);not null" json:"resource"`
	ResourceID  string     `gorm:"type:varchar(255);index" json:"resource_id,omitempty"`
	IPAddress   string     `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent   string     `gorm:"type:text" json:"user_agent,omitempty"`
	TraceID     string     `gorm:"type:varchar(64)" json:"trace_id,omitempty"`
	Metadata    JSONBMap   `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
}

func (al *AuditLog) SetMetadata(key string, value interface{}) {
	if al.Metadata == nil {
		al.Metadata = make(JSONBMap)
	}
	al.Metadata[key] = value
}

func (al *AuditLog) GetMetadata(key string, defaultValue interface{}) interface{} {
	if value, exists := al.Metadata[key]; exists {
		return value
	}
	return defaultValue
}

func (al *AuditLog) String() string {
	actor := "system"
	if al.AdminUserID != nil {
		actor = al.AdminUserID.String()
	}

	return fmt.Sprintf("AuditLog[Admin: %s, Action: %s, Resource: %s/%s, IP: %s, Time: %s]",
		actor, al.Action, al.Resource, al.ResourceID, al.IPAddress, al.CreatedAt.Format(time.RFC3339))
}

func (al *AuditLog) TableName() string {
	return "audit_logs"
}

func (al *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.New()
	}
	if al.CreatedAt.IsZero() {
		al.CreatedAt = time.Now()
	}
	if len(al.UserAgent) > MaxAuditUserAgentLength {
		al.UserAgent = al.UserAgent[:MaxAuditUserAgentLength]
	}
	if !IsValidAuditAction(al.Action) {
		return fmt.Errorf("invalid audit action: %s", al.Action)
	}
	return nil
}

// AuditLogFilters narrows the admin audit trail listing
type AuditLogFilters struct {
	AdminUserID *uuid.UUID
	Action      string
	Resource    string
	ResourceID  string
	StartDate   *time.Time
	EndDate     *time.Time
}

// JSONBMap is a free-form metadata map stored as JSON text, which works on
// both Postgres and the SQLite test database
type JSONBMap map[string]interface{}

// Value implements driver.Valuer interface
func (m JSONBMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

// Scan implements sql.Scanner interface
func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONBMap", value)
	}

	if len(bytes) == 0 {
		*m = nil
		return nil
	}

	return json.Unmarshal(bytes, m)
}
