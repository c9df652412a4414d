package domain

// Role is the account category; it decides which dashboard a session lands on
type Role string

// Permitted roles
const (
	RoleDoctor Role = "doctor" // Doctor dashboard
	RoleHR     Role = "hr"     // HR dashboard
)

// Valid reports whether the role is one of the two permitted values
func (r Role) Valid() bool {
	return r == RoleDoctor || r == RoleHR // Only doctor and hr are allowed
}

// Letter returns the role letter used in generated usernames
func (r Role) Letter() string {
	if r == RoleHR {
		return "H" // HR accounts
	}
	return "D" // Doctor accounts
}

// Account Model
type Account struct {
	ID           uint   `gorm:"primaryKey" json:"id"`              // Primary key
	Username     string `gorm:"unique;not null" json:"username"`   // Generated username, e.g. 2025D0001
	PasswordHash string `gorm:"column:password;not null" json:"-"` // SHA-256 hex digest, never the plaintext
	Role         Role   `gorm:"not null" json:"role"`              // Role: doctor or hr
	Name         string `gorm:"not null" json:"name"`              // Display name
}

// TableName keeps the original single-table schema name
func (Account) TableName() string {
	return "accounts"
}
