package model

import "time"

// BinType classifies a waste bin and fixes its point reward.
type BinType string

const (
	General   BinType = "general"
	Recycle   BinType = "recycle"
	Hazardous BinType = "hazardous"

	// Adjustment marks a manual balance correction by an admin. Not a
	// scannable type, so it stays out of BinTypePoints.
	Adjustment BinType = "adjustment"
)

// BinTypePoints is the authoritative type -> reward table. Transactions
// store the awarded amount redundantly, so later edits here never rewrite
// history.
var BinTypePoints = map[BinType]int{
	General:   10,
	Recycle:   20,
	Hazardous: 30,
}

// Valid reports whether t is a known bin type.
func (t BinType) Valid() bool {
	_, ok := BinTypePoints[t]
	return ok
}

// Points returns the reward for t, falling back to the general reward.
func (t BinType) Points() int {
	if p, ok := BinTypePoints[t]; ok {
		return p
	}
	return BinTypePoints[General]
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	// MainAdminId is the distinguished administrator seeded at first run.
	// It can never be demoted or removed.
	MainAdminId = 1
)

type User struct {
	Id           int           `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string        `json:"username" gorm:"uniqueIndex;not null"`
	Email        string        `json:"email" gorm:"uniqueIndex;not null"`
	FullName     string        `json:"fullName"`
	PasswordHash string        `json:"-" gorm:"column:password_hash"`
	Role         string        `json:"role" gorm:"not null;default:user"`
	Points       int           `json:"points" gorm:"not null;default:0"`
	Transactions []Transaction `json:"transactions" gorm:"foreignKey:UserId;references:Id"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsMainAdmin reports whether the user is the seeded main admin.
func (u *User) IsMainAdmin() bool {
	return u.Id == MainAdminId
}

// Transaction is one point-earning event. Immutable after creation.
type Transaction struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId    int       `json:"userId" gorm:"index;not null"`
	BinCode   string    `json:"binCode"`
	Type      BinType   `json:"type" gorm:"not null"`
	Points    int       `json:"points" gorm:"not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

// Bin is a physical waste receptacle. Inactive bins are excluded from
// selection but retained so history keeps resolving.
type Bin struct {
	Code     string  `json:"id" gorm:"primaryKey;column:code"`
	Type     BinType `json:"type" gorm:"not null"`
	Location string  `json:"location"`
	Active   bool    `json:"active" gorm:"not null;default:true"`
}

// QRCode caches a generated code for a bin. Regenerable at any time.
type QRCode struct {
	BinCode   string    `json:"binCode" gorm:"primaryKey"`
	Type      BinType   `json:"type"`
	Location  string    `json:"location"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key"`
	Value string `json:"value" form:"value"`
}
