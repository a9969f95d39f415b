// Package entity defines data structures shared by the web layer of the
// scan2earn panel.
package entity

import (
	"math"
	"net"
	"strings"
	"time"

	"github.com/scan2earn/panel/util/common"
)

// Msg is the standard API response envelope.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// AllSetting contains the runtime panel settings persisted in the
// settings table.
type AllSetting struct {
	// Web server settings
	WebListen     string `json:"webListen" form:"webListen"`
	WebDomain     string `json:"webDomain" form:"webDomain"`
	WebPort       int    `json:"webPort" form:"webPort"`
	WebBasePath   string `json:"webBasePath" form:"webBasePath"`
	SessionMaxAge int    `json:"sessionMaxAge" form:"sessionMaxAge"` // minutes

	// UI settings
	PageSize int    `json:"pageSize" form:"pageSize"`
	Theme    string `json:"theme" form:"theme"` // dark | light
	Language string `json:"language" form:"language"`

	// Security settings
	TimeLocation    string `json:"timeLocation" form:"timeLocation"`
	TwoFactorEnable bool   `json:"twoFactorEnable" form:"twoFactorEnable"`
	TwoFactorToken  string `json:"twoFactorToken" form:"twoFactorToken"`
	JwtSecret       string `json:"-" form:"-"`

	// Ledger settings. TrustScanPoints restores the legacy behavior of
	// honoring the points value embedded in a scanned payload instead of
	// re-deriving it from the bin type table.
	TrustScanPoints bool `json:"trustScanPoints" form:"trustScanPoints"`
}

// CheckValid validates the settings before they are persisted.
func (s *AllSetting) CheckValid() error {
	if s.WebListen != "" {
		ip := net.ParseIP(s.WebListen)
		if ip == nil {
			return common.NewError("web listen is not valid ip:", s.WebListen)
		}
	}

	if s.WebPort <= 0 || s.WebPort > math.MaxUint16 {
		return common.NewError("web port is not a valid port:", s.WebPort)
	}

	if s.SessionMaxAge <= 0 {
		return common.NewError("session max age must be positive:", s.SessionMaxAge)
	}

	if s.Theme != "dark" && s.Theme != "light" {
		return common.NewError("theme must be dark or light:", s.Theme)
	}

	if !strings.HasPrefix(s.WebBasePath, "/") {
		s.WebBasePath = "/" + s.WebBasePath
	}
	if !strings.HasSuffix(s.WebBasePath, "/") {
		s.WebBasePath += "/"
	}

	_, err := time.LoadLocation(s.TimeLocation)
	if err != nil {
		return common.NewError("time location not exist:", s.TimeLocation)
	}

	return nil
}
