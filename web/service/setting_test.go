package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettingDefaults(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}

	maxAge, err := service.GetSessionMaxAge()
	assert.NoError(t, err)
	assert.Equal(t, 10080, maxAge)

	lifetime, err := service.GetSessionDuration()
	assert.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, lifetime)

	theme, err := service.GetTheme()
	assert.NoError(t, err)
	assert.Equal(t, "dark", theme)

	trust, err := service.GetTrustScanPoints()
	assert.NoError(t, err)
	assert.False(t, trust)

	secret, err := service.GetJwtSecret()
	assert.NoError(t, err)
	assert.Len(t, secret, 32)
}

func TestSettingRoundTrip(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}

	assert.NoError(t, service.SetTheme("light"))
	theme, err := service.GetTheme()
	assert.NoError(t, err)
	assert.Equal(t, "light", theme)

	assert.Error(t, service.SetTheme("solarized"))

	assert.NoError(t, service.SetPort(9090))
	port, err := service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 9090, port)

	// reset returns every key to its default
	assert.NoError(t, service.ResetSettings())
	theme, err = service.GetTheme()
	assert.NoError(t, err)
	assert.Equal(t, "dark", theme)
}

func TestGetAllSetting(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}
	assert.NoError(t, service.SetTrustScanPoints(true))

	allSetting, err := service.GetAllSetting()
	assert.NoError(t, err)
	assert.Equal(t, 8080, allSetting.WebPort)
	assert.Equal(t, 10080, allSetting.SessionMaxAge)
	assert.True(t, allSetting.TrustScanPoints)

	assert.NoError(t, service.UpdateAllSetting(allSetting))
	again, err := service.GetAllSetting()
	assert.NoError(t, err)
	assert.Equal(t, allSetting.WebPort, again.WebPort)
}
