package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/scan2earn/panel/database"
	"github.com/scan2earn/panel/database/model"
	"github.com/scan2earn/panel/util/common"
	"github.com/scan2earn/panel/util/random"
	"github.com/scan2earn/panel/util/reflect_util"
	"github.com/scan2earn/panel/web/entity"
)

var defaultValueMap = map[string]string{
	"webListen":       "",
	"webDomain":       "",
	"webPort":         "8080",
	"webBasePath":     "/",
	"sessionMaxAge":   "10080", // minutes; 7 days
	"pageSize":        "50",
	"theme":           "dark",
	"language":        "en-US",
	"timeLocation":    "Asia/Bangkok",
	"twoFactorEnable": "false",
	"twoFactorToken":  "",
	"jwtSecret":       random.Seq(32),
	"trustScanPoints": "false",
}

// SettingService reads and writes runtime settings persisted in the
// settings table, falling back to defaults for absent keys.
type SettingService struct{}

func (s *SettingService) GetAllSetting() (*entity.AllSetting, error) {
	db := database.GetDB()
	settings := make([]*model.Setting, 0)
	err := db.Model(model.Setting{}).Find(&settings).Error
	if err != nil {
		return nil, err
	}
	allSetting := &entity.AllSetting{}
	t := reflect.TypeOf(allSetting).Elem()
	v := reflect.ValueOf(allSetting).Elem()
	fields := reflect_util.GetFields(t)

	setSetting := func(key, value string) (err error) {
		defer func() {
			panicErr := recover()
			if panicErr != nil {
				err = errors.New(fmt.Sprint(panicErr))
			}
		}()

		var found bool
		var field reflect.StructField
		for _, f := range fields {
			if f.Tag.Get("json") == key {
				field = f
				found = true
				break
			}
		}
		if !found {
			// generated settings stay server-side
			return nil
		}

		fieldV := v.FieldByName(field.Name)
		switch t := fieldV.Interface().(type) {
		case int:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			fieldV.SetInt(n)
		case string:
			fieldV.SetString(value)
		case bool:
			fieldV.SetBool(value == "true")
		default:
			return common.NewErrorf("unknown field %v type %v", key, t)
		}
		return
	}

	keyMap := map[string]bool{}
	for _, setting := range settings {
		if err := setSetting(setting.Key, setting.Value); err != nil {
			return nil, err
		}
		keyMap[setting.Key] = true
	}

	for key, value := range defaultValueMap {
		if keyMap[key] {
			continue
		}
		if err := setSetting(key, value); err != nil {
			return nil, err
		}
	}

	return allSetting, nil
}

// UpdateAllSetting validates and persists every provided setting.
func (s *SettingService) UpdateAllSetting(allSetting *entity.AllSetting) error {
	if err := allSetting.CheckValid(); err != nil {
		return err
	}
	v := reflect.ValueOf(allSetting).Elem()
	t := reflect.TypeOf(allSetting).Elem()
	fields := reflect_util.GetFields(t)
	errs := make([]error, 0)
	for _, field := range fields {
		key := field.Tag.Get("json")
		if key == "" || key == "-" {
			continue
		}
		fieldV := v.FieldByName(field.Name)
		value := fmt.Sprint(fieldV.Interface())
		errs = append(errs, s.saveSetting(key, value))
	}
	return common.Combine(errs...)
}

func (s *SettingService) ResetSettings() error {
	db := database.GetDB()
	return db.Where("1 = 1").Delete(model.Setting{}).Error
}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Key = key
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getBool(key string) (bool, error) {
	str, err := s.getString(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (s *SettingService) setBool(key string, value bool) error {
	return s.setString(key, strconv.FormatBool(value))
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) GetWebDomain() (string, error) {
	return s.getString("webDomain")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setInt("webPort", port)
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getString("webBasePath")
	if err != nil {
		return "", err
	}
	if basePath == "" {
		basePath = "/"
	}
	return basePath, nil
}

// GetSessionMaxAge returns the session lifetime in minutes.
func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

// GetSessionDuration returns the session lifetime as a duration.
func (s *SettingService) GetSessionDuration() (time.Duration, error) {
	minutes, err := s.GetSessionMaxAge()
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes) * time.Minute, nil
}

func (s *SettingService) GetPageSize() (int, error) {
	return s.getInt("pageSize")
}

func (s *SettingService) GetTheme() (string, error) {
	return s.getString("theme")
}

func (s *SettingService) SetTheme(theme string) error {
	if theme != "dark" && theme != "light" {
		return common.NewError("theme must be dark or light:", theme)
	}
	return s.setString("theme", theme)
}

func (s *SettingService) GetLanguage() (string, error) {
	return s.getString("language")
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		location, _ = time.LoadLocation(defaultLocation)
	}
	return location, nil
}

func (s *SettingService) GetTwoFactorEnable() (bool, error) {
	return s.getBool("twoFactorEnable")
}

func (s *SettingService) SetTwoFactorEnable(enable bool) error {
	return s.setBool("twoFactorEnable", enable)
}

func (s *SettingService) GetTwoFactorToken() (string, error) {
	return s.getString("twoFactorToken")
}

func (s *SettingService) SetTwoFactorToken(token string) error {
	return s.setString("twoFactorToken", token)
}

// GetJwtSecret returns the signing secret, persisting the generated
// default on first use so restarts keep sessions and tokens valid.
func (s *SettingService) GetJwtSecret() (string, error) {
	setting, err := s.getSetting("jwtSecret")
	if database.IsNotFound(err) {
		secret := defaultValueMap["jwtSecret"]
		if err := s.saveSetting("jwtSecret", secret); err != nil {
			return "", err
		}
		return secret, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// GetTrustScanPoints reports whether scanned payload points are honored
// verbatim instead of re-derived from the bin type table.
func (s *SettingService) GetTrustScanPoints() (bool, error) {
	return s.getBool("trustScanPoints")
}

func (s *SettingService) SetTrustScanPoints(trust bool) error {
	return s.setBool("trustScanPoints", trust)
}
