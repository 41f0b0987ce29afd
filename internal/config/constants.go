// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "vocab-review"
	AppVersion = "0.3.0"
)

// database.driver に指定できる値
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverFile     = "file"
	DriverMemory   = "memory"
)

// notify.type に指定できる値
const (
	NotifyTypeLog  = "log"
	NotifyTypeSMTP = "smtp"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultDatabaseDriver   = DriverSQLite
	DefaultDatabaseURL      = "data/review.db"
	DefaultStoreCapacity    = 60
	DefaultLexicalSlots     = 5
	DefaultTopicSlots       = 1
	DefaultLogLevel         = "info"
	DefaultAutosaveInterval = 5 * time.Minute
	DefaultReminderInterval = time.Hour
	DefaultNotifyStartHour  = 8
	DefaultNotifyEndHour    = 22
	DefaultNotifyType       = NotifyTypeLog
)
