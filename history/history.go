// Package history keeps an audit trail of completed and failed processing
// requests. It records outcomes only; jobs are never resumed from it.
package history

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Record struct {
	gorm.Model
	Preset        string
	Filename      string
	Status        string // "completed", "failed"
	ErrorKind     string
	Error         string
	InputDuration float64 // seconds
	OutputSize    int64
	ProcessingMS  int64
}

var db *gorm.DB
var log *logrus.Logger

func Init(d *gorm.DB, logger *logrus.Logger) error {
	db = d
	log = logger.WithFields(logrus.Fields{
		"component": "history",
	}).Logger
	return db.AutoMigrate(&Record{})
}

func Fini() {}

// Append stores one outcome. A write failure is logged and swallowed: the
// audit trail must never fail a request that already succeeded.
func Append(r Record) {
	if db == nil {
		return
	}
	if err := db.Create(&r).Error; err != nil {
		log.Warnf("could not record history entry: %v", err)
	}
}

// Recent returns up to limit records, newest first.
func Recent(limit int) ([]Record, error) {
	var records []Record
	if db == nil {
		return records, nil
	}
	err := db.Order("id DESC").Limit(limit).Find(&records).Error
	return records, err
}
