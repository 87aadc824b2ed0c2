package handlers

import (
	"github.com/sirupsen/logrus"

	"forensic-audio/processing"
)

var log *logrus.Logger
var proc *processing.Processor
var tempDir string

func Init(logger *logrus.Logger, p *processing.Processor, dir string) error {
	log = logger.WithFields(logrus.Fields{
		"component": "handlers",
	}).Logger
	proc = p
	tempDir = dir
	return nil
}

func Fini() {}
