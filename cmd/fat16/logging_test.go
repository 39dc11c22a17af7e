package main

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogging(t *testing.T) {
	tests := []struct {
		name           string
		quiet          bool
		verbose        int
		verboseSet     bool
		wantLevel      log.Level
		wantStructured bool
		wantErr        bool
	}{
		{name: "default", verbose: 1, wantLevel: log.InfoLevel},
		{name: "quiet", quiet: true, verbose: 1, wantLevel: log.ErrorLevel},
		{name: "verbose 0", verbose: 0, verboseSet: true, wantLevel: log.ErrorLevel},
		{name: "verbose 1", verbose: 1, verboseSet: true, wantLevel: log.InfoLevel, wantStructured: true},
		{name: "debug", verbose: 2, verboseSet: true, wantLevel: log.DebugLevel, wantStructured: true},
		{name: "quiet with verbose 0", quiet: true, verbose: 0, verboseSet: true, wantLevel: log.ErrorLevel},
		{name: "no trace level", verbose: 3, verboseSet: true, wantErr: true},
		{name: "negative", verbose: -1, verboseSet: true, wantErr: true},
		{name: "quiet and verbose", quiet: true, verbose: 2, verboseSet: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer log.SetLevel(log.InfoLevel)

			err := SetupLogging(tt.quiet, tt.verbose, tt.verboseSet)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantLevel, log.GetLevel())
			if tt.wantStructured {
				assert.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)
			} else {
				assert.IsType(t, &plainFormatter{}, log.StandardLogger().Formatter)
			}
		})
	}
}

func TestPlainFormatter(t *testing.T) {
	f := new(plainFormatter)

	got, err := f.Format(&log.Entry{Level: log.InfoLevel, Message: "hello"})
	assert.NoError(t, err)
	assert.Equal(t, "hello\n", string(got))

	got, err = f.Format(&log.Entry{Logger: log.New(), Level: log.WarnLevel, Message: "careful", Data: log.Fields{"cluster": 7}})
	assert.NoError(t, err)
	assert.Contains(t, string(got), "level=warning")
	assert.Contains(t, string(got), "cluster=7")
}
