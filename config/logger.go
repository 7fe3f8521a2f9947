package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	InfoLogger    *log.Logger
	WarningLogger *log.Logger
	ErrorLogger   *log.Logger
)

// SetupLogger initializes the leveled loggers, writing to both the
// console and a per-day log file under logs/.
func SetupLogger() error {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := filepath.Join(logDir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)

	InfoLogger = log.New(multiWriter, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLogger = log.New(multiWriter, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(multiWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

// Info logs at info level
func Info(format string, v ...interface{}) {
	if InfoLogger == nil {
		log.Printf(format, v...)
		return
	}
	InfoLogger.Printf(format, v...)
}

// Warning logs at warning level
func Warning(format string, v ...interface{}) {
	if WarningLogger == nil {
		log.Printf(format, v...)
		return
	}
	WarningLogger.Printf(format, v...)
}

// Error logs at error level
func Error(format string, v ...interface{}) {
	if ErrorLogger == nil {
		log.Printf(format, v...)
		return
	}
	ErrorLogger.Printf(format, v...)
}
