package main

import (
	"itsupport/internal/app/dsn"
	"itsupport/internal/app/repository"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	_, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}

	logrus.Info("Migration completed")
}
