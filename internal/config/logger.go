package config

import (
	"os"

	"go.uber.org/zap"
)

func NewLogger() (*zap.SugaredLogger, error) {
	var z *zap.Logger
	var err error
	if os.Getenv("ENV") == "development" {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}
