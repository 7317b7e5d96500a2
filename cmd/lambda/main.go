// Package main is the entry point for the option mapping Lambda function.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/optionmap/backend/config"
	lambdaDelivery "github.com/optionmap/backend/internal/delivery/lambda"
	"github.com/optionmap/backend/internal/infrastructure/elasticpath"
	"github.com/optionmap/backend/internal/infrastructure/logging"
	"github.com/optionmap/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	mappingClient := elasticpath.NewClient(elasticpath.Config{
		Host:         cfg.ElasticPath.Host,
		ClientID:     cfg.ElasticPath.ClientID,
		ClientSecret: cfg.ElasticPath.ClientSecret,
		Timeout:      cfg.ElasticPath.Timeout,
	}, logger)

	handler := lambdaDelivery.NewHandler(usecase.NewOptionMappingService(mappingClient, logger), logger)
	lambda.Start(handler.Handle)
}
