// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/YassinCh/skilltest-buienradar/internal/analysis"
	"github.com/YassinCh/skilltest-buienradar/internal/logger"
	"github.com/YassinCh/skilltest-buienradar/internal/storage"
)

// Analyzer answers the analytical queries exposed by the server.
type Analyzer interface {
	MaxTemperatureStation(ctx context.Context) (analysis.StationTemperature, error)
	MeanTemperature(ctx context.Context) (float64, error)
	MaxFeelTemperatureDifference(ctx context.Context) (analysis.TemperatureDifference, error)
	StationsInRegion(ctx context.Context, region string) ([]storage.Station, error)
}

var _ Analyzer = &analysis.Service{}

var validate = validator.New()

type meanTemperatureResponse struct {
	MeanTemperature float64 `json:"meanTemperature"`
}

type regionParams struct {
	Region string `validate:"required,max=128"`
}

type stationsResponse struct {
	Region   string            `json:"region"`
	Stations []storage.Station `json:"stations"`
}

func analysisRoutes(app *fiber.App, analyzer Analyzer) {
	v1 := app.Group("/api/v1")

	v1.Get("/analysis/max-temperature", func(c *fiber.Ctx) error {
		result, err := analyzer.MaxTemperatureStation(c.UserContext())
		if err != nil {
			return analysisError(c, err)
		}

		return c.JSON(result)
	})

	v1.Get("/analysis/mean-temperature", func(c *fiber.Ctx) error {
		mean, err := analyzer.MeanTemperature(c.UserContext())
		if err != nil {
			return analysisError(c, err)
		}

		return c.JSON(meanTemperatureResponse{MeanTemperature: mean})
	})

	v1.Get("/analysis/max-temperature-difference", func(c *fiber.Ctx) error {
		result, err := analyzer.MaxFeelTemperatureDifference(c.UserContext())
		if err != nil {
			return analysisError(c, err)
		}

		return c.JSON(result)
	})

	v1.Get("/regions/:region/stations", func(c *fiber.Ctx) error {
		params := regionParams{Region: strings.TrimSpace(c.Params("region"))}
		if err := validate.Struct(params); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "region must be a non empty name of at most 128 characters")
		}

		stations, err := analyzer.StationsInRegion(c.UserContext(), params.Region)
		if err != nil {
			return analysisError(c, err)
		}

		return c.JSON(stationsResponse{Region: params.Region, Stations: stations})
	})
}

func analysisError(c *fiber.Ctx, err error) error {
	if errors.Is(err, analysis.ErrNoData) {
		return fiber.NewError(fiber.StatusNotFound, "no measurements available")
	}

	logger.FromContext(c.UserContext()).WithName(loggerName).Error("analysis failed", "error", err.Error())
	return fiber.NewError(fiber.StatusInternalServerError, "failed to run analysis")
}
