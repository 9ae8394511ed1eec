package service

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"mediquip/internal/domain/models"
	"mediquip/internal/repository/mongodb"
	"mediquip/internal/service/ownership"
)

// NewHeadquarterService manages client sites.
func NewHeadquarterService(db *mongo.Database, logger *slog.Logger) Resource[models.Headquarter] {
	repo := mongodb.New[models.Headquarter](db, models.CollHeadquarters, []mongodb.Relation{
		{From: models.CollUsers, LocalField: "clientId", As: "client"},
	}, logger)
	return &resource[models.Headquarter]{
		data:        NewDataService(repo, logger),
		chain:       ownership.HeadquarterChain(),
		parentField: "clientId",
		logger:      logger,
	}
}

// NewOfficeService manages rooms and departments inside a headquarter.
func NewOfficeService(db *mongo.Database, logger *slog.Logger) Resource[models.Office] {
	repo := mongodb.New[models.Office](db, models.CollOffices, []mongodb.Relation{
		{From: models.CollHeadquarters, LocalField: "headquarterId", As: "headquarter", Children: []mongodb.Relation{
			{From: models.CollUsers, LocalField: "clientId", As: "client"},
		}},
	}, logger)
	return &resource[models.Office]{
		data:        NewDataService(repo, logger),
		chain:       ownership.OfficeChain(),
		parentField: "headquarterId",
		logger:      logger,
	}
}

// NewEquipmentService manages the equipment records themselves.
func NewEquipmentService(db *mongo.Database, logger *slog.Logger) Resource[models.Equipment] {
	repo := mongodb.New[models.Equipment](db, models.CollEquipments, []mongodb.Relation{
		{From: models.CollOffices, LocalField: "officeId", As: "office", Children: []mongodb.Relation{
			{From: models.CollHeadquarters, LocalField: "headquarterId", As: "headquarter"},
		}},
	}, logger)
	return &resource[models.Equipment]{
		data:        NewDataService(repo, logger),
		chain:       ownership.EquipmentChain(),
		parentField: "officeId",
		logger:      logger,
	}
}

// NewServiceRequestService manages reported issues on equipment.
func NewServiceRequestService(db *mongo.Database, logger *slog.Logger) Resource[models.ServiceRequest] {
	repo := mongodb.New[models.ServiceRequest](db, models.CollServiceRequests, []mongodb.Relation{
		{From: models.CollEquipments, LocalField: "equipmentId", As: "equipment", Children: []mongodb.Relation{
			{From: models.CollOffices, LocalField: "officeId", As: "office"},
		}},
	}, logger)
	return &resource[models.ServiceRequest]{
		data:        NewDataService(repo, logger),
		chain:       ownership.ServiceRequestChain(),
		parentField: "equipmentId",
		logger:      logger,
	}
}

// NewActivityService manages work log entries on service requests.
func NewActivityService(db *mongo.Database, logger *slog.Logger) Resource[models.Activity] {
	repo := mongodb.New[models.Activity](db, models.CollActivities, []mongodb.Relation{
		{From: models.CollServiceRequests, LocalField: "serviceRequestId", As: "serviceRequest", Children: []mongodb.Relation{
			{From: models.CollEquipments, LocalField: "equipmentId", As: "equipment"},
		}},
	}, logger)
	return &resource[models.Activity]{
		data:        NewDataService(repo, logger),
		chain:       ownership.ActivityChain(),
		parentField: "serviceRequestId",
		logger:      logger,
	}
}

// NewMaintenanceService manages completed maintenance interventions.
func NewMaintenanceService(db *mongo.Database, logger *slog.Logger) Resource[models.Maintenance] {
	repo := mongodb.New[models.Maintenance](db, models.CollMaintenances, []mongodb.Relation{
		{From: models.CollServiceRequests, LocalField: "serviceRequestId", As: "serviceRequest", Children: []mongodb.Relation{
			{From: models.CollEquipments, LocalField: "equipmentId", As: "equipment"},
		}},
	}, logger)
	return &resource[models.Maintenance]{
		data:        NewDataService(repo, logger),
		chain:       ownership.MaintenanceChain(),
		parentField: "serviceRequestId",
		logger:      logger,
	}
}

// NewScheduleService manages planned maintenance windows.
func NewScheduleService(db *mongo.Database, logger *slog.Logger) Resource[models.Schedule] {
	repo := mongodb.New[models.Schedule](db, models.CollSchedules, []mongodb.Relation{
		{From: models.CollEquipments, LocalField: "equipmentId", As: "equipment", Children: []mongodb.Relation{
			{From: models.CollOffices, LocalField: "officeId", As: "office"},
		}},
	}, logger)
	return &resource[models.Schedule]{
		data:        NewDataService(repo, logger),
		chain:       ownership.ScheduleChain(),
		parentField: "equipmentId",
		logger:      logger,
	}
}
