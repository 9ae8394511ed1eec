package models

// Collection names. The ownership graph hangs these together:
// users(client) -> headquarters -> offices -> equipments ->
// servicerequests -> {activities, maintenances}; schedules hang off
// equipments and signatures off headquarters.
const (
	CollUsers           = "users"
	CollHeadquarters    = "headquarters"
	CollOffices         = "offices"
	CollEquipments      = "equipments"
	CollServiceRequests = "servicerequests"
	CollActivities      = "activities"
	CollMaintenances    = "maintenances"
	CollSchedules       = "schedules"
	CollSignatures      = "signatures"
)
