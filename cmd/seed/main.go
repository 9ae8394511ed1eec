package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mediquip/internal/config"
	"mediquip/internal/domain/models"
	"mediquip/internal/repository/mongodb"
	"mediquip/internal/service"
)

// Seeds a small demo hierarchy: two clients, a company administering
// both, an engineer supervising the first, and an equipment chain under
// each client.
func main() {
	drop := flag.Bool("drop", false, "Drop the database before seeding (fresh start)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Environment == "prod" && *drop {
		log.Fatalf("BLOCKED: refusing to drop the database in production")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}
	defer db.Client().Disconnect(context.Background())

	if *drop {
		if err := db.Drop(ctx); err != nil {
			log.Fatalf("Failed to drop database: %v", err)
		}
		logger.Info("database dropped", "db", cfg.MongoDB)
	}

	accounts := service.NewAccountService(db, logger)
	headquarters := service.NewHeadquarterService(db, logger)
	offices := service.NewOfficeService(db, logger)
	equipments := service.NewEquipmentService(db, logger)
	requests := service.NewServiceRequestService(db, logger)
	maintenances := service.NewMaintenanceService(db, logger)
	schedules := service.NewScheduleService(db, logger)
	signatures := service.NewSignatureService(db, logger)

	mustCreate := func(name string, err error) {
		if err != nil {
			log.Fatalf("Failed to seed %s: %v", name, err)
		}
	}

	clinicA, err := accounts.Create(ctx, &models.User{
		Name:  "Clinica San Rafael",
		Email: "admin@sanrafael.example",
		Role:  models.RoleClient,
	})
	mustCreate("client A", err)

	clinicB, err := accounts.Create(ctx, &models.User{
		Name:  "Centro Medico Norte",
		Email: "it@cmnorte.example",
		Role:  models.RoleClient,
	})
	mustCreate("client B", err)

	_, err = accounts.Create(ctx, &models.User{
		Name:        "BioService SAS",
		Email:       "ops@bioservice.example",
		Role:        models.RoleCompany,
		Permissions: []primitive.ObjectID{clinicA.ID, clinicB.ID},
	})
	mustCreate("company", err)

	_, err = accounts.Create(ctx, &models.User{
		Name:        "Laura Ortiz",
		Email:       "laura.ortiz@bioservice.example",
		Role:        models.RoleEngineer,
		Permissions: []primitive.ObjectID{clinicA.ID},
	})
	mustCreate("engineer", err)

	_, err = accounts.Create(ctx, &models.User{
		Name:  "Root",
		Email: "root@mediquip.example",
		Role:  models.RoleAdmin,
	})
	mustCreate("admin", err)

	for _, client := range []*models.User{clinicA, clinicB} {
		hq, err := headquarters.Create(ctx, &models.Headquarter{
			ClientID: client.ID,
			Name:     client.Name + " - Sede Principal",
			Address:  "Calle 10 # 4-21",
			City:     "Bogota",
		})
		mustCreate("headquarter", err)

		office, err := offices.Create(ctx, &models.Office{
			HeadquarterID: hq.ID,
			Name:          "Imagenologia",
			Floor:         "2",
		})
		mustCreate("office", err)

		equipment, err := equipments.Create(ctx, &models.Equipment{
			OfficeID:   office.ID,
			Name:       "Ultrasound scanner",
			Brand:      "GE",
			Model:      "LOGIQ e",
			Serial:     "US-" + client.ID.Hex()[18:],
			Status:     models.EquipmentStatusInService,
			AcquiredAt: time.Now().AddDate(-1, 0, 0),
		})
		mustCreate("equipment", err)

		request, err := requests.Create(ctx, &models.ServiceRequest{
			EquipmentID: equipment.ID,
			Subject:     "Annual preventive check",
			Status:      models.ServiceRequestOpen,
			RequestedAt: time.Now(),
		})
		mustCreate("service request", err)

		_, err = maintenances.Create(ctx, &models.Maintenance{
			ServiceRequestID: request.ID,
			Kind:             models.MaintenancePreventive,
			Notes:            "Calibration within tolerance",
			PerformedAt:      time.Now(),
			NextDueAt:        time.Now().AddDate(1, 0, 0),
		})
		mustCreate("maintenance", err)

		_, err = schedules.Create(ctx, &models.Schedule{
			EquipmentID: equipment.ID,
			StartsAt:    time.Now().AddDate(0, 1, 0),
			EndsAt:      time.Now().AddDate(0, 1, 0).Add(2 * time.Hour),
			Technician:  "Laura Ortiz",
		})
		mustCreate("schedule", err)

		_, err = signatures.Create(ctx, &models.Signature{
			HeadquarterID: hq.ID,
			SignerName:    "Direccion Tecnica",
			Active:        true,
		})
		mustCreate("signature", err)
	}

	logger.Info("seed complete", "db", cfg.MongoDB)
}
