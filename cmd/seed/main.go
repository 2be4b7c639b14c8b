package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fspro/attendance-backend-go/internal/config"
	"github.com/fspro/attendance-backend-go/internal/domain/schedule"
	"github.com/fspro/attendance-backend-go/internal/domain/user"
	"github.com/fspro/attendance-backend-go/internal/pkg/database"
	"github.com/fspro/attendance-backend-go/internal/pkg/docstore"
	repository "github.com/fspro/attendance-backend-go/internal/repository/docstore"
)

// Seeds a portal account, and optionally a Monday-Friday time table for the
// employee, into the configured document store.
func main() {
	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "account password (required)")
	employee := flag.String("employee", "", "employee name (required)")
	admin := flag.Bool("admin", false, "grant admin privileges")
	withSchedule := flag.Bool("schedule", false, "also seed a weekday 09:00-17:00 time table")
	flag.Parse()

	if *email == "" || *password == "" || *employee == "" {
		flag.Usage()
		log.Fatal("email, password and employee are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	ctx := context.Background()

	var store docstore.Store
	switch cfg.Store.Type {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Failed to connect to postgres: ", err)
		}
		store, err = docstore.NewPostgresStore(ctx, db)
		if err != nil {
			log.Fatal("Failed to initialize document store: ", err)
		}
	case "mongo":
		store, err = docstore.NewMongoStore(cfg.Mongo.URI, cfg.Mongo.Name)
		if err != nil {
			log.Fatal("Failed to initialize document store: ", err)
		}
	default:
		log.Fatal("Seeding requires STORE_TYPE=postgres or mongo, got: ", cfg.Store.Type)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	users := repository.NewUserRepository(store)
	created, err := users.Create(ctx, user.User{
		ID:           uuid.NewString(),
		Employee:     *employee,
		Email:        *email,
		PasswordHash: string(hash),
		IsAdmin:      *admin,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			log.Fatal("Account already exists: ", *email)
		}
		log.Fatal("Failed to create account: ", err)
	}
	fmt.Printf("Created account %s (employee %q, admin=%v)\n", created.Email, created.Employee, created.IsAdmin)

	if *withSchedule {
		if err := seedTimeTable(ctx, store, *employee); err != nil {
			log.Fatal("Failed to seed time table: ", err)
		}
		fmt.Printf("Seeded weekday time table for %q\n", *employee)
	}
}

func seedTimeTable(ctx context.Context, store docstore.Store, employee string) error {
	var tables []schedule.TimeTable
	raw, err := store.Get(ctx, "timeTables")
	if err != nil && !errors.Is(err, docstore.ErrKeyNotFound) {
		return err
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &tables); err != nil {
			return err
		}
	}

	for _, t := range tables {
		if t.Employee == employee {
			return fmt.Errorf("time table for %q already exists", employee)
		}
	}

	days := make(map[string]schedule.DaySchedule)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		days[day] = schedule.DaySchedule{
			Slots: []schedule.Slot{{Start: "09:00:00", End: "17:00:00"}},
		}
	}
	tables = append(tables, schedule.TimeTable{Employee: employee, Days: days})

	out, err := json.Marshal(tables)
	if err != nil {
		return err
	}
	return store.Set(ctx, "timeTables", out)
}
