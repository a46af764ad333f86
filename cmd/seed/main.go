// Command seed provisions the bootstrap administrator and a handful of demo
// users and devices. Registration is not part of the REST surface, so this is
// how users enter the store.
package main

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gevartrix/dshop-booking-backend/internal/config"
	"github.com/gevartrix/dshop-booking-backend/internal/db"
	"github.com/gevartrix/dshop-booking-backend/internal/device"
	"github.com/gevartrix/dshop-booking-backend/internal/pkg/storage"
	"github.com/gevartrix/dshop-booking-backend/internal/user"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.AdminEmail == "" {
		log.Fatal("ADMIN_EMAIL is required for seeding")
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	userService := user.NewService(user.NewPgxRepository(pool))

	store, err := storage.NewLocalStorage(cfg.StorageRoot)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	deviceService := device.NewService(device.NewPgxRepository(pool), store)

	seedUsers(ctx, userService, cfg.AdminEmail)
	seedDevices(ctx, deviceService)

	log.Println("seeding complete")
}

func seedUsers(ctx context.Context, svc user.Service, adminEmail string) {
	first, last := namesFromEmail(adminEmail)
	users := []*user.User{
		{Email: adminEmail, FirstName: first, LastName: last, IsAdmin: true},
		{Email: "jon.doe@example.com", FirstName: "Jon", LastName: "Doe"},
		{Email: "erika.mustermann@example.com", FirstName: "Erika", LastName: "Mustermann"},
	}

	for _, u := range users {
		if err := svc.Create(ctx, u); err != nil {
			if errors.Is(err, user.ErrEmailAlreadyUsed) {
				log.Printf("user %s already exists, skipping", u.Email)
				continue
			}
			log.Fatalf("failed to seed user %s: %v", u.Email, err)
		}
		log.Printf("seeded user %s (admin=%v)", u.Email, u.IsAdmin)
	}
}

func seedDevices(ctx context.Context, svc device.Service) {
	devices := []device.CreateRequest{
		{Name: "Raspberry Pi", Category: "Computers", Model: "4B", RAM: "4 GB", OS: "Raspbian"},
		{Name: "iPhone 12", Category: "Smartphones", Model: "A2403", RAM: "4 GB", OS: "iOS"},
		{Name: "ThinkPad X1", Category: "Laptops", Model: "Carbon Gen 9", RAM: "16 GB", OS: "Ubuntu"},
		{Name: "Oscilloscope"},
	}

	for _, req := range devices {
		if _, err := svc.Create(ctx, req); err != nil {
			if strings.Contains(err.Error(), "already added") {
				log.Printf("device %s already exists, skipping", req.Name)
				continue
			}
			log.Fatalf("failed to seed device %s: %v", req.Name, err)
		}
		log.Printf("seeded device %s", req.Name)
	}
}

// namesFromEmail derives first/last name from a first.last@domain address,
// falling back to "Admin" when the local part has no dot.
func namesFromEmail(email string) (string, string) {
	local, _, _ := strings.Cut(email, "@")
	first, last, found := strings.Cut(local, ".")
	if !found {
		return "Admin", "Admin"
	}
	return capitalize(first), capitalize(last)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
