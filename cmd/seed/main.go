package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clinix/internal/config"
	"clinix/internal/db"
	"clinix/internal/model"
)

type seedUser struct {
	Name       string
	Email      string
	Password   string
	Role       string
	Specialty  string
	Phone      string
	Experience int
}

var doctors = []seedUser{
	{Name: "Dr. Sarah Johnson", Email: "sarah.johnson@clinix.com", Password: "doctor123", Role: model.RoleDoctor, Specialty: "Cardiology", Phone: "+1234567890", Experience: 12},
	{Name: "Dr. Michael Chen", Email: "michael.chen@clinix.com", Password: "doctor123", Role: model.RoleDoctor, Specialty: "Neurology", Phone: "+1234567891", Experience: 15},
	{Name: "Dr. Emily Davis", Email: "emily.davis@clinix.com", Password: "doctor123", Role: model.RoleDoctor, Specialty: "Pediatrics", Phone: "+1234567892", Experience: 8},
	{Name: "Dr. James Wilson", Email: "james.wilson@clinix.com", Password: "doctor123", Role: model.RoleDoctor, Specialty: "Orthopedics", Phone: "+1234567893", Experience: 10},
	{Name: "Dr. Lisa Anderson", Email: "lisa.anderson@clinix.com", Password: "doctor123", Role: model.RoleDoctor, Specialty: "Dermatology", Phone: "+1234567894", Experience: 7},
	{Name: "Dr. Robert Martinez", Email: "robert.martinez@clinix.com", Password: "doctor123", Role: model.RoleDoctor, Specialty: "General Medicine", Phone: "+1234567895", Experience: 20},
}

var patients = []seedUser{
	{Name: "John Doe", Email: "john.doe@example.com", Password: "patient123", Role: model.RolePatient, Phone: "+1234567896"},
	{Name: "Jane Smith", Email: "jane.smith@example.com", Password: "patient123", Role: model.RolePatient, Phone: "+1234567897"},
}

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	log.Println("Clearing existing data...")
	for _, table := range []interface{}{&model.Medicine{}, &model.Prescription{}, &model.Appointment{}, &model.User{}} {
		if err := gormDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
	}

	log.Println("Seeding doctors and patients...")
	created := map[string]*model.User{}
	for _, su := range append(append([]seedUser{}, doctors...), patients...) {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
			Specialty:    su.Specialty,
			Phone:        su.Phone,
			Experience:   su.Experience,
		}
		if err := gormDB.Create(user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}
		created[su.Email] = user
	}

	doctor := created["sarah.johnson@clinix.com"]
	patient := created["john.doe@example.com"]

	log.Println("Creating appointments...")
	now := time.Now()
	appointments := []model.Appointment{
		{PatientID: patient.ID, DoctorID: doctor.ID, Date: now.AddDate(0, 0, 1), Time: "10:00 AM", Reason: "Regular checkup", Status: model.StatusConfirmed, Notes: "Patient requested early morning slot"},
		{PatientID: patient.ID, DoctorID: doctor.ID, Date: now.AddDate(0, 0, 2), Time: "2:00 PM", Reason: "Follow-up consultation", Status: model.StatusPending, Notes: "Check previous test results"},
		{PatientID: patient.ID, DoctorID: doctor.ID, Date: now.AddDate(0, 0, -2), Time: "11:30 AM", Reason: "Annual physical examination", Status: model.StatusCompleted, Notes: "All vitals normal"},
		{PatientID: patient.ID, DoctorID: doctor.ID, Date: now.AddDate(0, 0, 7), Time: "3:30 PM", Reason: "Lab results discussion", Status: model.StatusPending},
	}
	for i := range appointments {
		if err := gormDB.Create(&appointments[i]).Error; err != nil {
			log.Fatalf("Failed to create appointment: %v", err)
		}
	}

	log.Println("Database seeded successfully!")
	log.Printf("   - %d doctors created", len(doctors))
	log.Printf("   - %d patients created", len(patients))
	log.Printf("   - %d appointments created", len(appointments))
	log.Println("Test credentials:")
	log.Println("   Doctor:  sarah.johnson@clinix.com / doctor123")
	log.Println("   Patient: john.doe@example.com / patient123")
}
