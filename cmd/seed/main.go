// cmd/seed/main.go - imports demo brands, personas and themes into a team
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"postforge/models"
	"postforge/services"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type seedFile struct {
	Brands []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Tone        string `json:"tone"`
		Website     string `json:"website"`
	} `json:"brands"`
	Personas []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		AgeRange    string `json:"age_range"`
		Interests   string `json:"interests"`
		PainPoints  string `json:"pain_points"`
	} `json:"personas"`
	Themes []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Keywords    string `json:"keywords"`
	} `json:"themes"`
}

func main() {
	path := flag.String("file", "./seed/demo.json", "path to the seed JSON file")
	teamCode := flag.String("team", "", "team code to import into")
	flag.Parse()

	_ = godotenv.Load()

	if *teamCode == "" {
		log.Fatal("usage: seed -team CODE [-file path]")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var team models.Team
	code := services.NormalizeTeamCode(*teamCode)
	if err := db.Where("team_code = ?", code).First(&team).Error; err != nil {
		log.Fatalf("No team with code %s", code)
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Failed to read seed file:", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		log.Fatal("Failed to parse seed file:", err)
	}

	for _, b := range seed.Brands {
		brand := models.Brand{
			TeamID:      team.ID,
			Name:        b.Name,
			Description: b.Description,
			Tone:        b.Tone,
			Website:     b.Website,
			CreatedBy:   team.AdminUserID,
			IsActive:    true,
		}
		if err := db.Create(&brand).Error; err != nil {
			log.Printf("skip brand %q: %v", b.Name, err)
		}
	}

	for _, p := range seed.Personas {
		persona := models.Persona{
			TeamID:      team.ID,
			Name:        p.Name,
			Description: p.Description,
			AgeRange:    p.AgeRange,
			Interests:   p.Interests,
			PainPoints:  p.PainPoints,
			CreatedBy:   team.AdminUserID,
			IsActive:    true,
		}
		if err := db.Create(&persona).Error; err != nil {
			log.Printf("skip persona %q: %v", p.Name, err)
		}
	}

	for _, t := range seed.Themes {
		theme := models.Theme{
			TeamID:      team.ID,
			Name:        t.Name,
			Description: t.Description,
			Keywords:    t.Keywords,
			CreatedBy:   team.AdminUserID,
			IsActive:    true,
		}
		if err := db.Create(&theme).Error; err != nil {
			log.Printf("skip theme %q: %v", t.Name, err)
		}
	}

	fmt.Printf("Seeded %d brands, %d personas, %d themes into team %s\n",
		len(seed.Brands), len(seed.Personas), len(seed.Themes), team.Name)
}
