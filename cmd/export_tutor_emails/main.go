// One-off maintenance script: dumps approved tutor names and emails as CSV,
// to stdout or to the file given with -o.
package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"

	"tutorhub_backend/internals/configs"
	database "tutorhub_backend/internals/databases"
	tutorModel "tutorhub_backend/internals/features/tutors/tutors/model"
)

func main() {
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	configs.LoadEnv()
	database.ConnectDB()

	var tutors []tutorModel.TutorModel
	if err := database.DB.
		Select("first_name", "last_name", "email", "city").
		Order("created_at ASC").
		Find(&tutors).Error; err != nil {
		log.Fatalf("❌ load tutors: %v", err)
	}

	w := csv.NewWriter(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("❌ create %s: %v", *out, err)
		}
		defer f.Close()
		w = csv.NewWriter(f)
	}

	_ = w.Write([]string{"first_name", "last_name", "email", "city"})
	for i := range tutors {
		_ = w.Write([]string{tutors[i].FirstName, tutors[i].LastName, tutors[i].Email, tutors[i].City})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("❌ write csv: %v", err)
	}
	log.Printf("✅ exported %d tutors", len(tutors))
}
