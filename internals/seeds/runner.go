package seeds

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"duomonggo_backend/internals/seeds/courses"
)

const DefaultCoursesFile = "internals/seeds/courses/data_courses.json"

func RunAllSeeds(ctx context.Context, db *gorm.DB, coursesFile string, loc *time.Location) error {
	if coursesFile == "" {
		coursesFile = DefaultCoursesFile
	}

	//* Courses + questions + answers
	n, err := courses.SeedCoursesFromJSON(ctx, db, coursesFile, loc)
	if err != nil {
		return err
	}
	log.Printf("[SEED] %d course baru dari %s", n, coursesFile)
	return nil
}
