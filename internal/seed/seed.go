package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/studybuddy/backend/internal/app/models"
	"github.com/studybuddy/backend/internal/app/repositories"
)

// defaultCourses is the catalog available to every deployment. Users never
// create courses; enrollment and sessions reference these rows.
var defaultCourses = []models.Course{
	{CourseCode: "CS1010", CourseName: "Introduction to Computer Science", Department: "Computer Science"},
	{CourseCode: "MATH1060", CourseName: "Calculus I", Department: "Mathematics"},
	{CourseCode: "PHYS2070", CourseName: "University Physics I", Department: "Physics"},
	{CourseCode: "CHEM1050", CourseName: "General Chemistry", Department: "Chemistry"},
	{CourseCode: "CS2030", CourseName: "Computer Science II", Department: "Computer Science"},
	{CourseCode: "CS3240", CourseName: "Database Systems", Department: "Computer Science"},
	{CourseCode: "ENGL1010", CourseName: "English Composition I", Department: "English"},
	{CourseCode: "HIST1010", CourseName: "World History", Department: "History"},
}

// CreateDefaultData seeds the course catalog. Safe to run on every startup;
// courses already present are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	courseRepo := repositories.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default course catalog...")

	var finalErr error
	inserted := 0
	for i := range defaultCourses {
		course := defaultCourses[i]
		created, err := courseRepo.CreateIfMissing(ctx, &course)
		if err != nil {
			lgr.Error().Err(err).Str("courseCode", course.CourseCode).Msg("Error seeding course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if created {
			inserted++
		}
	}

	lgr.Info().Int("inserted", inserted).Int("total", len(defaultCourses)).Msg("Course catalog seed finished")
	return finalErr
}
