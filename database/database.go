package database

import (
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo     *ProjectRepo
	skillRepo       *SkillRepo
	learningRepo    *LearningRepo
	experienceRepo  *ExperienceRepo
	certificateRepo *CertificateRepo
	mediaRepo       *MediaRepo
	profileRepo     *ProfileRepo
	aboutRepo       *AboutRepo
	contactRepo     *ContactRepo
	userRepo        *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:     NewProjectRepo(db),
		skillRepo:       NewSkillRepo(db),
		learningRepo:    NewLearningRepo(db),
		experienceRepo:  NewExperienceRepo(db),
		certificateRepo: NewCertificateRepo(db),
		mediaRepo:       NewMediaRepo(db),
		profileRepo:     NewProfileRepo(db),
		aboutRepo:       NewAboutRepo(db),
		contactRepo:     NewContactRepo(db),
		userRepo:        NewUserRepo(db),
	}
}

// Migrate creates or updates the schema for every collection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.Skill{},
		&models.Learning{},
		&models.Experience{},
		&models.Certificate{},
		&models.Media{},
		&models.Profile{},
		&models.About{},
		&models.Contact{},
		&models.User{},
	)
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) LearningRepo() *LearningRepo {
	return d.learningRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) CertificateRepo() *CertificateRepo {
	return d.certificateRepo
}

func (d Database) MediaRepo() *MediaRepo {
	return d.mediaRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) AboutRepo() *AboutRepo {
	return d.aboutRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}
