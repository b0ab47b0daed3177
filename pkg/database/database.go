package database

import (
	"fmt"
	"log"

	"campus_lms_backend/internal/config"
	"campus_lms_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Campus{},
		&model.Ladder{},
		&model.Course{},
		&model.CourseVideo{},
		&model.CourseQuiz{},
		&model.CourseGroup{},
		&model.Enrollment{},
		&model.VideoProgress{},
		&model.QuizResult{},
		&model.OnsiteCompletion{},
		&model.ExportArchive{},
		&model.Form{},
		&model.FormField{},
		&model.FormSubmission{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the progression ladders when empty.
	var ladderCount int64
	db.Model(&model.Ladder{}).Count(&ladderCount)
	if ladderCount == 0 {
		defaultLadders := []model.Ladder{
			{Name: "Member", Order: 1},
			{Name: "Worker", Order: 2},
			{Name: "Leader", Order: 3, Side: "leadership"},
			{Name: "Senior Leader", Order: 4, Side: "leadership"},
		}
		for _, l := range defaultLadders {
			db.Create(&l)
		}
	}

	var campusCount int64
	db.Model(&model.Campus{}).Count(&campusCount)
	if campusCount == 0 {
		db.Create(&model.Campus{Name: "Main Campus"})
	}

	return db, nil
}
