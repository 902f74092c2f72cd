package database

import (
	"fmt"
	"mindcare_backend/internal/config"
	"mindcare_backend/internal/model"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "mindcare_backend/pkg/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := logger.Warn
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	applog.Log.Info("Database connection established")
	return db, nil
}

// Migrate 自动迁移所有表并写入默认问卷和每日小测题库
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Section{},
		&model.Student{},
		&model.MoodEntry{},
		&model.Survey{},
		&model.SurveyQuestion{},
		&model.SurveyResponse{},
		&model.Goal{},
		&model.WeeklyGoalSummary{},
		&model.InitialAssessment{},
		&model.Quiz{},
		&model.QuizAttempt{},
		&model.DailyQuizSet{},
	)
	if err != nil {
		return err
	}

	applog.Log.Info("Database migration completed")

	return seed(db)
}

func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Survey{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		survey := model.Survey{
			Title:       "Daily Check-in",
			Description: "How have you been feeling today?",
			Active:      true,
			Questions: []model.SurveyQuestion{
				{Order: 1, Text: "I felt calm and relaxed today."},
				{Order: 2, Text: "I was able to focus on my schoolwork."},
				{Order: 3, Text: "I felt nervous or on edge.", Reverse: true},
				{Order: 4, Text: "I had someone to talk to when I needed it."},
				{Order: 5, Text: "I felt down or hopeless.", Reverse: true},
			},
		}
		if err := db.Create(&survey).Error; err != nil {
			return err
		}
	}

	var quizCount int64
	if err := db.Model(&model.Quiz{}).Count(&quizCount).Error; err != nil {
		return err
	}
	if quizCount == 0 {
		quizzes := []model.Quiz{
			{Question: "Which of these is a healthy way to handle stress?", Options: datatypes.NewJSONSlice([]string{"Skipping meals", "Deep breathing", "Staying up late", "Keeping it to yourself"}), CorrectAnswer: "Deep breathing", Active: true},
			{Question: "How many hours of sleep do most teenagers need?", Options: datatypes.NewJSONSlice([]string{"4-5", "6-7", "8-10", "12+"}), CorrectAnswer: "8-10", Active: true},
			{Question: "Who can you talk to at school when you feel overwhelmed?", Options: datatypes.NewJSONSlice([]string{"Guidance counselor", "No one", "Only strangers online", "Nobody should know"}), CorrectAnswer: "Guidance counselor", Active: true},
			{Question: "Regular physical activity can improve your mood.", Options: datatypes.NewJSONSlice([]string{"True", "False"}), CorrectAnswer: "True", Active: true},
			{Question: "Which is a sign that a friend may need support?", Options: datatypes.NewJSONSlice([]string{"Withdrawing from others", "Laughing at a joke", "Finishing homework", "Eating lunch"}), CorrectAnswer: "Withdrawing from others", Active: true},
		}
		if err := db.Create(&quizzes).Error; err != nil {
			return err
		}
	}

	applog.Log.Debug("Seed data ensured", zap.Int64("surveys", count), zap.Int64("quizzes", quizCount))
	return nil
}
