package database

import (
	"encoding/json"
	"fmt"
	"log"

	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
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
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// Migrate runs AutoMigrate for every entity type. Shared with the sqlite
// test harness.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.PostReaction{},
		&model.Question{},
		&model.LevelTestResult{},
		&model.Class{},
		&model.ClassApplication{},
	)
}

func seedDefaults(db *gorm.DB) {
	// Bootstrap admin account. The generated password is printed once so the
	// operator can log in and change it; nothing is stored in plain text.
	var userCount int64
	db.Model(&model.User{}).Count(&userCount)
	if userCount == 0 {
		password := util.GenerateRandomString(16)
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err == nil {
			admin := model.User{
				Name:     "관리자",
				Email:    "admin@hangul-edu.org",
				Password: string(hash),
				Role:     model.Admin,
			}
			if db.Create(&admin).Error == nil {
				log.Printf("Seeded admin account admin@hangul-edu.org with password: %s", password)
			}
		}
	}

	// A handful of L1 starter questions so a fresh install can run the
	// placement test end to end before the real pool is authored.
	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count == 0 {
		starters := []model.Question{
			{Level: model.LevelL1, Text: "'안녕하세요'는 무슨 뜻일까요?", Options: jsonArr("Hello", "Goodbye", "Thank you", "Sorry"), Answer: "Hello", Explanation: "'안녕하세요' is the standard polite greeting.", Difficulty: "easy", Active: true},
			{Level: model.LevelL1, Text: "'감사합니다'는 무슨 뜻일까요?", Options: jsonArr("Please", "Thank you", "Excuse me", "Welcome"), Answer: "Thank you", Difficulty: "easy", Active: true},
			{Level: model.LevelL1, Text: "다음 중 한글 모음은 무엇일까요?", Options: jsonArr("ㅏ", "ㄱ", "ㅂ", "ㅅ"), Answer: "ㅏ", Explanation: "ㅏ is a vowel; the others are consonants.", Difficulty: "easy", Active: true},
		}
		for _, q := range starters {
			db.Create(&q)
		}
	}
}

func jsonArr(items ...string) []byte {
	b, _ := json.Marshal(items)
	return b
}
