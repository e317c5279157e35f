package service

import (
	"fmt"
	"os"
	"testing"
	"time"

	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/database"
	"hangul_edu_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testLevelCfg() config.LevelTestConfig {
	return config.LevelTestConfig{
		QuestionsPerLevel: 3,
		PassThreshold:     2,
		SessionTTL:        30 * time.Minute,
	}
}

func seedQuestions(t *testing.T, repo *repository.QuestionRepository, level string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		q := &model.Question{
			Level:       level,
			Text:        fmt.Sprintf("%s 문항 %d", level, i+1),
			Options:     []byte(`["정답","오답1","오답2","오답3"]`),
			Answer:      "정답",
			Explanation: "보기 중 '정답'이 맞습니다.",
			Active:      true,
		}
		require.NoError(t, repo.Create(q))
	}
}

func newTestEngine(t *testing.T) (*LevelTestService, *repository.QuestionRepository, *repository.LevelTestResultRepository) {
	db := newTestDB(t)
	questions := repository.NewQuestionRepository(db)
	results := repository.NewLevelTestResultRepository(db)
	return NewLevelTestService(questions, results, testLevelCfg()), questions, results
}

func startReq() StartTestRequest {
	return StartTestRequest{
		Name:           "김학생",
		Email:          "student@example.org",
		Country:        "Vietnam",
		PrivacyConsent: true,
		AgeConsent:     true,
	}
}

// answerLevel submits n answers, correct of them right, and returns the
// last response.
func answerLevel(t *testing.T, svc *LevelTestService, sessionID string, start, n, correct int) *AnswerResponse {
	t.Helper()
	var resp *AnswerResponse
	var err error
	for i := 0; i < n; i++ {
		selected := "오답1"
		if i < correct {
			selected = "정답"
		}
		resp, err = svc.Answer(sessionID, start+i, selected)
		require.NoError(t, err)
		require.True(t, resp.Accepted)
	}
	return resp
}

func TestStartOpensSessionAtFirstLevel(t *testing.T) {
	svc, questions, _ := newTestEngine(t)
	seedQuestions(t, questions, model.LevelL1, 5)

	resp, err := svc.Start(startReq())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, model.LevelL1, resp.Level)
	assert.Equal(t, 1, resp.QuestionNumber)
	assert.Equal(t, 3, resp.TotalQuestions, "subset is capped at the configured size")
	assert.Equal(t, 2, resp.PassThreshold)
	assert.Len(t, resp.Question.Options, 4)
	assert.Equal(t, 1, svc.SessionCount())
}

func TestStartDegradedBand(t *testing.T) {
	svc, questions, _ := newTestEngine(t)
	seedQuestions(t, questions, model.LevelL1, 2)

	resp, err := svc.Start(startReq())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalQuestions, "short band still runs with what it has")
}

func TestStartEmptyPool(t *testing.T) {
	svc, _, _ := newTestEngine(t)

	_, err := svc.Start(startReq())
	assert.ErrorIs(t, err, util.ErrQuestionPoolEmpty)
	assert.Equal(t, 0, svc.SessionCount())
}

func TestStartHoneypot(t *testing.T) {
	svc, questions, results := newTestEngine(t)
	seedQuestions(t, questions, model.LevelL1, 3)

	req := startReq()
	req.Website = "http://spam.example"
	_, err := svc.Start(req)
	assert.ErrorIs(t, err, util.ErrSpamDetected)
	assert.Equal(t, 0, svc.SessionCount())

	_, total, err := results.ListForAdmin(1, 10, "")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAnswerFeedback(t *testing.T) {
	svc, questions, _ := newTestEngine(t)
	seedQuestions(t, questions, model.LevelL1, 3)

	start, err := svc.Start(startReq())
	require.NoError(t, err)

	resp, err := svc.Answer(start.SessionID, 0, "정답")
	require.NoError(t, err)
	require.NotNil(t, resp.Feedback)
	assert.True(t, resp.Feedback.Correct)
	assert.Equal(t, "정답", resp.Feedback.CorrectAnswer)
	assert.Equal(t, 1, resp.Score)
	assert.Equal(t, 2, resp.QuestionNumber)

	resp, err = svc.Answer(start.SessionID, 1, "오답1")
	require.NoError(t, err)
	assert.False(t, resp.Feedback.Correct)
	assert.Equal(t, "정답", resp.Feedback.CorrectAnswer)
	assert.Equal(t, 1, resp.Score, "a wrong answer never moves the score")
}

func TestStaleSubmitIgnored(t *testing.T) {
	svc, questions, _ := newTestEngine(t)
	seedQuestions(t, questions, model.LevelL1, 3)

	start, err := svc.Start(startReq())
	require.NoError(t, err)

	first, err := svc.Answer(start.SessionID, 0, "정답")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Score)

	// double submit of the same question
	again, err := svc.Answer(start.SessionID, 0, "정답")
	require.NoError(t, err)
	assert.False(t, again.Accepted)
	assert.Nil(t, again.Feedback)
	assert.Equal(t, 1, again.Score, "ignored submits never change the score")
	assert.Equal(t, 2, again.QuestionNumber, "cursor stays where it was")
}

func TestLevelAdvanceResetsProgress(t *testing.T) {
	svc, questions, _ := newTestEngine(t)
	seedQuestions(t, questions, model.LevelL1, 3)
	seedQuestions(t, questions, model.LevelL2, 3)

	start, err := svc.Start(startReq())
	require.NoError(t, err)

	resp := answerLevel(t, svc, start.SessionID, 0, 3, 2)
	assert.Equal(t, StatusLevelAdvanced, resp.Status)
	assert.Equal(t, model.LevelL2, resp.Level)
	assert.Equal(t, 1, resp.QuestionNumber)
	assert.Equal(t, 0, resp.Score)
	require.NotNil(t, resp.Question)
}

func TestFailedBoundaryFinishes(t *testing.T) {
	svc, questions, results := newTestEngine(t)
	seedQuestions(t, questions, model.LevelL1, 3)
	seedQuestions(t, questions, model.LevelL2, 3)

	start, err := svc.Start(startReq())
	require.NoError(t, err)

	resp := answerLevel(t, svc, start.SessionID, 0, 3, 1)
	assert.Equal(t, StatusFinished, resp.Status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, model.LevelL1, resp.Result.Level)
	assert.Equal(t, 1, resp.Result.Score)
	assert.False(t, resp.Result.Completed)

	records, total, err := results.ListForAdmin(1, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "exactly one result row per session")
	assert.Equal(t, model.LevelL1, records[0].Level)
	assert.Equal(t, "student@example.org", records[0].Email)
	assert.True(t, records[0].PrivacyConsent)
	assert.False(t, records[0].Completed)
}

func TestMasteryOfAllLevels(t *testing.T) {
	svc, questions, results := newTestEngine(t)
	for _, lv := range model.TestLevels {
		seedQuestions(t, questions, lv, 3)
	}

	start, err := svc.Start(startReq())
	require.NoError(t, err)

	var resp *AnswerResponse
	for range model.TestLevels {
		resp = answerLevel(t, svc, start.SessionID, 0, 3, 3)
	}

	assert.Equal(t, StatusFinished, resp.Status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, model.LevelL5, resp.Result.Level)
	assert.True(t, resp.Result.Completed)

	records, total, err := results.ListForAdmin(1, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.True(t, records[0].Completed)

	// the session is terminal now
	_, err = svc.Answer(start.SessionID, 0, "정답")
	assert.ErrorIs(t, err, util.ErrSessionFinished)
}

func TestSkippedEmptyBand(t *testing.T) {
	svc, questions, _ := newTestEngine(t)
	seedQuestions(t, questions, model.LevelL1, 3)
	// L2 empty on purpose
	seedQuestions(t, questions, model.LevelL3, 3)

	start, err := svc.Start(startReq())
	require.NoError(t, err)

	resp := answerLevel(t, svc, start.SessionID, 0, 3, 3)
	assert.Equal(t, StatusLevelAdvanced, resp.Status)
	assert.Equal(t, model.LevelL3, resp.Level, "an empty band is skipped, not failed")
}

func TestResume(t *testing.T) {
	svc, questions, _ := newTestEngine(t)
	seedQuestions(t, questions, model.LevelL1, 3)

	start, err := svc.Start(startReq())
	require.NoError(t, err)

	_, err = svc.Answer(start.SessionID, 0, "정답")
	require.NoError(t, err)

	resp, err := svc.Resume(start.SessionID)
	require.NoError(t, err)
	assert.Equal(t, StatusQuestion, resp.Status)
	assert.Equal(t, 2, resp.QuestionNumber)
	assert.Equal(t, 1, resp.Score)
	require.NotNil(t, resp.Question)

	_, err = svc.Resume("no-such-session")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestSessionEviction(t *testing.T) {
	svc, questions, _ := newTestEngine(t)
	seedQuestions(t, questions, model.LevelL1, 3)
	svc.Cfg.SessionTTL = time.Millisecond

	start, err := svc.Start(startReq())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	svc.evictIdle()

	_, err = svc.Answer(start.SessionID, 0, "정답")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
	assert.Equal(t, 0, svc.SessionCount())
}

func TestResultStats(t *testing.T) {
	svc, _, results := newTestEngine(t)
	for _, lv := range []string{model.LevelL1, model.LevelL1, model.LevelL3} {
		require.NoError(t, results.Create(&model.LevelTestResult{
			Name: "x", Email: "x@example.org", Level: lv, Score: 2,
		}))
	}

	stats, err := svc.ResultStats()
	require.NoError(t, err)
	require.Len(t, stats, len(model.TestLevels))
	assert.Equal(t, model.LevelL1, stats[0].Level)
	assert.EqualValues(t, 2, stats[0].Count)
	assert.EqualValues(t, 0, stats[1].Count)
	assert.EqualValues(t, 1, stats[2].Count)
}
