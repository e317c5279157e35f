package service

import (
	"math/rand"
	"sync"
	"time"

	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/logger"
	"hangul_edu_backend/pkg/monitoring"

	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LevelTestService drives the adaptive placement test. Sessions live in
// memory only; the single LevelTestResult row is written at the terminal
// state and nothing is persisted before that. An abandoned session is
// simply evicted by the janitor.
type LevelTestService struct {
	QuestionRepo *repository.QuestionRepository
	ResultRepo   *repository.LevelTestResultRepository
	Cfg          config.LevelTestConfig

	mu       sync.Mutex
	sessions map[string]*testSession
	rng      *rand.Rand
	stop     chan struct{}
}

func NewLevelTestService(questionRepo *repository.QuestionRepository, resultRepo *repository.LevelTestResultRepository, cfg config.LevelTestConfig) *LevelTestService {
	return &LevelTestService{
		QuestionRepo: questionRepo,
		ResultRepo:   resultRepo,
		Cfg:          cfg,
		sessions:     make(map[string]*testSession),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		stop:         make(chan struct{}),
	}
}

// sessionQuestion carries one prepared item. Options are already shuffled
// per question; the answer never leaves the server.
type sessionQuestion struct {
	ID          uint
	Text        string
	Options     []string
	answer      string
	explanation string
}

type testSession struct {
	id       string
	name     string
	email    string
	country  string
	consents [3]bool // privacy, age, marketing

	levels    []string                     // bands that actually have questions, ascending
	questions map[string][]sessionQuestion // per band, 10 sampled (or fewer, degraded)
	levelIdx  int
	index     int
	score     int
	finished  bool
	result    *TestResult

	lastActive time.Time
}

func (s *testSession) level() string {
	return s.levels[s.levelIdx]
}

func (s *testSession) current() []sessionQuestion {
	return s.questions[s.level()]
}

type StartTestRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Country          string `json:"country"`
	PrivacyConsent   bool   `json:"privacyConsent" binding:"required"`
	AgeConsent       bool   `json:"ageConsent" binding:"required"`
	MarketingConsent bool   `json:"marketingConsent"`

	// Honeypot. Hidden on the real form; any non-empty value means a bot
	// filled it in and the submission is silently dropped.
	Website string `json:"website"`
}

// QuestionView is the client-facing shape of a question.
type QuestionView struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type StartTestResponse struct {
	SessionID      string       `json:"sessionId"`
	Level          string       `json:"level"`
	QuestionNumber int          `json:"questionNumber"`
	TotalQuestions int          `json:"totalQuestions"`
	PassThreshold  int          `json:"passThreshold"`
	Question       QuestionView `json:"question"`
}

type Feedback struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
}

// TestResult is the user-visible terminal outcome. It is authoritative
// even when the corresponding record could not be persisted.
type TestResult struct {
	Level     string `json:"level"`
	Score     int    `json:"score"`
	Completed bool   `json:"completed"` // mastered every band
}

const (
	StatusQuestion      = "question"
	StatusLevelAdvanced = "level_advanced"
	StatusFinished      = "finished"
)

type AnswerResponse struct {
	Accepted       bool          `json:"accepted"`
	Status         string        `json:"status"`
	Feedback       *Feedback     `json:"feedback,omitempty"`
	Level          string        `json:"level"`
	QuestionNumber int           `json:"questionNumber"`
	TotalQuestions int           `json:"totalQuestions"`
	Score          int           `json:"score"`
	Question       *QuestionView `json:"question,omitempty"`
	Result         *TestResult   `json:"result,omitempty"`
}

// Start samples the question subsets and opens a session. The pool must
// load and be non-empty; otherwise no session is created at all.
func (s *LevelTestService) Start(req StartTestRequest) (*StartTestResponse, error) {
	if req.Website != "" {
		return nil, util.ErrSpamDetected
	}

	pool, err := s.QuestionRepo.FindActive()
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, util.ErrQuestionPoolEmpty
	}

	byLevel := make(map[string][]model.Question)
	for _, q := range pool {
		byLevel[q.Level] = append(byLevel[q.Level], q)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &testSession{
		id:         uuid.New().String(),
		name:       req.Name,
		email:      req.Email,
		country:    req.Country,
		consents:   [3]bool{req.PrivacyConsent, req.AgeConsent, req.MarketingConsent},
		questions:  make(map[string][]sessionQuestion),
		lastActive: time.Now(),
	}

	for _, level := range model.TestLevels {
		candidates := byLevel[level]
		if len(candidates) == 0 {
			logger.Log.Warn("level has no active questions, band skipped",
				zap.String("level", level))
			continue
		}
		if len(candidates) < s.Cfg.QuestionsPerLevel {
			logger.Log.Warn("level question pool below target size, proceeding degraded",
				zap.String("level", level),
				zap.Int("available", len(candidates)),
				zap.Int("target", s.Cfg.QuestionsPerLevel))
		}

		s.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		n := s.Cfg.QuestionsPerLevel
		if len(candidates) < n {
			n = len(candidates)
		}

		subset := make([]sessionQuestion, 0, n)
		for _, q := range candidates[:n] {
			subset = append(subset, s.prepareQuestion(q))
		}
		sess.levels = append(sess.levels, level)
		sess.questions[level] = subset
	}

	if len(sess.levels) == 0 {
		return nil, util.ErrQuestionPoolEmpty
	}

	s.sessions[sess.id] = sess

	first := sess.current()[0]
	return &StartTestResponse{
		SessionID:      sess.id,
		Level:          sess.level(),
		QuestionNumber: 1,
		TotalQuestions: len(sess.current()),
		PassThreshold:  s.Cfg.PassThreshold,
		Question:       QuestionView{Text: first.Text, Options: first.Options},
	}, nil
}

// prepareQuestion decodes the stored options and shuffles them
// independently of every other question.
func (s *LevelTestService) prepareQuestion(q model.Question) sessionQuestion {
	var options []string
	if err := json.Unmarshal(q.Options, &options); err != nil {
		logger.Log.Warn("question has malformed options", zap.Uint("question_id", q.ID), zap.Error(err))
	}
	shuffled := make([]string, len(options))
	copy(shuffled, options)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return sessionQuestion{
		ID:          q.ID,
		Text:        q.Text,
		Options:     shuffled,
		answer:      q.Answer,
		explanation: q.Explanation,
	}
}

// Answer evaluates one submission. Submissions are strictly sequential:
// questionIndex must equal the session cursor; anything older is the
// double-submit the feedback guard exists for and is ignored without
// touching the score.
func (s *LevelTestService) Answer(sessionID string, questionIndex int, selected string) (*AnswerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	if sess.finished {
		return nil, util.ErrSessionFinished
	}
	sess.lastActive = time.Now()

	if questionIndex != sess.index {
		// stale or repeated submit; echo progress, count nothing
		return s.progressResponse(sess, false, nil), nil
	}

	q := sess.current()[sess.index]
	correct := selected == q.answer
	if correct {
		sess.score++
	}
	fb := &Feedback{
		Correct:       correct,
		CorrectAnswer: q.answer,
		Explanation:   q.explanation,
	}

	sess.index++
	if sess.index < len(sess.current()) {
		return s.progressResponse(sess, true, fb), nil
	}

	// level boundary
	passed := sess.score >= s.Cfg.PassThreshold
	if passed && sess.levelIdx+1 < len(sess.levels) {
		sess.levelIdx++
		sess.index = 0
		sess.score = 0
		resp := s.progressResponse(sess, true, fb)
		resp.Status = StatusLevelAdvanced
		return resp, nil
	}

	result := s.finishLocked(sess, passed)
	return &AnswerResponse{
		Accepted: true,
		Status:   StatusFinished,
		Feedback: fb,
		Level:    sess.level(),
		Score:    result.Score,
		Result:   result,
	}, nil
}

func (s *LevelTestService) progressResponse(sess *testSession, accepted bool, fb *Feedback) *AnswerResponse {
	q := sess.current()[sess.index]
	return &AnswerResponse{
		Accepted:       accepted,
		Status:         StatusQuestion,
		Feedback:       fb,
		Level:          sess.level(),
		QuestionNumber: sess.index + 1,
		TotalQuestions: len(sess.current()),
		Score:          sess.score,
		Question:       &QuestionView{Text: q.Text, Options: q.Options},
	}
}

// finishLocked computes the terminal result and persists the single
// LevelTestResult. A persistence failure is logged and swallowed: the
// learner keeps their on-screen result either way.
func (s *LevelTestService) finishLocked(sess *testSession, mastered bool) *TestResult {
	sess.finished = true

	result := &TestResult{
		Level:     sess.level(),
		Score:     sess.score,
		Completed: mastered,
	}
	sess.result = result

	outcome := "stopped"
	if mastered {
		outcome = "mastered"
	}
	monitoring.LevelTestOutcomes.WithLabelValues(result.Level, outcome).Inc()

	record := &model.LevelTestResult{
		Name:             sess.name,
		Email:            sess.email,
		Country:          sess.country,
		Level:            result.Level,
		Score:            result.Score,
		Completed:        result.Completed,
		PrivacyConsent:   sess.consents[0],
		AgeConsent:       sess.consents[1],
		MarketingConsent: sess.consents[2],
	}
	if err := s.ResultRepo.Create(record); err != nil {
		logger.Log.Error("failed to persist level test result",
			zap.String("session_id", sess.id),
			zap.String("level", result.Level),
			zap.Error(err))
	}

	return result
}

// Resume returns the current question for an open session, so a reloaded
// page can pick up where it left off.
func (s *LevelTestService) Resume(sessionID string) (*AnswerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	sess.lastActive = time.Now()

	if sess.finished {
		return &AnswerResponse{
			Accepted: true,
			Status:   StatusFinished,
			Level:    sess.level(),
			Score:    sess.result.Score,
			Result:   sess.result,
		}, nil
	}
	return s.progressResponse(sess, true, nil), nil
}

// RunJanitor evicts idle sessions until Stop is called.
func (s *LevelTestService) RunJanitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.evictIdle()
		case <-s.stop:
			return
		}
	}
}

func (s *LevelTestService) Stop() {
	close(s.stop)
}

func (s *LevelTestService) evictIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if time.Since(sess.lastActive) > s.Cfg.SessionTTL {
			delete(s.sessions, id)
		}
	}
}

// SessionCount is used by the health endpoint.
func (s *LevelTestService) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *LevelTestService) ListResults(page, limit int, level string) ([]model.LevelTestResult, int64, error) {
	return s.ResultRepo.ListForAdmin(page, limit, level)
}

// ResultStats returns how many takers ended at each band, in band order.
type LevelResultCount struct {
	Level string `json:"level"`
	Count int64  `json:"count"`
}

func (s *LevelTestService) ResultStats() ([]LevelResultCount, error) {
	counts, err := s.ResultRepo.CountByLevel()
	if err != nil {
		return nil, err
	}
	stats := make([]LevelResultCount, 0, len(model.TestLevels))
	for _, lv := range model.TestLevels {
		stats = append(stats, LevelResultCount{Level: lv, Count: counts[lv]})
	}
	return stats, nil
}
