package service

import (
	"errors"
	"testing"

	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []mailer.Message
	fail bool
}

func (f *fakeSender) Send(msg mailer.Message) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newClassFixture(t *testing.T) (*ClassService, *fakeSender, *model.Class) {
	t.Helper()
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := NewClassService(repository.NewClassRepository(db), repository.NewApplicationRepository(db), sender)

	class, err := svc.CreateClass(ClassRequest{
		Title:       "초급 한국어 1반",
		Level:       "L1",
		Schedule:    "매주 토요일 10:00",
		TeacherName: "이선생",
		Capacity:    12,
	})
	require.NoError(t, err)
	return svc, sender, class
}

func applyReq() ApplyRequest {
	return ApplyRequest{
		Name:           "응우옌",
		Email:          "nguyen@example.org",
		Country:        "Vietnam",
		Message:        "한국어를 배우고 싶습니다.",
		PrivacyConsent: true,
		AgeConsent:     true,
	}
}

func TestApply(t *testing.T) {
	svc, _, class := newClassFixture(t)

	app, err := svc.Apply(class.ID, applyReq())
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	assert.NotEmpty(t, app.ID)
	assert.Nil(t, app.DecidedAt)
}

func TestApplyClosedClass(t *testing.T) {
	svc, _, class := newClassFixture(t)
	_, err := svc.UpdateClass(class.ID, ClassRequest{Title: class.Title, Status: model.ClassStatusClosed})
	require.NoError(t, err)

	_, err = svc.Apply(class.ID, applyReq())
	assert.ErrorIs(t, err, util.ErrClassClosed)
}

func TestApplyUnknownClass(t *testing.T) {
	svc, _, _ := newClassFixture(t)
	_, err := svc.Apply("missing-id", applyReq())
	assert.ErrorIs(t, err, util.ErrClassNotFound)
}

func TestApplyHoneypot(t *testing.T) {
	svc, _, class := newClassFixture(t)

	req := applyReq()
	req.Website = "spam"
	_, err := svc.Apply(class.ID, req)
	assert.ErrorIs(t, err, util.ErrSpamDetected)

	_, total, err := svc.ListApplications(1, 10, "", "")
	require.NoError(t, err)
	assert.Zero(t, total, "a trapped submission stores nothing")
}

func TestApproveSendsOneMail(t *testing.T) {
	svc, sender, class := newClassFixture(t)
	app, err := svc.Apply(class.ID, applyReq())
	require.NoError(t, err)

	decided, err := svc.Decide(app.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedAt)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "nguyen@example.org", msg.To)
	assert.Contains(t, msg.Subject, "승인")
	assert.Contains(t, msg.Body, class.Title)
}

func TestRejectWithEmptyReasonStillMails(t *testing.T) {
	svc, sender, class := newClassFixture(t)
	app, err := svc.Apply(class.ID, applyReq())
	require.NoError(t, err)

	decided, err := svc.Decide(app.ID, false, "")
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusRejected, decided.Status)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Subject, "결과 안내")
}

func TestDecideTwice(t *testing.T) {
	svc, _, class := newClassFixture(t)
	app, err := svc.Apply(class.ID, applyReq())
	require.NoError(t, err)

	_, err = svc.Decide(app.ID, true, "")
	require.NoError(t, err)

	_, err = svc.Decide(app.ID, false, "재검토")
	assert.ErrorIs(t, err, util.ErrApplicationDecided)
}

func TestDecideMailFailureKeepsDecision(t *testing.T) {
	svc, sender, class := newClassFixture(t)
	app, err := svc.Apply(class.ID, applyReq())
	require.NoError(t, err)

	sender.fail = true
	decided, err := svc.Decide(app.ID, true, "")
	assert.ErrorIs(t, err, util.ErrEmailSendFailed)
	require.NotNil(t, decided)
	assert.Equal(t, model.ApplicationStatusApproved, decided.Status)

	// persisted state is already decided
	stored, err := svc.GetApplication(app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusApproved, stored.Status)
}

func TestListApplicationsFilters(t *testing.T) {
	svc, _, class := newClassFixture(t)
	first, err := svc.Apply(class.ID, applyReq())
	require.NoError(t, err)

	second := applyReq()
	second.Email = "other@example.org"
	_, err = svc.Apply(class.ID, second)
	require.NoError(t, err)

	_, err = svc.Decide(first.ID, true, "")
	require.NoError(t, err)

	pending, total, err := svc.ListApplications(1, 10, model.ApplicationStatusPending, class.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, "other@example.org", pending[0].Email)
}

func TestApplicationSummary(t *testing.T) {
	svc, _, class := newClassFixture(t)
	first, err := svc.Apply(class.ID, applyReq())
	require.NoError(t, err)

	second := applyReq()
	second.Email = "other@example.org"
	_, err = svc.Apply(class.ID, second)
	require.NoError(t, err)

	_, err = svc.Decide(first.ID, true, "")
	require.NoError(t, err)

	counts, err := svc.ApplicationSummary(class.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[model.ApplicationStatusPending])
	assert.EqualValues(t, 1, counts[model.ApplicationStatusApproved])
	assert.EqualValues(t, 0, counts[model.ApplicationStatusRejected])

	// other classes contribute nothing to a scoped summary
	other, err := svc.ApplicationSummary("another-class")
	require.NoError(t, err)
	assert.EqualValues(t, 0, other[model.ApplicationStatusPending])
}

func TestListOpenExcludesClosed(t *testing.T) {
	svc, _, class := newClassFixture(t)
	closed, err := svc.CreateClass(ClassRequest{Title: "마감된 반", Status: model.ClassStatusClosed})
	require.NoError(t, err)

	open, err := svc.ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, class.ID, open[0].ID)
	assert.NotEqual(t, closed.ID, open[0].ID)
}
