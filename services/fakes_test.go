package services

import (
	"context"

	"github.com/Dosada05/matchday-system/models"
	"github.com/Dosada05/matchday-system/repositories"
)

// The fakes embed their repository interface so each test implements only
// the methods its code path touches.

type fakeMatchRepo struct {
	repositories.MatchRepository
	match *models.Match

	mvpMatchID string
	mvpSet     *string
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id string) (*models.Match, error) {
	if f.match == nil || f.match.ID != id {
		return nil, repositories.ErrMatchNotFound
	}
	return f.match, nil
}

func (f *fakeMatchRepo) SetMVP(_ context.Context, _ repositories.SQLExecutor, id string, mvpPlayerID *string) error {
	f.mvpMatchID = id
	f.mvpSet = mvpPlayerID
	return nil
}

type fakeEventRepo struct {
	repositories.EventRepository
	votes []*models.MVPVote
}

func (f *fakeEventRepo) UpsertVote(_ context.Context, vote *models.MVPVote) error {
	for _, v := range f.votes {
		if v.VoterID == vote.VoterID {
			v.PlayerID = vote.PlayerID
			return nil
		}
	}
	f.votes = append(f.votes, vote)
	return nil
}

func (f *fakeEventRepo) ListVotes(_ context.Context, _ string) ([]*models.MVPVote, error) {
	return f.votes, nil
}

type fakeChallengeRepo struct {
	repositories.ChallengeRepository
	created    *models.TeamChallenge
	createExec repositories.SQLExecutor
}

func (f *fakeChallengeRepo) Create(_ context.Context, exec repositories.SQLExecutor, challenge *models.TeamChallenge) error {
	f.created = challenge
	f.createExec = exec
	return nil
}

type fakePaymentRepo struct {
	repositories.PaymentRepository
	payment *models.Payment
}

func (f *fakePaymentRepo) GetByPayerAndReservation(_ context.Context, payerID, reservationID string) (*models.Payment, error) {
	if f.payment == nil || f.payment.PayerID != payerID || f.payment.ReservationID != reservationID {
		return nil, repositories.ErrPaymentNotFound
	}
	return f.payment, nil
}

type fakeNotifier struct {
	recorded   []NotificationInput
	recordExec repositories.SQLExecutor
	recordErr  error
	published  int
}

func (f *fakeNotifier) Record(_ context.Context, exec repositories.SQLExecutor, input NotificationInput) (*models.Notification, error) {
	f.recordExec = exec
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	f.recorded = append(f.recorded, input)
	return &models.Notification{ID: "n-" + input.RecipientID, RecipientID: input.RecipientID, Type: input.Type}, nil
}

func (f *fakeNotifier) Publish(_ context.Context, notifications ...*models.Notification) {
	f.published += len(notifications)
}
