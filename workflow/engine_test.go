package workflow

import (
	"fmt"
	"strings"
	"testing"

	"agora/models"
	"agora/models/deal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&deal.Deal{},
		&deal.DealResponse{},
		&deal.DealReview{},
		&deal.ReviewAssessment{},
	)
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func asUser(u models.User) Session {
	return Session{UserID: u.ID, Role: u.Role}
}

func proposeBetween(t *testing.T, db *gorm.DB, initiator, recipient models.User) *deal.Deal {
	t.Helper()
	d, err := ProposeDeal(db, asUser(initiator), ProposeDealInput{
		RecipientID: recipient.ID,
		Title:       "Logo design",
		Description: "Design a logo for my storefront",
	})
	require.NoError(t, err)
	return d
}

func setStatus(t *testing.T, db *gorm.DB, dealID uint, s deal.Status) {
	t.Helper()
	require.NoError(t, db.Model(&deal.Deal{}).Where("id = ?", dealID).Update("status", s).Error)
}

func currentStatus(t *testing.T, db *gorm.DB, dealID uint) deal.Status {
	t.Helper()
	var d deal.Deal
	require.NoError(t, db.First(&d, dealID).Error)
	return d.Status
}

func boolPtr(b bool) *bool { return &b }

func TestProposeDealCreatesPendingAndNotifies(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)

	d, err := ProposeDeal(db, asUser(alice), ProposeDealInput{
		RecipientID: bob.ID,
		Title:       "Website build",
		Description: "Five page site with contact form",
		DealType:    deal.TypeHireAgent,
		Images:      []string{"a.png", "b.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, deal.StatusPending, d.Status)
	assert.Equal(t, alice.ID, d.InitiatorID)
	assert.Equal(t, []string{"a.png", "b.png"}, deal.DecodeImages(d.Images))

	var note models.Notification
	require.NoError(t, db.Where("recipient_id = ? AND type = ?", bob.ID, models.NotifyDealProposed).First(&note).Error)
	assert.Equal(t, d.ID, note.ReferenceID)
	assert.Equal(t, alice.ID, note.ActorID)
}

func TestProposeDealValidation(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)

	cases := []struct {
		name string
		in   ProposeDealInput
	}{
		{"empty title", ProposeDealInput{RecipientID: bob.ID, Description: "d"}},
		{"empty description", ProposeDealInput{RecipientID: bob.ID, Title: "t"}},
		{"self deal", ProposeDealInput{RecipientID: alice.ID, Title: "t", Description: "d"}},
		{"unknown recipient", ProposeDealInput{RecipientID: 9999, Title: "t", Description: "d"}},
		{"unknown type", ProposeDealInput{RecipientID: bob.ID, Title: "t", Description: "d", DealType: "BARTER"}},
		{"too many images", ProposeDealInput{RecipientID: bob.ID, Title: "t", Description: "d",
			Images: []string{"1", "2", "3", "4", "5", "6"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ProposeDeal(db, asUser(alice), tc.in)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}

	var count int64
	db.Model(&deal.Deal{}).Count(&count)
	assert.Zero(t, count, "invalid proposals must not persist")
}

func TestProposeDealBannedRecipient(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", bob.ID).Update("is_banned", true).Error)

	_, err := ProposeDeal(db, asUser(alice), ProposeDealInput{
		RecipientID: bob.ID, Title: "t", Description: "d",
	})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRespondMovesPendingToNegotiating(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	d := proposeBetween(t, db, alice, bob)

	resp, err := Respond(db, asUser(bob), RespondInput{
		DealID:       d.ID,
		Content:      "Can you do it for 200?",
		ResponseType: deal.ResponseRecipient,
	})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, resp.UserID)
	assert.Equal(t, deal.StatusNegotiating, currentStatus(t, db, d.ID))

	var note models.Notification
	require.NoError(t, db.Where("recipient_id = ? AND type = ?", alice.ID, models.NotifyDealResponse).First(&note).Error)
	assert.Equal(t, d.ID, note.ReferenceID)
}

func TestRespondInitiatorBlockedWhilePending(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	d := proposeBetween(t, db, alice, bob)

	_, err := Respond(db, asUser(alice), RespondInput{
		DealID:       d.ID,
		Content:      "Bumping my own proposal",
		ResponseType: deal.ResponseRecipient,
	})
	assert.Equal(t, KindAuthorization, KindOf(err))

	// Once the recipient has answered, the initiator may counter.
	_, err = Respond(db, asUser(bob), RespondInput{
		DealID: d.ID, Content: "ok", ResponseType: deal.ResponseRecipient,
	})
	require.NoError(t, err)
	_, err = Respond(db, asUser(alice), RespondInput{
		DealID: d.ID, Content: "Deal, 200 it is", ResponseType: deal.ResponseRecipient,
	})
	require.NoError(t, err)
	assert.Equal(t, deal.StatusNegotiating, currentStatus(t, db, d.ID))
}

func TestRespondStrangerRejectedInEveryState(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	mallory := createUser(t, db, "mallory", models.RoleUser)
	d := proposeBetween(t, db, alice, bob)

	statuses := []deal.Status{
		deal.StatusPending, deal.StatusNegotiating,
		deal.StatusApproved, deal.StatusRejected, deal.StatusCancelled,
	}
	for _, s := range statuses {
		setStatus(t, db, d.ID, s)
		_, err := Respond(db, asUser(mallory), RespondInput{
			DealID: d.ID, Content: "let me in", ResponseType: deal.ResponseRecipient,
		})
		assert.Equalf(t, KindAuthorization, KindOf(err), "status %s", s)
	}
}

func TestRespondEmptyContent(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	d := proposeBetween(t, db, alice, bob)

	_, err := Respond(db, asUser(bob), RespondInput{
		DealID: d.ID, Content: "   ", ResponseType: deal.ResponseRecipient,
	})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestRespondTerminalDealIsFrozen(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	d := proposeBetween(t, db, alice, bob)

	for _, s := range []deal.Status{deal.StatusApproved, deal.StatusRejected, deal.StatusCancelled} {
		setStatus(t, db, d.ID, s)

		_, err := Respond(db, asUser(bob), RespondInput{
			DealID: d.ID, Content: "anything", ResponseType: deal.ResponseRecipient,
		})
		assert.Equalf(t, KindState, KindOf(err), "recipient response on %s", s)

		_, err = Respond(db, asUser(admin), RespondInput{
			DealID: d.ID, ResponseType: deal.ResponseAdminApproval, IsApproved: boolPtr(true),
		})
		assert.Equalf(t, KindState, KindOf(err), "admin approval on %s", s)

		assert.Equal(t, s, currentStatus(t, db, d.ID))
	}
}

func TestAdminApprovalConcludesDeal(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "admin", models.RoleAdmin)

	t.Run("approve", func(t *testing.T) {
		d := proposeBetween(t, db, alice, bob)
		_, err := Respond(db, asUser(admin), RespondInput{
			DealID: d.ID, Content: "looks legitimate",
			ResponseType: deal.ResponseAdminApproval, IsApproved: boolPtr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, deal.StatusApproved, currentStatus(t, db, d.ID))

		var notes []models.Notification
		require.NoError(t, db.Where("reference_id = ? AND type = ?", d.ID, models.NotifyDealApproved).Find(&notes).Error)
		assert.Len(t, notes, 2, "both parties hear about the conclusion")
	})

	t.Run("reject", func(t *testing.T) {
		d := proposeBetween(t, db, alice, bob)
		_, err := Respond(db, asUser(admin), RespondInput{
			DealID:       d.ID,
			ResponseType: deal.ResponseAdminApproval, IsApproved: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, deal.StatusRejected, currentStatus(t, db, d.ID))
	})

	t.Run("undecided note leaves status alone", func(t *testing.T) {
		d := proposeBetween(t, db, alice, bob)
		_, err := Respond(db, asUser(admin), RespondInput{
			DealID: d.ID, Content: "need seller verification first",
			ResponseType: deal.ResponseAdminApproval,
		})
		require.NoError(t, err)
		assert.Equal(t, deal.StatusPending, currentStatus(t, db, d.ID))
	})

	t.Run("non-admin cannot approve", func(t *testing.T) {
		d := proposeBetween(t, db, alice, bob)
		_, err := Respond(db, asUser(bob), RespondInput{
			DealID: d.ID, ResponseType: deal.ResponseAdminApproval, IsApproved: boolPtr(true),
		})
		assert.Equal(t, KindAuthorization, KindOf(err))
		assert.Equal(t, deal.StatusPending, currentStatus(t, db, d.ID))
	})
}

func TestSecondAdminDecisionLoses(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	admin1 := createUser(t, db, "admin1", models.RoleAdmin)
	admin2 := createUser(t, db, "admin2", models.RoleAdmin)
	d := proposeBetween(t, db, alice, bob)

	_, err := Respond(db, asUser(admin1), RespondInput{
		DealID: d.ID, ResponseType: deal.ResponseAdminApproval, IsApproved: boolPtr(true),
	})
	require.NoError(t, err)

	_, err = Respond(db, asUser(admin2), RespondInput{
		DealID: d.ID, ResponseType: deal.ResponseAdminApproval, IsApproved: boolPtr(false),
	})
	assert.Equal(t, KindState, KindOf(err))
	assert.Equal(t, deal.StatusApproved, currentStatus(t, db, d.ID), "first decision stands")
}

func TestTransitionGuardAdmitsOneWinner(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	d := proposeBetween(t, db, alice, bob)

	// Two actors both observed PENDING; only the first guarded update lands.
	ok, err := transition(db, d.ID, deal.StatusPending, deal.StatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = transition(db, d.ID, deal.StatusPending, deal.StatusRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, deal.StatusApproved, currentStatus(t, db, d.ID))
}

func TestTargetStatus(t *testing.T) {
	cases := []struct {
		name    string
		current deal.Status
		in      RespondInput
		want    deal.Status
	}{
		{"recipient on pending", deal.StatusPending,
			RespondInput{ResponseType: deal.ResponseRecipient}, deal.StatusNegotiating},
		{"recipient on negotiating", deal.StatusNegotiating,
			RespondInput{ResponseType: deal.ResponseRecipient}, deal.StatusNegotiating},
		{"approval on pending", deal.StatusPending,
			RespondInput{ResponseType: deal.ResponseAdminApproval, IsApproved: boolPtr(true)}, deal.StatusApproved},
		{"rejection on negotiating", deal.StatusNegotiating,
			RespondInput{ResponseType: deal.ResponseAdminApproval, IsApproved: boolPtr(false)}, deal.StatusRejected},
		{"undecided approval", deal.StatusNegotiating,
			RespondInput{ResponseType: deal.ResponseAdminApproval}, deal.StatusNegotiating},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, targetStatus(tc.current, tc.in))
		})
	}
}

func TestCancelDeal(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)

	t.Run("initiator cancels pending", func(t *testing.T) {
		d := proposeBetween(t, db, alice, bob)
		got, err := CancelDeal(db, asUser(alice), d.ID)
		require.NoError(t, err)
		assert.Equal(t, deal.StatusCancelled, got.Status)
		assert.Equal(t, deal.StatusCancelled, currentStatus(t, db, d.ID))

		var note models.Notification
		require.NoError(t, db.Where("recipient_id = ? AND type = ? AND reference_id = ?",
			bob.ID, models.NotifyDealCancelled, d.ID).First(&note).Error)
	})

	t.Run("recipient cannot cancel", func(t *testing.T) {
		d := proposeBetween(t, db, alice, bob)
		_, err := CancelDeal(db, asUser(bob), d.ID)
		assert.Equal(t, KindAuthorization, KindOf(err))
	})

	t.Run("terminal deal cannot be cancelled", func(t *testing.T) {
		d := proposeBetween(t, db, alice, bob)
		setStatus(t, db, d.ID, deal.StatusApproved)
		_, err := CancelDeal(db, asUser(alice), d.ID)
		assert.Equal(t, KindState, KindOf(err))
		assert.Equal(t, deal.StatusApproved, currentStatus(t, db, d.ID))
	})

	t.Run("respond after cancellation fails", func(t *testing.T) {
		d := proposeBetween(t, db, alice, bob)
		_, err := CancelDeal(db, asUser(alice), d.ID)
		require.NoError(t, err)
		_, err = Respond(db, asUser(bob), RespondInput{
			DealID: d.ID, Content: "wait, I accept", ResponseType: deal.ResponseRecipient,
		})
		assert.Equal(t, KindState, KindOf(err))
	})
}

func TestFullNegotiationFlow(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "admin", models.RoleAdmin)

	d := proposeBetween(t, db, alice, bob)

	_, err := Respond(db, asUser(bob), RespondInput{
		DealID: d.ID, Content: "300 and you have a deal", ResponseType: deal.ResponseRecipient,
	})
	require.NoError(t, err)
	_, err = Respond(db, asUser(alice), RespondInput{
		DealID: d.ID, Content: "agreed", ResponseType: deal.ResponseRecipient,
	})
	require.NoError(t, err)

	_, err = Respond(db, asUser(admin), RespondInput{
		DealID: d.ID, ResponseType: deal.ResponseAdminApproval, IsApproved: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, deal.StatusApproved, currentStatus(t, db, d.ID))

	var responses []deal.DealResponse
	require.NoError(t, db.Where("deal_id = ?", d.ID).Order("id").Find(&responses).Error)
	require.Len(t, responses, 3, "the negotiation log keeps every entry")
	assert.Equal(t, deal.ResponseAdminApproval, responses[2].ResponseType)

	_, err = SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d.ID, RevieweeID: bob.ID, Rating: 5, ReviewText: "fast worker",
	})
	require.NoError(t, err)
	_, err = SubmitReview(db, asUser(bob), SubmitReviewInput{
		DealID: d.ID, RevieweeID: alice.ID, Rating: 4,
	})
	require.NoError(t, err)

	_, err = SubmitReview(db, asUser(bob), SubmitReviewInput{
		DealID: d.ID, RevieweeID: alice.ID, Rating: 1,
	})
	assert.Equal(t, KindDuplicate, KindOf(err))

	var bobRow models.User
	require.NoError(t, db.First(&bobRow, bob.ID).Error)
	assert.Equal(t, 5, bobRow.Reputation)
	var aliceRow models.User
	require.NoError(t, db.First(&aliceRow, alice.ID).Error)
	assert.Equal(t, 4, aliceRow.Reputation)
}
