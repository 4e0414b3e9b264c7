package workflow

import (
	"testing"

	"agora/models"
	"agora/models/deal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// approvedDeal sets up a deal that has gone through approval
func approvedDeal(t *testing.T, db *gorm.DB, initiator, recipient models.User) *deal.Deal {
	t.Helper()
	d := proposeBetween(t, db, initiator, recipient)
	setStatus(t, db, d.ID, deal.StatusApproved)
	d.Status = deal.StatusApproved
	return d
}

func reputationOf(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()
	var u models.User
	require.NoError(t, db.First(&u, userID).Error)
	return u.Reputation
}

func TestSubmitReviewRequiresApprovedDeal(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	d := proposeBetween(t, db, alice, bob)

	for _, s := range []deal.Status{
		deal.StatusPending, deal.StatusNegotiating,
		deal.StatusRejected, deal.StatusCancelled,
	} {
		setStatus(t, db, d.ID, s)
		_, err := SubmitReview(db, asUser(alice), SubmitReviewInput{
			DealID: d.ID, RevieweeID: bob.ID, Rating: 5,
		})
		assert.Equalf(t, KindState, KindOf(err), "status %s", s)
	}
	assert.Zero(t, reputationOf(t, db, bob.ID))
}

func TestSubmitReviewRatingBounds(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	d := approvedDeal(t, db, alice, bob)

	for _, rating := range []int{0, -1, 6} {
		_, err := SubmitReview(db, asUser(alice), SubmitReviewInput{
			DealID: d.ID, RevieweeID: bob.ID, Rating: rating,
		})
		assert.Equalf(t, KindValidation, KindOf(err), "rating %d", rating)
	}
}

func TestSubmitReviewStanding(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	mallory := createUser(t, db, "mallory", models.RoleUser)
	d := approvedDeal(t, db, alice, bob)

	_, err := SubmitReview(db, asUser(mallory), SubmitReviewInput{
		DealID: d.ID, RevieweeID: bob.ID, Rating: 1,
	})
	assert.Equal(t, KindAuthorization, KindOf(err))

	// The reviewee must be the other party, not the reviewer or an outsider.
	_, err = SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d.ID, RevieweeID: alice.ID, Rating: 5,
	})
	assert.Equal(t, KindValidation, KindOf(err))
	_, err = SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d.ID, RevieweeID: mallory.ID, Rating: 5,
	})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSubmitReviewAccumulatesReputation(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	carol := createUser(t, db, "carol", models.RoleUser)

	d1 := approvedDeal(t, db, alice, bob)
	d2 := approvedDeal(t, db, carol, bob)

	_, err := SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d1.ID, RevieweeID: bob.ID, Rating: 5, ReviewText: "great",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, reputationOf(t, db, bob.ID))

	_, err = SubmitReview(db, asUser(carol), SubmitReviewInput{
		DealID: d2.ID, RevieweeID: bob.ID, Rating: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, reputationOf(t, db, bob.ID))

	var note models.Notification
	require.NoError(t, db.Where("recipient_id = ? AND type = ?", bob.ID, models.NotifyReviewReceived).First(&note).Error)
}

func TestSubmitReviewDuplicate(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	d := approvedDeal(t, db, alice, bob)

	_, err := SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d.ID, RevieweeID: bob.ID, Rating: 4,
	})
	require.NoError(t, err)

	_, err = SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d.ID, RevieweeID: bob.ID, Rating: 2,
	})
	assert.Equal(t, KindDuplicate, KindOf(err))
	assert.Equal(t, 4, reputationOf(t, db, bob.ID), "the duplicate must not change reputation")

	// Each party gets their own slot on the same deal.
	_, err = SubmitReview(db, asUser(bob), SubmitReviewInput{
		DealID: d.ID, RevieweeID: alice.ID, Rating: 5,
	})
	require.NoError(t, err)
}

func TestFlagReview(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	mallory := createUser(t, db, "mallory", models.RoleUser)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	d := approvedDeal(t, db, alice, bob)

	review, err := SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d.ID, RevieweeID: bob.ID, Rating: 1, ReviewText: "scammer",
	})
	require.NoError(t, err)

	assessment, err := FlagReview(db, asUser(bob), review.ID, "insulting and false")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, assessment.Status)

	_, err = FlagReview(db, asUser(bob), review.ID, "flagging again")
	assert.Equal(t, KindDuplicate, KindOf(err))

	_, err = FlagReview(db, asUser(mallory), review.ID, "drive-by flag")
	assert.Equal(t, KindAuthorization, KindOf(err))

	// Moderators may flag on their own initiative.
	_, err = FlagReview(db, asUser(admin), review.ID, "violates content policy")
	require.NoError(t, err)

	_, err = FlagReview(db, asUser(bob), 9999, "no such review")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestResolveAssessmentApproveRetractsReview(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	d := approvedDeal(t, db, alice, bob)

	review, err := SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d.ID, RevieweeID: bob.ID, Rating: 1,
	})
	require.NoError(t, err)
	require.Equal(t, 1, reputationOf(t, db, bob.ID))

	assessment, err := FlagReview(db, asUser(bob), review.ID, "retaliation review")
	require.NoError(t, err)

	resolved, err := ResolveAssessment(db, asUser(admin), assessment.ID, true, "agreed, no basis for the rating")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, resolved.Status)

	var updated deal.DealReview
	require.NoError(t, db.First(&updated, review.ID).Error)
	assert.True(t, updated.Retracted)
	assert.Equal(t, 0, reputationOf(t, db, bob.ID), "retracted reviews stop counting")

	var note models.Notification
	require.NoError(t, db.Where("recipient_id = ? AND type = ?", bob.ID, models.NotifyAssessmentResolved).First(&note).Error)
}

func TestResolveAssessmentRejectKeepsReview(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	d := approvedDeal(t, db, alice, bob)

	review, err := SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d.ID, RevieweeID: bob.ID, Rating: 2,
	})
	require.NoError(t, err)
	assessment, err := FlagReview(db, asUser(bob), review.ID, "I disagree")
	require.NoError(t, err)

	resolved, err := ResolveAssessment(db, asUser(admin), assessment.ID, false, "review is within the rules")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, resolved.Status)

	var updated deal.DealReview
	require.NoError(t, db.First(&updated, review.ID).Error)
	assert.False(t, updated.Retracted)
	assert.Equal(t, 2, reputationOf(t, db, bob.ID))
}

func TestResolveAssessmentRetractionPolicyOff(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	d := approvedDeal(t, db, alice, bob)

	AssessmentRetractsReview = false
	defer func() { AssessmentRetractsReview = true }()

	review, err := SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d.ID, RevieweeID: bob.ID, Rating: 1,
	})
	require.NoError(t, err)
	assessment, err := FlagReview(db, asUser(bob), review.ID, "unfair")
	require.NoError(t, err)

	_, err = ResolveAssessment(db, asUser(admin), assessment.ID, true, "noted on the record only")
	require.NoError(t, err)

	var updated deal.DealReview
	require.NoError(t, db.First(&updated, review.ID).Error)
	assert.False(t, updated.Retracted)
	assert.Equal(t, 1, reputationOf(t, db, bob.ID))
}

func TestResolveAssessmentGuards(t *testing.T) {
	db := setupDB(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	d := approvedDeal(t, db, alice, bob)

	review, err := SubmitReview(db, asUser(alice), SubmitReviewInput{
		DealID: d.ID, RevieweeID: bob.ID, Rating: 1,
	})
	require.NoError(t, err)
	assessment, err := FlagReview(db, asUser(bob), review.ID, "unfair")
	require.NoError(t, err)

	_, err = ResolveAssessment(db, asUser(bob), assessment.ID, true, "")
	assert.Equal(t, KindAuthorization, KindOf(err))

	_, err = ResolveAssessment(db, asUser(admin), 9999, true, "")
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = ResolveAssessment(db, asUser(admin), assessment.ID, false, "fine")
	require.NoError(t, err)

	// A second resolution finds the assessment already closed.
	_, err = ResolveAssessment(db, asUser(admin), assessment.ID, true, "changed my mind")
	assert.Equal(t, KindState, KindOf(err))

	var updated deal.ReviewAssessment
	require.NoError(t, db.First(&updated, assessment.ID).Error)
	assert.Equal(t, models.RequestStatusRejected, updated.Status)
}
