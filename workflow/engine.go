package workflow

import (
	"errors"
	"fmt"
	"strings"

	"agora/models"
	"agora/models/deal"

	"gorm.io/gorm"
)

// errLostRace aborts a transaction whose guarded status update matched no row
var errLostRace = errors.New("lost deal status race")

// ProposeDealInput carries the initiator's proposal
type ProposeDealInput struct {
	RecipientID uint
	Title       string
	Description string
	Images      []string
	DealType    string
}

// RespondInput carries one entry for a deal's negotiation log
type RespondInput struct {
	DealID       uint
	Content      string
	Images       []string
	ResponseType deal.ResponseType
	IsApproved   *bool
}

// ProposeDeal creates a new deal in PENDING state and notifies the recipient.
func ProposeDeal(db *gorm.DB, s Session, in ProposeDealInput) (*deal.Deal, error) {
	db, cancel := store(db)
	defer cancel()

	if strings.TrimSpace(in.Title) == "" {
		return nil, validationf("deal title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, validationf("deal description is required")
	}
	if s.UserID == in.RecipientID {
		return nil, validationf("you cannot propose a deal to yourself")
	}
	if len(in.Images) > deal.MaxImagesPerDeal {
		return nil, validationf("a deal may carry at most %d images", deal.MaxImagesPerDeal)
	}
	if in.DealType == "" {
		in.DealType = deal.TypeOther
	}
	if !deal.ValidType(in.DealType) {
		return nil, validationf("unknown deal type %q", in.DealType)
	}

	var recipient models.User
	if err := db.Where("id = ? AND is_deleted = false", in.RecipientID).First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationf("recipient not found")
		}
		return nil, storeError("failed to look up recipient", err)
	}
	if recipient.IsBanned {
		return nil, validationf("recipient account is banned")
	}

	d := deal.Deal{
		InitiatorID: s.UserID,
		RecipientID: in.RecipientID,
		Title:       in.Title,
		Description: in.Description,
		Images:      deal.EncodeImages(in.Images),
		Status:      deal.StatusPending,
		DealType:    in.DealType,
	}

	var notes []models.Notification
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&d).Error; err != nil {
			return err
		}
		n := models.Notification{
			RecipientID: d.RecipientID,
			ActorID:     s.UserID,
			Type:        models.NotifyDealProposed,
			Title:       "New deal proposal",
			Body:        d.Title,
			ReferenceID: d.ID,
		}
		if err := tx.Create(&n).Error; err != nil {
			return err
		}
		notes = append(notes, n)
		return nil
	})
	if err != nil {
		return nil, storeError("failed to create deal", err)
	}

	dispatch(notes)
	return &d, nil
}

// Respond appends one entry to a deal's negotiation log and moves the status
// accordingly. An admin approval with a decided flag concludes the deal; any
// other response moves a PENDING deal to NEGOTIATING. The status write is
// guarded on the status the caller observed, so a lost race is retried once
// against the fresh status before failing.
func Respond(db *gorm.DB, s Session, in RespondInput) (*deal.DealResponse, error) {
	db, cancel := store(db)
	defer cancel()

	if len(in.Images) > deal.MaxImagesPerDeal {
		return nil, validationf("a response may carry at most %d images", deal.MaxImagesPerDeal)
	}

	d, err := loadDeal(db, in.DealID)
	if err != nil {
		return nil, err
	}

	isInitiator := s.UserID == d.InitiatorID
	isRecipient := s.UserID == d.RecipientID

	switch in.ResponseType {
	case deal.ResponseAdminApproval:
		if !s.IsAdmin() {
			return nil, authorizationf("only an administrator may record an approval decision")
		}
	case deal.ResponseRecipient:
		if !isInitiator && !isRecipient {
			return nil, authorizationf("you are not a party to this deal")
		}
		if strings.TrimSpace(in.Content) == "" {
			return nil, validationf("response content is required")
		}
	default:
		return nil, validationf("unknown response type %q", in.ResponseType)
	}

	if d.Status.IsTerminal() {
		return nil, statef("deal is already %s", strings.ToLower(string(d.Status)))
	}

	// The initiator's opening message is the proposal itself; while the deal
	// is PENDING only the recipient may answer.
	if in.ResponseType == deal.ResponseRecipient && d.Status == deal.StatusPending && isInitiator {
		return nil, authorizationf("waiting for the recipient's first response")
	}

	resp, notes, err := appendResponse(db, s, d, in, d.Status)
	if errors.Is(err, errLostRace) {
		// Re-read and reapply once if the business condition still holds.
		d, err = loadDeal(db, in.DealID)
		if err != nil {
			return nil, err
		}
		if d.Status.IsTerminal() {
			return nil, statef("deal is already %s", strings.ToLower(string(d.Status)))
		}
		resp, notes, err = appendResponse(db, s, d, in, d.Status)
		if errors.Is(err, errLostRace) {
			return nil, storeError("deal status changed concurrently, please retry", err)
		}
	}
	if err != nil {
		return nil, err
	}

	dispatch(notes)
	return resp, nil
}

// CancelDeal withdraws a non-terminal deal. Initiator only.
func CancelDeal(db *gorm.DB, s Session, dealID uint) (*deal.Deal, error) {
	db, cancel := store(db)
	defer cancel()

	d, err := loadDeal(db, dealID)
	if err != nil {
		return nil, err
	}
	if s.UserID != d.InitiatorID {
		return nil, authorizationf("only the initiator may cancel a deal")
	}

	for attempt := 0; attempt < 2; attempt++ {
		if d.Status.IsTerminal() {
			return nil, statef("deal is already %s", strings.ToLower(string(d.Status)))
		}

		var notes []models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			ok, err := transition(tx, d.ID, d.Status, deal.StatusCancelled)
			if err != nil {
				return err
			}
			if !ok {
				return errLostRace
			}
			n := models.Notification{
				RecipientID: d.RecipientID,
				ActorID:     s.UserID,
				Type:        models.NotifyDealCancelled,
				Title:       "Deal cancelled",
				Body:        d.Title,
				ReferenceID: d.ID,
			}
			if err := tx.Create(&n).Error; err != nil {
				return err
			}
			notes = append(notes, n)
			return nil
		})
		if errors.Is(err, errLostRace) {
			d, err = loadDeal(db, dealID)
			if err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, storeError("failed to cancel deal", err)
		}

		d.Status = deal.StatusCancelled
		dispatch(notes)
		return d, nil
	}

	return nil, storeError("deal status changed concurrently, please retry", nil)
}

// appendResponse writes the response row and the guarded status transition in
// one transaction. observed is the status the caller based its decision on.
func appendResponse(db *gorm.DB, s Session, d *deal.Deal, in RespondInput, observed deal.Status) (*deal.DealResponse, []models.Notification, error) {
	target := targetStatus(observed, in)

	resp := deal.DealResponse{
		DealID:       d.ID,
		UserID:       s.UserID,
		Content:      in.Content,
		Images:       deal.EncodeImages(in.Images),
		ResponseType: in.ResponseType,
		IsApproved:   in.IsApproved,
	}

	var notes []models.Notification
	err := db.Transaction(func(tx *gorm.DB) error {
		if target != observed {
			ok, err := transition(tx, d.ID, observed, target)
			if err != nil {
				return err
			}
			if !ok {
				return errLostRace
			}
		}
		if err := tx.Create(&resp).Error; err != nil {
			return err
		}
		for _, n := range responseNotifications(s, d, target) {
			if err := tx.Create(&n).Error; err != nil {
				return err
			}
			notes = append(notes, n)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errLostRace) {
			return nil, nil, errLostRace
		}
		return nil, nil, storeError("failed to record response", err)
	}

	return &resp, notes, nil
}

// targetStatus resolves the status a response moves the deal to
func targetStatus(current deal.Status, in RespondInput) deal.Status {
	if in.ResponseType == deal.ResponseAdminApproval {
		if in.IsApproved == nil {
			return current // undecided admin note leaves the status alone
		}
		if *in.IsApproved {
			return deal.StatusApproved
		}
		return deal.StatusRejected
	}
	if current == deal.StatusPending {
		return deal.StatusNegotiating
	}
	return current
}

// transition performs the optimistic status compare-and-swap. It reports
// false when the guard missed, i.e. another actor moved the deal first.
func transition(tx *gorm.DB, dealID uint, from, to deal.Status) (bool, error) {
	res := tx.Model(&deal.Deal{}).
		Where("id = ? AND status = ?", dealID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// responseNotifications builds the rows a response emits
func responseNotifications(s Session, d *deal.Deal, target deal.Status) []models.Notification {
	switch target {
	case deal.StatusApproved, deal.StatusRejected:
		kind := models.NotifyDealApproved
		title := "Deal approved"
		if target == deal.StatusRejected {
			kind = models.NotifyDealRejected
			title = "Deal rejected"
		}
		return []models.Notification{
			{RecipientID: d.InitiatorID, ActorID: s.UserID, Type: kind, Title: title, Body: d.Title, ReferenceID: d.ID},
			{RecipientID: d.RecipientID, ActorID: s.UserID, Type: kind, Title: title, Body: d.Title, ReferenceID: d.ID},
		}
	}

	// Plain negotiation message: tell the other party.
	other := d.RecipientID
	if s.UserID == d.RecipientID {
		other = d.InitiatorID
	}
	if s.UserID != d.InitiatorID && s.UserID != d.RecipientID {
		// Admin note with no decision: both parties hear about it.
		return []models.Notification{
			{RecipientID: d.InitiatorID, ActorID: s.UserID, Type: models.NotifyDealResponse, Title: "New response on your deal", Body: d.Title, ReferenceID: d.ID},
			{RecipientID: d.RecipientID, ActorID: s.UserID, Type: models.NotifyDealResponse, Title: "New response on your deal", Body: d.Title, ReferenceID: d.ID},
		}
	}
	return []models.Notification{
		{RecipientID: other, ActorID: s.UserID, Type: models.NotifyDealResponse, Title: "New response on your deal", Body: d.Title, ReferenceID: d.ID},
	}
}

// loadDeal fetches a live deal row
func loadDeal(db *gorm.DB, id uint) (*deal.Deal, error) {
	var d deal.Deal
	if err := db.Where("id = ? AND is_deleted = false", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationf("deal %d not found", id)
		}
		return nil, storeError(fmt.Sprintf("failed to load deal %d", id), err)
	}
	return &d, nil
}
