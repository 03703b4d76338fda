package businessflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/app/dto"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/repository"
	"github.com/rapportlabs/kizuna/utils"
	"gorm.io/gorm"
)

// eventDedupKey computes the identity of a social event for duplicate
// detection. Events carrying an event URL are identified by
// (contact, platform, url); events without one fall back to
// (contact, platform, event type, event instant). The two key spaces are
// prefixed so a URL can never collide with a fallback tuple
func eventDedupKey(contactID uuid.UUID, platform string, eventURL *string, eventType string, eventTime time.Time) string {
	if eventURL != nil && *eventURL != "" {
		return fmt.Sprintf("url|%s|%s|%s", contactID, platform, *eventURL)
	}
	return fmt.Sprintf("ts|%s|%s|%s|%d", contactID, platform, eventType, eventTime.UTC().Unix())
}

// PartitionEvents splits an incoming batch into events to insert and a
// duplicate count, judged against the already stored events. Duplicates
// inside the batch itself are also collapsed; the first occurrence wins
func PartitionEvents(existing []*models.SocialEvent, incoming []*models.SocialEvent) (fresh []*models.SocialEvent, duplicates int) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, e := range existing {
		seen[eventDedupKey(e.ContactID, e.Platform, e.EventURL, e.EventType, e.EventTime)] = struct{}{}
	}

	fresh = make([]*models.SocialEvent, 0, len(incoming))
	for _, e := range incoming {
		key := eventDedupKey(e.ContactID, e.Platform, e.EventURL, e.EventType, e.EventTime)
		if _, dup := seen[key]; dup {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, e)
	}
	return fresh, duplicates
}

// SocialFlow defines operations for linked profiles and the activity feed
type SocialFlow interface {
	ListProfiles(ctx context.Context, contactID uuid.UUID) (*dto.ListSocialProfilesResponse, error)
	LinkProfile(ctx context.Context, contactID uuid.UUID, req *dto.CreateSocialProfileRequest, metadata *ClientMetadata) (*dto.SocialProfileDTO, error)
	UpdateProfile(ctx context.Context, contactID, profileID uuid.UUID, req *dto.UpdateSocialProfileRequest, metadata *ClientMetadata) (*dto.SocialProfileDTO, error)
	UnlinkProfile(ctx context.Context, contactID, profileID uuid.UUID, metadata *ClientMetadata) (*dto.DeleteSocialProfileResponse, error)
	ActivityFeed(ctx context.Context, contactID uuid.UUID) (*dto.SocialFeedResponse, error)
	IngestEvents(ctx context.Context, contactID uuid.UUID, req *dto.IngestSocialEventsRequest, metadata *ClientMetadata) (*dto.IngestSocialEventsResponse, error)
	MarkEventRead(ctx context.Context, contactID, eventID uuid.UUID, metadata *ClientMetadata) (*dto.MarkEventReadResponse, error)
}

type SocialFlowImpl struct {
	profileRepo repository.SocialProfileRepository
	eventRepo   repository.SocialEventRepository
	db          *gorm.DB
}

func NewSocialFlow(
	profileRepo repository.SocialProfileRepository,
	eventRepo repository.SocialEventRepository,
	db *gorm.DB,
) SocialFlow {
	return &SocialFlowImpl{
		profileRepo: profileRepo,
		eventRepo:   eventRepo,
		db:          db,
	}
}

// ListProfiles returns all social profiles linked to a contact
func (f *SocialFlowImpl) ListProfiles(ctx context.Context, contactID uuid.UUID) (*dto.ListSocialProfilesResponse, error) {
	rows, err := f.profileRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, NewBusinessError("LIST_PROFILES_FAILED", "Failed to list social profiles", ErrStoreUnavailable)
	}

	items := make([]dto.SocialProfileDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToSocialProfileDTO(*r))
	}

	return &dto.ListSocialProfilesResponse{
		Message: "Social profiles retrieved successfully",
		Items:   items,
	}, nil
}

// LinkProfile attaches an external social account to a contact. Linking the
// same (platform, profile id) pair twice is rejected as a conflict
func (f *SocialFlowImpl) LinkProfile(ctx context.Context, contactID uuid.UUID, req *dto.CreateSocialProfileRequest, metadata *ClientMetadata) (*dto.SocialProfileDTO, error) {
	exists, err := f.profileRepo.Exists(ctx, models.SocialProfileFilter{
		ContactID: &contactID,
		Platform:  &req.Platform,
		ProfileID: &req.ProfileID,
	})
	if err != nil {
		return nil, NewBusinessError("LINK_PROFILE_FAILED", "Failed to check existing profiles", ErrStoreUnavailable)
	}
	if exists {
		return nil, NewBusinessError("PROFILE_ALREADY_LINKED", "This social profile is already linked to the contact", ErrProfileAlreadyLinked)
	}

	row := models.SocialProfile{
		ContactID:   contactID,
		Platform:    req.Platform,
		ProfileID:   req.ProfileID,
		ProfileURL:  req.ProfileURL,
		DisplayName: req.DisplayName,
		Handle:      req.Handle,
		AvatarURL:   req.AvatarURL,
		Bio:         req.Bio,
		IsVerified:  utils.ToPtr(false),
	}
	if req.Followers != nil {
		row.Followers = *req.Followers
	}

	if err := f.profileRepo.Save(ctx, &row); err != nil {
		// Losing the check-then-insert race trips the linkage unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewBusinessError("PROFILE_ALREADY_LINKED", "This social profile is already linked to the contact", ErrProfileAlreadyLinked)
		}
		return nil, NewBusinessError("LINK_PROFILE_FAILED", "Failed to link social profile", ErrStoreUnavailable)
	}

	out := ToSocialProfileDTO(row)
	return &out, nil
}

// UpdateProfile applies a partial update to a linked profile
func (f *SocialFlowImpl) UpdateProfile(ctx context.Context, contactID, profileID uuid.UUID, req *dto.UpdateSocialProfileRequest, metadata *ClientMetadata) (*dto.SocialProfileDTO, error) {
	if req.IsEmpty() {
		return nil, NewBusinessError("EMPTY_UPDATE", "Empty update payload", ErrEmptyUpdate)
	}

	row, err := f.profileRepo.ByUUIDAndContact(ctx, profileID, contactID)
	if err != nil {
		return nil, NewBusinessError("UPDATE_PROFILE_FAILED", "Failed to load social profile", ErrStoreUnavailable)
	}
	if row == nil {
		return nil, NewBusinessError("PROFILE_NOT_FOUND", "Social profile not found", ErrProfileNotFound)
	}

	if req.ProfileURL != nil {
		row.ProfileURL = *req.ProfileURL
	}
	if req.DisplayName != nil {
		row.DisplayName = *req.DisplayName
	}
	if req.Handle != nil {
		row.Handle = req.Handle
	}
	if req.AvatarURL != nil {
		row.AvatarURL = req.AvatarURL
	}
	if req.Bio != nil {
		row.Bio = req.Bio
	}
	if req.Followers != nil {
		row.Followers = *req.Followers
	}
	if req.IsVerified != nil {
		row.IsVerified = req.IsVerified
	}

	if err := f.profileRepo.Update(ctx, row); err != nil {
		return nil, NewBusinessError("UPDATE_PROFILE_FAILED", "Failed to update social profile", ErrStoreUnavailable)
	}

	out := ToSocialProfileDTO(*row)
	return &out, nil
}

// UnlinkProfile removes a linked social profile from a contact
func (f *SocialFlowImpl) UnlinkProfile(ctx context.Context, contactID, profileID uuid.UUID, metadata *ClientMetadata) (*dto.DeleteSocialProfileResponse, error) {
	deleted, err := f.profileRepo.DeleteByUUIDAndContact(ctx, profileID, contactID)
	if err != nil {
		return nil, NewBusinessError("UNLINK_PROFILE_FAILED", "Failed to unlink social profile", ErrStoreUnavailable)
	}
	if !deleted {
		return nil, NewBusinessError("PROFILE_NOT_FOUND", "Social profile not found", ErrProfileNotFound)
	}

	return &dto.DeleteSocialProfileResponse{Message: "Social profile unlinked successfully"}, nil
}

// ActivityFeed returns a contact's social events, newest event first
func (f *SocialFlowImpl) ActivityFeed(ctx context.Context, contactID uuid.UUID) (*dto.SocialFeedResponse, error) {
	rows, err := f.eventRepo.FeedByContact(ctx, contactID, utils.SocialFeedPageSize)
	if err != nil {
		return nil, NewBusinessError("SOCIAL_FEED_FAILED", "Failed to load activity feed", ErrStoreUnavailable)
	}

	items := make([]dto.SocialEventDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToSocialEventDTO(*r))
	}

	return &dto.SocialFeedResponse{
		Message: "Activity feed retrieved successfully",
		Items:   items,
	}, nil
}

func (f *SocialFlowImpl) parseIngestItem(contactID uuid.UUID, item *dto.IngestSocialEventItem) (*models.SocialEvent, error) {
	if item.Platform == "" {
		return nil, ErrPlatformRequired
	}
	accountID, err := utils.ParseUUID(item.SocialAccountID)
	if err != nil {
		return nil, err
	}
	eventTime, err := time.Parse(time.RFC3339, item.EventTime)
	if err != nil {
		return nil, err
	}
	eventURL := item.EventURL
	if eventURL != nil && *eventURL == "" {
		eventURL = nil
	}
	return &models.SocialEvent{
		ContactID:       contactID,
		SocialAccountID: accountID,
		Platform:        item.Platform,
		EventType:       item.EventType,
		Title:           item.Title,
		Content:         item.Content,
		EventURL:        eventURL,
		EventTime:       eventTime.UTC(),
		IsRead:          utils.ToPtr(false),
	}, nil
}

// IngestEvents stores a batch of external activity events for a contact.
// The batch is partitioned against the events already stored for the
// contact; new events are inserted in a single transaction and duplicates
// are counted but silently dropped, so a sync job may replay safely
func (f *SocialFlowImpl) IngestEvents(ctx context.Context, contactID uuid.UUID, req *dto.IngestSocialEventsRequest, metadata *ClientMetadata) (*dto.IngestSocialEventsResponse, error) {
	incoming := make([]*models.SocialEvent, 0, len(req.Events))
	for i := range req.Events {
		row, err := f.parseIngestItem(contactID, &req.Events[i])
		if err != nil {
			return nil, NewBusinessError("INVALID_EVENT", "Social event validation failed", err)
		}
		incoming = append(incoming, row)
	}

	var inserted, duplicates int
	err := repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		existing, err := f.eventRepo.ByFilter(txCtx, models.SocialEventFilter{ContactID: &contactID}, "", 0, 0)
		if err != nil {
			return err
		}
		fresh, dups := PartitionEvents(existing, incoming)
		if len(fresh) > 0 {
			if err := f.eventRepo.SaveBatch(txCtx, fresh); err != nil {
				return err
			}
		}
		inserted, duplicates = len(fresh), dups
		return nil
	})
	if err != nil {
		return nil, NewBusinessError("INGEST_EVENTS_FAILED", "Failed to ingest social events", ErrStoreUnavailable)
	}

	return &dto.IngestSocialEventsResponse{
		Message:    "Social events ingested successfully",
		Inserted:   inserted,
		Duplicates: duplicates,
	}, nil
}

// MarkEventRead flags a feed event as read. Marking an already read event
// succeeds without change
func (f *SocialFlowImpl) MarkEventRead(ctx context.Context, contactID, eventID uuid.UUID, metadata *ClientMetadata) (*dto.MarkEventReadResponse, error) {
	row, err := f.eventRepo.ByUUIDAndContact(ctx, eventID, contactID)
	if err != nil {
		return nil, NewBusinessError("MARK_READ_FAILED", "Failed to load social event", ErrStoreUnavailable)
	}
	if row == nil {
		return nil, NewBusinessError("EVENT_NOT_FOUND", "Social event not found", ErrEventNotFound)
	}

	if !utils.IsTrue(row.IsRead) {
		if err := f.eventRepo.MarkRead(ctx, row.ID); err != nil {
			return nil, NewBusinessError("MARK_READ_FAILED", "Failed to mark social event read", ErrStoreUnavailable)
		}
	}

	return &dto.MarkEventReadResponse{Message: "Social event marked read"}, nil
}
