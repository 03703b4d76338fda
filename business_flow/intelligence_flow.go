package businessflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rapportlabs/kizuna/app/dto"
	"github.com/rapportlabs/kizuna/models"
	"github.com/rapportlabs/kizuna/repository"
	"github.com/rapportlabs/kizuna/utils"
	"github.com/redis/go-redis/v9"
)

const globalFeedCacheTTL = 60 * time.Second

// IntelligenceFlow defines operations for the account news feed
type IntelligenceFlow interface {
	AccountNews(ctx context.Context, accountID uuid.UUID) (*dto.NewsFeedResponse, error)
	GlobalFeed(ctx context.Context) (*dto.NewsFeedResponse, error)
	IngestAlert(ctx context.Context, accountID uuid.UUID, req *dto.CreateNewsAlertRequest, metadata *ClientMetadata) (*dto.NewsAlertDTO, error)
}

type IntelligenceFlowImpl struct {
	alertRepo   repository.NewsAlertRepository
	redisClient *redis.Client
}

func NewIntelligenceFlow(alertRepo repository.NewsAlertRepository, redisClient *redis.Client) IntelligenceFlow {
	return &IntelligenceFlowImpl{
		alertRepo:   alertRepo,
		redisClient: redisClient,
	}
}

// AccountNews returns all alerts for one account, most recent first
func (f *IntelligenceFlowImpl) AccountNews(ctx context.Context, accountID uuid.UUID) (*dto.NewsFeedResponse, error) {
	rows, err := f.alertRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, NewBusinessError("ACCOUNT_NEWS_FAILED", "Failed to load account news", ErrStoreUnavailable)
	}

	items := make([]dto.NewsAlertDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToNewsAlertDTO(*r))
	}

	return &dto.NewsFeedResponse{
		Message: "Account news retrieved successfully",
		Items:   items,
	}, nil
}

// GlobalFeed returns the most recent alerts across all accounts, capped at
// the global feed window. The feed is served from redis when a fresh copy
// exists; cache misses and redis failures fall through to the database
func (f *IntelligenceFlowImpl) GlobalFeed(ctx context.Context) (*dto.NewsFeedResponse, error) {
	if f.redisClient != nil {
		cached, err := f.redisClient.Get(ctx, utils.GlobalFeedCacheKey).Result()
		if err == nil {
			var items []dto.NewsAlertDTO
			if json.Unmarshal([]byte(cached), &items) == nil {
				return &dto.NewsFeedResponse{
					Message: "Global feed retrieved successfully",
					Items:   items,
				}, nil
			}
		}
	}

	rows, err := f.alertRepo.ListRecent(ctx, utils.GlobalFeedLimit)
	if err != nil {
		return nil, NewBusinessError("GLOBAL_FEED_FAILED", "Failed to load global feed", ErrStoreUnavailable)
	}

	items := make([]dto.NewsAlertDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToNewsAlertDTO(*r))
	}

	if f.redisClient != nil {
		if payload, err := json.Marshal(items); err == nil {
			f.redisClient.Set(ctx, utils.GlobalFeedCacheKey, payload, globalFeedCacheTTL)
		}
	}

	return &dto.NewsFeedResponse{
		Message: "Global feed retrieved successfully",
		Items:   items,
	}, nil
}

// IngestAlert stores one news alert for an account and drops the cached
// global feed so the next read sees it
func (f *IntelligenceFlowImpl) IngestAlert(ctx context.Context, accountID uuid.UUID, req *dto.CreateNewsAlertRequest, metadata *ClientMetadata) (*dto.NewsAlertDTO, error) {
	if req.SentimentScore != nil && (*req.SentimentScore < -1.0 || *req.SentimentScore > 1.0) {
		return nil, NewBusinessError("INVALID_ALERT", "News alert validation failed", ErrSentimentOutOfRange)
	}

	row := models.NewsAlert{
		AccountID:      accountID,
		Title:          req.Title,
		Summary:        req.Summary,
		SourceURL:      req.SourceURL,
		SourceName:     req.SourceName,
		SentimentScore: req.SentimentScore,
	}
	if req.PublishedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PublishedAt)
		if err != nil {
			return nil, NewBusinessError("INVALID_ALERT", "News alert validation failed", err)
		}
		row.PublishedAt = utils.ToPtr(parsed.UTC())
	}

	if err := f.alertRepo.Save(ctx, &row); err != nil {
		return nil, NewBusinessError("INGEST_ALERT_FAILED", "Failed to ingest news alert", ErrStoreUnavailable)
	}

	if f.redisClient != nil {
		f.redisClient.Del(ctx, utils.GlobalFeedCacheKey)
	}

	out := ToNewsAlertDTO(row)
	return &out, nil
}
