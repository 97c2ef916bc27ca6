package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"siso/internal/domain/entity"
	"siso/internal/domain/repository"
	"siso/internal/domain/service"
	"siso/internal/infrastructure/metrics"
	"siso/internal/infrastructure/ratelimit"
	"siso/pkg/errors"
	"siso/pkg/logger"
)

type UploadConfig struct {
	Bucket        string
	PublicURLBase string
	URLTTL        time.Duration
	// MaxBytes bounds the reported size of a recorded object. Zero disables
	// the check.
	MaxBytes int64
}

type UploadUseCase struct {
	store        service.ObjectStore
	uploadRepo   repository.UploadRepository
	issuanceRepo repository.IssuanceRepository
	deduper      service.Deduper
	limiter      RateLimiter
	notifier     FeedNotifier
	metrics      *metrics.Metrics
	cfg          UploadConfig
	clock        *keyClock
	now          func() time.Time
}

func NewUploadUseCase(
	store service.ObjectStore,
	uploadRepo repository.UploadRepository,
	issuanceRepo repository.IssuanceRepository,
	deduper service.Deduper,
	limiter RateLimiter,
	notifier FeedNotifier,
	m *metrics.Metrics,
	cfg UploadConfig,
) *UploadUseCase {
	return &UploadUseCase{
		store:        store,
		uploadRepo:   uploadRepo,
		issuanceRepo: issuanceRepo,
		deduper:      deduper,
		limiter:      limiter,
		notifier:     notifier,
		metrics:      m,
		cfg:          cfg,
		clock:        newKeyClock(),
		now:          time.Now,
	}
}

// IssueUploadCredential signs a PUT for one fresh storage key under the
// owner's namespace.
func (uc *UploadUseCase) IssueUploadCredential(ctx context.Context, originalFileName, contentType, ownerID string) (*entity.UploadCredential, error) {
	if ownerID == "" {
		return nil, errors.Unauthorized("Sign in to upload files", nil)
	}
	if uc.cfg.Bucket == "" || uc.cfg.PublicURLBase == "" {
		return nil, errors.Configuration("Upload storage is not configured")
	}
	if !entity.IsAllowedAudioType(contentType) {
		uc.countCredential("rejected")
		return nil, errors.Validation("Only MP3, WAV and OGG audio files can be uploaded")
	}

	if uc.limiter != nil {
		if ok, wait := uc.limiter.Allow(ownerID, ratelimit.ActionIssueCredential); !ok {
			uc.countCredential("rate_limited")
			return nil, errors.TooManyRequests(
				"Too many upload requests. Please wait before trying again.",
				int(math.Ceil(wait.Seconds())),
			)
		}
	}

	key := BuildStorageKey(ownerID, uc.clock.Next(), originalFileName)
	issuedAt := uc.now().UTC()

	writeURL, err := uc.store.SignWrite(ctx, key, contentType, uc.cfg.URLTTL)
	if err != nil {
		logger.Error("Failed to sign upload URL for %s: %v", key, err)
		uc.countCredential("error")
		return nil, errors.Issuer("Failed to generate upload URL", err)
	}

	credential := &entity.UploadCredential{
		StorageKey:  key,
		WriteURL:    writeURL,
		PublicURL:   PublicURL(uc.cfg.PublicURLBase, key),
		ContentType: contentType,
		ExpiresAt:   issuedAt.Add(uc.cfg.URLTTL),
	}

	if uc.issuanceRepo != nil {
		event := &entity.IssuanceEvent{
			StorageKey:  key,
			OwnerID:     ownerID,
			ContentType: contentType,
			FileName:    originalFileName,
			IssuedAt:    issuedAt,
			ExpiresAt:   credential.ExpiresAt,
		}
		if err := uc.issuanceRepo.Append(ctx, event); err != nil {
			logger.Warn("Failed to log issuance of %s: %v", key, err)
		}
	}

	uc.countCredential("success")
	return credential, nil
}

type RecordUploadInput struct {
	CallerID    string
	OwnerID     string
	Title       string
	FileURL     string
	StoragePath string
	FileName    string
	FileType    string
	FileSize    int64
	Checksum    string
	RequestID   string
}

// RecordUpload persists the pointer to an object that has already been
// written. Duplicate calls with the same request id inside the dedupe window
// return the first record.
func (uc *UploadUseCase) RecordUpload(ctx context.Context, input RecordUploadInput) (*entity.UploadRecord, error) {
	input.Title = strings.TrimSpace(input.Title)

	required := []struct{ name, value string }{
		{"owner_id", input.OwnerID},
		{"title", input.Title},
		{"file_url", input.FileURL},
		{"storage_path", input.StoragePath},
		{"file_name", input.FileName},
		{"file_type", input.FileType},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, errors.MissingField(f.name)
		}
	}

	if input.CallerID != input.OwnerID {
		return nil, errors.Forbidden("You can only record your own uploads", nil)
	}
	if !strings.HasPrefix(input.StoragePath, OwnerPrefix(input.OwnerID)) {
		return nil, errors.Validation("storage_path is outside the owner's namespace")
	}
	if uc.cfg.PublicURLBase != "" && input.FileURL != PublicURL(uc.cfg.PublicURLBase, input.StoragePath) {
		return nil, errors.Validation("file_url does not match storage_path")
	}
	if uc.cfg.MaxBytes > 0 && input.FileSize > uc.cfg.MaxBytes {
		return nil, errors.Validation(fmt.Sprintf("file_size exceeds the %d byte limit", uc.cfg.MaxBytes))
	}

	if err := uc.verifyObject(ctx, input); err != nil {
		uc.countRecord("integrity_failed")
		return nil, err
	}

	dedupeKey := ""
	if input.RequestID != "" && uc.deduper != nil {
		dedupeKey = input.OwnerID + ":" + input.RequestID
		first, err := uc.deduper.Claim(ctx, dedupeKey)
		switch {
		case err != nil:
			logger.Warn("Dedupe unavailable for request %s, recording anyway: %v", input.RequestID, err)
			dedupeKey = ""
		case !first:
			existing, err := uc.uploadRepo.GetByRequestID(ctx, input.OwnerID, input.RequestID)
			if err == nil && existing != nil {
				uc.countRecord("duplicate")
				return existing, nil
			}
			return nil, errors.Conflict("This upload is already being recorded")
		}
	}

	record := &entity.UploadRecord{
		ID:          uuid.New().String(),
		OwnerID:     input.OwnerID,
		Title:       input.Title,
		FileURL:     input.FileURL,
		StoragePath: input.StoragePath,
		FileName:    input.FileName,
		FileType:    input.FileType,
		FileSize:    input.FileSize,
		Checksum:    strings.ToLower(input.Checksum),
		RequestID:   input.RequestID,
		CreatedAt:   uc.now().UTC(),
	}

	if err := uc.uploadRepo.Create(ctx, record); err != nil {
		if dedupeKey != "" {
			if relErr := uc.deduper.Release(ctx, dedupeKey); relErr != nil {
				logger.Warn("Failed to release request %s: %v", input.RequestID, relErr)
			}
		}
		logger.LogUploadError(input.StoragePath, "record", err)
		uc.countRecord("error")
		return nil, errors.Persistence("Failed to save upload record", err)
	}

	uc.countRecord("success")
	if uc.notifier != nil {
		uc.notifier.Publish(record.OwnerID, entity.EventUploadRecorded, record)
	}
	return record, nil
}

// verifyObject compares the stored object with the size and MD5 the client
// measured while sending it. It is skipped when the client reports neither.
func (uc *UploadUseCase) verifyObject(ctx context.Context, input RecordUploadInput) error {
	if input.FileSize <= 0 && input.Checksum == "" {
		return nil
	}

	info, err := uc.store.Stat(ctx, input.StoragePath)
	if err != nil {
		if stderrors.Is(err, service.ErrObjectNotFound) {
			return errors.Transfer(errors.TransferIntegrity, "Uploaded file was not found in storage", err)
		}
		return errors.Transfer(errors.TransferUnknown, "Could not verify the uploaded file", err)
	}

	if input.FileSize > 0 && info.Size != input.FileSize {
		return errors.Transfer(errors.TransferIntegrity,
			fmt.Sprintf("Uploaded file size %d does not match expected %d", info.Size, input.FileSize), nil)
	}
	if input.Checksum != "" && info.MD5 != "" && !strings.EqualFold(info.MD5, input.Checksum) {
		return errors.Transfer(errors.TransferIntegrity, "Uploaded file checksum does not match", nil)
	}
	return nil
}

func (uc *UploadUseCase) ListUploads(ctx context.Context, ownerID string, limit, offset int) ([]*entity.UploadRecord, int64, error) {
	records, total, err := uc.uploadRepo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (uc *UploadUseCase) GetUpload(ctx context.Context, id string) (*entity.UploadRecord, error) {
	return uc.uploadRepo.GetByID(ctx, id)
}

func (uc *UploadUseCase) countCredential(result string) {
	if uc.metrics != nil {
		uc.metrics.CredentialsIssued.WithLabelValues(result).Inc()
	}
}

func (uc *UploadUseCase) countRecord(result string) {
	if uc.metrics != nil {
		uc.metrics.RecordsWritten.WithLabelValues(result).Inc()
	}
}
