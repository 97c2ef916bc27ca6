package usecase

import (
	"context"
	"time"

	"siso/internal/domain/repository"
	"siso/internal/domain/service"
	"siso/internal/infrastructure/metrics"
	"siso/pkg/errors"
	"siso/pkg/logger"
)

const (
	ReconcileModeFlag   = "flag"
	ReconcileModeDelete = "delete"
)

type ReconcileConfig struct {
	Grace    time.Duration
	Lookback time.Duration
	Mode     string
}

// Orphan is a stored object that no upload record points at.
type Orphan struct {
	StorageKey   string    `json:"storage_key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	Deleted      bool      `json:"deleted"`
}

type SweepReport struct {
	OwnerID  string   `json:"owner_id"`
	Mode     string   `json:"mode"`
	Scanned  int      `json:"scanned"`
	Recorded int      `json:"recorded"`
	Young    int      `json:"young"`
	Orphans  []Orphan `json:"orphans"`
}

// ReconcileUseCase cleans up objects left behind when a transfer succeeded
// but the record write did not.
type ReconcileUseCase struct {
	store        service.ObjectStore
	uploadRepo   repository.UploadRepository
	issuanceRepo repository.IssuanceRepository
	metrics      *metrics.Metrics
	cfg          ReconcileConfig
	now          func() time.Time
}

func NewReconcileUseCase(
	store service.ObjectStore,
	uploadRepo repository.UploadRepository,
	issuanceRepo repository.IssuanceRepository,
	m *metrics.Metrics,
	cfg ReconcileConfig,
) *ReconcileUseCase {
	if cfg.Mode == "" {
		cfg.Mode = ReconcileModeFlag
	}
	return &ReconcileUseCase{
		store:        store,
		uploadRepo:   uploadRepo,
		issuanceRepo: issuanceRepo,
		metrics:      m,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (uc *ReconcileUseCase) Sweep(ctx context.Context, ownerID string) (*SweepReport, error) {
	if ownerID == "" {
		return nil, errors.MissingField("owner_id")
	}

	objects, err := uc.store.List(ctx, OwnerPrefix(ownerID))
	if err != nil {
		return nil, errors.Internal("Failed to list stored objects", err)
	}
	recorded, err := uc.uploadRepo.StoragePathsByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Persistence("Failed to load upload records", err)
	}

	report := &SweepReport{OwnerID: ownerID, Mode: uc.cfg.Mode, Scanned: len(objects), Orphans: []Orphan{}}
	cutoff := uc.now().Add(-uc.cfg.Grace)

	for _, obj := range objects {
		if recorded[obj.Key] {
			report.Recorded++
			continue
		}
		// Young objects may still have a record write in flight.
		if obj.LastModified.After(cutoff) {
			report.Young++
			continue
		}

		orphan := Orphan{StorageKey: obj.Key, Size: obj.Size, LastModified: obj.LastModified}
		action := "flagged"
		if uc.cfg.Mode == ReconcileModeDelete {
			if err := uc.store.Delete(ctx, obj.Key); err != nil {
				logger.LogUploadError(obj.Key, "reconcile_delete", err)
				action = "delete_failed"
			} else {
				orphan.Deleted = true
				action = "deleted"
			}
		} else {
			logger.Warn("Orphaned upload object %s (%d bytes)", obj.Key, obj.Size)
		}
		if uc.metrics != nil {
			uc.metrics.ReconcileOrphans.WithLabelValues(action).Inc()
		}
		report.Orphans = append(report.Orphans, orphan)
	}

	logger.Info("Reconciled %s: %d objects, %d orphans (%s)", ownerID, report.Scanned, len(report.Orphans), report.Mode)
	return report, nil
}

// SweepRecent sweeps every owner that was issued a credential inside the
// lookback window.
func (uc *ReconcileUseCase) SweepRecent(ctx context.Context) ([]*SweepReport, error) {
	owners, err := uc.issuanceRepo.OwnersSince(ctx, uc.now().Add(-uc.cfg.Lookback))
	if err != nil {
		return nil, errors.Persistence("Failed to read issuance log", err)
	}

	reports := make([]*SweepReport, 0, len(owners))
	for _, owner := range owners {
		if ctx.Err() != nil {
			return reports, ctx.Err()
		}
		report, err := uc.Sweep(ctx, owner)
		if err != nil {
			logger.Error("Reconcile sweep for %s failed: %v", owner, err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Start runs SweepRecent every interval until ctx is cancelled. A
// non-positive interval disables the loop.
func (uc *ReconcileUseCase) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := uc.SweepRecent(ctx); err != nil {
					logger.Error("Reconcile run failed: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
